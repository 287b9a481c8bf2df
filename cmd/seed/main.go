package main

import (
	"context"
	"flag"
	"log"

	"tally/internal/config"
	"tally/internal/repository/dynamo"
	"tally/internal/repository/postgres"
	"tally/internal/seed"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/joho/godotenv"
)

func main() {
	schemaOnly := flag.Bool("schema-only", false, "Only set up the Postgres schema, don't seed data")
	flag.Parse()

	// Load .env file
	_ = godotenv.Load()

	cfg := config.Load()

	// SAFETY: seeding is for dev and test environments only
	if cfg.Environment == "prod" {
		log.Fatalf("BLOCKED: refusing to seed the production environment")
	}

	logger := config.NewLogger(cfg.Environment)
	ctx := context.Background()

	var stores seed.Stores

	switch cfg.StoreBackend {
	case "dynamo":
		if *schemaOnly {
			log.Fatalf("--schema-only applies to the Postgres backend; DynamoDB tables are provisioned by the deployment")
		}
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			log.Fatalf("Failed to load AWS configuration: %v", err)
		}
		client := dynamodb.NewFromConfig(awsCfg)
		locator := dynamo.NewTableLocator(client, cfg.Deployment, logger)
		if _, err := locator.Resolve(ctx); err != nil {
			log.Fatalf("Failed to resolve entity tables: %v", err)
		}
		repoConfig := &dynamo.RepositoryConfig{Client: client, Locator: locator, Logger: logger}
		stores = seed.Stores{
			Checklists: dynamo.NewChecklistRepository(repoConfig),
			Sections:   dynamo.NewSectionRepository(repoConfig),
			Items:      dynamo.NewItemRepository(repoConfig),
			Shares:     dynamo.NewShareRepository(repoConfig),
		}

	case "postgres":
		pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to create connection pool: %v", err)
		}
		defer pool.Close()

		tables := postgres.NewTableNames(cfg.TablePrefix)
		if err := postgres.EnsureSchema(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to ensure schema: %v", err)
		}
		if *schemaOnly {
			logger.Info("schema ready", "prefix", cfg.TablePrefix)
			return
		}

		repoConfig := &postgres.RepositoryConfig{Pool: pool, Tables: tables, Logger: logger}
		stores = seed.Stores{
			Checklists: postgres.NewChecklistRepository(repoConfig),
			Sections:   postgres.NewSectionRepository(repoConfig),
			Items:      postgres.NewItemRepository(repoConfig),
			Shares:     postgres.NewShareRepository(repoConfig),
		}

	default:
		log.Fatalf("Unknown store backend %q", cfg.StoreBackend)
	}

	if err := seed.Run(ctx, stores, logger); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}
