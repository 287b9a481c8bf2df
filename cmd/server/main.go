package main

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"tally/internal/auth"
	"tally/internal/config"
	"tally/internal/domain/repositories"
	"tally/internal/handler"
	"tally/internal/middleware"
	"tally/internal/repository/dynamo"
	"tally/internal/repository/postgres"
	"tally/internal/service/authz"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()
	logger := config.NewLogger(cfg.Environment)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"store_backend", cfg.StoreBackend,
		"port", cfg.Port,
	)

	// Credential handling: decode-only by default; full signature
	// verification when no upstream gateway owns that boundary.
	var extractor auth.IdentityExtractor = auth.NewClaimsExtractor(logger)
	if cfg.VerifyTokens {
		verifying, err := auth.NewVerifyingExtractor(cfg.JWKSURL, logger)
		if err != nil {
			log.Fatalf("Failed to create verifying extractor: %v", err)
		}
		extractor = verifying
	}

	ctx := context.Background()

	var (
		checklists repositories.ChecklistRepository
		sections   repositories.SectionRepository
		items      repositories.ItemRepository
		shares     repositories.ShareRepository
	)

	switch cfg.StoreBackend {
	case "dynamo":
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			log.Fatalf("Failed to load AWS configuration: %v", err)
		}
		client := dynamodb.NewFromConfig(awsCfg)
		locator := dynamo.NewTableLocator(client, cfg.Deployment, logger)

		// Table resolution failure is a deployment misconfiguration; abort
		// startup instead of denying every request without explanation.
		if _, err := locator.Resolve(ctx); err != nil {
			log.Fatalf("Failed to resolve entity tables: %v", err)
		}

		repoConfig := &dynamo.RepositoryConfig{
			Client:  client,
			Locator: locator,
			Logger:  logger,
		}
		checklists = dynamo.NewChecklistRepository(repoConfig)
		sections = dynamo.NewSectionRepository(repoConfig)
		items = dynamo.NewItemRepository(repoConfig)
		shares = dynamo.NewShareRepository(repoConfig)

	case "postgres":
		pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to create connection pool: %v", err)
		}
		defer pool.Close()

		repoConfig := &postgres.RepositoryConfig{
			Pool:   pool,
			Tables: postgres.NewTableNames(cfg.TablePrefix),
			Logger: logger,
		}
		checklists = postgres.NewChecklistRepository(repoConfig)
		sections = postgres.NewSectionRepository(repoConfig)
		items = postgres.NewItemRepository(repoConfig)
		shares = postgres.NewShareRepository(repoConfig)

	default:
		log.Fatalf("Unknown store backend %q", cfg.StoreBackend)
	}

	resolver := authz.NewResolver(checklists, shares, logger)
	audit := authz.NewSlogRecorder(logger)

	authorizer, err := authz.NewService(extractor, resolver, checklists, sections, items, audit, logger)
	if err != nil {
		log.Fatalf("Failed to create authorizer: %v", err)
	}

	authorizeHandler := handler.NewAuthorizeHandler(authorizer, logger)
	shareHandler := handler.NewShareHandler(shares, resolver, logger)

	logger.Info("services initialized")

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", authorizeHandler.HealthCheck)
	mux.HandleFunc("POST /authorize", authorizeHandler.Authorize)
	mux.HandleFunc("GET /api/checklists/{id}/shares", shareHandler.ListShares)

	// Build middleware chain (applied in reverse order, they wrap each other)
	// Order: CORS -> Recovery -> Auth -> Routes
	var httpHandler http.Handler = mux
	httpHandler = middleware.Auth(extractor, logger)(httpHandler)
	httpHandler = middleware.Recovery(logger)(httpHandler)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	httpHandler = corsHandler.Handler(httpHandler)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      httpHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
