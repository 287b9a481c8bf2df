package config

import (
	"os"
)

type Config struct {
	Port        string
	Environment string
	CORSOrigins string

	// Entity store selection
	StoreBackend string // "postgres" or "dynamo"
	DatabaseURL  string // postgres backend
	TablePrefix  string // postgres backend: physical table prefix
	Deployment   string // dynamo backend: "sandbox" or a deployment branch name

	// Credential handling
	JWKSURL      string
	VerifyTokens bool // verify signatures locally instead of trusting the upstream gateway

	// Debug flags
	Debug bool
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")

	return &Config{
		Port:         getEnv("PORT", "8080"),
		Environment:  env,
		CORSOrigins:  getEnv("CORS_ORIGINS", "http://localhost:3000"),
		StoreBackend: getEnv("STORE_BACKEND", "postgres"),
		DatabaseURL:  getEnv("DATABASE_URL", ""),
		TablePrefix:  getTablePrefix(env),
		Deployment:   getEnv("DEPLOYMENT", "sandbox"),
		JWKSURL:      getEnv("JWKS_URL", ""),
		VerifyTokens: getEnv("AUTH_VERIFY_TOKENS", "false") == "true",
		Debug:        getEnv("DEBUG", getDefaultDebug(env)) == "true",
	}
}

// getDefaultDebug returns the default debug setting based on environment
func getDefaultDebug(env string) string {
	if env == "prod" {
		return "false"
	}
	return "true"
}

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(env string) string {
	// Allow manual override via TABLE_PREFIX env var
	if prefix := os.Getenv("TABLE_PREFIX"); prefix != "" {
		return prefix
	}

	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
