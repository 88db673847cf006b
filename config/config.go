package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Config holds everything the server reads from the environment.
type Config struct {
	Port         string
	DatabasePath string
	JWTSecret    string
	TokenTTL     time.Duration
	BcryptCost   int
}

// Load reads .env if present and builds the config from environment variables.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := Config{
		Port:         getEnv("PORT", "3000"),
		DatabasePath: getEnv("DATABASE_PATH", "database.db"),
		JWTSecret:    getEnv("JWT_SECRET", ""),
		TokenTTL:     time.Duration(getEnvInt("TOKEN_TTL_HOURS", 24)) * time.Hour,
		BcryptCost:   getEnvInt("BCRYPT_COST", bcrypt.DefaultCost),
	}

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET not set in environment")
	}
	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		log.Fatalf("BCRYPT_COST %d out of range [%d, %d]", cfg.BcryptCost, bcrypt.MinCost, bcrypt.MaxCost)
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Fatalf("Invalid %s: %v", key, err)
	}
	return n
}
