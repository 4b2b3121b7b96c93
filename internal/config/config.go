package config

import (
	"os"
	"strconv"

	"reversa-auctions/utils"

	"github.com/joho/godotenv"
)

// Config holds all runtime settings sourced from the environment.
type Config struct {
	Port         string
	DataFile     string
	BidIncrement float64
	GeminiAPIKey string
}

// Load reads .env (if present) and the environment into a Config.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		utils.Debug("No .env file found, relying on environment variables", nil)
	}

	return &Config{
		Port:         getEnv("PORT", "8080"),
		DataFile:     getEnv("DATA_FILE", "reversa_data.json"),
		BidIncrement: getEnvAsFloat("BID_INCREMENT", 50),
		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	if value, err := strconv.ParseFloat(getEnv(key, ""), 64); err == nil && value > 0 {
		return value
	}
	return fallback
}
