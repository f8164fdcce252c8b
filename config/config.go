package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
// SearchURL and OutputPath are optional overrides; when empty, the selected
// variant's defaults apply.
type Config struct {
	Mode       string
	SearchURL  string
	OutputPath string

	MaxPages      int
	PageDelayMs   int
	HTTPTimeoutMs int

	UserAgent string
}

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		Mode:       getEnv("SCRAPE_MODE", "forsale"),
		SearchURL:  getEnv("SEARCH_URL", ""),
		OutputPath: getEnv("OUTPUT_PATH", ""),

		MaxPages:      getEnvInt("MAX_PAGES", 49),
		PageDelayMs:   getEnvInt("PAGE_DELAY_MS", 1000),
		HTTPTimeoutMs: getEnvInt("HTTP_TIMEOUT_MS", 30000),

		UserAgent: getEnv("USER_AGENT", defaultUserAgent),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}
