package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string
	JWTSecret  string

	// Text generation endpoint (OpenAI-message-shaped, e.g. Cloudflare Workers AI).
	TextAPIURL   string
	TextAPIToken string

	// Image generation endpoint (prompt + steps -> base64 image).
	ImageAPIURL   string
	ImageAPIToken string

	// Search provider. When the key is empty the enrichment client falls back
	// to scraping the DuckDuckGo HTML endpoint.
	SearchAPIURL string
	SearchAPIKey string
	SearchCX     string

	MinIOEndpoint  string
	MinIOAccessKey string
	MinIOSecretKey string
	MinIOBucket    string

	// Optional YAML file overriding the default personas / extra prompt
	// instructions. Empty means built-in templates only.
	PromptsFile string

	// "html" or "plain" output directives for generated copy.
	OutputFormat string

	SearchTimeout   time.Duration
	TextGenTimeout  time.Duration
	ImageGenTimeout time.Duration
	ScrapeTimeout   time.Duration
}

func LoadConfig() Config {
	if err := godotenv.Load(); err != nil {
		// No .env file, rely on process environment.
	}

	return Config{
		Port:       getEnv("PORT", "8000"),
		DBUser:     getEnv("DB_USER", ""),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBName:     getEnv("DB_NAME", "marketmint"),
		JWTSecret:  getEnv("JWT_SECRET", ""),

		TextAPIURL:   getEnv("TEXT_API_URL", ""),
		TextAPIToken: getEnv("TEXT_API_TOKEN", ""),

		ImageAPIURL:   getEnv("IMAGE_API_URL", ""),
		ImageAPIToken: getEnv("IMAGE_API_TOKEN", ""),

		SearchAPIURL: getEnv("SEARCH_API_URL", "https://www.googleapis.com/customsearch/v1"),
		SearchAPIKey: getEnv("SEARCH_API_KEY", ""),
		SearchCX:     getEnv("SEARCH_CX", ""),

		MinIOEndpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
		MinIOAccessKey: getEnv("MINIO_ACCESS_KEY", ""),
		MinIOSecretKey: getEnv("MINIO_SECRET_KEY", ""),
		MinIOBucket:    getEnv("MINIO_BUCKET", "marketmint-images"),

		PromptsFile:  getEnv("PROMPTS_FILE", ""),
		OutputFormat: getEnv("OUTPUT_FORMAT", "html"),

		SearchTimeout:   12 * time.Second,
		TextGenTimeout:  25 * time.Second,
		ImageGenTimeout: 45 * time.Second,
		ScrapeTimeout:   15 * time.Second,
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return fallback
}
