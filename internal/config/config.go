package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds everything the server reads from the environment.
type Config struct {
	Port        string
	DatabaseURL string

	JWTSecret string

	UploadDir string

	// Zoho Recruit credentials. All four are required for the sync
	// pipeline; the server still starts without them (sync just fails
	// and gets logged).
	ZohoRegion       string
	ZohoClientID     string
	ZohoClientSecret string
	ZohoRefreshToken string
	ZohoOrgID        string
	ZohoRedirectURI  string
}

// Load reads .env (if present) and builds the Config.
func Load() *Config {
	// Missing .env is fine in production; variables come from the host.
	_ = godotenv.Load()

	return &Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: getEnv("DATABASE_URL", "host=localhost user=postgres password=postgres dbname=careers port=5432 sslmode=disable"),

		JWTSecret: getEnv("JWT_SECRET", "dev_secret_change_me"),

		UploadDir: getEnv("UPLOAD_DIR", "uploads/resumes"),

		ZohoRegion:       getEnv("ZOHO_REGION", "eu"),
		ZohoClientID:     os.Getenv("ZOHO_CLIENT_ID"),
		ZohoClientSecret: os.Getenv("ZOHO_CLIENT_SECRET"),
		ZohoRefreshToken: os.Getenv("ZOHO_REFRESH_TOKEN"),
		ZohoOrgID:        os.Getenv("ZOHO_ORG_ID"),
		ZohoRedirectURI:  os.Getenv("ZOHO_REDIRECT_URI"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
