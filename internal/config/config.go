package config

import (
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// defaultDeltaTau is the volatility decay applied after each resolved match.
const defaultDeltaTau = 0.94

// Load reads configuration from environment variables and .env file.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}

	// A helper function to get a required env var. It will fail if the env var is not set.
	getEnv := func(key string) string {
		if value, ok := os.LookupEnv(key); ok {
			return value
		}
		log.Fatalf("Error: Required environment variable %s is not set.", key)
		return "" // This line is never reached
	}

	cfg := Config{
		DBName:    getEnv("DB_NAME"),
		Port:      getEnv("PORT"),
		ProjectID: getEnv("PROJECT_ID"),
		Slack: SlackConfig{
			Token:         getEnv("SLACK_BOT_TOKEN"),
			ChannelID:     getEnv("SLACK_CHANNEL_ID"),
			SigningSecret: getEnv("SLACK_SIGNING_SECRET"),
		},
		Turso: TursoConfig{
			PrimaryURL: os.Getenv("TURSO_PRIMARY_URL"),
			AuthToken:  os.Getenv("TURSO_AUTH_TOKEN"),
		},
		Giphy: GiphyConfig{
			APIKey: getEnv("GIPHY_API_KEY"),
		},
		Rating: RatingConfig{
			DeltaTau: defaultDeltaTau,
		},
	}

	if raw, ok := os.LookupEnv("RATING_DELTA_TAU"); ok {
		deltaTau, err := strconv.ParseFloat(raw, 64)
		if err != nil || deltaTau <= 0 || deltaTau >= 1 {
			log.Fatalf("Error: RATING_DELTA_TAU must be a number strictly between 0 and 1, got %q", raw)
		}
		cfg.Rating.DeltaTau = deltaTau
	}

	return cfg
}
