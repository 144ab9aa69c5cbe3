package config

// Config holds all configuration for the application.
type Config struct {
	DBName    string
	Port      string
	ProjectID string
	Slack     SlackConfig
	Turso     TursoConfig
	Giphy     GiphyConfig
	Rating    RatingConfig
}
type SlackConfig struct {
	Token         string
	ChannelID     string
	SigningSecret string
}
type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}
type GiphyConfig struct {
	APIKey string
}

// RatingConfig carries the rating engine tuning. DeltaTau is the
// per-resolution volatility decay factor and must sit strictly between
// 0 and 1 so that volatility shrinks after every resolved match.
type RatingConfig struct {
	DeltaTau float64
}
