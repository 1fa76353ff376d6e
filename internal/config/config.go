package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"     validate:"required"`
	Database   DatabaseConfig   `mapstructure:"database"   validate:"required"`
	Generation GenerationConfig `mapstructure:"generation" validate:"required"`
	Review     ReviewConfig     `mapstructure:"review"     validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// GenerationConfig contains the sentence-enrichment settings.
// The API key may be empty, in which case sentence generation is disabled
// and words are stored without example sentences.
type GenerationConfig struct {
	GeminiAPIKey      string `mapstructure:"gemini_api_key"`
	ModelName         string `mapstructure:"model_name"          validate:"required"`
	TimeoutSeconds    int    `mapstructure:"timeout_seconds"     validate:"required,gt=0"`
	MaxRetries        int    `mapstructure:"max_retries"         validate:"gte=0"`
	RetryDelaySeconds int    `mapstructure:"retry_delay_seconds" validate:"gte=1"`
}

// ReviewConfig contains the scheduling settings for word reviews.
type ReviewConfig struct {
	// InitialIntervalDays is how far in the future a freshly added word is
	// first due. Zero would make new words due immediately; the default is 1.
	InitialIntervalDays int `mapstructure:"initial_interval_days" validate:"gte=0"`
}
