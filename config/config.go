package config

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server       Server
	Database     Database
	GeminiApiKey string
	GeminiModel  string
	Generation   Generation
}

type Server struct {
	Port string
}

type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

// Generation holds tunables for calls to the text-completion capability.
type Generation struct {
	TimeoutSeconds int
	MaxRetries     int
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	viper.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")
	viper.SetDefault("GENERATION_TIMEOUT_SECONDS", 30)
	viper.SetDefault("GENERATION_MAX_RETRIES", 1)

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")

	config.GeminiApiKey = viper.GetString("GEMINI_API_KEY")
	config.GeminiModel = viper.GetString("GEMINI_MODEL")
	config.Generation.TimeoutSeconds = viper.GetInt("GENERATION_TIMEOUT_SECONDS")
	config.Generation.MaxRetries = viper.GetInt("GENERATION_MAX_RETRIES")

	log.Info().Str("server_port", config.Server.Port).Str("gemini_model", config.GeminiModel).Msg("Config loaded")
	return &config, nil
}
