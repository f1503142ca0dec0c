package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	JWTSecret   string `mapstructure:"JWT_SECRET"`

	// Phase lengths in seconds before any client may trigger resolution.
	NightSeconds int `mapstructure:"NIGHT_SECONDS"`
	DaySeconds   int `mapstructure:"DAY_SECONDS"`
}

// NightDuration is how long a night phase lasts before any client may resolve it.
func (c *Config) NightDuration() time.Duration {
	return time.Duration(c.NightSeconds) * time.Second
}

// DayDuration is how long a day phase lasts before any client may resolve it.
func (c *Config) DayDuration() time.Duration {
	return time.Duration(c.DaySeconds) * time.Second
}

var AppConfig *Config

// LoadConfig loads the configuration from a .env file and environment variables.
func LoadConfig() {
	viper.AddConfigPath(".")
	viper.SetConfigName(".env")
	viper.SetConfigType("env")

	viper.SetDefault("NIGHT_SECONDS", 15)
	viper.SetDefault("DAY_SECONDS", 30)

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Println("Warning: .env file not found, loading from environment variables")
	}

	err := viper.Unmarshal(&AppConfig)
	if err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}
}
