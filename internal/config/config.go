package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Port               string   `mapstructure:"PORT"`
	DatabasePath       string   `mapstructure:"DATABASE_PATH"`
	GoogleClientID     string   `mapstructure:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string   `mapstructure:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string   `mapstructure:"GOOGLE_REDIRECT_URL"`
	JWTSecret          string   `mapstructure:"JWT_SECRET"`
	FrontendURL        string   `mapstructure:"FRONTEND_URL"`
	AdminEmails        []string `mapstructure:"ADMIN_EMAILS"`
	CapacityLimit      int      `mapstructure:"CAPACITY_LIMIT"`
	EnableCORS         bool     `mapstructure:"ENABLE_CORS"`
}

func LoadConfig() *Config {
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DATABASE_PATH", "lens.db")
	viper.SetDefault("GOOGLE_REDIRECT_URL", "http://127.0.0.1:8080/auth/google/callback")
	viper.SetDefault("FRONTEND_URL", "http://127.0.0.1:4000")
	viper.SetDefault("CAPACITY_LIMIT", 6)

	viper.BindEnv("GOOGLE_CLIENT_ID")
	viper.BindEnv("GOOGLE_CLIENT_SECRET")
	viper.BindEnv("GOOGLE_REDIRECT_URL")
	viper.BindEnv("JWT_SECRET")
	viper.BindEnv("FRONTEND_URL")
	viper.BindEnv("ADMIN_EMAILS")
	viper.BindEnv("CAPACITY_LIMIT")
	viper.BindEnv("ENABLE_CORS")

	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}

	return &config
}
