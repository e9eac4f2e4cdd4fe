package config

import (
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type Config struct {
	Port           string
	AnalyticsToken string
	RedisAddr      string
	ReconcileSpec  string
	DB             DBConfig
}

// Load reads configuration from the environment, with an optional local
// .env file. Missing .env is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("RECONCILE_SPEC", "@every 10m")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "planetaketo")
	v.SetDefault("DB_SSLMODE", "disable")
	v.AutomaticEnv()

	return &Config{
		Port:           v.GetString("PORT"),
		AnalyticsToken: v.GetString("ANALYTICS_TOKEN"),
		RedisAddr:      v.GetString("REDIS_ADDR"),
		ReconcileSpec:  v.GetString("RECONCILE_SPEC"),
		DB: DBConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
	}, nil
}
