package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	GinMode     string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	JWTSecret   string
	TokenExpiry time.Duration
}

func Load() *Config {
	viper.AutomaticEnv()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("GIN_MODE", "debug")
	viper.SetDefault("DB_HOST", "postgres")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_USER", "program")
	viper.SetDefault("DB_PASSWORD", "test")
	viper.SetDefault("DB_NAME", "bookstore")
	viper.SetDefault("JWT_SECRET", "dev-secret")
	viper.SetDefault("TOKEN_EXPIRY", "24h")

	return &Config{
		Port:        viper.GetString("PORT"),
		GinMode:     viper.GetString("GIN_MODE"),
		DBHost:      viper.GetString("DB_HOST"),
		DBPort:      viper.GetString("DB_PORT"),
		DBUser:      viper.GetString("DB_USER"),
		DBPassword:  viper.GetString("DB_PASSWORD"),
		DBName:      viper.GetString("DB_NAME"),
		JWTSecret:   viper.GetString("JWT_SECRET"),
		TokenExpiry: viper.GetDuration("TOKEN_EXPIRY"),
	}
}

func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
}
