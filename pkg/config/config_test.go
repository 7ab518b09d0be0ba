package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "bookstore", cfg.DBName)
	assert.Equal(t, 24*time.Hour, cfg.TokenExpiry)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DB_NAME", "bookstore_test")
	t.Setenv("TOKEN_EXPIRY", "30m")

	cfg := Load()

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "bookstore_test", cfg.DBName)
	assert.Equal(t, 30*time.Minute, cfg.TokenExpiry)
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		DBHost:     "localhost",
		DBPort:     "5433",
		DBUser:     "program",
		DBPassword: "test",
		DBName:     "bookstore",
	}

	assert.Equal(t,
		"host=localhost user=program password=test dbname=bookstore port=5433 sslmode=disable TimeZone=UTC",
		cfg.DSN())
}
