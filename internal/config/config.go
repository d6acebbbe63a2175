// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment string
	Server      ServerConfig
	Redis       RedisConfig
	Admin       AdminConfig
	Referral    ReferralConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	ReadTimeout  int
	WriteTimeout int
	IdleTimeout  int
	StaticDir    string
}

type RedisConfig struct {
	URL      string
	Host     string
	Port     string
	Password string
	DB       int
}

// AdminConfig carries the static admin allow-list. Admin status is derived
// from membership here on every read, never from stored user records.
type AdminConfig struct {
	IDs []int64
}

type ReferralConfig struct {
	Bonus int64
}

func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			Host:         getEnv("SERVER_HOST", "localhost"),
			ReadTimeout:  getEnvAsInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvAsInt("SERVER_WRITE_TIMEOUT", 15),
			IdleTimeout:  getEnvAsInt("SERVER_IDLE_TIMEOUT", 60),
			StaticDir:    getEnv("STATIC_DIR", "./static"),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", ""),
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Admin: AdminConfig{
			IDs: getEnvAsInt64List("ADMIN_IDS"),
		},
		Referral: ReferralConfig{
			Bonus: int64(getEnvAsInt("REFERRAL_BONUS", 100)),
		},
	}

	return config, config.Validate()
}

func (c *Config) Validate() error {
	if c.Environment == "production" && len(c.Admin.IDs) == 0 {
		return fmt.Errorf("ADMIN_IDS must be set in production")
	}

	if c.Referral.Bonus < 0 {
		return fmt.Errorf("referral bonus cannot be negative")
	}

	return nil
}

// IDSet returns the allow-list as a membership set for injection into the
// user repository.
func (c AdminConfig) IDSet() map[int64]struct{} {
	set := make(map[int64]struct{}, len(c.IDs))
	for _, id := range c.IDs {
		set[id] = struct{}{}
	}
	return set
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsInt64List(key string) []int64 {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}

	var ids []int64
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if id, err := strconv.ParseInt(part, 10, 64); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}
