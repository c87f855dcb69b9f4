package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds everything the services need from the environment. It is built
// once in main and injected, so no package reads os.Getenv on its own.
type Config struct {
	ServerPort     string
	MongoURI       string
	MongoDBName    string
	JWTSecret      string
	JWTExpiry      time.Duration
	CookieExpire   time.Duration
	ReportFilePath string
}

func Load() (*Config, error) {
	cfg := &Config{
		ServerPort:     getEnv("SERVER_PORT", "5000"),
		MongoURI:       getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName:    getEnv("MONGO_DB_NAME", "taskgroups_db"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		ReportFilePath: getEnv("REPORT_FILE_PATH", "tasks_report.csv"),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set in the environment variables")
	}

	expireHours, err := strconv.Atoi(getEnv("JWT_EXPIRE_HOURS", "2"))
	if err != nil || expireHours <= 0 {
		return nil, fmt.Errorf("invalid JWT_EXPIRE_HOURS value")
	}
	cfg.JWTExpiry = time.Duration(expireHours) * time.Hour

	cookieDays, err := strconv.Atoi(getEnv("COOKIE_EXPIRE_DAYS", "5"))
	if err != nil || cookieDays <= 0 {
		return nil, fmt.Errorf("invalid COOKIE_EXPIRE_DAYS value")
	}
	cfg.CookieExpire = time.Duration(cookieDays) * 24 * time.Hour

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
