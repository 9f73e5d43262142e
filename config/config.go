package config

import (
	"fmt"
	"os"
	"strings"
)

// Config holds everything read from the environment at boot.
type Config struct {
	ListenAddr     string
	DBDriver       string // "mysql" or "sqlite"
	DBDSN          string
	PrinterURL     string
	PaymentMethods []string
	AdminEmail     string
	AdminPassword  string
}

func Load() *Config {
	cfg := &Config{
		ListenAddr:    getEnv("LISTEN_ADDR", ":8080"),
		DBDriver:      getEnv("DB_DRIVER", "mysql"),
		PrinterURL:    getEnv("PRINTER_URL", "http://localhost:5169/print"),
		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@local"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "admin"),
	}

	cfg.DBDSN = os.Getenv("DB_DSN")
	if cfg.DBDSN == "" && cfg.DBDriver == "mysql" {
		cfg.DBDSN = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			getEnv("DB_USER", "root"),
			getEnv("DB_PASS", ""),
			getEnv("DB_HOST", "127.0.0.1"),
			getEnv("DB_PORT", "3306"),
			getEnv("DB_NAME", "restaurant_pos"),
		)
	}

	methods := getEnv("PAYMENT_METHODS", "cash,card,pix")
	for _, m := range strings.Split(methods, ",") {
		if m = strings.TrimSpace(m); m != "" {
			cfg.PaymentMethods = append(cfg.PaymentMethods, m)
		}
	}

	return cfg
}

func (c *Config) PaymentMethodAllowed(method string) bool {
	for _, m := range c.PaymentMethods {
		if m == method {
			return true
		}
	}
	return false
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
