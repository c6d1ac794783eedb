package config

import (
	"log"
	"os"
	"strconv"
)

// Config holds application configuration values.
type Config struct {
	Secret        string
	DatabaseDSN   string
	HTTPPort      string
	MedicineCSV   string
	AdminUsername string
	AdminEmail    string
	AdminPassword string
}

// Load reads configuration from environment variables with reasonable defaults.
func Load() Config {
	secret := os.Getenv("SECRET")
	if secret == "" {
		secret = "dev_secret"
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "5000"
	}

	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		dsn = "file:medshop.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	}

	adminUser := os.Getenv("ADMIN_USERNAME")
	if adminUser == "" {
		adminUser = "admin"
	}
	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@medshop.local"
	}
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "admin123"
	}

	// Validate that port is numeric.
	if _, err := strconv.Atoi(port); err != nil {
		log.Printf("invalid HTTP_PORT value %q, defaulting to 5000", port)
		port = "5000"
	}

	return Config{
		Secret:        secret,
		DatabaseDSN:   dsn,
		HTTPPort:      port,
		MedicineCSV:   os.Getenv("MEDICINE_CSV"),
		AdminUsername: adminUser,
		AdminEmail:    adminEmail,
		AdminPassword: adminPassword,
	}
}
