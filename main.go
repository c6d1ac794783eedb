package main

import (
	"log"
	"net/http"

	"github.com/joho/godotenv"

	"medshop/m/internal/api"
	"medshop/m/internal/config"
	"medshop/m/internal/database"
	"medshop/m/internal/migrations"
	"medshop/m/internal/seed"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Connect(cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := migrations.Run(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	if err := seed.EnsureAdmin(db, cfg.AdminUsername, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatalf("admin seed failed: %v", err)
	}
	if cfg.MedicineCSV != "" {
		seed.LoadMedicines(db, cfg.MedicineCSV)
	}

	handler := api.New(db, cfg.Secret)

	log.Printf("medical shop server starting on :%s", cfg.HTTPPort)
	if err := http.ListenAndServe(":"+cfg.HTTPPort, handler.Router()); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
