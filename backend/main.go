package main

import (
	"log"
	"net/http"

	"github.com/joho/godotenv"

	"medbill/m/internal/api"
	"medbill/m/internal/config"
	"medbill/m/internal/database"
	"medbill/m/internal/migrations"
	"medbill/m/internal/notes"
	"medbill/m/internal/seed"
	"medbill/m/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	db, err := database.Connect(cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("database error: %v", err)
	}
	defer db.Close()

	if err := migrations.Run(db); err != nil {
		log.Fatalf("migration error: %v", err)
	}

	st := store.New(store.WithTaxRate(cfg.TaxRate), store.WithLocation(cfg.Location))
	seed.LoadSamples(st)
	if cfg.CatalogPath != "" {
		seed.LoadMedicines(st, cfg.CatalogPath)
	}

	handler := api.New(st, notes.NewRepository(db), cfg)

	log.Printf("MedBill server starting on :%s", cfg.HTTPPort)
	if err := http.ListenAndServe(":"+cfg.HTTPPort, handler.Router()); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
