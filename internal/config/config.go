package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration values.
type Config struct {
	Secret         string
	DatabaseDSN    string
	HTTPPort       string
	CatalogPath    string
	TaxRate        float64
	TokenTTL       time.Duration
	AllowedOrigins []string
	Location       *time.Location
}

// Load reads configuration from environment variables with reasonable defaults.
func Load() Config {
	secret := os.Getenv("SECRET")
	if secret == "" {
		secret = "dev_secret"
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}
	// Validate that port is numeric.
	if _, err := strconv.Atoi(port); err != nil {
		log.Printf("invalid HTTP_PORT value %q, defaulting to 8080", port)
		port = "8080"
	}

	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		dsn = "file:medbill.db?_pragma=busy_timeout(5000)"
	}

	taxRate := 0.10
	if raw := os.Getenv("TAX_RATE"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			log.Printf("invalid TAX_RATE value %q, defaulting to 0.10", raw)
		} else {
			taxRate = v
		}
	}

	ttl := 24 * time.Hour
	if raw := os.Getenv("TOKEN_TTL"); raw != "" {
		v, err := time.ParseDuration(raw)
		if err != nil || v <= 0 {
			log.Printf("invalid TOKEN_TTL value %q, defaulting to 24h", raw)
		} else {
			ttl = v
		}
	}

	origins := []string{"*"}
	if raw := os.Getenv("CORS_ORIGINS"); raw != "" {
		origins = origins[:0]
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}

	loc := time.Local
	if name := os.Getenv("TIMEZONE"); name != "" {
		l, err := time.LoadLocation(name)
		if err != nil {
			log.Printf("unknown TIMEZONE %q, using local time", name)
		} else {
			loc = l
		}
	}

	return Config{
		Secret:         secret,
		DatabaseDSN:    dsn,
		HTTPPort:       port,
		CatalogPath:    os.Getenv("MEDICINE_CATALOG"),
		TaxRate:        taxRate,
		TokenTTL:       ttl,
		AllowedOrigins: origins,
		Location:       loc,
	}
}
