package config

import (
	"os"
	"strings"
)

type Config struct {
	Port             string
	HotelDBHost      string
	HotelDBPort      string
	CacheHost        string
	CachePort        string
	JaegerAddress    string
	SecretKey        string
	SMTPAuthMail     string
	SMTPAuthPassword string
	StripeSecretKey  string
	Production       bool
	CORSOrigins      []string
}

func NewConfig() *Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	origins := os.Getenv("CORS_ORIGINS")
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:5174"
	}

	return &Config{
		Port:             port,
		HotelDBHost:      os.Getenv("HOTEL_DB_HOST"),
		HotelDBPort:      os.Getenv("HOTEL_DB_PORT"),
		CacheHost:        os.Getenv("LISTING_CACHE_HOST"),
		CachePort:        os.Getenv("LISTING_CACHE_PORT"),
		JaegerAddress:    os.Getenv("JAEGER_ADDRESS"),
		SecretKey:        os.Getenv("SECRET_KEY"),
		SMTPAuthMail:     os.Getenv("SMTP_AUTH_MAIL"),
		SMTPAuthPassword: os.Getenv("SMTP_AUTH_PASSWORD"),
		StripeSecretKey:  os.Getenv("STRIPE_SECRET_KEY"),
		Production:       os.Getenv("NODE_ENV") == "production" || os.Getenv("ENV") == "production",
		CORSOrigins:      strings.Split(origins, ","),
	}
}
