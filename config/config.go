package config

import (
	"encoding/json"
	"log"
	"os"
)

type Configuration struct {
	ApiPort string `json:"api_port"`
	LogPath string `json:"log_path"`

	Database string `json:"database"` // "sqlite3" ou "postgres"
	DbHost   string `json:"db_host"`
	DbPort   string `json:"db_port"`
	DbUser   string `json:"db_user"`
	DbName   string `json:"db_name"`
	DbPass   string `json:"db_pass"`

	Security struct {
		JwtSecret             string `json:"jwt_secret"`
		BillingWebhookSecret  string `json:"billing_webhook_secret"`
		IdentityWebhookSecret string `json:"identity_webhook_secret"`
	} `json:"security"`

	Banner struct {
		// TestCountryCode é o fallback de geolocalização pra dev/local,
		// onde não tem CDN na frente preenchendo o header de país.
		TestCountryCode string `json:"test_country_code"`
		BrandingURL     string `json:"branding_url"`
	} `json:"banner"`
}

func Get(path string) Configuration {
	var c Configuration
	if b, err := os.ReadFile(path); err == nil {
		if err := json.Unmarshal(b, &c); err != nil {
			log.Fatal(err)
		}
	}

	// defaults (pra evitar nil/zero chato)
	if c.ApiPort == "" {
		c.ApiPort = "8080"
	}
	if c.LogPath == "" {
		c.LogPath = "logs/server.log"
	}
	if c.Database == "" {
		c.Database = "sqlite3"
	}
	if c.Banner.BrandingURL == "" {
		c.Banner.BrandingURL = "https://paridade.app"
	}

	// segredos preferem env var a arquivo commitado
	if v := os.Getenv("JWT_SECRET"); v != "" {
		c.Security.JwtSecret = v
	}
	if v := os.Getenv("BILLING_WEBHOOK_SECRET"); v != "" {
		c.Security.BillingWebhookSecret = v
	}
	if v := os.Getenv("IDENTITY_WEBHOOK_SECRET"); v != "" {
		c.Security.IdentityWebhookSecret = v
	}
	if v := os.Getenv("TEST_COUNTRY_CODE"); v != "" {
		c.Banner.TestCountryCode = v
	}
	if c.Security.JwtSecret == "" {
		c.Security.JwtSecret = "CHANGE_ME"
	}

	return c
}
