package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Store backends selectable at startup
const (
	BackendMemory = "memory"
	BackendMongo  = "mongo"
)

// Config holds all configuration for the application
type Config struct {
	// Server
	Port        string
	CORSOrigins []string
	Env         string

	// Persistence
	StoreBackend string
	Mongo        MongoConfig

	// Rate limiting for mutating routes
	RateLimitPerMinute int
	RateLimitBurst     int
}

// MongoConfig holds the resolved document-store connection options
type MongoConfig struct {
	URL        string
	Host       string
	Port       string
	Username   string
	Password   string
	Database   string
	AdminParty bool // no-auth mode, credentials are ignored
}

// URI returns the connection string, preferring an explicit URL over the
// composed host/port/credentials tuple.
func (m MongoConfig) URI() string {
	if m.URL != "" {
		return m.URL
	}
	if m.AdminParty || m.Username == "" {
		return fmt.Sprintf("mongodb://%s:%s", m.Host, m.Port)
	}
	return fmt.Sprintf("mongodb://%s:%s@%s:%s", m.Username, m.Password, m.Host, m.Port)
}

// vcapService mirrors the platform service-binding convention: a JSON blob
// keyed by service name, each carrying a credentials object.
type vcapService struct {
	Credentials struct {
		Host     string `json:"host"`
		Port     string `json:"port"`
		Username string `json:"username"`
		Password string `json:"password"`
		URL      string `json:"url"`
	} `json:"credentials"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		CORSOrigins:        strings.Split(getEnv("CORS_ORIGINS", "http://localhost:3000"), ","),
		Env:                getEnv("ENV", "development"),
		StoreBackend:       getEnv("STORE_BACKEND", BackendMemory),
		RateLimitPerMinute: 600,
		RateLimitBurst:     60,
		Mongo: MongoConfig{
			URL:        getEnv("MONGO_URL", ""),
			Host:       getEnv("MONGO_HOST", "127.0.0.1"),
			Port:       getEnv("MONGO_PORT", "27017"),
			Username:   getEnv("MONGO_USERNAME", ""),
			Password:   getEnv("MONGO_PASSWORD", ""),
			Database:   getEnv("MONGO_DATABASE", "wishlists"),
			AdminParty: getEnv("ADMIN_PARTY", "False") == "True",
		},
	}

	// Bound services override the defaults but not explicit env vars.
	if blob := os.Getenv("VCAP_SERVICES"); blob != "" {
		if err := cfg.applyBoundServices(blob); err != nil {
			return nil, err
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyBoundServices fills unset Mongo options from the first bound service
// carrying credentials.
func (c *Config) applyBoundServices(blob string) error {
	var services map[string][]vcapService
	if err := json.Unmarshal([]byte(blob), &services); err != nil {
		return fmt.Errorf("VCAP_SERVICES is not valid JSON: %w", err)
	}

	for _, instances := range services {
		for _, instance := range instances {
			creds := instance.Credentials
			if creds.Host == "" && creds.URL == "" {
				continue
			}
			if c.Mongo.URL == "" {
				c.Mongo.URL = creds.URL
			}
			if os.Getenv("MONGO_HOST") == "" && creds.Host != "" {
				c.Mongo.Host = creds.Host
			}
			if os.Getenv("MONGO_PORT") == "" && creds.Port != "" {
				c.Mongo.Port = creds.Port
			}
			if c.Mongo.Username == "" {
				c.Mongo.Username = creds.Username
			}
			if c.Mongo.Password == "" {
				c.Mongo.Password = creds.Password
			}
			return nil
		}
	}
	return nil
}

func (c *Config) validate() error {
	switch c.StoreBackend {
	case BackendMemory:
	case BackendMongo:
		if c.Mongo.URI() == "" {
			return fmt.Errorf("document store selected but no connection options resolved")
		}
		if !c.Mongo.AdminParty && c.Mongo.URL == "" && c.Mongo.Username == "" {
			return fmt.Errorf("document store credentials are required unless ADMIN_PARTY=True")
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q (want %q or %q)", c.StoreBackend, BackendMemory, BackendMongo)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
