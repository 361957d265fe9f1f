package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Port string `yaml:"port"`

	MongoURI           string `yaml:"mongodb_uri"`
	MongoDatabase      string `yaml:"mongodb_database"`
	UsersCollection    string `yaml:"mongodb_collection_users"`
	AgentsCollection   string `yaml:"mongodb_collection_agents"`
	ListingsCollection string `yaml:"mongodb_collection_listings"`
	MongoTransactions  bool   `yaml:"mongodb_transactions"`

	JWTSecret      string `yaml:"jwt_secret"`
	JWTExpiryHours int    `yaml:"jwt_expiry_hours"`
	CookieSecure   bool   `yaml:"cookie_secure"`

	RedisAddr       string `yaml:"redis_addr"`
	RedisPassword   string `yaml:"redis_password"`
	CacheTTLSeconds int    `yaml:"cache_ttl_seconds"`
}

func (c *Config) JWTExpiry() time.Duration {
	return time.Duration(c.JWTExpiryHours) * time.Hour
}

func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// Load reads the configuration from the environment. When CONFIG_FILE points
// at a YAML file, its values fill every key the environment left unset.
func Load() (*Config, error) {
	cfg := fromEnv()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		var file Config
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
		cfg.overlay(&file)
	}

	cfg.applyDefaults()

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	return cfg, nil
}

func fromEnv() *Config {
	return &Config{
		Port:               os.Getenv("PORT"),
		MongoURI:           os.Getenv("MONGODB_URI"),
		MongoDatabase:      os.Getenv("MONGODB_DATABASE"),
		UsersCollection:    os.Getenv("MONGODB_COLLECTION_USERS"),
		AgentsCollection:   os.Getenv("MONGODB_COLLECTION_AGENTS"),
		ListingsCollection: os.Getenv("MONGODB_COLLECTION_LISTINGS"),
		MongoTransactions:  envBool("MONGODB_TRANSACTIONS"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		JWTExpiryHours:     envInt("JWT_EXPIRY_HOURS"),
		CookieSecure:       envBool("COOKIE_SECURE"),
		RedisAddr:          os.Getenv("REDIS_ADDR"),
		RedisPassword:      os.Getenv("REDIS_PASSWORD"),
		CacheTTLSeconds:    envInt("CACHE_TTL_SECONDS"),
	}
}

func (c *Config) overlay(f *Config) {
	setString(&c.Port, f.Port)
	setString(&c.MongoURI, f.MongoURI)
	setString(&c.MongoDatabase, f.MongoDatabase)
	setString(&c.UsersCollection, f.UsersCollection)
	setString(&c.AgentsCollection, f.AgentsCollection)
	setString(&c.ListingsCollection, f.ListingsCollection)
	setString(&c.JWTSecret, f.JWTSecret)
	setString(&c.RedisAddr, f.RedisAddr)
	setString(&c.RedisPassword, f.RedisPassword)
	if c.JWTExpiryHours == 0 {
		c.JWTExpiryHours = f.JWTExpiryHours
	}
	if c.CacheTTLSeconds == 0 {
		c.CacheTTLSeconds = f.CacheTTLSeconds
	}
	if os.Getenv("MONGODB_TRANSACTIONS") == "" {
		c.MongoTransactions = f.MongoTransactions
	}
	if os.Getenv("COOKIE_SECURE") == "" {
		c.CookieSecure = f.CookieSecure
	}
}

func (c *Config) applyDefaults() {
	setString(&c.Port, "8080")
	setString(&c.MongoURI, "mongodb://localhost:27017")
	setString(&c.MongoDatabase, "estate")
	setString(&c.UsersCollection, "users")
	setString(&c.AgentsCollection, "agents")
	setString(&c.ListingsCollection, "listings")
	if c.JWTExpiryHours <= 0 {
		c.JWTExpiryHours = 24
	}
	if c.CacheTTLSeconds <= 0 {
		c.CacheTTLSeconds = 60
	}
}

func setString(dst *string, v string) {
	if *dst == "" {
		*dst = v
	}
}

func envInt(key string) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return 0
	}
	return n
}

func envBool(key string) bool {
	b, _ := strconv.ParseBool(os.Getenv(key))
	return b
}
