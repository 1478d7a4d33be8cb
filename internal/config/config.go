package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Storage drivers selectable with storage.driver.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

const (
	defaultAdminPassword = "admin123"
	defaultSQLitePath    = "quiz.db"
	defaultCatalogID     = "travel-health"
)

type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
	Admin struct {
		Password string `yaml:"password"`
	} `yaml:"admin"`
	Storage struct {
		Driver string `yaml:"driver"`
	} `yaml:"storage"`
	SQLite struct {
		Path string `yaml:"path"`
	} `yaml:"sqlite"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		TTL      string `yaml:"ttl"`
	} `yaml:"redis"`
	Catalog struct {
		ID   string `yaml:"id"`
		File string `yaml:"file"`
		TTL  string `yaml:"ttl"`
	} `yaml:"catalog"`
	Submission struct {
		RequireAssessor *bool `yaml:"require_assessor"`
	} `yaml:"submission"`
	Attempt struct {
		TTL string `yaml:"ttl"`
	} `yaml:"attempt"`
}

// Load reads an optional .env file from the working directory, then the YAML
// config at path, then applies environment overrides and defaults.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	cfg.applyEnv(os.LookupEnv)
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	overrides := map[string]*string{
		"ADMIN_PASSWORD": &c.Admin.Password,
		"DATABASE_URL":   &c.Postgres.URL,
		"SQLITE_PATH":    &c.SQLite.Path,
		"REDIS_ADDR":     &c.Redis.Addr,
		"STORAGE_DRIVER": &c.Storage.Driver,
		"LOG_LEVEL":      &c.Log.Level,
	}
	for key, dst := range overrides {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
}

func (c *Config) applyDefaults() {
	if c.Admin.Password == "" {
		c.Admin.Password = defaultAdminPassword
	}
	c.Storage.Driver = strings.ToLower(strings.TrimSpace(c.Storage.Driver))
	if c.Storage.Driver == "" {
		c.Storage.Driver = DriverSQLite
	}
	if c.SQLite.Path == "" {
		c.SQLite.Path = defaultSQLitePath
	}
	if c.Catalog.ID == "" {
		c.Catalog.ID = defaultCatalogID
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// RequireAssessor reports whether submissions must name an assessor. Defaults to true.
func (c Config) RequireAssessor() bool {
	if c.Submission.RequireAssessor == nil {
		return true
	}
	return *c.Submission.RequireAssessor
}

// Validate rejects configurations the server cannot start with.
func (c Config) Validate() error {
	switch c.Storage.Driver {
	case DriverSQLite, DriverMemory:
	case DriverPostgres:
		if c.Postgres.URL == "" {
			return fmt.Errorf("storage driver %q requires postgres.url", c.Storage.Driver)
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	for name, raw := range map[string]string{
		"redis.ttl":   c.Redis.TTL,
		"catalog.ttl": c.Catalog.TTL,
		"attempt.ttl": c.Attempt.TTL,
	} {
		if raw == "" {
			continue
		}
		if _, err := time.ParseDuration(raw); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
