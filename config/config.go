package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Port          string `yaml:"port" env:"PORT"`
	DatabaseURL   string `yaml:"database_url" env:"DATABASE_URL"`
	RedisURL      string `yaml:"redis_url" env:"REDIS_URL"`
	SecretKey     string `yaml:"secret_key" env:"SECRET_KEY"`
	PublicURL     string `yaml:"public_url" env:"PUBLIC_URL"`
	TemplatesDir  string `yaml:"templates_dir" env:"TEMPLATES_DIR"`
	MigrationsDir string `yaml:"migrations_dir" env:"MIGRATIONS_DIR"`

	Results Results `yaml:"results" envPrefix:"RESULTS_"`
	SMTP    SMTP    `yaml:"smtp"`
}

type Results struct {
	PollInterval time.Duration `yaml:"poll_interval" env:"POLL_INTERVAL"`
	CacheTTL     time.Duration `yaml:"cache_ttl" env:"CACHE_TTL"`
	ExportDir    string        `yaml:"export_dir" env:"EXPORT_DIR"`
}

type SMTP struct {
	Addr       string `yaml:"addr" env:"SMTP_ADDR"`
	Port       string `yaml:"port" env:"SMTP_PORT"`
	From       string `yaml:"from" env:"FROM_EMAIL"`
	Password   string `yaml:"password" env:"FROM_EMAIL_PASSWORD"`
	AdminEmail string `yaml:"admin_email" env:"ADMIN_EMAIL"`
}

func Default() Config {
	return Config{
		Port:      "8080",
		PublicURL: "http://localhost:8080",
		Results: Results{
			PollInterval: 5 * time.Second,
			CacheTTL:     5 * time.Second,
			ExportDir:    ".",
		},
		SMTP: SMTP{Port: "587"},
	}
}

// Load layers the configuration: defaults, then the YAML file at path (when
// path is not empty), then a .env file, then the process environment.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := godotenv.Load(); err != nil {
		log.Printf("error loading .env file: %s. relying on enviroment variables", err)
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("error opening config file: %w", err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return fmt.Errorf("error decoding config file %s: %w", path, err)
	}
	return nil
}

// Validate checks the settings the API server cannot start without.
func (c Config) Validate() error {
	var errs []error
	if c.DatabaseURL == "" {
		errs = append(errs, errors.New("DATABASE_URL is not set"))
	}
	if c.RedisURL == "" {
		errs = append(errs, errors.New("REDIS_URL is not set"))
	}
	if c.SecretKey == "" {
		errs = append(errs, errors.New("SECRET_KEY is not set"))
	}
	if c.Results.PollInterval <= 0 {
		errs = append(errs, errors.New("results poll interval must be positive"))
	}
	return errors.Join(errs...)
}
