package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	JWT struct {
		Secret string `yaml:"secret"`
		TTL    int    `yaml:"ttl"` // minutes
	} `yaml:"jwt"`

	Geocode struct {
		BaseURL   string `yaml:"base_url"`   // Nominatim-compatible reverse endpoint
		TimeoutMS int    `yaml:"timeout_ms"` // per-lookup budget
	} `yaml:"geocode"`

	// Reminder drives the stale resource-request sweep. Both knobs are
	// configuration, not literals scattered through the worker.
	Reminder struct {
		SweepIntervalSec int `yaml:"sweep_interval_sec"`
		StalenessMin     int `yaml:"staleness_min"`
	} `yaml:"reminder"`
}

// SweepInterval returns the reminder sweep period, defaulting to 60s.
func (c *Config) SweepInterval() time.Duration {
	if c.Reminder.SweepIntervalSec <= 0 {
		return 60 * time.Second
	}
	return time.Duration(c.Reminder.SweepIntervalSec) * time.Second
}

// StalenessThreshold returns how old a pending request must be before it is
// re-notified, defaulting to 10 minutes.
func (c *Config) StalenessThreshold() time.Duration {
	if c.Reminder.StalenessMin <= 0 {
		return 10 * time.Minute
	}
	return time.Duration(c.Reminder.StalenessMin) * time.Minute
}

// GeocodeTimeout returns the per-lookup timeout, defaulting to 5s.
func (c *Config) GeocodeTimeout() time.Duration {
	if c.Geocode.TimeoutMS <= 0 {
		return 5 * time.Second
	}
	return time.Duration(c.Geocode.TimeoutMS) * time.Millisecond
}

var AppConfig *Config

// LoadConfig populates AppConfig from config.yaml, or entirely from
// environment variables when DATABASE_URL is set (test and container mode).
func LoadConfig() {
	var cfg Config

	dbURL := os.Getenv("DATABASE_URL")
	serverEnv := os.Getenv("SERVER_ENV")
	portStr := os.Getenv("SERVER_PORT")
	jwtSecret := os.Getenv("JWT_SECRET")

	if dbURL == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		AppConfig = &cfg
		return
	}

	cfg.Database.DSN = dbURL
	cfg.Server.Env = serverEnv
	cfg.Server.Port, _ = strconv.Atoi(portStr)
	cfg.JWT.Secret = jwtSecret
	cfg.JWT.TTL = 60

	cfg.Geocode.BaseURL = "https://nominatim.openstreetmap.org/reverse"
	cfg.Geocode.TimeoutMS = 5000
	cfg.Reminder.SweepIntervalSec = 60
	cfg.Reminder.StalenessMin = 10

	AppConfig = &cfg
}

// GetConfig returns the loaded config, loading it on first use.
func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
