package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/meltforce/liftscore/internal/models"
	"github.com/meltforce/liftscore/internal/score"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Tailscale TailscaleConfig `yaml:"tailscale"`
	Profile   models.Profile  `yaml:"profile"`
	Scoring   ScoringConfig   `yaml:"scoring"`
	Data      DataConfig      `yaml:"data"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

type AuthConfig struct {
	APIKey string `yaml:"api_key"`
}

type TailscaleConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Hostname string `yaml:"hostname"`
	StateDir string `yaml:"state_dir"`
}

// ScoringConfig selects the e1RM formula and the smoothing window.
type ScoringConfig struct {
	Formula    string `yaml:"formula"`
	WindowDays int    `yaml:"window_days"`
}

// DataConfig points at the external standards and muscle map sources.
type DataConfig struct {
	StandardsCSV  string `yaml:"standards_csv"`
	MuscleMapJSON string `yaml:"muscle_map_json"`
}

// DSN returns a PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	sslmode := d.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, sslmode)
}

// Load reads config from a YAML file, then applies environment variable
// overrides. Env vars use the prefix LIFTSCORE_ and underscore-separated
// paths:
//
//	LIFTSCORE_SERVER_HOST, LIFTSCORE_SERVER_PORT,
//	LIFTSCORE_DB_HOST, LIFTSCORE_DB_PORT, LIFTSCORE_DB_NAME,
//	LIFTSCORE_DB_USER, LIFTSCORE_DB_PASSWORD, LIFTSCORE_DB_SSLMODE,
//	LIFTSCORE_AUTH_API_KEY
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)
	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LIFTSCORE_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("LIFTSCORE_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("LIFTSCORE_DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("LIFTSCORE_DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Database.Port = port
		}
	}
	if v := os.Getenv("LIFTSCORE_DB_NAME"); v != "" {
		cfg.Database.Name = v
	}
	if v := os.Getenv("LIFTSCORE_DB_USER"); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv("LIFTSCORE_DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("LIFTSCORE_DB_SSLMODE"); v != "" {
		cfg.Database.SSLMode = v
	}
	if v := os.Getenv("LIFTSCORE_AUTH_API_KEY"); v != "" {
		cfg.Auth.APIKey = v
	}
}

func (c *Config) applyDefaults() {
	if c.Scoring.Formula == "" {
		c.Scoring.Formula = score.DefaultFormula
	}
	if c.Scoring.WindowDays == 0 {
		c.Scoring.WindowDays = score.DefaultWindowDays
	}
}

func (c *Config) validate() error {
	if c.Server.Port == 0 {
		return fmt.Errorf("server.port is required")
	}
	if c.Database.Host == "" {
		return fmt.Errorf("database.host is required")
	}
	if c.Database.Port == 0 {
		return fmt.Errorf("database.port is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("database.name is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database.user is required")
	}
	if c.Auth.APIKey == "" {
		return fmt.Errorf("auth.api_key is required")
	}
	if err := c.Profile.Validate(); err != nil {
		return fmt.Errorf("profile: %w", err)
	}
	if _, err := score.NewEstimator(c.Scoring.Formula); err != nil {
		return fmt.Errorf("scoring.formula: %w", err)
	}
	if c.Scoring.WindowDays < 1 {
		return fmt.Errorf("scoring.window_days must be at least 1")
	}
	if c.Data.StandardsCSV == "" {
		return fmt.Errorf("data.standards_csv is required")
	}
	if c.Data.MuscleMapJSON == "" {
		return fmt.Errorf("data.muscle_map_json is required")
	}
	return nil
}
