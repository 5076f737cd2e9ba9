package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds everything main needs to wire the service.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	Auth     AuthConfig     `yaml:"auth"`
	Breaker  BreakerConfig  `yaml:"breaker"`
}

type ServerConfig struct {
	Port          string `yaml:"port"`
	AllowedOrigin string `yaml:"allowed_origin"`
}

// DatabaseConfig describes the MongoDB deployment and the three collections.
type DatabaseConfig struct {
	ConnectionString     string `yaml:"connection_string"`
	Name                 string `yaml:"name"`
	MembersCollection    string `yaml:"members_collection"`
	CommitteesCollection string `yaml:"committees_collection"`
	RequestsCollection   string `yaml:"requests_collection"`
	OpTimeoutSeconds     int    `yaml:"op_timeout_seconds"`
}

type LogConfig struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

// AuthConfig enables bearer token verification when JWTSecret is set.
type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret"`
}

type BreakerConfig struct {
	MaxFailures int `yaml:"max_failures"`
	OpenSeconds int `yaml:"open_seconds"`
}

// Default returns the configuration used when no file or env value is given.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:          "5000",
			AllowedOrigin: "*",
		},
		Database: DatabaseConfig{
			Name:                 "user_data",
			MembersCollection:    "membership_info",
			CommitteesCollection: "committee_budget",
			RequestsCollection:   "requests",
			OpTimeoutSeconds:     5,
		},
		Log: LogConfig{
			Level: "info",
		},
		Breaker: BreakerConfig{
			MaxFailures: 3,
			OpenSeconds: 5,
		},
	}
}

// Load reads the optional YAML file at path, applies environment overrides
// and validates the result. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) overrideWithEnv() {
	if val := os.Getenv("CONNECTION_STRING"); val != "" {
		c.Database.ConnectionString = val
	}
	if val := os.Getenv("MONGO_DB_NAME"); val != "" {
		c.Database.Name = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		c.Server.Port = val
	}
	if val := os.Getenv("CORS_ALLOWED_ORIGIN"); val != "" {
		c.Server.AllowedOrigin = val
	}
	if val := os.Getenv("LOG_FILE"); val != "" {
		c.Log.File = val
	}
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("JWT_SECRET"); val != "" {
		c.Auth.JWTSecret = val
	}
}

// Validate checks that the configuration can be used to start the service.
func (c *Config) Validate() error {
	if c.Database.ConnectionString == "" {
		return errors.New("CONNECTION_STRING is required")
	}
	if c.Database.Name == "" {
		return errors.New("database name is required")
	}
	if c.Database.MembersCollection == "" || c.Database.CommitteesCollection == "" || c.Database.RequestsCollection == "" {
		return errors.New("collection names must not be empty")
	}
	port, err := strconv.Atoi(c.Server.Port)
	if err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("invalid server port %q", c.Server.Port)
	}
	if c.Database.OpTimeoutSeconds < 0 {
		return errors.New("op_timeout_seconds must not be negative")
	}
	if c.Breaker.MaxFailures < 1 {
		return errors.New("breaker max_failures must be at least 1")
	}
	return nil
}

func (d DatabaseConfig) OpTimeout() time.Duration {
	return time.Duration(d.OpTimeoutSeconds) * time.Second
}

func (b BreakerConfig) OpenTimeout() time.Duration {
	return time.Duration(b.OpenSeconds) * time.Second
}

// Address is the listen address for net/http.
func (s ServerConfig) Address() string {
	return ":" + s.Port
}
