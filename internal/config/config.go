package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	API      APIConfig     `yaml:"api"`
	Storage  StorageConfig `yaml:"storage"`
	Sync     SyncConfig    `yaml:"sync"`
	LogLevel string        `yaml:"log_level"`
}

type APIConfig struct {
	BaseURL     string        `yaml:"base_url"`
	ConsumerKey string        `yaml:"consumer_key"`
	RedirectURI string        `yaml:"redirect_uri"`
	Timeout     time.Duration `yaml:"timeout"`
}

type StorageConfig struct {
	Path string `yaml:"path"`
}

type SyncConfig struct {
	Interval time.Duration `yaml:"interval"`
}

// Load reads the YAML config at path, expanding ${VAR} references from the
// environment (a .env file is honored when present). An empty path yields a
// config built entirely from defaults.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}

		expanded := os.ExpandEnv(string(data))

		if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.setDefaults()

	return &cfg, nil
}

func (c *Config) setDefaults() {
	if c.API.BaseURL == "" {
		c.API.BaseURL = "https://getpocket.com"
	}
	if c.API.ConsumerKey == "" {
		c.API.ConsumerKey = os.Getenv("POCKET_CONSUMER_KEY")
	}
	if c.API.RedirectURI == "" {
		c.API.RedirectURI = "https://getpocket.com/connected_accounts"
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = 30 * time.Second
	}
	if c.Storage.Path == "" {
		c.Storage.Path = filepath.Join(DataDir(), "pockd.db")
	}
	if c.Sync.Interval == 0 {
		c.Sync.Interval = 15 * time.Minute
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// DataDir resolves the directory holding the local mirror and session file.
// POCKD_DIR wins over the XDG data home.
func DataDir() string {
	if explicit := os.Getenv("POCKD_DIR"); explicit != "" {
		return explicit
	}

	xdg.Reload()

	dataHome := xdg.DataHome
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(os.TempDir(), "pockd")
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	return filepath.Join(dataHome, "pockd")
}
