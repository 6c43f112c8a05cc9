package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// appName scopes the configuration store inside the user config directory.
const appName = "tailscale_notifier"

const configFile = "config.yaml"

// Config holds the tailnet identity and API credentials for one run.
// All four fields must be filled in for the program to do anything useful;
// empty values are not rejected here and surface as HTTP errors downstream.
type Config struct {
	TailnetName     string `mapstructure:"tailnet_name"`
	TailscaleToken  string `mapstructure:"tailscale_token"`
	PushoverToken   string `mapstructure:"pushover_token"`
	PushoverUserKey string `mapstructure:"pushover_user_key"`
}

// Path returns the resolved location of the configuration store.
func Path() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(base, appName, configFile), nil
}

// Load reads the configuration store, creating an all-empty default file on
// first run so a fresh install starts cleanly and leaves a template to edit.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return loadFrom(path)
}

func loadFrom(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load config: %w", err)
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create config dir: %w", err)
		}
		if err := v.WriteConfigAs(path); err != nil {
			return nil, fmt.Errorf("write default config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("tailnet_name", "")
	v.SetDefault("tailscale_token", "")
	v.SetDefault("pushover_token", "")
	v.SetDefault("pushover_user_key", "")
}
