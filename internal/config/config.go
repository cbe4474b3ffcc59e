// Package config loads the YAML file that supplies service-level defaults:
// HTTP bind address, CORS allow-list, optional MQTT broker settings, and
// default packing settings applied when a request omits them.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/stacktics/underbed/pack"
)

// MQTT holds optional broker connection settings. Broker empty means MQTT
// ingestion is disabled even if --mqtt is passed on the command line.
type MQTT struct {
	Broker       string `yaml:"broker" json:"broker"`
	ClientID     string `yaml:"clientId,omitempty" json:"clientId,omitempty"`
	Username     string `yaml:"username,omitempty" json:"username,omitempty"`
	Password     string `yaml:"password,omitempty" json:"password,omitempty"`
	RequestTopic string `yaml:"requestTopic" json:"requestTopic"`
	ResultPrefix string `yaml:"resultPrefix" json:"resultPrefix"`
}

// DefaultSettings mirrors pack.Settings but as YAML-friendly primitives, so
// a request that omits a field can fall back to the configured default.
type DefaultSettings struct {
	Strategy                string  `yaml:"strategy" json:"strategy"`
	AccessibilityPreference float64 `yaml:"accessibilityPreference" json:"accessibilityPreference"`
	Padding                 float64 `yaml:"padding" json:"padding"`
	ExtraMargin             float64 `yaml:"extraMargin" json:"extraMargin"`
}

// Config is the full configuration file (SPEC_FULL.md §2.3).
type Config struct {
	HTTPAddr        string          `yaml:"httpAddr" json:"httpAddr"`
	CORSOrigins     []string        `yaml:"corsOrigins" json:"corsOrigins"`
	MQTT            MQTT            `yaml:"mqtt" json:"mqtt"`
	DefaultSettings DefaultSettings `yaml:"defaultSettings" json:"defaultSettings"`
}

// Default returns the configuration used when no config file is supplied.
func Default() Config {
	return Config{
		HTTPAddr:    ":8080",
		CORSOrigins: []string{"*"},
		MQTT: MQTT{
			RequestTopic: "stacktics/pack/request",
			ResultPrefix: "stacktics/pack/result",
		},
		DefaultSettings: DefaultSettings{
			Strategy:                string(pack.MaximizeVolume),
			AccessibilityPreference: 0.5,
			Padding:                 0,
			ExtraMargin:             0,
		},
	}
}

// Load reads and parses the YAML config file at path, filling unset fields
// from Default. A missing file is not an error: the CLI's --config default
// ("config.yaml") is expected not to exist in most deployments.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config YAML: %w", err)
	}

	if cfg.HTTPAddr == "" {
		return Config{}, fmt.Errorf("httpAddr must not be empty")
	}
	if cfg.DefaultSettings.Strategy != string(pack.MaximizeVolume) && cfg.DefaultSettings.Strategy != string(pack.MinimizeHoles) {
		return Config{}, fmt.Errorf("defaultSettings.strategy must be %q or %q, got %q",
			pack.MaximizeVolume, pack.MinimizeHoles, cfg.DefaultSettings.Strategy)
	}

	return cfg, nil
}

// PackSettings converts the configured defaults to a pack.Settings value.
func (c Config) PackSettings() pack.Settings {
	return pack.Settings{
		Strategy:                pack.Strategy(c.DefaultSettings.Strategy),
		AccessibilityPreference: c.DefaultSettings.AccessibilityPreference,
		Padding:                 c.DefaultSettings.Padding,
		ExtraMargin:             c.DefaultSettings.ExtraMargin,
	}
}
