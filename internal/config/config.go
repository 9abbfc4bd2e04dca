package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultFacilityLocation is the facility address printed on statements
// when no override is configured.
const DefaultFacilityLocation = "9741 Preston Road Frisco, TX 75033-2793, (972) 335-2004"

// Config represents the top-level billgen.yaml configuration.
type Config struct {
	LedgerPath       string `yaml:"ledger_path"`
	ListenAddr       string `yaml:"listen_addr"`
	FacilityLocation string `yaml:"facility_location"`
	LogFormat        string `yaml:"log_format"` // "text" or "json"
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		LedgerPath:       "Financials.txt",
		ListenAddr:       ":5000",
		FacilityLocation: DefaultFacilityLocation,
		LogFormat:        "text",
	}
}

// Load reads a billgen.yaml file and merges it over the defaults, so a
// partial file only overrides the keys it names.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Validate checks required fields.
func (c *Config) Validate() error {
	if c.LedgerPath == "" {
		return fmt.Errorf("ledger_path is required")
	}
	if c.ListenAddr == "" {
		return fmt.Errorf("listen_addr is required")
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("log_format must be %q or %q, got %q", "text", "json", c.LogFormat)
	}
	return nil
}
