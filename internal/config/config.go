package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/circuitlab/internal/circuit"
)

const (
	DefaultDataDir = ".circuitlab"
	DefaultPolicy  = "full"
	DefaultTheme   = "breadboard"
	DefaultListen  = ":8080"
)

type Config struct {
	DataDir         string `yaml:"data_dir"`
	Policy          string `yaml:"policy"`
	RecordTimestamp bool   `yaml:"record_timestamp"`
	Theme           string `yaml:"theme"`
	Catalog         string `yaml:"catalog"`
	Listen          string `yaml:"listen"`
}

func DefaultConfig() *Config {
	return &Config{
		DataDir:         DefaultDataDir,
		Policy:          DefaultPolicy,
		RecordTimestamp: true,
		Theme:           DefaultTheme,
		Listen:          DefaultListen,
	}
}

// Load reads a YAML config. Fields the file omits keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg as YAML to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// GetPolicy resolves the configured policy preset.
func (c *Config) GetPolicy() (circuit.Policy, error) {
	p, ok := GetPolicy(c.Policy)
	if !ok {
		return circuit.Policy{}, fmt.Errorf("unknown policy: %s (available: %v)", c.Policy, ListPolicies())
	}
	return p, nil
}

// CircuitOptions turns the config into options for circuit.New.
func (c *Config) CircuitOptions() ([]circuit.Option, error) {
	p, err := c.GetPolicy()
	if err != nil {
		return nil, err
	}
	return []circuit.Option{
		circuit.WithPolicy(p),
		circuit.WithTimestamp(c.RecordTimestamp),
	}, nil
}
