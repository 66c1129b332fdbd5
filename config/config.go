// Package config handles run configuration loading.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure.
type Config struct {
	InputFile string `yaml:"input_file"`
	VocabFile string `yaml:"vocab_file"`
	Model     string `yaml:"model"`
	Output    string `yaml:"output"`

	Topics int     `yaml:"topics"`
	Alpha  float64 `yaml:"alpha"`
	// Eta smooths the topic-word table re-estimated by the M-step.
	Eta float64 `yaml:"eta"`

	Inference InferenceConfig `yaml:"inference"`
	EM        EMConfig        `yaml:"em"`

	Workers  int   `yaml:"workers"`
	Seed     int64 `yaml:"seed"`
	Progress bool  `yaml:"progress"`
	TopTerms int   `yaml:"top_terms"`
}

// InferenceConfig holds the per-document coordinate ascent settings.
type InferenceConfig struct {
	Tolerance     float64 `yaml:"tolerance"`
	MaxIterations int     `yaml:"max_iterations"`
}

// EMConfig holds the corpus level loop settings.
type EMConfig struct {
	Iterations int     `yaml:"iterations"`
	Tolerance  float64 `yaml:"tolerance"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Model:  "lda",
		Topics: 20,
		Alpha:  0.1,
		Eta:    0.01,
		Inference: InferenceConfig{
			Tolerance:     1e-6,
			MaxIterations: 100,
		},
		EM: EMConfig{
			Iterations: 10,
			Tolerance:  1e-5,
		},
		Workers:  4,
		Seed:     1,
		Progress: true,
		TopTerms: 10,
	}
}

// Load loads configuration from a file on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Validate checks the values that the model cannot work without.
func (c *Config) Validate() error {
	switch {
	case c.Topics < 1:
		return fmt.Errorf("topics must be at least 1, got %d", c.Topics)
	case !(c.Alpha > 0):
		return fmt.Errorf("alpha must be positive, got %g", c.Alpha)
	case !(c.Eta > 0):
		return fmt.Errorf("eta must be positive, got %g", c.Eta)
	case !(c.Inference.Tolerance > 0):
		return fmt.Errorf("inference tolerance must be positive, got %g", c.Inference.Tolerance)
	case c.Inference.MaxIterations < 1:
		return fmt.Errorf("inference max_iterations must be at least 1, got %d", c.Inference.MaxIterations)
	case c.EM.Iterations < 1:
		return fmt.Errorf("em iterations must be at least 1, got %d", c.EM.Iterations)
	case c.EM.Tolerance < 0:
		return fmt.Errorf("em tolerance must not be negative, got %g", c.EM.Tolerance)
	case c.Workers < 1:
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	case c.TopTerms < 0:
		return fmt.Errorf("top_terms must not be negative, got %d", c.TopTerms)
	}
	return nil
}
