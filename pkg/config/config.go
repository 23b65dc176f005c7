// Package config describes the YAML configuration for the bpe tools.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the configuration for a full train-and-save run.
type Config struct {
	Corpus CorpusConfig `yaml:"corpus"`
	Learn  LearnConfig  `yaml:"learn"`
	Output OutputConfig `yaml:"output"`
}

// CorpusConfig says where training text comes from and how to clean it.
type CorpusConfig struct {
	Path      string `yaml:"path"`
	Normalize string `yaml:"normalize"` // "", "none", "nfc" or "nfd"
}

// LearnConfig sets the merge-learning parameters.
type LearnConfig struct {
	Merges       int `yaml:"merges"`
	Replacements int `yaml:"replacements"`
	Cutoff       int `yaml:"cutoff"`
	LogEvery     int `yaml:"log_every"`
}

// OutputConfig says where results land. A ".gz" vocab path compresses
// the snapshot.
type OutputConfig struct {
	VocabPath string `yaml:"vocab_path"`
}

// DefaultConfig returns a working configuration.
func DefaultConfig() *Config {
	return &Config{
		Corpus: CorpusConfig{
			Path:      "data/corpus.txt",
			Normalize: "nfc",
		},
		Learn: LearnConfig{
			Merges:       100000,
			Replacements: 1,
			Cutoff:       1,
			LogEvery:     500,
		},
		Output: OutputConfig{
			VocabPath: "vocab.bpe",
		},
	}
}

// Load reads a YAML config file on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate rejects parameter combinations learning cannot run with.
func (c *Config) Validate() error {
	if c.Learn.Merges < 0 {
		return fmt.Errorf("config: merges must be >= 0, got %d", c.Learn.Merges)
	}
	if c.Learn.Replacements < 1 {
		return fmt.Errorf("config: replacements must be >= 1, got %d", c.Learn.Replacements)
	}
	if c.Learn.Cutoff < 0 {
		return fmt.Errorf("config: cutoff must be >= 0, got %d", c.Learn.Cutoff)
	}
	if c.Corpus.Path == "" {
		return fmt.Errorf("config: corpus path is empty")
	}
	if c.Output.VocabPath == "" {
		return fmt.Errorf("config: vocab output path is empty")
	}
	return nil
}
