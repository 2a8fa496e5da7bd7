// Package config reads the alumni-dashboard configuration file.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cncf/automation/alumni-dashboard/pkg/alumni"
	"github.com/cncf/automation/alumni-dashboard/pkg/distribution"
)

// Config controls where data comes from and how the directory is generated.
type Config struct {
	// DataFile and DataURL select a dataset other than the built-in one.
	// DataFile wins when both are set.
	DataFile string `yaml:"data_file"`
	DataURL  string `yaml:"data_url"`

	// Records is the directory size.
	Records int `yaml:"records"`
	// Seed fixes the generator. Zero seeds from the clock.
	Seed int64 `yaml:"seed"`

	Names Names `yaml:"names"`
}

// Names overrides the generator name pools.
type Names struct {
	First []string `yaml:"first"`
	Last  []string `yaml:"last"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{Records: alumni.DefaultCount}
}

// Load reads path. An empty path yields Default.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(string(data))
}

// Parse decodes a configuration document over the defaults. Unknown keys
// are rejected.
func Parse(content string) (Config, error) {
	cfg := Default()
	decoder := yaml.NewDecoder(strings.NewReader(content))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to parse config YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every invalid setting.
func (c Config) Validate() error {
	var errs []error
	if c.Records < 0 {
		errs = append(errs, fmt.Errorf("records must not be negative, got %d", c.Records))
	}
	for _, n := range c.Names.First {
		if strings.TrimSpace(n) == "" {
			errs = append(errs, errors.New("names.first contains an empty name"))
			break
		}
	}
	for _, n := range c.Names.Last {
		if strings.TrimSpace(n) == "" {
			errs = append(errs, errors.New("names.last contains an empty name"))
			break
		}
	}
	return errors.Join(errs...)
}

// Source returns the dataset location.
func (c Config) Source() distribution.Source {
	return distribution.Source{FilePath: c.DataFile, URL: c.DataURL}
}

// GeneratorOptions translates the generator settings.
func (c Config) GeneratorOptions() []alumni.Option {
	var opts []alumni.Option
	if c.Seed != 0 {
		opts = append(opts, alumni.WithSeed(c.Seed))
	}
	if len(c.Names.First) > 0 || len(c.Names.Last) > 0 {
		opts = append(opts, alumni.WithNames(c.Names.First, c.Names.Last))
	}
	return opts
}
