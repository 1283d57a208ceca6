package config

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateSimilarity(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.InputDir) == "" {
		return errors.New("paths.input_dir must be set")
	}
	if strings.TrimSpace(c.Paths.OutputFile) == "" {
		return errors.New("paths.output_file must be set")
	}
	return nil
}

func (c *Config) validateSimilarity() error {
	threshold := c.Similarity.Threshold
	if math.IsNaN(threshold) || threshold < 0 || threshold > 1 {
		return fmt.Errorf("similarity.threshold must be between 0 and 1, got %v", threshold)
	}
	if c.Similarity.TopN <= 0 {
		return fmt.Errorf("similarity.top_n must be positive, got %d", c.Similarity.TopN)
	}
	switch c.Similarity.Normalize {
	case NormalizeNone, NormalizeNFKC, NormalizeNFKCCaseFold:
	default:
		return fmt.Errorf("similarity.normalize: unsupported value %q", c.Similarity.Normalize)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
