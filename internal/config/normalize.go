package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	c.applyEnv()
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeSimilarity()
	c.normalizeLogging()
	return nil
}

// applyEnv lets CARDMETA_* variables override file values.
func (c *Config) applyEnv() {
	if value, ok := os.LookupEnv("CARDMETA_INPUT_DIR"); ok && strings.TrimSpace(value) != "" {
		c.Paths.InputDir = value
	}
	if value, ok := os.LookupEnv("CARDMETA_OUTPUT_FILE"); ok && strings.TrimSpace(value) != "" {
		c.Paths.OutputFile = value
	}
	if value, ok := os.LookupEnv("CARDMETA_LOG_LEVEL"); ok && strings.TrimSpace(value) != "" {
		c.Logging.Level = value
	}
}

func (c *Config) normalizePaths() error {
	var err error
	c.Paths.InputDir = strings.TrimSpace(c.Paths.InputDir)
	if c.Paths.InputDir == "" {
		c.Paths.InputDir = defaultInputDir
	}
	if c.Paths.InputDir, err = expandPath(c.Paths.InputDir); err != nil {
		return fmt.Errorf("paths.input_dir: %w", err)
	}
	c.Paths.OutputFile = strings.TrimSpace(c.Paths.OutputFile)
	if c.Paths.OutputFile == "" {
		c.Paths.OutputFile = defaultOutputFile
	}
	if c.Paths.OutputFile, err = expandPath(c.Paths.OutputFile); err != nil {
		return fmt.Errorf("paths.output_file: %w", err)
	}
	if c.Paths.LockFile, err = expandPath(strings.TrimSpace(c.Paths.LockFile)); err != nil {
		return fmt.Errorf("paths.lock_file: %w", err)
	}
	return nil
}

func (c *Config) normalizeSimilarity() {
	c.Similarity.Normalize = strings.ToLower(strings.TrimSpace(c.Similarity.Normalize))
	if c.Similarity.Normalize == "" {
		c.Similarity.Normalize = defaultNormalize
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if file := strings.TrimSpace(c.Logging.File); file != "" {
		if expanded, err := expandPath(file); err == nil {
			c.Logging.File = expanded
		}
	}
}
