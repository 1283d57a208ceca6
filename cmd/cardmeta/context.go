package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"cardmeta/internal/config"
	"cardmeta/internal/dirlock"
	"cardmeta/internal/logging"
)

type commandContext struct {
	configFlag    *string
	logLevelFlag  *string
	logFormatFlag *string

	configOnce sync.Once
	config     *config.Config
	configPath string
	configSeen bool
	configErr  error
}

func newCommandContext(configFlag, logLevelFlag, logFormatFlag *string) *commandContext {
	return &commandContext{
		configFlag:    configFlag,
		logLevelFlag:  logLevelFlag,
		logFormatFlag: logFormatFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		if err := loadDotEnv(); err != nil {
			c.configErr = err
			return
		}
		cfg, path, exists, err := config.Load(flagValue(c.configFlag))
		if err != nil {
			c.configErr = err
			return
		}
		if level := flagValue(c.logLevelFlag); level != "" {
			cfg.Logging.Level = strings.ToLower(level)
		}
		if format := flagValue(c.logFormatFlag); format != "" {
			cfg.Logging.Format = strings.ToLower(format)
		}
		if err := cfg.Validate(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = path
		c.configSeen = exists
	})
	return c.config, c.configErr
}

// jobConfig returns a copy of the loaded config that a command may adjust
// with its own flags.
func (c *commandContext) jobConfig() (config.Config, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return config.Config{}, err
	}
	return *cfg, nil
}

// newLogger builds the run logger. Every record carries the component and a
// fresh run_id.
func (c *commandContext) newLogger(cmd *cobra.Command, cfg *config.Config, component string) (*slog.Logger, func() error, error) {
	logger, closeFn, err := logging.NewFromConfig(cfg, cmd.ErrOrStderr())
	if err != nil {
		return nil, nil, err
	}
	logger = logging.NewComponentLogger(logger, component).With(logging.String(logging.FieldRunID, uuid.NewString()))
	return logger, closeFn, nil
}

// withLock runs fn while holding the directory lock for cfg.
func withLock(cfg *config.Config, logger *slog.Logger, fn func() error) error {
	lock, err := dirlock.Acquire(cfg.LockPath())
	if err != nil {
		return err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			logger.Warn("failed to release directory lock", logging.Error(err))
		}
	}()
	logger.Debug("directory lock acquired", logging.String("lock", lock.Path()))
	return fn()
}

// loadDotEnv reads ./.env when present without overriding variables that
// are already set.
func loadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

func flagValue(flag *string) string {
	if flag == nil {
		return ""
	}
	return strings.TrimSpace(*flag)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

// resolveDir applies a --dir override to cfg.
func resolveDir(cfg *config.Config, dir string) error {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil
	}
	expanded, err := config.ExpandPath(dir)
	if err != nil {
		return fmt.Errorf("resolve --dir: %w", err)
	}
	cfg.Paths.InputDir = expanded
	return nil
}
