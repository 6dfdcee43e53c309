/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package config loads configuration files with an environment overlay.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/carverauto/topic-console/pkg/logger"
)

// DefaultEnvPrefix prefixes every environment override, e.g.
// TOPIC_CONSOLE_SERVER_URL sets server.url.
const DefaultEnvPrefix = "TOPIC_CONSOLE_"

var errInvalidConfigPtr = errors.New("config must be a non-nil pointer")

// ConfigLoader fills dst from a source.
type ConfigLoader interface {
	Load(ctx context.Context, path string, dst interface{}) error
}

// Validator is implemented by configs that can check themselves.
type Validator interface {
	Validate() error
}

// Defaulter is implemented by configs that fill their own zero values.
type Defaulter interface {
	ApplyDefaults()
}

// Config holds the configuration loading dependencies.
type Config struct {
	fileLoader ConfigLoader
	envLoader  ConfigLoader
	logger     logger.Logger
}

// NewConfig initializes a new Config with a file loader and an environment
// overlay. CONFIG_ENV_PREFIX overrides DefaultEnvPrefix.
func NewConfig(log logger.Logger) *Config {
	if log == nil {
		log = logger.New(logger.GetLogger())
	}

	prefix := os.Getenv("CONFIG_ENV_PREFIX")
	if prefix == "" {
		prefix = DefaultEnvPrefix
	}

	return &Config{
		fileLoader: &FileConfigLoader{},
		envLoader:  NewEnvConfigLoader(log, prefix),
		logger:     log,
	}
}

// ValidateConfig validates a configuration if it implements Validator.
func ValidateConfig(cfg interface{}) error {
	v, ok := cfg.(Validator)
	if !ok {
		return nil
	}

	return v.Validate()
}

// LoadAndValidate reads path (skipped when empty), overlays the environment,
// applies defaults and validates the result.
func (c *Config) LoadAndValidate(ctx context.Context, path string, cfg interface{}) error {
	if cfg == nil {
		return errInvalidConfigPtr
	}

	if path != "" {
		if err := c.fileLoader.Load(ctx, path, cfg); err != nil {
			return err
		}

		c.logger.Debug().Str("path", path).Msg("Loaded configuration file")
	}

	if err := c.envLoader.Load(ctx, path, cfg); err != nil {
		return fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if d, ok := cfg.(Defaulter); ok {
		d.ApplyDefaults()
	}

	return ValidateConfig(cfg)
}
