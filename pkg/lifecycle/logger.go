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

package lifecycle

import (
	"fmt"

	"github.com/carverauto/topic-console/pkg/logger"
)

// InitializeLogger initializes the global logger with the provided configuration
// and returns a Logger bound to it. If config is nil, it uses the default configuration.
func InitializeLogger(config *logger.Config) (logger.Logger, error) {
	if config == nil {
		config = logger.DefaultConfig()
	}

	if err := logger.Init(config); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return logger.New(logger.GetLogger()), nil
}

// CreateComponentLogger initializes the global logger and returns one that
// tags every entry with component.
func CreateComponentLogger(component string, config *logger.Config) (logger.Logger, error) {
	if _, err := InitializeLogger(config); err != nil {
		return nil, err
	}

	return logger.New(logger.WithComponent(component)), nil
}
