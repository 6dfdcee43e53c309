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

package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	config := &Config{
		Level:  "debug",
		Debug:  true,
		Output: "stderr",
	}

	require.NoError(t, Init(config))
	assert.Equal(t, zerolog.DebugLevel, GetLogger().GetLevel())
}

func TestInitInvalidLevel(t *testing.T) {
	err := Init(&Config{Level: "loud", Output: "stderr"})
	require.Error(t, err)
}

func TestInitWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "console.log")

	require.NoError(t, Init(&Config{Level: "info", Output: path}))

	Info().Str("device", "a").Msg("hello")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"device":"a"`)

	require.NoError(t, Init(&Config{Output: "stderr"}))
}

func TestSetDebug(t *testing.T) {
	SetDebug(true)
	assert.Equal(t, zerolog.DebugLevel, GetLogger().GetLevel())

	SetDebug(false)
	assert.Equal(t, zerolog.InfoLevel, GetLogger().GetLevel())
}

func TestWithComponent(t *testing.T) {
	componentLogger := WithComponent("test-component")

	assert.NotEqual(t, zerolog.Disabled, componentLogger.GetLevel())
}

func TestDefaultConfig(t *testing.T) {
	t.Setenv("LOG_OUTPUT", "")
	t.Setenv("LOG_LEVEL", "")

	config := DefaultConfig()

	assert.Equal(t, "info", config.Level)
	assert.Equal(t, DefaultLogFile, config.Output)
}

func TestDefaultConfigFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("DEBUG", "yes")

	config := DefaultConfig()

	assert.Equal(t, "warn", config.Level)
	assert.True(t, config.Debug)
}

func TestNewTestLoggerDiscards(t *testing.T) {
	l := NewTestLogger()
	l.Info().Msg("ignored")

	l.SetDebug(true)
	assert.NotNil(t, l.WithComponent("x"))
}
