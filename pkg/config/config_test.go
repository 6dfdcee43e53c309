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

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/topic-console/pkg/logger"
	"github.com/carverauto/topic-console/pkg/models"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadAndValidateJSON(t *testing.T) {
	path := writeFile(t, "console.json", `{
		"server": {"url": "http://cfg.local:9000", "timeout": "3s"},
		"console": {"tick_interval": "100ms", "operator": "alice"},
		"dispatch": {"max_inflight_pushes": 2}
	}`)

	var cfg models.ConsoleConfig
	require.NoError(t, NewConfig(logger.NewTestLogger()).LoadAndValidate(context.Background(), path, &cfg))

	assert.Equal(t, "http://cfg.local:9000", cfg.Server.URL)
	assert.Equal(t, models.Duration(3*time.Second), cfg.Server.Timeout)
	assert.Equal(t, models.Duration(100*time.Millisecond), cfg.Console.TickInterval)
	assert.Equal(t, "alice", cfg.Console.Operator)
	assert.Equal(t, 2, cfg.Dispatch.MaxInflight)
	assert.Equal(t, models.DefaultPushTimeout, cfg.Dispatch.PushTimeout)
	require.NotNil(t, cfg.Logging)
}

func TestLoadAndValidateYAML(t *testing.T) {
	path := writeFile(t, "console.yaml", `
server:
  url: https://cfg.example.com
audit:
  enabled: true
  nats_url: nats://127.0.0.1:4222
  tls:
    ca_file: /etc/ca.pem
logging:
  level: debug
  output: stderr
`)

	var cfg models.ConsoleConfig
	require.NoError(t, NewConfig(logger.NewTestLogger()).LoadAndValidate(context.Background(), path, &cfg))

	assert.Equal(t, "https://cfg.example.com", cfg.Server.URL)
	assert.True(t, cfg.Audit.Enabled)
	assert.Equal(t, models.DefaultAuditStream, cfg.Audit.Stream)
	require.NotNil(t, cfg.Audit.TLS)
	assert.Equal(t, "/etc/ca.pem", cfg.Audit.TLS.CAFile)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := writeFile(t, "console.json", `{"server": {"url": "http://file.local"}}`)

	t.Setenv("TOPIC_CONSOLE_SERVER_URL", "http://env.local:8081")
	t.Setenv("TOPIC_CONSOLE_SERVER_TIMEOUT", "7s")
	t.Setenv("TOPIC_CONSOLE_DISPATCH_MAX_INFLIGHT_PUSHES", "9")
	t.Setenv("TOPIC_CONSOLE_AUDIT_ENABLED", "true")
	t.Setenv("TOPIC_CONSOLE_AUDIT_NATS_URL", "nats://bus:4222")

	var cfg models.ConsoleConfig
	require.NoError(t, NewConfig(logger.NewTestLogger()).LoadAndValidate(context.Background(), path, &cfg))

	assert.Equal(t, "http://env.local:8081", cfg.Server.URL)
	assert.Equal(t, models.Duration(7*time.Second), cfg.Server.Timeout)
	assert.Equal(t, 9, cfg.Dispatch.MaxInflight)
	assert.True(t, cfg.Audit.Enabled)
	assert.Equal(t, "nats://bus:4222", cfg.Audit.NATSURL)
	assert.Nil(t, cfg.Audit.TLS)
}

func TestEnvironmentAllocatesNestedPointer(t *testing.T) {
	t.Setenv("TOPIC_CONSOLE_AUDIT_TLS_SERVER_NAME", "nats.internal")

	var cfg models.ConsoleConfig
	require.NoError(t, NewConfig(logger.NewTestLogger()).LoadAndValidate(context.Background(), "", &cfg))

	require.NotNil(t, cfg.Audit.TLS)
	assert.Equal(t, "nats.internal", cfg.Audit.TLS.ServerName)
}

func TestNoFileUsesDefaults(t *testing.T) {
	var cfg models.ConsoleConfig
	require.NoError(t, NewConfig(logger.NewTestLogger()).LoadAndValidate(context.Background(), "", &cfg))

	assert.Equal(t, models.DefaultServerURL, cfg.Server.URL)
	assert.Equal(t, models.DefaultMaxInflight, cfg.Dispatch.MaxInflight)
}

func TestLoadErrors(t *testing.T) {
	c := NewConfig(logger.NewTestLogger())
	ctx := context.Background()

	var cfg models.ConsoleConfig

	require.Error(t, c.LoadAndValidate(ctx, filepath.Join(t.TempDir(), "missing.json"), &cfg))
	require.Error(t, c.LoadAndValidate(ctx, writeFile(t, "bad.json", `{`), &cfg))
	require.Error(t, c.LoadAndValidate(ctx, writeFile(t, "bad.yaml", "server: ["), &cfg))

	t.Run("invalid env duration", func(t *testing.T) {
		t.Setenv("TOPIC_CONSOLE_SERVER_TIMEOUT", "soon")

		var cfg models.ConsoleConfig
		require.Error(t, c.LoadAndValidate(ctx, "", &cfg))
	})

	t.Run("validation failure", func(t *testing.T) {
		var cfg models.ConsoleConfig
		err := c.LoadAndValidate(ctx, writeFile(t, "c.json", `{"server":{"url":"ftp://x"}}`), &cfg)
		require.Error(t, err)
	})
}

func TestEnvConfigLoaderRejectsNonPointer(t *testing.T) {
	l := NewEnvConfigLoader(logger.NewTestLogger(), "X_")

	require.ErrorIs(t, l.Load(context.Background(), "", models.ConsoleConfig{}), ErrDstMustBeNonNilPointer)

	s := "str"
	require.ErrorIs(t, l.Load(context.Background(), "", &s), ErrDstMustBePointerToStruct)
}

func TestConfigJSONEnvironment(t *testing.T) {
	t.Setenv("TOPIC_CONSOLE_CONFIG_JSON", `{"console":{"operator":"bob"}}`)

	var cfg models.ConsoleConfig
	require.NoError(t, NewConfig(logger.NewTestLogger()).LoadAndValidate(context.Background(), "", &cfg))

	assert.Equal(t, "bob", cfg.Console.Operator)
}
