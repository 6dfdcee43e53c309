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

package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/carverauto/topic-console/pkg/logger"
)

const (
	DefaultServerURL     = "http://127.0.0.1:8080"
	DefaultTickInterval  = Duration(250 * time.Millisecond)
	DefaultServerTimeout = Duration(10 * time.Second)
	DefaultPushTimeout   = Duration(10 * time.Second)
	DefaultMaxInflight   = 4
	DefaultAuditStream   = "topic-audit"
	DefaultAuditSubject  = "events.topics"
)

var (
	errInvalidDuration  = errors.New("invalid duration")
	errServerURLMissing = errors.New("server.url is required")
	errServerURLInvalid = errors.New("server.url must be an absolute http(s) URL")
	errAuditNATSMissing = errors.New("audit.nats_url is required when audit is enabled")
	errNegativeSetting  = errors.New("setting must not be negative")
)

// Duration is a time.Duration that decodes from "5s"-style strings or
// nanosecond numbers.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		// parse numeric as nanoseconds
		*d = Duration(time.Duration(value))
		return nil
	case string:
		return d.UnmarshalText([]byte(value))
	default:
		return errInvalidDuration
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalText(text []byte) error {
	dur, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("%w: %w", errInvalidDuration, err)
	}

	*d = Duration(dur)

	return nil
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var n int64
	if err := value.Decode(&n); err == nil {
		*d = Duration(time.Duration(n))
		return nil
	}

	return d.UnmarshalText([]byte(value.Value))
}

// ConsoleConfig is the complete configuration of the topic console.
type ConsoleConfig struct {
	Server   ServerConfig   `json:"server" yaml:"server"`
	Console  UIConfig       `json:"console" yaml:"console"`
	Dispatch DispatchConfig `json:"dispatch" yaml:"dispatch"`
	Audit    AuditConfig    `json:"audit" yaml:"audit"`
	Logging  *logger.Config `json:"logging" yaml:"logging"`
}

// ServerConfig points at the remote configuration server.
type ServerConfig struct {
	URL     string   `json:"url" yaml:"url"`
	Timeout Duration `json:"timeout" yaml:"timeout"`
}

// UIConfig tunes the reconciliation tick.
type UIConfig struct {
	TickInterval Duration `json:"tick_interval" yaml:"tick_interval"`
	Operator     string   `json:"operator" yaml:"operator"`
}

// DispatchConfig bounds the push queue.
type DispatchConfig struct {
	MaxInflight int      `json:"max_inflight_pushes" yaml:"max_inflight_pushes"`
	PushTimeout Duration `json:"push_timeout" yaml:"push_timeout"`
}

// AuditConfig enables publishing accepted edits to NATS JetStream.
type AuditConfig struct {
	Enabled       bool       `json:"enabled" yaml:"enabled"`
	NATSURL       string     `json:"nats_url" yaml:"nats_url"`
	Stream        string     `json:"stream" yaml:"stream"`
	SubjectPrefix string     `json:"subject_prefix" yaml:"subject_prefix"`
	TLS           *TLSConfig `json:"tls,omitempty" yaml:"tls,omitempty"`
}

// TLSConfig holds client mTLS material for the audit NATS connection.
type TLSConfig struct {
	CAFile     string `json:"ca_file" yaml:"ca_file"`
	CertFile   string `json:"cert_file" yaml:"cert_file"`
	KeyFile    string `json:"key_file" yaml:"key_file"`
	ServerName string `json:"server_name,omitempty" yaml:"server_name,omitempty"`
}

// DefaultConsoleConfig returns a config that talks to a server on localhost.
func DefaultConsoleConfig() *ConsoleConfig {
	cfg := &ConsoleConfig{}
	cfg.ApplyDefaults()

	return cfg
}

// ApplyDefaults fills zero values.
func (c *ConsoleConfig) ApplyDefaults() {
	if c.Server.URL == "" {
		c.Server.URL = DefaultServerURL
	}

	if c.Server.Timeout == 0 {
		c.Server.Timeout = DefaultServerTimeout
	}

	if c.Console.TickInterval == 0 {
		c.Console.TickInterval = DefaultTickInterval
	}

	if c.Dispatch.MaxInflight == 0 {
		c.Dispatch.MaxInflight = DefaultMaxInflight
	}

	if c.Dispatch.PushTimeout == 0 {
		c.Dispatch.PushTimeout = DefaultPushTimeout
	}

	if c.Audit.Stream == "" {
		c.Audit.Stream = DefaultAuditStream
	}

	if c.Audit.SubjectPrefix == "" {
		c.Audit.SubjectPrefix = DefaultAuditSubject
	}

	if c.Logging == nil {
		c.Logging = logger.DefaultConfig()
	}
}

// Validate implements config.Validator.
func (c *ConsoleConfig) Validate() error {
	if c.Server.URL == "" {
		return errServerURLMissing
	}

	u, err := url.Parse(c.Server.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", errServerURLInvalid, c.Server.URL)
	}

	if c.Server.Timeout < 0 || c.Console.TickInterval < 0 || c.Dispatch.PushTimeout < 0 || c.Dispatch.MaxInflight < 0 {
		return errNegativeSetting
	}

	if c.Audit.Enabled && c.Audit.NATSURL == "" {
		return errAuditNATSMissing
	}

	return nil
}
