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

// Package logger provides JSON structured logging using zerolog
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	outputStdout = "stdout"
	outputStderr = "stderr"

	logFilePerms = 0o600
)

var (
	globalMu     sync.RWMutex
	globalLogger zerolog.Logger
)

type Config struct {
	Level      string `json:"level" yaml:"level"`
	Debug      bool   `json:"debug" yaml:"debug"`
	Output     string `json:"output" yaml:"output"`
	TimeFormat string `json:"time_format" yaml:"time_format"`
}

func init() {
	globalLogger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	zerolog.TimeFieldFormat = time.RFC3339
}

// OpenOutput resolves the configured output to a writer. Anything other than
// stdout or stderr is treated as a file path and opened for appending.
func OpenOutput(output string) (io.Writer, error) {
	switch output {
	case "", outputStdout:
		return os.Stdout, nil
	case outputStderr:
		return os.Stderr, nil
	}

	f, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePerms)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %q: %w", output, err)
	}

	return f, nil
}

// ParseLevel returns the effective level for config. Debug wins over Level.
func ParseLevel(config *Config) (zerolog.Level, error) {
	if config.Debug {
		return zerolog.DebugLevel, nil
	}

	if config.Level == "" {
		return zerolog.InfoLevel, nil
	}

	return zerolog.ParseLevel(config.Level)
}

func Init(config *Config) error {
	if config == nil {
		config = DefaultConfig()
	}

	output, err := OpenOutput(config.Output)
	if err != nil {
		return err
	}

	level, err := ParseLevel(config)
	if err != nil {
		return err
	}

	if config.TimeFormat != "" {
		zerolog.TimeFieldFormat = config.TimeFormat
	}

	globalMu.Lock()
	defer globalMu.Unlock()

	globalLogger = zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Logger()

	log.Logger = globalLogger

	return nil
}

func SetLevel(level zerolog.Level) {
	globalMu.Lock()
	defer globalMu.Unlock()

	globalLogger = globalLogger.Level(level)
	log.Logger = globalLogger
}

func SetDebug(debug bool) {
	if debug {
		SetLevel(zerolog.DebugLevel)
	} else {
		SetLevel(zerolog.InfoLevel)
	}
}

func GetLogger() zerolog.Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()

	return globalLogger
}

func Debug() *zerolog.Event {
	l := GetLogger()
	return l.Debug()
}

func Info() *zerolog.Event {
	l := GetLogger()
	return l.Info()
}

func Warn() *zerolog.Event {
	l := GetLogger()
	return l.Warn()
}

func Error() *zerolog.Event {
	l := GetLogger()
	return l.Error()
}

func WithComponent(component string) zerolog.Logger {
	return GetLogger().With().Str("component", component).Logger()
}
