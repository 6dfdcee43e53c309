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

// Package app assembles and runs the topic console.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/carverauto/topic-console/pkg/audit"
	"github.com/carverauto/topic-console/pkg/config"
	"github.com/carverauto/topic-console/pkg/console"
	"github.com/carverauto/topic-console/pkg/dispatch"
	"github.com/carverauto/topic-console/pkg/lifecycle"
	"github.com/carverauto/topic-console/pkg/logger"
	"github.com/carverauto/topic-console/pkg/models"
	"github.com/carverauto/topic-console/pkg/reconcile"
	"github.com/carverauto/topic-console/pkg/topicsrv"
	"github.com/carverauto/topic-console/pkg/version"
)

// Options carries the command line.
type Options struct {
	ConfigPath string
	ServerURL  string
	Debug      bool
}

// LoadConfig reads the config file and applies command line overrides.
func LoadConfig(ctx context.Context, opts Options) (*models.ConsoleConfig, error) {
	cfg := &models.ConsoleConfig{}

	if err := config.NewConfig(nil).LoadAndValidate(ctx, opts.ConfigPath, cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if opts.ServerURL != "" {
		cfg.Server.URL = opts.ServerURL

		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	if opts.Debug {
		cfg.Logging.Debug = true
	}

	if cfg.Console.Operator == "" {
		cfg.Console.Operator = os.Getenv("USER")
	}

	return cfg, nil
}

// Run starts the console and blocks until the operator quits or ctx ends.
func Run(ctx context.Context, opts Options) error {
	cfg, err := LoadConfig(ctx, opts)
	if err != nil {
		return err
	}

	log, err := lifecycle.CreateComponentLogger("topic-console", cfg.Logging)
	if err != nil {
		return err
	}

	log.Info().
		Str("version", version.GetFullVersion()).
		Str("server", cfg.Server.URL).
		Msg("Starting topic console")

	client := topicsrv.NewClient(&cfg.Server, log)

	var sink dispatch.AuditSink

	if cfg.Audit.Enabled {
		publisher, nc, auditErr := audit.Connect(ctx, &cfg.Audit, log)
		if auditErr != nil {
			log.Warn().Err(auditErr).Msg("Audit publishing unavailable, continuing without it")
		} else {
			defer nc.Close()

			sink = publisher
		}
	}

	queue := dispatch.NewQueue(
		dispatch.NewDispatcher(client, sink, cfg.Console.Operator, log),
		cfg.Dispatch.MaxInflight,
		time.Duration(cfg.Dispatch.PushTimeout),
		log,
	)
	defer drainAndClose(queue, log)

	model := console.New(console.Options{
		Context:      ctx,
		Engine:       reconcile.NewEngine(log),
		Directory:    client,
		Fetcher:      client,
		Queue:        queue,
		TickInterval: time.Duration(cfg.Console.TickInterval),
		ServerURL:    cfg.Server.URL,
		Logger:       log,
	})

	_, err = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()

	model.StopListening()

	switch {
	case errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil:
		log.Info().Msg("Interrupted")
	case err != nil:
		return fmt.Errorf("console exited: %w", err)
	}

	log.Info().Msg("Topic console stopped")

	return nil
}

// drainAndClose waits for queued pushes once the UI has stopped reading
// results. Failures are already logged by the queue.
func drainAndClose(queue *dispatch.Queue, log logger.Logger) {
	go func() {
		for res := range queue.Results() {
			log.Debug().Str("record", res.Request.Key().String()).Msg("Push finished during shutdown")
		}
	}()

	queue.Close()
}
