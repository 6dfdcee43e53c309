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

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/carverauto/topic-console/pkg/lifecycle"
	"github.com/carverauto/topic-console/pkg/logger"
	"github.com/carverauto/topic-console/pkg/models"
	"github.com/carverauto/topic-console/pkg/stubserver"
	"github.com/carverauto/topic-console/pkg/version"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 5 * time.Second
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	listen := flag.String("listen", "127.0.0.1:8080", "Address to listen on")
	seedPath := flag.String("seed", "", "Seed file with the initial topics (JSON or YAML)")
	debug := flag.Bool("debug", false, "Enable debug logging")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.GetFullVersion())
		return nil
	}

	mainLogger, err := lifecycle.CreateComponentLogger("topic-server-stub", &logger.Config{
		Level:  "info",
		Debug:  *debug,
		Output: "stderr",
	})
	if err != nil {
		return err
	}

	seed := stubserver.DefaultSeed()

	if *seedPath != "" {
		if seed, err = stubserver.LoadSeed(*seedPath); err != nil {
			return err
		}
	}

	store, err := stubserver.NewStore(seed)
	if err != nil {
		return fmt.Errorf("invalid seed: %w", err)
	}

	srv := &http.Server{
		Addr:              *listen,
		Handler:           stubserver.NewRouter(store, mainLogger),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)

	go func() {
		mainLogger.Info().
			Str("addr", *listen).
			Int("devices", len(store.Devices())).
			Str("endpoint", models.PathDevices).
			Msg("Stub configuration server listening")

		errCh <- srv.ListenAndServe()
	}()

	select {
	case err = <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	mainLogger.Info().Msg("Shutting down")

	return srv.Shutdown(shutdownCtx)
}
