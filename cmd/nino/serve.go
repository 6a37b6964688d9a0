// Copyright 2026 The Nino Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nino-ts/nino/middleware/metrics"
	"github.com/nino-ts/nino/middleware/requestid"
	"github.com/nino-ts/nino/router"
)

const defaultConfigFile = "nino.yaml"

func serveCmd() *cobra.Command {
	var (
		configPath string
		addr       string
		dev        bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a static file server with health and metrics endpoints",
		Long: `Start a server configured from a YAML file.

The server serves the configured public directory, a /health endpoint,
and optionally a Prometheus /metrics endpoint. Flags override the file.

Example nino.yaml:

  addr: ":8080"
  public_dir: ./public
  request_timeout: 10s
  metrics: true`,
		RunE: func(cmd *cobra.Command, args []string) error {
			required := cmd.Flags().Changed("config")
			cfg, err := loadServerConfig(configPath, required)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			if cmd.Flags().Changed("dev") {
				cfg.DevMode = dev
			}
			return runServe(cfg)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigFile, "Config file path")
	cmd.Flags().StringVarP(&addr, "addr", "a", ":8080", "Listen address")
	cmd.Flags().BoolVar(&dev, "dev", false, "Expose error detail in 500 responses")

	return cmd
}

func runServe(cfg *serverConfig) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	timeout, err := cfg.requestTimeout()
	if err != nil {
		return err
	}

	opts := []router.Option{
		router.WithLogger(logger),
		router.WithDevMode(cfg.DevMode),
	}
	if cfg.PublicDir != "" {
		opts = append(opts, router.WithStaticDir(cfg.PublicDir))
	}
	if timeout > 0 {
		opts = append(opts, router.WithRequestTimeout(timeout))
	}
	if cfg.ServerHeader != "" {
		opts = append(opts, router.WithServerHeader(cfg.ServerHeader))
	}
	if cfg.H2C {
		opts = append(opts, router.WithH2C(true))
	}

	r, err := router.New(opts...)
	if err != nil {
		return err
	}

	r.Use(requestid.New())
	if cfg.Metrics {
		collector := metrics.New()
		r.Use(collector.Middleware())
		r.GET("/metrics", collector.Handler())
	}
	r.GET("/health", func(*router.Context) (*router.Response, error) {
		return router.JSON(http.StatusOK, router.H{"status": "ok"}), nil
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", cfg.Addr, "public_dir", cfg.PublicDir)
		errCh <- r.Serve(cfg.Addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return r.Shutdown(shutdownCtx)
}
