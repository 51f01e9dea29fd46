/*
Copyright 2025.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/text/language"

	"github.com/pagewright/storefront-builder/internal/cache"
	"github.com/pagewright/storefront-builder/internal/catalog"
	"github.com/pagewright/storefront-builder/internal/config"
	"github.com/pagewright/storefront-builder/internal/editor"
	"github.com/pagewright/storefront-builder/internal/gateway"
	"github.com/pagewright/storefront-builder/internal/web/server"
)

func main() {
	cfg := config.Load()

	logger := newLogger(cfg.Verbosity)
	setupLog := logger.WithName("setup")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	local, err := gateway.NewLocalStore(cfg.DataDir)
	if err != nil {
		setupLog.Error(err, "unable to open local layout store", "dir", cfg.DataDir)
		os.Exit(1)
	}

	gw := &gateway.Gateway{Local: local, Log: logger.WithName("gateway")}
	var source catalog.Source

	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			setupLog.Error(err, "unable to connect to database")
			os.Exit(1)
		}
		defer pool.Close()

		primary := gateway.NewPostgresStore(pool)
		if err := primary.EnsureSchema(ctx); err != nil {
			setupLog.Error(err, "unable to ensure layout schema")
			os.Exit(1)
		}
		gw.Primary = primary
		source = catalog.NewPostgresSource(pool)
	} else {
		setupLog.Info("no database configured, running on the local store with demo catalog data")
		source = catalog.NewDemoSource("demo")
	}

	pages, err := cache.New(cfg.ValkeyAddr, cfg.CacheTTL)
	if err != nil {
		setupLog.Error(err, "unable to open page cache", "addr", cfg.ValkeyAddr)
		os.Exit(1)
	}

	languages := make([]language.Tag, 0, len(cfg.Languages))
	for _, l := range cfg.Languages {
		languages = append(languages, language.Make(l))
	}

	srv := server.New(cfg.Addr, &server.Server{
		Catalog:         source,
		DefaultLanguage: cfg.DefaultLanguage,
		Gateway:         gw,
		Languages:       languages,
		Log:             logger.WithName("web"),
		Pages:           pages,
		Sessions:        editor.NewSessions(logger.WithName("editor")),
	})

	go func() {
		<-ctx.Done()
		setupLog.Info("shutting down web server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			setupLog.Error(err, "problem shutting down web server")
		}
	}()

	setupLog.Info("starting web server", "addr", cfg.Addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		setupLog.Error(err, "problem running web server")
		os.Exit(1)
	}
}

func newLogger(verbosity int) logr.Logger {
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(zapcore.Level(-verbosity))
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	zl, err := zc.Build()
	if err != nil {
		panic(err)
	}
	return zapr.NewLogger(zl)
}
