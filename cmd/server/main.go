package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/napolitain/ascension/internal/config"
	"github.com/napolitain/ascension/internal/game"
	"github.com/napolitain/ascension/internal/loader"
	"github.com/napolitain/ascension/internal/narration"
	"github.com/napolitain/ascension/internal/scheduler"
	"github.com/napolitain/ascension/internal/server"
	"github.com/napolitain/ascension/internal/telemetry"
)

const serviceName = "ascension-server"

var (
	addr        string
	catalogPath string
)

// app is one wired game: a session, its clock loop and the API in front of it
type app struct {
	session   *game.Session
	scheduler *scheduler.Scheduler
	server    *server.Server
}

func newApp(cfg config.Config, logger *log.Logger) (*app, error) {
	catalog, err := loader.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	narrator := narration.New(narration.Config{
		APIKey:  cfg.Narration.Key(),
		Model:   cfg.Narration.Model,
		BaseURL: cfg.Narration.BaseURL,
		Locale:  cfg.Locale,
		Timeout: cfg.Narration.Timeout,
		Logger:  logger,
	})
	session := game.New(catalog, game.Options{
		Narrator:         narrator,
		Locale:           cfg.Locale,
		NarrationTimeout: cfg.Narration.Timeout,
		Logger:           logger,
	})
	srv := server.New(session, server.Options{
		Logger:        logger,
		AllowedOrigin: cfg.AllowedOrigin,
	})

	sched := scheduler.New(session, cfg.TickInterval, logger)
	every := uint64(cfg.StreamEvery)
	sched.OnTick(func(tick uint64) {
		if tick%every == 0 {
			srv.Broadcast()
		}
	})

	return &app{session: session, scheduler: sched, server: srv}, nil
}

func run(ctx context.Context, cfg config.Config) error {
	logger := log.Default()

	shutdownTracing, err := telemetry.Setup(ctx, serviceName, cfg.Telemetry)
	if err != nil {
		log.Printf("telemetry disabled: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			log.Printf("telemetry shutdown: %v", err)
		}
	}()

	a, err := newApp(cfg, logger)
	if err != nil {
		return err
	}

	go a.scheduler.Run(ctx)

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           a.server.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server listening at %s", cfg.Addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
	case <-ctx.Done():
		log.Printf("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("http shutdown: %v", err)
		}
	}

	a.session.Wait()
	return nil
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "server",
		Short: "Serve an Industrial Ascension session over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			if cmd.Flags().Changed("catalog") {
				cfg.CatalogPath = catalogPath
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, cfg)
		},
	}
	rootCmd.Flags().StringVar(&addr, "addr", "localhost:8080", "Listen address")
	rootCmd.Flags().StringVarP(&catalogPath, "catalog", "d", "", "Path to a catalog YAML file (default: embedded)")

	if err := rootCmd.Execute(); err != nil {
		config.Exitf("server: %v", err)
	}
}
