package main

//
//  @title           dbostatement API
//  @version         1.0
//  @description     DBO bank export ingestion and statement lookup service.
//  @termsOfService  https://github.com/guttosm/dbostatement
//  @contact.name    API Support
//  @contact.url     https://github.com/guttosm/dbostatement
//  @contact.email   support@example.com
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        statements
//  @tag.description Import and query DBO bank statements
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/guttosm/dbostatement/config"
	_ "github.com/guttosm/dbostatement/docs" // swagger docs
	"github.com/guttosm/dbostatement/internal/app"
	"github.com/guttosm/dbostatement/internal/ingestion"
	"github.com/guttosm/dbostatement/internal/logger"
)

const (
	modeIngest = "ingest"
	modeAPI    = "api"
)

// options are the command line settings; unset flags fall back to config.
type options struct {
	mode     string
	dir      string
	parallel int
	force    bool
	port     string
}

// parseFlags reads args (without the program name) on top of cfg defaults.
func parseFlags(args []string, cfg config.Config, out io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("dbostatement", flag.ContinueOnError)
	fs.SetOutput(out)
	fs.StringVar(&opts.mode, "mode", modeIngest, "Mode: ingest or api")
	fs.StringVar(&opts.dir, "dir", cfg.Ingest.Dir, "Directory with DBO exports (*.csv)")
	fs.IntVar(&opts.parallel, "parallel", cfg.Ingest.Parallel, "How many files to process concurrently (0 = number of CPUs)")
	fs.BoolVar(&opts.force, "force", false, "Re-import files already stored (replaces the stored statement)")
	fs.StringVar(&opts.port, "port", cfg.Server.Port, "Port for API mode")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	switch opts.mode {
	case modeIngest, modeAPI:
	default:
		return options{}, fmt.Errorf("unknown mode %q (want %s or %s)", opts.mode, modeIngest, modeAPI)
	}
	if opts.parallel < 0 {
		return options{}, fmt.Errorf("--parallel must be >= 0, got %d", opts.parallel)
	}
	return opts, nil
}

// startServer initializes and starts the HTTP server in a separate goroutine.
func startServer(router http.Handler, port string) *http.Server {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.L().Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed to start")
		}
	}()

	return server
}

// gracefulShutdown blocks until SIGINT or SIGTERM, then stops the server and
// runs cleanup.
func gracefulShutdown(ctx context.Context, server *http.Server, cleanup func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	<-quit
	logger.L().Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L().Error().Err(err).Msg("server forced to shutdown")
	}

	cleanup()
	logger.L().Info().Msg("server exited gracefully")
}

// runIngest imports every export in opts.dir. A signal cancels the files not
// yet started.
func runIngest(ctx context.Context, opts options) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := app.InitPostgres(ctx, config.AppConfig)
	if err != nil {
		return fmt.Errorf("db connect: %w", err)
	}
	defer func() { _ = db.Close() }()

	return ingestion.ProcessDirectory(ctx, opts.dir, db, opts.parallel, opts.force)
}

// main is the entry point of the dbostatement service.
//
// Modes (selected via --mode flag):
//   - ingest: Imports every DBO export (*.csv) found in --dir.
//   - api:    Starts the REST API for uploads and statement lookups.
func main() {
	ctx := context.Background()

	config.LoadConfig()
	logger.Init()

	opts, err := parseFlags(os.Args[1:], config.AppConfig, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		logger.L().Fatal().Err(err).Msg("invalid flags")
	}

	switch opts.mode {
	case modeIngest:
		logger.L().Info().Str("dir", opts.dir).Msg("running ingestion")
		if err := runIngest(ctx, opts); err != nil {
			logger.L().Fatal().Err(err).Msg("ingestion failed")
		}
		logger.L().Info().Msg("ingestion completed successfully")

	case modeAPI:
		logger.L().Info().Msg("starting API server")

		router, cleanup, err := app.InitializeApp(ctx)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}

		server := startServer(router, opts.port)
		gracefulShutdown(ctx, server, cleanup)
	}
}
