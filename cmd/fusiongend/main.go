package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fabricware/fusiongen/pkg/logger"
	"github.com/fabricware/fusiongen/pkg/server"
	"github.com/fabricware/fusiongen/pkg/service"
	"github.com/fabricware/fusiongen/pkg/store"
)

var (
	// Version information (set by ldflags during build)
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

type flags struct {
	configPath string
	logLevel   string
	version    bool
}

func main() {
	f := parseFlags()

	if f.version {
		printVersion()
		os.Exit(0)
	}

	logLevel := parseLogLevel(f.logLevel)
	log := logger.New("main", &logger.Config{
		Level:     logLevel,
		AddSource: true,
	})

	log.Info("Starting fusiongend",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("build_date", BuildDate),
	)

	// Note: os.Interrupt is equivalent to syscall.SIGINT on Unix systems
	ctx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	if err := run(ctx, f, log); err != nil {
		log.Error("Daemon failed", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("fusiongend stopped gracefully")
}

func parseFlags() *flags {
	f := &flags{}

	flag.StringVar(&f.configPath, "config", "",
		"Path to service configuration file (empty uses built-in defaults)")
	flag.StringVar(&f.logLevel, "log-level", "info",
		"Log level (debug, info, warn, error)")
	flag.BoolVar(&f.version, "version", false,
		"Print version information and exit")

	flag.Parse()

	return f
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		fmt.Fprintf(os.Stderr, "Invalid log level: %s, using info\n", level)
		return slog.LevelInfo
	}
}

func printVersion() {
	fmt.Printf("fusiongend version %s\n", Version)
	fmt.Printf("  Commit: %s\n", Commit)
	fmt.Printf("  Built:  %s\n", BuildDate)
}

func run(ctx context.Context, f *flags, log *logger.Logger) error {
	cfg, err := service.Load(f.configPath, log)
	if err != nil {
		return err
	}

	workdir := store.NewWorkdir(cfg.Workdir)
	if err := workdir.EnsureStructure(); err != nil {
		return err
	}

	st, err := store.Open(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer st.Close()

	srv := server.New(cfg, logger.New("server", &logger.Config{Level: parseLogLevel(f.logLevel)}), st, workdir)

	httpServer := &http.Server{
		Addr:              cfg.Listen,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP API listening", slog.String("addr", cfg.Listen))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}

	return nil
}
