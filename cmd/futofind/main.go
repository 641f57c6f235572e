package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/futofind/futofind/internal/api"
	"github.com/futofind/futofind/internal/auth"
	"github.com/futofind/futofind/internal/client"
	"github.com/futofind/futofind/internal/config"
	"github.com/futofind/futofind/internal/db"
	"github.com/futofind/futofind/internal/notify"
	"github.com/futofind/futofind/internal/session"
	"github.com/futofind/futofind/internal/store"
	"github.com/futofind/futofind/internal/telemetry"
	"github.com/futofind/futofind/internal/web"
)

const serviceName = "futofind"

// levelRouter is a slog.Handler that routes INFO/WARN to stdout and ERROR+ to stderr.
type levelRouter struct {
	stdout slog.Handler
	stderr slog.Handler
}

func (lr *levelRouter) Enabled(_ context.Context, level slog.Level) bool {
	return level >= slog.LevelInfo
}

func (lr *levelRouter) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelError {
		return lr.stderr.Handle(ctx, r)
	}
	return lr.stdout.Handle(ctx, r)
}

func (lr *levelRouter) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &levelRouter{
		stdout: lr.stdout.WithAttrs(attrs),
		stderr: lr.stderr.WithAttrs(attrs),
	}
}

func (lr *levelRouter) WithGroup(name string) slog.Handler {
	return &levelRouter{
		stdout: lr.stdout.WithGroup(name),
		stderr: lr.stderr.WithGroup(name),
	}
}

// setupLogger configures structured logging. If logPath is non-empty, all
// levels are also appended to that file. The returned cleanup closes it.
func setupLogger(logPath string) (func(), error) {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}

	var cleanup func()

	stdoutW := io.Writer(os.Stdout)
	stderrW := io.Writer(os.Stderr)

	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		cleanup = func() { f.Close() }
		stdoutW = io.MultiWriter(os.Stdout, f)
		stderrW = io.MultiWriter(os.Stderr, f)
	}

	handler := &levelRouter{
		stdout: slog.NewTextHandler(stdoutW, opts),
		stderr: slog.NewTextHandler(stderrW, opts),
	}
	slog.SetDefault(slog.New(handler))
	return cleanup, nil
}

func main() {
	fs := flag.NewFlagSet(serviceName, flag.ContinueOnError)

	var envFile string
	fs.StringVar(&envFile, "env", ".env", "")

	var dbPath, addr, logPath, apiURL, keyFile string
	fs.StringVar(&dbPath, "db", "", "")
	fs.StringVar(&dbPath, "d", "", "")
	fs.StringVar(&addr, "addr", "", "")
	fs.StringVar(&addr, "a", "", "")
	fs.StringVar(&logPath, "log", "", "")
	fs.StringVar(&logPath, "l", "", "")
	fs.StringVar(&apiURL, "api", "", "")
	fs.StringVar(&keyFile, "key", "", "")

	fs.Usage = func() {
		fmt.Fprint(os.Stdout, `Usage: futofind [flags]

Flags:
  -d, -db <path>          local SQLite database path (default: futofind.sqlite3)
  -a, -addr <host:port>   listen address (default: 127.0.0.1:8080)
  -l, -log <path>         log file path (default: no file, stdout/stderr only)
      -api <url>          backend API base URL
      -key <path>         session sealing key file (default: <db>.key)
      -env <path>         environment file (default: .env)
  -h, -help               show this help and exit

Flags override the FUTOFIND_* environment variables.
`)
	}

	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if fs.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "unexpected argument: %s\n", fs.Arg(0))
		fs.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load(envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	override(&cfg.DBPath, dbPath)
	override(&cfg.Addr, addr)
	override(&cfg.LogPath, logPath)
	override(&cfg.APIURL, apiURL)
	override(&cfg.KeyFile, keyFile)

	closeLog, err := setupLogger(cfg.LogPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if closeLog != nil {
		defer closeLog()
	}
	slog.Info("configuration loaded", "config", cfg.String())

	shutdownTelemetry := telemetry.Setup(context.Background(), serviceName, cfg.OTLPEndpoint, cfg.OTLPInsecure)

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := db.EnsureSchema(database); err != nil {
		slog.Error("failed to ensure database schema", "error", err)
		os.Exit(1)
	}
	slog.Info("database ready", "path", cfg.DBPath)

	key, err := auth.LoadOrCreateKey(cfg.ResolvedKeyFile())
	if err != nil {
		slog.Error("failed to load sealing key", "error", err)
		os.Exit(1)
	}
	sealer, err := auth.NewSealer(key)
	if err != nil {
		slog.Error("failed to set up sealer", "error", err)
		os.Exit(1)
	}

	backend := client.New(cfg.APIURL, &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)})
	notes := notify.New(backend)
	sessions := session.New(&store.SessionRecord{DB: database, Sealer: sealer}, backend, notes)

	if err := sessions.Restore(context.Background()); err != nil {
		slog.Error("failed to restore session", "error", err)
		os.Exit(1)
	}

	apiRouter := api.NewRouter(sessions, notes)
	webRouter, err := web.NewRouter(backend, sessions, notes, cfg.BannerTimeout)
	if err != nil {
		slog.Error("failed to set up web router", "error", err)
		os.Exit(1)
	}

	// API routes take priority, web routes handle the rest.
	mux := http.NewServeMux()
	mux.Handle("/api/", apiRouter)
	mux.Handle("/", webRouter)

	handler := otelhttp.NewHandler(api.LoggingMiddleware(mux), serviceName)

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-quit
		slog.Info("shutdown signal received", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			slog.Error("server forced to shutdown", "error", err)
		}
		if err := shutdownTelemetry(ctx); err != nil {
			slog.Error("telemetry shutdown failed", "error", err)
		}
	}()

	slog.Info("server started", "addr", cfg.Addr, "api", cfg.APIURL)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped, closing database")
}

// override replaces *dst with v when a flag was given.
func override(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
