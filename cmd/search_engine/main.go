package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/gcbaptista/go-ir-engine/api"
	"github.com/gcbaptista/go-ir-engine/config"
	"github.com/gcbaptista/go-ir-engine/internal/engine"
	"github.com/gcbaptista/go-ir-engine/internal/logger"
	"github.com/gcbaptista/go-ir-engine/internal/metrics"
)

const version = "1.0.0"

func main() {
	// Define command-line flags
	var (
		help        = flag.Bool("help", false, "Show help message")
		showVersion = flag.Bool("version", false, "Show version information")
		configPath  = flag.String("config", "", "Path to a YAML config file")
		port        = flag.Int("port", 0, "Port to run the server on (overrides config)")
		dataDir     = flag.String("data-dir", "", "Directory of corpus files (overrides config)")
		engineName  = flag.String("engine", "", "Engine for -query and -interactive: boolean, vector, probabilistic or 1/2/3")
		query       = flag.String("query", "", "Run a single query, print the results and exit")
		interactive = flag.Bool("interactive", false, "Read engine choices and queries from stdin instead of serving HTTP")
	)

	flag.Parse()

	// Handle help flag
	if *help {
		fmt.Printf("Go IR Engine - Boolean, vector and probabilistic retrieval over a line-oriented corpus\n\n")
		fmt.Printf("Usage: %s [options]\n\n", os.Args[0])
		fmt.Printf("Options:\n")
		flag.PrintDefaults()
		fmt.Printf("\nExamples:\n")
		fmt.Printf("  %s                                   # Serve the HTTP API on port 8080\n", os.Args[0])
		fmt.Printf("  %s --config ire.yaml --port 9000     # Serve with a config file on port 9000\n", os.Args[0])
		fmt.Printf("  %s --engine boolean --query 'a and b' # Run one query and exit\n", os.Args[0])
		fmt.Printf("  %s --interactive                     # Menu-driven console search\n", os.Args[0])
		return
	}

	// Handle version flag
	if *showVersion {
		fmt.Printf("Go IR Engine v%s\n", version)
		fmt.Printf("Boolean, TF-IDF cosine and log-odds probabilistic retrieval\n")
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *dataDir != "" {
		cfg.Corpus.DataDir = *dataDir
	}

	logger.Setup(cfg.Logging.Level, cfg.Logging.Format, os.Stderr)

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New(prometheus.NewRegistry())
	}

	slog.Info("starting engine", "data_dir", cfg.Corpus.DataDir, "snapshot", cfg.Snapshot.Path)
	eng, err := engine.New(cfg, m)
	if err != nil {
		slog.Error("failed to initialize engine", "error", err)
		os.Exit(1)
	}
	defer eng.Close()

	switch {
	case *query != "":
		if err := runQuery(os.Stdout, eng, *engineName, *query); err != nil {
			fmt.Fprintf(os.Stderr, "search failed: %v\n", err)
			os.Exit(1)
		}
		return
	case *interactive:
		if err := runInteractive(os.Stdin, os.Stdout, eng, *engineName); err != nil {
			fmt.Fprintf(os.Stderr, "console error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := serve(cfg, eng, m); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

// serve runs the HTTP API until SIGINT or SIGTERM, then shuts down gracefully.
func serve(cfg *config.Config, eng *engine.Engine, m *metrics.Metrics) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gin.SetMode(gin.ReleaseMode)
	router := api.NewRouter(eng, cfg.Server, m)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ln, err := net.Listen("tcp", server.Addr)
	if err != nil {
		return err
	}

	slog.Info("server listening", "addr", ln.Addr().String(), "engines", eng.Engines())
	if err := runServer(ctx, server, ln, cfg.Server.ShutdownTimeout); err != nil {
		return err
	}
	slog.Info("server stopped")
	return nil
}

// runServer serves on ln until ctx is done and returns only after Shutdown
// has drained in-flight requests or shutdownTimeout has passed.
func runServer(ctx context.Context, server *http.Server, ln net.Listener, shutdownTimeout time.Duration) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}
