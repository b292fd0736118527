package app

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"pricewatch/internal/config"
	"pricewatch/internal/server"
)

const cfgPath = "./config/config.json"

func Start() error {
	var (
		port     = flag.Int("port", 0, "Port number (overrides config)")
		once     = flag.Bool("once", false, "Run a single collection pass, write the report, and exit")
		helpFlag = flag.Bool("help", false, "Show help message")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  pricewatch [--port <N>]\n")
		fmt.Fprintf(os.Stderr, "  pricewatch --once\n")
		fmt.Fprintf(os.Stderr, "  pricewatch --help\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fmt.Fprintf(os.Stderr, "  --port N     Port number\n")
		fmt.Fprintf(os.Stderr, "  --once       Collect once, write the report, exit\n")
	}

	flag.Parse()

	if *helpFlag {
		flag.Usage()
		os.Exit(0)
	}

	// .env is optional; real deployments set the environment directly
	if err := godotenv.Load(); err == nil {
		slog.Info("Loaded .env file")
	}

	slog.Info("Loading configuration...")
	cfg, err := config.GetConfig(cfgPath)
	if err != nil {
		slog.Error("failed to get config", "error", err)
		return fmt.Errorf("failed to get config: %w", err)
	}

	if *port > 0 {
		cfg.App.Port = *port
	}
	slog.Info("Configuration loaded", "port", cfg.App.Port, "tracked_seller", cfg.Tracking.TrackedSeller)

	slog.Info("Creating application instance...")
	app := server.NewApp(cfg)

	slog.Info("Initializing application...")
	if err := app.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize app: %w", err)
	}

	if *once {
		defer app.Shutdown()
		return app.CollectOnce()
	}

	slog.Info("Starting server...")
	app.Run()

	slog.Info("Server stopped")
	return nil
}
