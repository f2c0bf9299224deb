package main

import (
	"fmt"
	"net"
	"os"

	handlers "github.com/echolon-ai/echolon/pkg/handlers/analysis"
	"github.com/echolon-ai/echolon/pkg/server"
	"github.com/echolon-ai/echolon/pkg/services/benchmark"
	"github.com/echolon-ai/echolon/pkg/services/engine"
	"github.com/echolon-ai/echolon/pkg/services/session"
	"github.com/echolon-ai/echolon/pkg/store/duckdb"
	duckdbhistory "github.com/echolon-ai/echolon/pkg/store/duckdb/history"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	cfgPath string
	dbPath  string
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for the Echolon metrics engine",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to the engine tuning file (optional)")
	rootCmd.Flags().StringVar(&dbPath, "db", "echolon.db",
		"Path to the DuckDB history database")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := engine.LoadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load engine config: %w", err)
	}

	var registry benchmark.Registry
	if cfg.BenchmarksPath != "" {
		registry, err = benchmark.NewRegistry(cfg.BenchmarksPath)
		if err != nil {
			return fmt.Errorf("failed to load benchmarks: %w", err)
		}
		logger.Info().
			Str("path", cfg.BenchmarksPath).
			Strs("industries", registry.Industries()).
			Msg("benchmark profiles loaded")
	} else {
		registry = benchmark.NewStaticRegistry()
	}

	db, err := duckdb.NewDB(duckdb.Settings{
		DbPath: dbPath,
	})
	if err != nil {
		return fmt.Errorf("failed to create DuckDB instance: %w", err)
	}

	historyStore, err := duckdbhistory.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create history store: %w", err)
	}

	analyzer := engine.NewAnalyzer(*cfg, registry, nil)
	handler := handlers.NewHandler(analyzer, session.New(), registry, historyStore)

	host := os.Getenv("SERVER_HOST")
	port := os.Getenv("SERVER_PORT")

	if host == "" || port == "" {
		logger.Error().Msgf("Missing server configuration from .env file")
		os.Exit(1)
	}

	api := server.NewWebAPI(logger, server.Config{
		Addr: net.JoinHostPort(host, port),
		Dependencies: server.Dependencies{
			Analysis: handler,
		},
	})

	return api.Start()
}
