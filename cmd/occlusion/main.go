// Command occlusion loads a visibility dataset and serves it over HTTP.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/occlusion-dev/occlusion/internal/config"
	"github.com/occlusion-dev/occlusion/internal/httpapi"
	"github.com/occlusion-dev/occlusion/internal/loader"
	"github.com/occlusion-dev/occlusion/internal/query"
	"github.com/occlusion-dev/occlusion/internal/snapshot"
	"github.com/occlusion-dev/occlusion/internal/store"
)

// bakedDataSource is set at build time via -ldflags -X to embed a
// default data source URL. It is only consulted when neither the CLI
// flag/argument nor OCCLUSION_DATA_SOURCE is set — an explicit operator
// override always wins over a build-time default.
var bakedDataSource string

var cfg config.Config
var configPath string
var dataSourceFlag string
var backendFlag string

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(64) // usage error
	}
}

var rootCmd = &cobra.Command{
	Use:   "occlusion",
	Short: "In-process authorization decision service",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded

		if dataSourceFlag != "" {
			cfg.DataSource = dataSourceFlag
		} else if env := os.Getenv("OCCLUSION_DATA_SOURCE"); env != "" {
			cfg.DataSource = env
		} else if cfg.DataSource == "" && bakedDataSource != "" {
			cfg.DataSource = bakedDataSource
		}

		if backendFlag != "" {
			cfg.Backend = backendFlag
		}
		cfg.Normalize()

		if cfg.DataSource == "" {
			return fmt.Errorf("no data source: pass --data-source, set OCCLUSION_DATA_SOURCE, or configure data_source")
		}
		return nil
	},
	RunE: runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (YAML or JSON)")
	rootCmd.PersistentFlags().StringVar(&dataSourceFlag, "data-source", "", "override the configured data source (file path or http(s) URL)")
	rootCmd.PersistentFlags().StringVar(&backendFlag, "backend", "", "override the configured store backend (hashmap|vec|hybrid|fullhash)")
}

func newLogger(jsonLogs bool) *slog.Logger {
	var handler slog.Handler
	if jsonLogs {
		handler = slog.NewJSONHandler(os.Stdout, nil)
	} else {
		handler = slog.NewTextHandler(os.Stdout, nil)
	}
	return slog.New(handler)
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := newLogger(cfg.JSONLogs)
	logger.Info("loading data source", "source", cfg.DataSource, "backend", cfg.Backend)

	result, err := loader.Load(cfg.DataSource, loader.Options{
		Backend:       store.Kind(cfg.Backend),
		ProgressEvery: cfg.ProgressEvery,
		OnProgress: func(rows uint64) {
			logger.Info("loading progress", "rows_parsed", rows)
		},
	})
	if err != nil {
		logger.Error("load failed", "error", err)
		os.Exit(1)
	}

	logger.Info("load complete",
		"total_entries", result.Stats.TotalEntries,
		"backend", cfg.Backend,
	)

	engine := query.New(result.Store, result.Stats, cfg.BatchParallelThreshold)

	holder := snapshot.New()
	holder.Publish(engine) // happens-before edge: nothing below this line runs before this write

	router := httpapi.NewRouter(holder)
	logger.Info("serving", "addr", cfg.BindAddr)
	if err := router.Run(cfg.BindAddr); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(2)
	}
	return nil
}
