package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/star/neotrack/internal/config"
	"github.com/star/neotrack/internal/extract"
	"github.com/star/neotrack/internal/metrics"
	"github.com/star/neotrack/internal/neo"
)

func main() {
	level := new(slog.LevelVar)
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))

	if err := newRootCmd(logger, level).Execute(); err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}

// app carries state shared by subcommands for one invocation.
type app struct {
	logger     *slog.Logger
	level      *slog.LevelVar
	v          *viper.Viper
	cfg        config.Config
	configPath string
}

func newRootCmd(logger *slog.Logger, level *slog.LevelVar) *cobra.Command {
	a := &app{logger: logger, level: level, v: config.New()}

	root := &cobra.Command{
		Use:   "neotrack",
		Short: "Explore close approaches of near-Earth objects",
		Long: `neotrack loads the JPL near-Earth object catalog (CSV) and close-approach
data (JSON), links each approach to its NEO, and inspects or queries the result.
Query results can be written to CSV or JSON.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.ReadFile(a.v, a.configPath); err != nil {
				return err
			}
			a.cfg = config.Load(a.v, a.logger)
			a.level.Set(a.cfg.LogLevel)
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.MetricsFile == "" {
				return nil
			}
			if err := metrics.WriteTextfile(a.cfg.MetricsFile); err != nil {
				return err
			}
			a.logger.Debug("wrote metrics", "path", a.cfg.MetricsFile)
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "config file path")
	flags.String("neofile", "", "path to the NEO catalog CSV (default data/neos.csv)")
	flags.String("cadfile", "", "path to the close-approach JSON (default data/cad.json)")
	flags.String("log-level", "", "log level: debug, info, warn, error")
	flags.String("metrics-file", "", "write Prometheus metrics to this textfile on exit")

	for key, name := range map[string]string{
		config.KeyNEOFile:     "neofile",
		config.KeyCADFile:     "cadfile",
		config.KeyLogLevel:    "log-level",
		config.KeyMetricsFile: "metrics-file",
	} {
		// Only errors on a nil flag.
		_ = a.v.BindPFlag(key, flags.Lookup(name))
	}

	root.AddCommand(newInspectCmd(a))
	root.AddCommand(newQueryCmd(a))
	return root
}

// loadDatabase loads both input files and links them.
func (a *app) loadDatabase() (*neo.Database, error) {
	start := time.Now()
	neos, err := extract.LoadNEOs(a.cfg.NEOFile)
	if err != nil {
		return nil, err
	}
	metrics.ObserveLoad(metrics.SourceCatalog, len(neos), time.Since(start))
	a.logger.Debug("loaded NEO catalog", "path", a.cfg.NEOFile, "count", len(neos), "duration_ms", time.Since(start).Milliseconds())

	start = time.Now()
	approaches, err := extract.LoadApproaches(a.cfg.CADFile)
	if err != nil {
		return nil, err
	}
	metrics.ObserveLoad(metrics.SourceApproaches, len(approaches), time.Since(start))
	a.logger.Debug("loaded close approaches", "path", a.cfg.CADFile, "count", len(approaches), "duration_ms", time.Since(start).Milliseconds())

	db, err := neo.NewDatabase(neos, approaches)
	if err != nil {
		return nil, fmt.Errorf("linking close approaches: %w", err)
	}
	metrics.SetLinkedApproaches(len(approaches))
	a.logger.Info("database ready", "neos", len(neos), "approaches", len(approaches))

	return db, nil
}
