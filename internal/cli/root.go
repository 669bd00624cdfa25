// Package cli implements the comopt command line interface: tradeoff
// sweeps and species knockouts over a YAML community model, solved with
// the bundled LP backend.
package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/symbiota/comopt/core"
	"github.com/symbiota/comopt/modelio"
	"github.com/symbiota/comopt/solver"
)

var (
	modelPath  string
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "comopt",
	Short: "Community/egoistic growth tradeoff optimization",
	Long: `comopt runs constraint-based optimization over multi-organism
metabolic models: cooperative tradeoff sweeps between whole-community and
individual growth, and species-knockout simulations.

Models are YAML files (see package modelio); solving uses the bundled LP
simplex backend, so the linear cooperativity cost is applied.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&modelPath, "model", "m", "", "path to the YAML community model (required)")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "optional TOML solver settings")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	_ = rootCmd.MarkPersistentFlagRequired("model")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// logger builds the CLI logger: console output on stderr, info level by
// default, debug with --verbose.
func logger() zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).With().Timestamp().Logger()
}

// setup loads the model, the optional solver settings and builds the
// backend shared by both subcommands.
func setup() (*core.Community, *solver.Simplex, settings, zerolog.Logger, error) {
	log := logger()
	cfg, err := loadSettings(configPath)
	if err != nil {
		return nil, nil, cfg, log, err
	}
	com, err := modelio.Load(modelPath, core.WithLogger(log))
	if err != nil {
		return nil, nil, cfg, log, err
	}
	be := solver.NewSimplex(solver.WithTolerance(cfg.Solver.Tolerance))
	return com, be, cfg, log, nil
}
