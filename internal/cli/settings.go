package cli

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/symbiota/comopt/solver"
)

// settings is the optional TOML configuration file:
//
//	[solver]
//	tolerance = 1e-10
//	retries = 3
type settings struct {
	Solver solverSettings `toml:"solver"`
}

type solverSettings struct {
	Tolerance float64 `toml:"tolerance"`
	Retries   int     `toml:"retries"`
}

// loadSettings reads the TOML file at path, or returns the defaults when
// path is empty.
func loadSettings(path string) (settings, error) {
	cfg := settings{
		Solver: solverSettings{
			Tolerance: solver.DefaultTolerance,
			Retries:   solver.DefaultRetryAttempts,
		},
	}
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("cli: settings: %w", err)
	}
	if cfg.Solver.Tolerance <= 0 || cfg.Solver.Retries < 0 {
		return cfg, fmt.Errorf("cli: settings: tolerance must be positive and retries non-negative")
	}
	return cfg, nil
}
