package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/symbiota/comopt/core"
	"github.com/symbiota/comopt/tradeoff"
)

var (
	tradeoffFractions []float64
	tradeoffMinGrowth float64
)

var tradeoffCmd = &cobra.Command{
	Use:   "tradeoff",
	Short: "Sweep cooperative tradeoff fractions",
	Long: `Compute the cooperative tradeoff between community and individual
growth at one or more tradeoff fractions, largest first.

Examples:
  comopt tradeoff -m gut.yaml
  comopt tradeoff -m gut.yaml --fraction 0.3 --fraction 0.5 --fraction 1.0
  comopt tradeoff -m gut.yaml --min-growth 0.05`,
	RunE: runTradeoff,
}

func init() {
	tradeoffCmd.Flags().Float64SliceVar(&tradeoffFractions, "fraction", []float64{1.0}, "tradeoff fraction(s) in (0, 1]")
	tradeoffCmd.Flags().Float64Var(&tradeoffMinGrowth, "min-growth", 0, "minimum growth rate required of every member")
	rootCmd.AddCommand(tradeoffCmd)
}

func runTradeoff(cmd *cobra.Command, args []string) error {
	com, be, cfg, log, err := setup()
	if err != nil {
		return err
	}
	table, err := tradeoff.CooperativeTradeoffSweep(com, be,
		core.UniformGrowth(tradeoffMinGrowth), tradeoffFractions,
		tradeoff.WithLogger(log),
		tradeoff.WithLinearCost(true),
		tradeoff.WithRetryAttempts(cfg.Solver.Retries),
	)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprint(w, "fraction\tstatus")
	for _, id := range com.MemberIDs() {
		fmt.Fprintf(w, "\t%s", id)
	}
	fmt.Fprintln(w)
	for _, e := range table.Entries {
		fmt.Fprintf(w, "%.3g\t%s", e.Fraction, e.Solution.Status)
		for _, r := range e.Solution.Growth.Rates {
			fmt.Fprintf(w, "\t%.6g", r)
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}
