package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/symbiota/comopt/tradeoff"
)

var (
	knockoutSpecies  []string
	knockoutFraction float64
	knockoutMethod   string
	knockoutNoDiag   bool
	knockoutProgress bool
)

var knockoutCmd = &cobra.Command{
	Use:   "knockout",
	Short: "Simulate species knockouts",
	Long: `Knock out each candidate species in turn and report how the
remaining members' growth rates respond.

Examples:
  comopt knockout -m gut.yaml
  comopt knockout -m gut.yaml --species a --species b --method change,relative
  comopt knockout -m gut.yaml --no-diag --progress`,
	RunE: runKnockout,
}

func init() {
	knockoutCmd.Flags().StringSliceVar(&knockoutSpecies, "species", nil, "species to knock out (default: all members)")
	knockoutCmd.Flags().Float64Var(&knockoutFraction, "fraction", 1.0, "fraction of maximal community growth to maintain")
	knockoutCmd.Flags().StringVar(&knockoutMethod, "method", "change", "reporting transform: raw, change, relative or change,relative")
	knockoutCmd.Flags().BoolVar(&knockoutNoDiag, "no-diag", false, "blank self-to-self cells")
	knockoutCmd.Flags().BoolVar(&knockoutProgress, "progress", false, "show a progress bar")
	rootCmd.AddCommand(knockoutCmd)
}

func runKnockout(cmd *cobra.Command, args []string) error {
	method, err := tradeoff.ParseMethod(knockoutMethod)
	if err != nil {
		return err
	}
	com, be, cfg, log, err := setup()
	if err != nil {
		return err
	}
	species := knockoutSpecies
	if len(species) == 0 {
		species = com.Species()
	}
	table, err := tradeoff.KnockoutSpecies(com, be, species, knockoutFraction, method,
		tradeoff.WithLogger(log),
		tradeoff.WithLinearCost(true),
		tradeoff.WithRetryAttempts(cfg.Solver.Retries),
		tradeoff.WithSelfDiagonal(!knockoutNoDiag),
		tradeoff.WithProgress(knockoutProgress),
	)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprint(w, "knockout")
	for _, id := range table.Members {
		fmt.Fprintf(w, "\t%s", id)
	}
	fmt.Fprintln(w)
	for i, ko := range table.Knockouts {
		fmt.Fprintf(w, "%s", ko)
		for j := range table.Members {
			fmt.Fprintf(w, "\t%.6g", table.Data.At(i, j))
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}
