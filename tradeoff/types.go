package tradeoff

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/symbiota/comopt/solver"
)

// TradeoffEntry pairs one tradeoff fraction with the Solution obtained at
// that fraction's community-growth floor.
type TradeoffEntry struct {
	Fraction float64
	Solution *solver.Solution
}

// TradeoffTable is the result of a multi-fraction sweep, ordered by
// descending fraction (the processing order).
type TradeoffTable struct {
	Entries []TradeoffEntry
}

// Fractions returns the swept fractions in table order.
func (t *TradeoffTable) Fractions() []float64 {
	out := make([]float64, len(t.Entries))
	for i, e := range t.Entries {
		out[i] = e.Fraction
	}
	return out
}

// Solution returns the Solution recorded for the given fraction.
func (t *TradeoffTable) Solution(fraction float64) (*solver.Solution, bool) {
	for _, e := range t.Entries {
		if e.Fraction == fraction {
			return e.Solution, true
		}
	}
	return nil, false
}

// KnockoutTable is the species-knockout result matrix: one row per
// knocked-out species, one column per measured member (virtual
// pseudo-members dropped), cell values transformed per the requested
// Method.
type KnockoutTable struct {
	// Knockouts indexes the rows: the species knocked out.
	Knockouts []string

	// Members indexes the columns: the species measured.
	Members []string

	// Data holds the matrix; Data.At(i, j) is the effect of knocking out
	// Knockouts[i] on Members[j].
	Data *mat.Dense
}

// At returns the cell for the given knockout/member pair, or NaN and false
// when either index is unknown.
func (t *KnockoutTable) At(knockout, member string) (float64, bool) {
	i := indexOf(t.Knockouts, knockout)
	j := indexOf(t.Members, member)
	if i < 0 || j < 0 {
		return math.NaN(), false
	}
	return t.Data.At(i, j), true
}

// Row returns a copy of the row for the given knocked-out species.
func (t *KnockoutTable) Row(knockout string) ([]float64, bool) {
	i := indexOf(t.Knockouts, knockout)
	if i < 0 {
		return nil, false
	}
	row := make([]float64, len(t.Members))
	mat.Row(row, i, t.Data)
	return row, true
}

func indexOf(list []string, want string) int {
	for i, s := range list {
		if s == want {
			return i
		}
	}
	return -1
}
