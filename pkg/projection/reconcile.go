package projection

import (
	"github.com/iwvelando/cashflow-forecast/pkg/constants"
	"github.com/iwvelando/cashflow-forecast/pkg/mathutil"
)

// DefaultTolerance is the currency tolerance used when comparing columns.
const DefaultTolerance = constants.CurrencyTolerance

// Discrepancy records a period where the period-by-period available balance
// and the cumulative-sum balance disagree.
type Discrepancy struct {
	Period                   int     `json:"period"`
	AvailableForReinvestment float64 `json:"availableForReinvestment"`
	CumulativeBalance        float64 `json:"cumulativeBalance"`
	Difference               float64 `json:"difference"`
}

// Discrepancies compares AvailableForReinvestment against CumulativeBalance.
// The recurrence seeds period 0 with the negated principal and ignores any
// inflow or reinvestment booked in that period, so the two columns differ by
// Inflows[0] - Reinvestment[0] from period 0 onward whenever that is non-zero.
func (tl Timeline) Discrepancies(tolerance float64) []Discrepancy {
	var out []Discrepancy
	for t := 0; t < tl.horizon; t++ {
		a, b := tl.AvailableForReinvestment[t], tl.CumulativeBalance[t]
		if mathutil.WithinTolerance(a, b, tolerance) {
			continue
		}
		out = append(out, Discrepancy{
			Period:                   t,
			AvailableForReinvestment: a,
			CumulativeBalance:        b,
			Difference:               b - a,
		})
	}
	return out
}
