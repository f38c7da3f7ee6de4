package projection

import "github.com/iwvelando/cashflow-forecast/pkg/mathutil"

// Summary aggregates a timeline into headline figures.
type Summary struct {
	TotalCollected     float64 `json:"totalCollected"`
	TotalWrittenOff    float64 `json:"totalWrittenOff"`
	TotalReinvested    float64 `json:"totalReinvested"`
	TotalFixedPayments float64 `json:"totalFixedPayments"`
	FinalBalance       float64 `json:"finalBalance"`
	MinimumBalance     float64 `json:"minimumBalance"`
	MinimumPeriod      int     `json:"minimumPeriod"`
	BreakEvenPeriod    int     `json:"breakEvenPeriod"`
	PeakOpenOperations int     `json:"peakOpenOperations"`
	DiscrepancyPeriods int     `json:"discrepancyPeriods"`
}

// Summary computes the headline figures of the timeline. BreakEvenPeriod is
// the first period whose cumulative balance is non-negative within the
// currency tolerance, or -1.
func (tl Timeline) Summary() Summary {
	s := Summary{MinimumPeriod: -1, BreakEvenPeriod: -1}
	if tl.horizon == 0 {
		return s
	}

	s.MinimumBalance = tl.CumulativeBalance[0]
	s.MinimumPeriod = 0
	for t := 0; t < tl.horizon; t++ {
		s.TotalWrittenOff += tl.WriteOff[t]
		s.TotalReinvested += tl.Reinvestment[t]
		s.TotalFixedPayments += tl.FixedPayment[t]

		balance := tl.CumulativeBalance[t]
		if balance < s.MinimumBalance {
			s.MinimumBalance = balance
			s.MinimumPeriod = t
		}
		if s.BreakEvenPeriod < 0 && (balance >= 0 || mathutil.IsZero(balance)) {
			s.BreakEvenPeriod = t
		}
		if tl.OpenOperations[t] > s.PeakOpenOperations {
			s.PeakOpenOperations = tl.OpenOperations[t]
		}
	}

	last := tl.horizon - 1
	s.TotalCollected = tl.TotalCollected[last]
	s.FinalBalance = mathutil.Round(tl.CumulativeBalance[last])
	s.DiscrepancyPeriods = len(tl.Discrepancies(DefaultTolerance))
	return s
}
