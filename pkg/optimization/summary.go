// Package optimization provides shared data structures for optimization results.
package optimization

// Summary captures the result of sizing one reinvestment.
type Summary struct {
	Category       string   `json:"category"`
	StartPeriod    int      `json:"startPeriod"`
	Original       float64  `json:"original"`
	Value          float64  `json:"value"`
	Operations     int      `json:"operations"`
	Floor          float64  `json:"floor"`
	MinimumBalance float64  `json:"minimumBalance"`
	Headroom       float64  `json:"headroom"`
	Iterations     int      `json:"iterations"`
	Converged      bool     `json:"converged"`
	Notes          []string `json:"notes,omitempty"`
	ValueDisplay   string   `json:"valueDisplay,omitempty"`
}
