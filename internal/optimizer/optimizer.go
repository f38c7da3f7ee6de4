// Package optimizer sizes a reinvestment so the cumulative balance stays above
// a floor for the rest of the horizon.
package optimizer

import (
	"fmt"
	"math"

	"github.com/iwvelando/cashflow-forecast/internal/config"
	"github.com/iwvelando/cashflow-forecast/internal/forecast"
	"github.com/iwvelando/cashflow-forecast/internal/session"
	"github.com/iwvelando/cashflow-forecast/pkg/mathutil"
	"github.com/iwvelando/cashflow-forecast/pkg/optimization"
	"github.com/iwvelando/cashflow-forecast/pkg/projection"
	"github.com/iwvelando/cashflow-forecast/pkg/schedule"
	"go.uber.org/zap"
)

// Runner evaluates the optimizer directive of a configuration.
type Runner struct {
	logger   *zap.Logger
	conf     *config.Configuration
	engine   *projection.Engine
	initial  schedule.FundingEvent
	existing []schedule.FundingEvent
}

type evaluation struct {
	units      int
	minBalance float64
	floor      float64
}

func (e evaluation) feasible() bool {
	return e.minBalance >= e.floor
}

func (e evaluation) headroom() float64 {
	return e.minBalance - e.floor
}

// Result is the sized reinvestment and the projection that includes it.
type Result struct {
	Summary  optimization.Summary
	Forecast forecast.Forecast
}

// NewRunner constructs a Runner for the provided configuration. The
// reinvestments in snap are held fixed during the search.
func NewRunner(logger *zap.Logger, conf *config.Configuration, snap session.Snapshot) (*Runner, error) {
	if conf == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if conf.Optimizer == nil {
		return nil, fmt.Errorf("configuration has no optimizer section")
	}
	if err := conf.Optimizer.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Runner{
		logger:   logger,
		conf:     conf,
		engine:   projection.NewEngine(logger, conf.EngineOptions()),
		initial:  conf.InitialEvent(),
		existing: snap.Events(),
	}, nil
}

// Run searches the largest principal, in whole operation-cost multiples, whose
// reinvestment keeps the cumulative balance at or above the floor from the
// template's start period to the end of the horizon.
func (r *Runner) Run() (*Result, error) {
	cfg := r.conf.Optimizer
	category, err := schedule.ParseCategory(cfg.Category)
	if err != nil {
		return nil, err
	}
	template := cfg.Template.Fields()
	cost := template.OperationCost
	maxUnits := max(mathutil.FloorInt(cfg.MaxPrincipal/cost), 0)

	summary := optimization.Summary{
		Category:    string(category),
		StartPeriod: template.StartPeriod,
		Original:    template.Principal,
		Floor:       cfg.Floor,
	}

	lower := r.evaluate(0)
	upper := r.evaluate(maxUnits)
	best := lower
	iterations := 0

	switch {
	case !lower.feasible():
		summary.Notes = append(summary.Notes, fmt.Sprintf(
			"the balance already falls to %s before adding a reinvestment, below the floor of %s",
			r.conf.Formatter().Currency(lower.minBalance), r.conf.Formatter().Currency(cfg.Floor)))
	case upper.feasible():
		best = upper
		summary.Converged = true
		summary.Notes = append(summary.Notes, fmt.Sprintf(
			"the maximum principal of %s keeps the balance above the floor", r.conf.Formatter().Currency(cfg.MaxPrincipal)))
	default:
		lo, hi := lower.units, upper.units
		for iterations < cfg.MaxIterations && hi-lo > 1 {
			mid := lo + (hi-lo)/2
			eval := r.evaluate(mid)
			iterations++
			if eval.feasible() {
				best = eval
				lo = mid
			} else {
				hi = mid
			}
		}
		summary.Converged = hi-lo <= 1
		if !summary.Converged {
			summary.Notes = append(summary.Notes, fmt.Sprintf("search stopped after %d iterations", iterations))
		}
	}

	summary.Value = float64(best.units) * cost
	summary.Operations = best.units
	summary.MinimumBalance = best.minBalance
	summary.Headroom = best.headroom()
	summary.Iterations = iterations
	summary.ValueDisplay = r.conf.Formatter().Currency(summary.Value)

	r.logger.Info("optimizer sized reinvestment",
		zap.String("op", "optimizer.Run"),
		zap.String("category", summary.Category),
		zap.Int("startPeriod", summary.StartPeriod),
		zap.Float64("value", summary.Value),
		zap.Float64("floor", summary.Floor),
		zap.Float64("minimumBalance", summary.MinimumBalance),
		zap.Float64("headroom", summary.Headroom),
		zap.Int("iterations", summary.Iterations),
		zap.Bool("converged", summary.Converged),
	)

	fc, err := forecast.Run(r.logger, forecast.Request{
		Options:       r.conf.EngineOptions(),
		StartDate:     r.conf.StartDate,
		Initial:       r.initial,
		Reinvestments: r.withCandidate(best.units),
	})
	if err != nil {
		return nil, fmt.Errorf("optimizer forecast failed: %w", err)
	}

	return &Result{Summary: summary, Forecast: fc}, nil
}

// evaluate projects the fixed events plus a candidate of the given number of
// operations. Zero units means no candidate at all, since a zero principal
// still derives one operation.
func (r *Runner) evaluate(units int) evaluation {
	tl := r.engine.Project(r.initial, r.withCandidate(units))
	return evaluation{
		units:      units,
		minBalance: minBalanceFrom(tl, r.conf.Optimizer.Template.StartPeriod),
		floor:      r.conf.Optimizer.Floor,
	}
}

func (r *Runner) withCandidate(units int) []schedule.FundingEvent {
	events := append([]schedule.FundingEvent(nil), r.existing...)
	if units <= 0 {
		return events
	}
	fields := r.conf.Optimizer.Template.Fields()
	fields.Principal = float64(units) * fields.OperationCost
	return append(events, schedule.New(fields))
}

func minBalanceFrom(tl projection.Timeline, start int) float64 {
	if start >= tl.Len() {
		start = tl.Len() - 1
	}
	minimum := math.Inf(1)
	for t := start; t < tl.Len(); t++ {
		if tl.CumulativeBalance[t] < minimum {
			minimum = tl.CumulativeBalance[t]
		}
	}
	return minimum
}
