// Package projection superimposes the collection schedules of funding events
// onto a fixed-length monthly timeline and derives the running balances.
package projection

import (
	"github.com/iwvelando/cashflow-forecast/pkg/constants"
	"github.com/iwvelando/cashflow-forecast/pkg/mathutil"
	"github.com/iwvelando/cashflow-forecast/pkg/schedule"
	"go.uber.org/zap"
)

// Options selects which optional features the engine models.
type Options struct {
	// Horizon is the number of periods in the timeline. Values <= 0 use
	// constants.DefaultHorizon.
	Horizon int
	// WithRegulation enables the regulation sub-schedules of events.
	WithRegulation bool
	// FixedPeriodicPayment, when set, is deducted in every period >= 1.
	FixedPeriodicPayment *float64
}

// DefaultOptions returns the options of the projection form: the default
// horizon, regulation enabled and the default fixed periodic payment.
func DefaultOptions() Options {
	payment := constants.DefaultFixedPeriodicPayment
	return Options{
		Horizon:              constants.DefaultHorizon,
		WithRegulation:       true,
		FixedPeriodicPayment: &payment,
	}
}

// Engine computes projections. It holds no mutable state and is safe to share
// between goroutines.
type Engine struct {
	logger *zap.Logger
	opts   Options
}

// NewEngine creates a projection engine with the given options.
// If logger is nil, it will use a no-op logger to prevent panics.
func NewEngine(logger *zap.Logger, opts Options) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Horizon <= 0 {
		opts.Horizon = constants.DefaultHorizon
	}
	if opts.FixedPeriodicPayment != nil {
		payment := *opts.FixedPeriodicPayment
		opts.FixedPeriodicPayment = &payment
	}
	return &Engine{logger: logger, opts: opts}
}

// Horizon returns the number of periods every projection covers.
func (e *Engine) Horizon() int {
	return e.opts.Horizon
}

// Options returns a copy of the engine options.
func (e *Engine) Options() Options {
	opts := e.opts
	if opts.FixedPeriodicPayment != nil {
		payment := *opts.FixedPeriodicPayment
		opts.FixedPeriodicPayment = &payment
	}
	return opts
}

// Project builds the timeline for the initial investment plus every
// reinvestment. The initial event always starts at period 0 and its first
// collection lands one period after the outlay; reinvestments collect from
// their own start period. Schedule entries at or past the horizon are dropped.
func (e *Engine) Project(initial schedule.FundingEvent, reinvestments []schedule.FundingEvent) Timeline {
	tl := newTimeline(e.opts.Horizon)

	e.logger.Debug("projecting cash flow",
		zap.String("op", "projection.Project"),
		zap.Int("horizon", e.opts.Horizon),
		zap.Int("reinvestments", len(reinvestments)),
		zap.Bool("withRegulation", e.opts.WithRegulation),
	)

	tl.opening = -initial.Principal()
	e.superpose(&tl, initial, 0, 1)

	for _, reinv := range reinvestments {
		period := reinv.StartPeriod()
		if period > tl.horizon-1 {
			period = tl.horizon - 1
		}
		if period < 0 {
			period = 0
		}
		tl.Reinvestment[period] += reinv.Principal()
		e.superpose(&tl, reinv, reinv.StartPeriod(), 0)
	}

	if e.opts.FixedPeriodicPayment != nil {
		for t := 1; t < tl.horizon; t++ {
			tl.FixedPayment[t] = *e.opts.FixedPeriodicPayment
		}
	}

	tl.derive()
	return tl
}

// superpose adds the regular and regulation collections of one event. base is
// the period the event's clock starts from and lead shifts the regular
// installments relative to it.
func (e *Engine) superpose(tl *Timeline, event schedule.FundingEvent, base, lead int) {
	ops := float64(event.Operations())
	rate := event.NoncollectionRate()

	gross := ops * event.InstallmentAmount()
	first := mathutil.SaturatingAdd(base, lead, event.DelayPeriods())
	lo, hi := tl.span(first, event.InstallmentCount())
	for i := lo; i < hi; i++ {
		t := first + i
		tl.Inflows[t] += mathutil.Complement(gross, rate)
		tl.WriteOff[t] += mathutil.ApplyPercentage(gross, rate)
		tl.OpenOperations[t] = mathutil.SaturatingAdd(tl.OpenOperations[t], event.Operations())
	}

	if dropped := max(event.InstallmentCount(), 0) - (hi - lo); dropped > 0 {
		e.logger.Debug("installments fall outside the horizon",
			zap.String("op", "projection.superpose"),
			zap.Int("startPeriod", base),
			zap.Int("dropped", dropped),
		)
	}

	reg, ok := event.Regulation()
	if !e.opts.WithRegulation || !ok {
		return
	}

	// Regulation fees belong to operations already counted above, so they never
	// touch OpenOperations.
	regGross := ops * mathutil.ApplyPercentage(reg.InstallmentAmount, float64(reg.DistributionPct))
	start := event.RegulationStart(base)
	lo, hi = tl.span(start, reg.InstallmentCount)
	for i := lo; i < hi; i++ {
		t := start + i
		tl.Inflows[t] += mathutil.Complement(regGross, rate)
		tl.WriteOff[t] += mathutil.ApplyPercentage(regGross, rate)
	}
}
