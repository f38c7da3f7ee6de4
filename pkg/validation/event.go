package validation

import (
	"errors"
	"fmt"

	"github.com/iwvelando/cashflow-forecast/pkg/mathutil"
	"github.com/iwvelando/cashflow-forecast/pkg/schedule"
)

var (
	// ErrNegativeValue is returned for amounts or counts below zero.
	ErrNegativeValue = errors.New("value must not be negative")
	// ErrOutOfRange is returned for values outside their allowed interval.
	ErrOutOfRange = errors.New("value out of range")
	// ErrInvalidDistribution is returned for distribution shares other than
	// 20, 40, 60 or 80 percent.
	ErrInvalidDistribution = errors.New("invalid distribution percentage")
)

// ValidateFields rejects event parameters the projection engine does not
// accept. Reinvestments must start at period 1 or later; the initial
// investment always starts at period 0. All problems are reported together.
func ValidateFields(name string, f schedule.Fields, reinvestment bool) error {
	var errs []error
	check := func(ok bool, field string, sentinel error, value interface{}) {
		if !ok {
			errs = append(errs, fmt.Errorf("%s: %s %v: %w", name, field, value, sentinel))
		}
	}

	check(f.Principal >= 0, "principal", ErrNegativeValue, f.Principal)
	check(f.OperationCost > 0, "operationCost", ErrOutOfRange, f.OperationCost)
	check(f.InstallmentCount >= 1, "installmentCount", ErrOutOfRange, f.InstallmentCount)
	check(f.InstallmentAmount >= 0, "installmentAmount", ErrNegativeValue, f.InstallmentAmount)
	check(f.DelayPeriods >= 0, "delayPeriods", ErrNegativeValue, f.DelayPeriods)
	check(f.NoncollectionRate >= 0 && f.NoncollectionRate <= 100, "noncollectionRate", ErrOutOfRange, f.NoncollectionRate)
	if reinvestment {
		check(f.StartPeriod >= 1, "startPeriod", ErrOutOfRange, f.StartPeriod)
	} else {
		check(f.StartPeriod == 0, "startPeriod", ErrOutOfRange, f.StartPeriod)
	}

	if reg := f.Regulation; reg != nil {
		check(reg.GapPeriods >= 0, "regulation.gapPeriods", ErrNegativeValue, reg.GapPeriods)
		check(reg.InstallmentCount >= 0, "regulation.installmentCount", ErrNegativeValue, reg.InstallmentCount)
		check(reg.InstallmentAmount >= 0, "regulation.installmentAmount", ErrNegativeValue, reg.InstallmentAmount)
		check(schedule.ValidDistribution(reg.DistributionPct), "regulation.distributionPct", ErrInvalidDistribution, reg.DistributionPct)
	}

	return errors.Join(errs...)
}

// EventWarnings reports parameters that are valid but leave part of the event
// invisible in a projection of the given horizon.
func EventWarnings(name string, f schedule.Fields, horizon int) []string {
	var warnings []string
	event := schedule.New(f)

	if f.StartPeriod >= horizon {
		warnings = append(warnings, fmt.Sprintf("%s starts at period %d, after the horizon of %d periods; its principal is booked in the last period",
			name, f.StartPeriod, horizon))
	}

	base, lead := f.StartPeriod, 0
	if f.StartPeriod == 0 {
		lead = 1
	}
	if last := mathutil.SaturatingAdd(base, lead, f.DelayPeriods, f.InstallmentCount, -1); last >= horizon {
		warnings = append(warnings, fmt.Sprintf("%s collects installments until period %d, past the horizon of %d periods",
			name, last, horizon))
	}

	if f.Regulation != nil && f.Regulation.InstallmentCount > 0 {
		if last := mathutil.SaturatingAdd(event.RegulationStart(base), f.Regulation.InstallmentCount, -1); last >= horizon {
			warnings = append(warnings, fmt.Sprintf("%s collects regulation fees until period %d, past the horizon of %d periods",
				name, last, horizon))
		}
	}

	if event.Operations() == 0 {
		warnings = append(warnings, fmt.Sprintf("%s has no operations and generates no collections", name))
	}

	return warnings
}
