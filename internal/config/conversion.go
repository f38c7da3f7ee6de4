package config

import (
	"fmt"

	"github.com/iwvelando/cashflow-forecast/internal/session"
	"github.com/iwvelando/cashflow-forecast/pkg/datetime"
	"github.com/iwvelando/cashflow-forecast/pkg/format"
	"github.com/iwvelando/cashflow-forecast/pkg/projection"
	"github.com/iwvelando/cashflow-forecast/pkg/schedule"
)

// Fields converts the configured event into schedule fields.
func (e EventConfig) Fields() schedule.Fields {
	f := schedule.Fields{
		StartPeriod:       e.StartPeriod,
		Principal:         e.Principal,
		OperationCost:     e.OperationCost,
		InstallmentCount:  e.InstallmentCount,
		InstallmentAmount: e.InstallmentAmount,
		DelayPeriods:      e.DelayPeriods,
		NoncollectionRate: e.NoncollectionRate,
	}
	if e.Regulation != nil {
		f.Regulation = &schedule.Regulation{
			GapPeriods:        e.Regulation.GapPeriods,
			InstallmentCount:  e.Regulation.InstallmentCount,
			InstallmentAmount: e.Regulation.InstallmentAmount,
			DistributionPct:   e.Regulation.DistributionPct,
		}
	}
	return f
}

// FromFields converts schedule fields back into their configuration form.
func FromFields(f schedule.Fields) EventConfig {
	e := EventConfig{
		StartPeriod:       f.StartPeriod,
		Principal:         f.Principal,
		OperationCost:     f.OperationCost,
		InstallmentCount:  f.InstallmentCount,
		InstallmentAmount: f.InstallmentAmount,
		DelayPeriods:      f.DelayPeriods,
		NoncollectionRate: f.NoncollectionRate,
	}
	if f.Regulation != nil {
		e.Regulation = &RegulationConfig{
			GapPeriods:        f.Regulation.GapPeriods,
			InstallmentCount:  f.Regulation.InstallmentCount,
			InstallmentAmount: f.Regulation.InstallmentAmount,
			DistributionPct:   f.Regulation.DistributionPct,
		}
	}
	return e
}

// InitialEvent builds the initial investment. Its start period is always 0.
func (c *Configuration) InitialEvent() schedule.FundingEvent {
	f := c.Initial.Fields()
	f.StartPeriod = 0
	return schedule.New(f)
}

// EngineOptions returns the projection options selected by the configuration.
func (c *Configuration) EngineOptions() projection.Options {
	return projection.Options{
		Horizon:              c.Horizon,
		WithRegulation:       c.WithRegulation,
		FixedPeriodicPayment: c.FixedPeriodicPayment,
	}
}

// Formatter returns the currency formatter selected by the output settings.
func (c *Configuration) Formatter() format.Formatter {
	return format.New(c.Output.CurrencyPrefix, c.Output.ThousandsSeparator)
}

// PeriodLabels names each period of the horizon, by calendar month when a
// start date is configured.
func (c *Configuration) PeriodLabels() ([]string, error) {
	horizon := c.Horizon
	if horizon <= 0 {
		horizon = projection.NewEngine(nil, c.EngineOptions()).Horizon()
	}
	return datetime.PeriodLabels(c.StartDate, horizon)
}

// LoadBook adds every configured reinvestment to the book.
func (c *Configuration) LoadBook(book *session.Book) error {
	for i, reinv := range c.Reinvestments {
		category, err := schedule.ParseCategory(reinv.Category)
		if err != nil {
			return fmt.Errorf("%s: %w", reinv.Name(i), err)
		}
		if _, err := book.Add(category, schedule.New(reinv.Fields())); err != nil {
			return fmt.Errorf("%s: %w", reinv.Name(i), err)
		}
	}
	return nil
}
