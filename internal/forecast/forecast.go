// Package forecast defines the data structures related to a given forecast and
// includes functions for computing the forecasts.
package forecast

import (
	"fmt"

	"github.com/iwvelando/cashflow-forecast/internal/config"
	"github.com/iwvelando/cashflow-forecast/internal/session"
	"github.com/iwvelando/cashflow-forecast/pkg/datetime"
	"github.com/iwvelando/cashflow-forecast/pkg/projection"
	"github.com/iwvelando/cashflow-forecast/pkg/schedule"
	"github.com/iwvelando/cashflow-forecast/pkg/validation"
	"go.uber.org/zap"
)

// Forecast holds all information related to a specific projection.
type Forecast struct {
	Timeline      projection.Timeline
	Labels        []string
	Summary       projection.Summary
	Discrepancies []projection.Discrepancy
	Notes         []string
}

// Request describes one projection run independently of where its inputs
// came from.
type Request struct {
	Options       projection.Options
	StartDate     string
	Initial       schedule.FundingEvent
	Reinvestments []schedule.FundingEvent
}

// GetForecast projects the configured initial investment together with the
// reinvestments in snap. Configured reinvestments reach the projection through
// the book; see config.Configuration.LoadBook.
func GetForecast(logger *zap.Logger, conf config.Configuration, snap session.Snapshot) (Forecast, error) {
	return Run(logger, Request{
		Options:       conf.EngineOptions(),
		StartDate:     conf.StartDate,
		Initial:       conf.InitialEvent(),
		Reinvestments: snap.Events(),
	})
}

// Run computes a single projection.
func Run(logger *zap.Logger, req Request) (Forecast, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	engine := projection.NewEngine(logger, req.Options)
	labels, err := datetime.PeriodLabels(req.StartDate, engine.Horizon())
	if err != nil {
		return Forecast{}, err
	}

	tl := engine.Project(req.Initial, req.Reinvestments)
	result := Forecast{
		Timeline:      tl,
		Labels:        labels,
		Summary:       tl.Summary(),
		Discrepancies: tl.Discrepancies(projection.DefaultTolerance),
	}

	result.Notes = append(result.Notes, validation.EventWarnings("initial investment", req.Initial.Fields(), engine.Horizon())...)
	for i, event := range req.Reinvestments {
		result.Notes = append(result.Notes, validation.EventWarnings(fmt.Sprintf("reinvestment #%d", i+1), event.Fields(), engine.Horizon())...)
	}

	if len(result.Discrepancies) > 0 {
		logger.Debug(fmt.Sprintf("available-for-reinvestment differs from the cumulative balance in %d periods", len(result.Discrepancies)),
			zap.String("op", "forecast.Run"),
		)
	}
	logger.Debug("projection computed",
		zap.String("op", "forecast.Run"),
		zap.Int("horizon", engine.Horizon()),
		zap.Int("reinvestments", len(req.Reinvestments)),
		zap.Float64("finalBalance", result.Summary.FinalBalance),
	)

	return result, nil
}
