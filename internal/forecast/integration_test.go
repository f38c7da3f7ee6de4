package forecast

import (
	"testing"

	"github.com/iwvelando/cashflow-forecast/internal/config"
	"github.com/iwvelando/cashflow-forecast/internal/session"
	"github.com/iwvelando/cashflow-forecast/pkg/testutil"
	"go.uber.org/zap"
)

// TestExampleConfiguration projects the shipped example configuration exactly
// as the project command does and checks the headline figures.
func TestExampleConfiguration(t *testing.T) {
	logger := zap.NewNop()

	conf, err := config.LoadConfiguration("../../config.yaml.example")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if err := conf.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if warnings := conf.ValidateConfiguration(); len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}

	book := session.NewBook(logger)
	if err := conf.LoadBook(book); err != nil {
		t.Fatalf("LoadBook() error = %v", err)
	}

	result, err := GetForecast(logger, *conf, book.Snapshot())
	if err != nil {
		t.Fatalf("GetForecast() error = %v", err)
	}

	tl := result.Timeline
	if tl.Len() != 60 {
		t.Fatalf("Len() = %d, expected 60", tl.Len())
	}

	// 50 operations collect 1,500,000 each in periods 1-14, then regulation
	// pays 50 * 500,000 * 40% in periods 20-24.
	inflows := make([]float64, 60)
	for p := 1; p <= 14; p++ {
		inflows[p] = 75000000
	}
	for p := 20; p <= 24; p++ {
		inflows[p] = 10000000
	}
	testutil.AssertColumn(t, "Inflows", tl.Inflows, inflows)

	balance := make([]float64, 60)
	running := -300000000.0
	for p := range balance {
		running += inflows[p]
		if p > 0 {
			running -= 5000000
		}
		balance[p] = running
	}
	testutil.AssertColumn(t, "CumulativeBalance", tl.CumulativeBalance, balance)
	testutil.AssertColumn(t, "AvailableForReinvestment", tl.AvailableForReinvestment, balance)

	s := result.Summary
	if s.BreakEvenPeriod != 5 {
		t.Errorf("BreakEvenPeriod = %d, expected 5", s.BreakEvenPeriod)
	}
	if s.FinalBalance != 505000000 {
		t.Errorf("FinalBalance = %.2f, expected 505000000", s.FinalBalance)
	}
	if s.PeakOpenOperations != 50 {
		t.Errorf("PeakOpenOperations = %d, expected 50", s.PeakOpenOperations)
	}
	if len(result.Discrepancies) != 0 {
		t.Errorf("unexpected discrepancies: %v", result.Discrepancies)
	}
	if result.Labels[0] != "0" || result.Labels[59] != "59" {
		t.Errorf("unexpected labels: %s..%s", result.Labels[0], result.Labels[59])
	}
}
