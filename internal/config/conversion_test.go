package config

import (
	"strings"
	"testing"

	"github.com/iwvelando/cashflow-forecast/internal/session"
	"github.com/iwvelando/cashflow-forecast/pkg/schedule"
)

func TestEventConfigRoundTrip(t *testing.T) {
	f := schedule.DefaultReinvestmentFields()
	f.DelayPeriods = 2
	f.NoncollectionRate = 7.5

	back := FromFields(f).Fields()
	if back.DelayPeriods != 2 || back.NoncollectionRate != 7.5 || back.StartPeriod != 1 {
		t.Errorf("unexpected fields: %+v", back)
	}
	if back.Regulation == nil || *back.Regulation != *f.Regulation {
		t.Errorf("regulation lost in conversion: %+v", back.Regulation)
	}
	if FromFields(schedule.Fields{}).Regulation != nil {
		t.Error("expected nil regulation for fields without one")
	}
}

func TestInitialEventStartsAtZero(t *testing.T) {
	conf := &Configuration{Initial: EventConfig{StartPeriod: 4, Principal: 6000000, OperationCost: 6000000}}
	if got := conf.InitialEvent().StartPeriod(); got != 0 {
		t.Errorf("InitialEvent().StartPeriod() = %d, expected 0", got)
	}
}

func TestEngineOptionsAndFormatter(t *testing.T) {
	conf, err := LoadConfigurationFromReader(strings.NewReader(sampleConfig))
	if err != nil {
		t.Fatalf("LoadConfigurationFromReader() error = %v", err)
	}

	opts := conf.EngineOptions()
	if opts.Horizon != 60 || !opts.WithRegulation || *opts.FixedPeriodicPayment != 5000000 {
		t.Errorf("unexpected options: %+v", opts)
	}
	if got := conf.Formatter().Currency(-1234567); got != "$-1,234,567" {
		t.Errorf("Formatter().Currency() = %q", got)
	}

	labels, err := conf.PeriodLabels()
	if err != nil {
		t.Fatalf("PeriodLabels() error = %v", err)
	}
	if len(labels) != 60 || labels[12] != "2026-01" {
		t.Errorf("unexpected labels: %d %s", len(labels), labels[12])
	}
}

func TestLoadBook(t *testing.T) {
	conf, err := LoadConfigurationFromReader(strings.NewReader(sampleConfig))
	if err != nil {
		t.Fatalf("LoadConfigurationFromReader() error = %v", err)
	}

	book := session.NewBook(nil)
	if err := conf.LoadBook(book); err != nil {
		t.Fatalf("LoadBook() error = %v", err)
	}
	counts := book.Counts()
	if counts[schedule.CategoryCompra] != 1 || counts[schedule.CategoryColocacion] != 1 {
		t.Errorf("unexpected counts: %v", counts)
	}

	conf.Reinvestments[0].Category = "venta"
	if err := conf.LoadBook(session.NewBook(nil)); err == nil {
		t.Error("LoadBook() expected error for unknown category")
	}
}
