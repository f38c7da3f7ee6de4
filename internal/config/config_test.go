package config

import (
	"errors"
	"strings"
	"testing"

	"github.com/iwvelando/cashflow-forecast/pkg/testutil"
	"github.com/iwvelando/cashflow-forecast/pkg/validation"
)

const sampleConfig = `
horizon: 60
startDate: "2025-01"
fixedPeriodicPayment: 5000000
initial:
  principal: 300000000
  operationCost: 6000000
  installmentCount: 14
  installmentAmount: 1500000
  noncollectionRate: 10
  regulation:
    gapPeriods: 6
    installmentCount: 5
    installmentAmount: 500000
    distributionPct: 40
reinvestments:
  - category: Compra
    startPeriod: 3
    principal: 12000000
    operationCost: 6000000
    installmentCount: 14
    installmentAmount: 1500000
  - category: Colocación
    startPeriod: 8
    principal: 6000000
    operationCost: 6000000
    installmentCount: 10
    installmentAmount: 1000000
    delayPeriods: 2
logging:
  level: debug
  format: console
output:
  format: csv
  currencyPrefix: "$"
  thousandsSeparator: ","
`

func TestLoadConfiguration(t *testing.T) {
	conf, err := LoadConfiguration(testutil.WriteFile(t, "config.yaml", sampleConfig))
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if conf.Horizon != 60 || conf.StartDate != "2025-01" {
		t.Errorf("unexpected horizon/startDate: %d %s", conf.Horizon, conf.StartDate)
	}
	if conf.FixedPeriodicPayment == nil || *conf.FixedPeriodicPayment != 5000000 {
		t.Errorf("unexpected fixedPeriodicPayment: %v", conf.FixedPeriodicPayment)
	}
	if !conf.WithRegulation {
		t.Error("expected withRegulation to default to true")
	}
	if conf.Initial.Principal != 300000000 || conf.Initial.NoncollectionRate != 10 {
		t.Errorf("unexpected initial event: %+v", conf.Initial)
	}
	if conf.Initial.Regulation == nil || conf.Initial.Regulation.DistributionPct != 40 {
		t.Fatalf("unexpected initial regulation: %+v", conf.Initial.Regulation)
	}
	if len(conf.Reinvestments) != 2 {
		t.Fatalf("expected 2 reinvestments, got %d", len(conf.Reinvestments))
	}
	second := conf.Reinvestments[1]
	if second.Category != "Colocación" || second.StartPeriod != 8 || second.DelayPeriods != 2 {
		t.Errorf("unexpected second reinvestment: %+v", second)
	}
	if conf.Logging.Level != "debug" || conf.Output.Format != "csv" || conf.Output.ThousandsSeparator != "," {
		t.Errorf("unexpected logging/output: %+v %+v", conf.Logging, conf.Output)
	}

	if err := conf.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
}

func TestLoadConfigurationDefaults(t *testing.T) {
	conf, err := LoadConfigurationFromReader(strings.NewReader(`
initial:
  principal: 6000000
  operationCost: 6000000
  installmentCount: 3
  installmentAmount: 100
`))
	if err != nil {
		t.Fatalf("LoadConfigurationFromReader() error = %v", err)
	}
	if conf.Horizon != 60 {
		t.Errorf("Horizon = %d, expected default 60", conf.Horizon)
	}
	if !conf.WithRegulation {
		t.Error("expected withRegulation default true")
	}
	if conf.FixedPeriodicPayment != nil {
		t.Errorf("expected no fixed payment, got %v", *conf.FixedPeriodicPayment)
	}
}

func TestLoadConfigurationErrors(t *testing.T) {
	if _, err := LoadConfiguration("nonexistent.yaml"); err == nil {
		t.Error("LoadConfiguration() expected error for missing file")
	}
	if _, err := LoadConfigurationFromReader(strings.NewReader("horizon: [")); err == nil {
		t.Error("LoadConfigurationFromReader() expected error for invalid YAML")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Configuration)
		wantErr string
		is      error
	}{
		{"valid", func(c *Configuration) {}, "", nil},
		{"zero horizon", func(c *Configuration) { c.Horizon = 0 }, "horizon must be positive", nil},
		{"bad start date", func(c *Configuration) { c.StartDate = "January" }, "invalid startDate", nil},
		{"negative payment", func(c *Configuration) { p := -1.0; c.FixedPeriodicPayment = &p }, "", validation.ErrNegativeValue},
		{"bad output format", func(c *Configuration) { c.Output.Format = "xml" }, "expected output format", nil},
		{"bad category", func(c *Configuration) { c.Reinvestments[0].Category = "venta" }, "unknown category", nil},
		{"reinvestment at zero", func(c *Configuration) { c.Reinvestments[0].StartPeriod = 0 }, "", validation.ErrOutOfRange},
		{"bad distribution", func(c *Configuration) { c.Initial.Regulation.DistributionPct = 10 }, "", validation.ErrInvalidDistribution},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf, err := LoadConfigurationFromReader(strings.NewReader(sampleConfig))
			if err != nil {
				t.Fatalf("LoadConfigurationFromReader() error = %v", err)
			}
			tt.mutate(conf)
			err = conf.Validate()
			if tt.wantErr == "" && tt.is == nil {
				if err != nil {
					t.Fatalf("Validate() unexpected error = %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() expected error but got none")
			}
			if tt.wantErr != "" && !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, expected it to mention %q", err, tt.wantErr)
			}
			if tt.is != nil && !errors.Is(err, tt.is) {
				t.Errorf("Validate() error = %v, expected %v", err, tt.is)
			}
		})
	}
}

func TestValidateConfiguration(t *testing.T) {
	conf, err := LoadConfigurationFromReader(strings.NewReader(sampleConfig))
	if err != nil {
		t.Fatalf("LoadConfigurationFromReader() error = %v", err)
	}
	if warnings := conf.ValidateConfiguration(); len(warnings) != 0 {
		t.Errorf("expected no warnings, got %v", warnings)
	}

	conf.WithRegulation = false
	conf.Reinvestments[1].StartPeriod = 55
	warnings := conf.ValidateConfiguration()
	if len(warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %v", warnings)
	}
	if !strings.Contains(warnings[0], "colocacion #2") {
		t.Errorf("unexpected warning: %s", warnings[0])
	}
	if !strings.Contains(warnings[1], "withRegulation is false") {
		t.Errorf("unexpected warning: %s", warnings[1])
	}
}
