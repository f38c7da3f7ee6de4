package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iwvelando/cashflow-forecast/internal/config"
	"github.com/iwvelando/cashflow-forecast/pkg/optimization"
	"github.com/iwvelando/cashflow-forecast/pkg/testutil"
)

const testConfig = `
horizon: 6
startDate: "2025-01"
withRegulation: false
initial:
  principal: 6000000
  operationCost: 6000000
  installmentCount: 4
  installmentAmount: 2000000
reinvestments:
  - category: compra
    startPeriod: 2
    principal: 1000000
    operationCost: 1000000
    installmentCount: 1
    installmentAmount: 0
optimizer:
  category: colocacion
  floor: 0
  template:
    startPeriod: 4
    principal: 1000000
    operationCost: 1000000
    installmentCount: 1
    installmentAmount: 0
logging:
  level: error
`

func writeTestConfig(t *testing.T) string {
	t.Helper()
	return testutil.WriteFile(t, "config.yaml", testConfig)
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version error = %v", err)
	}
	if strings.TrimSpace(out) != version {
		t.Errorf("version output = %q, expected %q", out, version)
	}
}

func TestProjectCommandCSV(t *testing.T) {
	out, err := execute(t, "project", "--config", writeTestConfig(t), "--output-format", "csv")
	if err != nil {
		t.Fatalf("project error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 7 {
		t.Fatalf("expected header plus 6 rows, got %d lines:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "Mes,Ingresos,Reinversión") {
		t.Errorf("unexpected header: %s", lines[0])
	}
	// Period 2: -6,000,000 + 2 * 2,000,000 collected - 1,000,000 reinvested.
	if !strings.HasPrefix(lines[3], "2025-03,2000000.00,1000000.00,0.00,4000000.00,-3000000.00,") {
		t.Errorf("unexpected period 2 row: %s", lines[3])
	}
}

func TestProjectCommandPrettySummary(t *testing.T) {
	out, err := execute(t, "project", "--config", writeTestConfig(t), "--summary")
	if err != nil {
		t.Fatalf("project error = %v", err)
	}
	if !strings.Contains(out, "Gs. -6.000.000") {
		t.Errorf("expected formatted opening balance in output:\n%s", out)
	}
	if !strings.Contains(out, "--- Resumen ---") {
		t.Errorf("expected summary in output:\n%s", out)
	}
}

func TestProjectCommandErrors(t *testing.T) {
	if _, err := execute(t, "project", "--config", filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing configuration")
	}
	if _, err := execute(t, "project", "--config", writeTestConfig(t), "--output-format", "xml"); err == nil {
		t.Error("expected error for invalid output format")
	}
	if _, err := execute(t, "project", "--config", writeTestConfig(t), "--log-level", "verbose"); err == nil {
		t.Error("expected error for invalid log level")
	}
}

func TestOptimizeCommandJSON(t *testing.T) {
	out, err := execute(t, "optimize", "--config", writeTestConfig(t), "--json")
	if err != nil {
		t.Fatalf("optimize error = %v", err)
	}

	var summary optimization.Summary
	if err := json.Unmarshal([]byte(out), &summary); err != nil {
		t.Fatalf("failed to decode optimizer output: %v\n%s", err, out)
	}
	// Periods 4 and 5 hold 8,000,000 - 6,000,000 - 1,000,000 = 1,000,000.
	if summary.Value != 1000000 || !summary.Converged {
		t.Errorf("unexpected optimizer summary: %+v", summary)
	}
}

func TestInitializeLogger(t *testing.T) {
	tests := []struct {
		name     string
		config   config.LoggingConfig
		override string
		wantErr  bool
	}{
		{"defaults", config.LoggingConfig{}, "", false},
		{"console debug", config.LoggingConfig{Level: "debug", Format: "console"}, "", false},
		{"override wins", config.LoggingConfig{Level: "bogus"}, "warn", false},
		{"invalid level", config.LoggingConfig{Level: "bogus"}, "", true},
		{"invalid format", config.LoggingConfig{Format: "xml"}, "", true},
		{"output file", config.LoggingConfig{OutputFile: filepath.Join(t.TempDir(), "logs", "app.log")}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := initializeLogger(tt.config, tt.override)
			if (err != nil) != tt.wantErr {
				t.Fatalf("initializeLogger() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				_ = logger.Sync()
			}
		})
	}
}
