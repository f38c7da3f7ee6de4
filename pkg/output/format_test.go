package output

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/iwvelando/cashflow-forecast/pkg/format"
	"github.com/iwvelando/cashflow-forecast/pkg/projection"
	"github.com/iwvelando/cashflow-forecast/pkg/schedule"
)

func sampleTimeline() projection.Timeline {
	engine := projection.NewEngine(nil, projection.Options{Horizon: 6})
	return engine.Project(schedule.New(schedule.Fields{
		Principal:         300000000,
		OperationCost:     6000000,
		InstallmentCount:  3,
		InstallmentAmount: 1500000,
	}), nil)
}

func TestCsvFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := CsvFormat(&buf, sampleTimeline(), nil, nil); err != nil {
		t.Fatalf("CsvFormat() error = %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("failed to read CSV back: %v", err)
	}
	if len(records) != 7 {
		t.Fatalf("expected header plus 6 rows, got %d records", len(records))
	}
	if records[0][0] != IndexColumn || records[0][1] != projection.ColumnInflows {
		t.Errorf("unexpected header: %v", records[0])
	}
	if len(records[0]) != len(projection.Columns)+1 {
		t.Errorf("header has %d columns, expected %d", len(records[0]), len(projection.Columns)+1)
	}
	if records[1][0] != "0" || records[1][5] != "-300000000.00" {
		t.Errorf("unexpected first row: %v", records[1])
	}
	if records[2][1] != "75000000.00" || records[2][9] != "50" {
		t.Errorf("unexpected second row: %v", records[2])
	}
}

func TestCsvFormatWithFormatterAndLabels(t *testing.T) {
	labels := []string{"2025-01", "2025-02", "2025-03", "2025-04", "2025-05", "2025-06"}
	out, err := CsvString(sampleTimeline(), labels, &format.Guarani)
	if err != nil {
		t.Fatalf("CsvString() error = %v", err)
	}
	if !strings.Contains(out, `2025-02,Gs. 75.000.000`) {
		t.Errorf("expected formatted second row, got:\n%s", out)
	}
	if !strings.Contains(out, "Gs. -300.000.000") {
		t.Errorf("expected formatted opening balance, got:\n%s", out)
	}
}

func TestPrettyFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := PrettyFormat(&buf, sampleTimeline(), nil, format.Guarani); err != nil {
		t.Fatalf("PrettyFormat() error = %v", err)
	}
	out := buf.String()

	for _, col := range projection.Columns {
		if !strings.Contains(out, col) {
			t.Errorf("PrettyFormat missing column %s", col)
		}
	}
	if !strings.Contains(out, "Gs. 75.000.000") {
		t.Errorf("PrettyFormat missing inflow value")
	}
	if lines := strings.Count(out, "\n"); lines != 7 {
		t.Errorf("PrettyFormat wrote %d lines, expected 7", lines)
	}
}

func TestPrettySummary(t *testing.T) {
	var buf bytes.Buffer
	s := sampleTimeline().Summary()
	if err := PrettySummary(&buf, s, format.Guarani); err != nil {
		t.Fatalf("PrettySummary() error = %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Total Cobrado: Gs. 225.000.000") {
		t.Errorf("unexpected summary:\n%s", out)
	}
	if !strings.Contains(out, "Mes de Equilibrio: nunca") {
		t.Errorf("expected no break-even period:\n%s", out)
	}
}

func TestFormatRow(t *testing.T) {
	row := projection.Row{Inflows: 1500000.75, CumulativeBalance: -300000000, OpenOperations: 50}
	cells := FormatRow(row, format.Guarani)
	if len(cells) != len(projection.Columns) {
		t.Fatalf("expected %d cells, got %d", len(projection.Columns), len(cells))
	}
	if cells[0] != "Gs. 1.500.000" {
		t.Errorf("inflows cell = %q", cells[0])
	}
	if cells[4] != "Gs. -300.000.000" {
		t.Errorf("balance cell = %q", cells[4])
	}
	if cells[len(cells)-1] != "50" {
		t.Errorf("open operations cell = %q", cells[len(cells)-1])
	}
}
