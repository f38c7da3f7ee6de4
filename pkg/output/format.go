// Package output provides utilities for formatting and displaying projection results.
package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/iwvelando/cashflow-forecast/pkg/format"
	"github.com/iwvelando/cashflow-forecast/pkg/projection"
)

// IndexColumn heads the period column of tables and CSV exports.
const IndexColumn = "Mes"

// PrettyFormat writes a human-readable table with formatted currency amounts.
func PrettyFormat(w io.Writer, tl projection.Timeline, labels []string, f format.Formatter) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	header := IndexColumn
	for _, col := range projection.Columns {
		header += "\t" + col
	}
	if _, err := fmt.Fprintln(tw, header+"\t"); err != nil {
		return err
	}

	for t, row := range tl.Rows() {
		line := label(labels, t)
		for _, cell := range FormatRow(row, f) {
			line += "\t" + cell
		}
		if _, err := fmt.Fprintln(tw, line+"\t"); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// PrettySummary writes the headline figures of a projection.
func PrettySummary(w io.Writer, s projection.Summary, f format.Formatter) error {
	breakEven := "nunca"
	if s.BreakEvenPeriod >= 0 {
		breakEven = strconv.Itoa(s.BreakEvenPeriod)
	}
	_, err := fmt.Fprintf(w,
		"--- Resumen ---\nTotal Cobrado: %s\nNo Cobro: %s\nReinversión: %s\nPagos Mensuales: %s\nSaldo Final: %s\nSaldo Mínimo: %s (mes %d)\nMes de Equilibrio: %s\nOperaciones Abiertas (máx.): %d\n",
		f.Currency(s.TotalCollected),
		f.Currency(s.TotalWrittenOff),
		f.Currency(s.TotalReinvested),
		f.Currency(s.TotalFixedPayments),
		f.Currency(s.FinalBalance),
		f.Currency(s.MinimumBalance), s.MinimumPeriod,
		breakEven,
		s.PeakOpenOperations,
	)
	return err
}

// CsvFormat writes the timeline as comma-separated values with an index
// column. Amounts are raw numbers unless a formatter is given.
func CsvFormat(w io.Writer, tl projection.Timeline, labels []string, f *format.Formatter) error {
	cw := csv.NewWriter(w)
	header := append([]string{IndexColumn}, projection.Columns...)
	if err := cw.Write(header); err != nil {
		return err
	}

	for t, row := range tl.Rows() {
		record := make([]string, 0, len(header))
		record = append(record, label(labels, t))
		if f != nil {
			record = append(record, FormatRow(row, *f)...)
		} else {
			values := row.Values()
			for _, v := range values[:len(values)-1] {
				record = append(record, strconv.FormatFloat(v, 'f', 2, 64))
			}
			record = append(record, strconv.Itoa(row.OpenOperations))
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// CsvString returns the CSV representation of the timeline.
func CsvString(tl projection.Timeline, labels []string, f *format.Formatter) (string, error) {
	var buf bytes.Buffer
	if err := CsvFormat(&buf, tl, labels, f); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// FormatRow renders a row in Columns order: amounts as currency and the
// open operation count as a plain integer.
func FormatRow(row projection.Row, f format.Formatter) []string {
	values := row.Values()
	cells := make([]string, 0, len(values))
	for _, v := range values[:len(values)-1] {
		cells = append(cells, f.Currency(v))
	}
	return append(cells, strconv.Itoa(row.OpenOperations))
}

func label(labels []string, t int) string {
	if t < len(labels) {
		return labels[t]
	}
	return strconv.Itoa(t)
}
