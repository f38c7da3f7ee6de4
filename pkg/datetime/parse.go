// Package datetime provides date and time utility functions.
package datetime

import (
	"fmt"
	"time"

	"github.com/iwvelando/cashflow-forecast/pkg/constants"
)

const (
	// DateTimeLayout is the format expected in config files and is also the
	// period label format.
	DateTimeLayout = constants.DateTimeLayout
)

// OffsetDate returns the string-formatted date offset by the given number of
// months relative to the given date.
func OffsetDate(date, layout string, months int) (string, error) {
	t, err := time.Parse(layout, date)
	if err != nil {
		return date, err
	}
	return t.AddDate(0, months, 0).Format(layout), nil
}

// PeriodLabels names every period of a projection. With an empty start date
// the labels are the period indexes; otherwise period t is labelled with the
// month t months after start.
func PeriodLabels(start string, horizon int) ([]string, error) {
	labels := make([]string, horizon)
	if start == "" {
		for t := range labels {
			labels[t] = fmt.Sprintf("%d", t)
		}
		return labels, nil
	}

	startT, err := time.Parse(DateTimeLayout, start)
	if err != nil {
		return nil, fmt.Errorf("invalid start date %q: %w", start, err)
	}
	for t := range labels {
		labels[t] = startT.AddDate(0, t, 0).Format(DateTimeLayout)
	}
	return labels, nil
}
