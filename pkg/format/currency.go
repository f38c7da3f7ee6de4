// Package format renders projection amounts for display.
package format

import (
	"math"
	"strconv"
	"strings"

	"github.com/iwvelando/cashflow-forecast/pkg/constants"
)

// Formatter renders amounts as whole currency units with a fixed prefix and a
// thousands separator. Decimals are truncated, not rounded.
type Formatter struct {
	Prefix    string
	Separator string
}

// Guarani is the default formatter, e.g. "Gs. 1.500.000".
var Guarani = Formatter{Prefix: constants.DefaultCurrencyPrefix, Separator: constants.DefaultThousandsSeparator}

// New returns a formatter, falling back to the Guarani defaults for empty
// settings.
func New(prefix, separator string) Formatter {
	f := Guarani
	if prefix != "" {
		f.Prefix = prefix
	}
	if separator != "" {
		f.Separator = separator
	}
	return f
}

// Currency returns the formatted amount, e.g. "Gs. -300.000.000".
func (f Formatter) Currency(amount float64) string {
	return f.Prefix + f.Number(amount)
}

// Number returns the truncated, grouped amount without the prefix.
func (f Formatter) Number(amount float64) string {
	whole := math.Trunc(amount)
	sign := ""
	if whole < 0 {
		sign = "-"
		whole = -whole
	}
	return sign + group(strconv.FormatFloat(whole, 'f', 0, 64), f.Separator)
}

func group(digits, sep string) string {
	if len(digits) <= 3 {
		return digits
	}
	var builder strings.Builder
	for i, digit := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			builder.WriteString(sep)
		}
		builder.WriteRune(digit)
	}
	return builder.String()
}
