package schedule

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Category groups reinvestment events the way the operator books them.
type Category string

const (
	CategoryCompra     Category = "compra"
	CategoryColocacion Category = "colocacion"
)

var titler = cases.Title(language.Spanish)

// Categories returns every reinvestment category in display order.
func Categories() []Category {
	return []Category{CategoryCompra, CategoryColocacion}
}

// ParseCategory maps user input such as "Colocación" or "COMPRA" onto a
// Category, ignoring case and diacritics.
func ParseCategory(value string) (Category, error) {
	folded, err := fold(value)
	if err != nil {
		return "", fmt.Errorf("failed to normalize category %q: %w", value, err)
	}
	for _, c := range Categories() {
		if folded == string(c) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", value)
}

// Title returns the display name of the category, e.g. "Colocación".
func (c Category) Title() string {
	switch c {
	case CategoryColocacion:
		return titler.String("colocación")
	default:
		return titler.String(string(c))
	}
}

func fold(value string) (string, error) {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, strings.TrimSpace(value))
	if err != nil {
		return "", err
	}
	return strings.ToLower(out), nil
}
