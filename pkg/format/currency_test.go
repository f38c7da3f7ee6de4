package format

import "testing"

func TestCurrency(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		expected string
	}{
		{"zero", 0, "Gs. 0"},
		{"small", 999, "Gs. 999"},
		{"thousand", 1000, "Gs. 1.000"},
		{"installment", 1500000, "Gs. 1.500.000"},
		{"initial outlay", -300000000, "Gs. -300.000.000"},
		{"decimals truncated", 67500000.99, "Gs. 67.500.000"},
		{"negative decimals truncated toward zero", -1999.9, "Gs. -1.999"},
		{"negative below one unit", -0.4, "Gs. 0"},
		{"billions", 1050000000, "Gs. 1.050.000.000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Guarani.Currency(tt.amount); got != tt.expected {
				t.Errorf("Currency(%v) = %q, expected %q", tt.amount, got, tt.expected)
			}
		})
	}
}

func TestCustomFormatter(t *testing.T) {
	f := New("$", ",")
	if got := f.Currency(-1234567.5); got != "$-1,234,567" {
		t.Errorf("Currency() = %q, expected $-1,234,567", got)
	}
	if got := f.Number(12); got != "12" {
		t.Errorf("Number() = %q, expected 12", got)
	}

	f = New("", "")
	if f != Guarani {
		t.Errorf("New with empty settings = %+v, expected Guarani defaults", f)
	}
}
