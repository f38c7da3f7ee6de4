// Package testutil provides common utility functions for testing.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/iwvelando/cashflow-forecast/pkg/mathutil"
	"github.com/iwvelando/cashflow-forecast/pkg/projection"
)

// WriteFile writes contents to name inside a fresh temporary directory and
// returns the full path.
func WriteFile(t testing.TB, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(contents), 0600); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

// AssertColumn compares a timeline column against expected values within the
// currency tolerance.
func AssertColumn(t testing.TB, name string, got, expected []float64) {
	t.Helper()
	if len(got) != len(expected) {
		t.Fatalf("%s: got %d periods, expected %d", name, len(got), len(expected))
	}
	for i := range expected {
		if !mathutil.WithinTolerance(got[i], expected[i], projection.DefaultTolerance) {
			t.Errorf("%s[%d] = %.2f, expected %.2f", name, i, got[i], expected[i])
		}
	}
}
