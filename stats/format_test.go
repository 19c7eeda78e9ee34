package stats

import (
	"math"
	"testing"
)

func TestFormatMicros(t *testing.T) {
	type spec struct {
		in  Value
		exp string
	}
	specs := []spec{
		spec{None, "---- ms"},
		spec{Some(50), "  50 μs"},
		spec{Some(1500), " 1.5 ms"},
		spec{Some(14666.67), "14.7 ms"},
		spec{Some(150000), " 150 ms"},
	}

	for index, s := range specs {
		if got := FormatMicros(s.in); got != s.exp {
			t.Fatalf("[spec %d] expected %q; got %q", index, s.exp, got)
		}
	}
}

func TestFormatRate(t *testing.T) {
	if got := FormatRate(math.NaN()); got != "--- fps" {
		t.Fatalf("expected dashes for NaN; got %q", got)
	}
	if got := FormatRate(59.7); got != " 60 fps" {
		t.Fatalf("expected \" 60 fps\"; got %q", got)
	}
}

func TestFormatCount(t *testing.T) {
	if got := FormatCount(1234567); got != "1,234,567" {
		t.Fatalf("expected grouped digits; got %q", got)
	}
}
