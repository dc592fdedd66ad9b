package engine

import "testing"

func TestFormatCount(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{1234.6, "1,235"},
		{-1234, "-1,234"},
	}
	for _, c := range cases {
		if got := FormatCount(c.in); got != c.want {
			t.Errorf("FormatCount(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatSigned(t *testing.T) {
	if got := FormatSigned(1234); got != "+1,234" {
		t.Errorf("FormatSigned(1234) = %q, want +1,234", got)
	}
	if got := FormatSigned(-500); got != "-500" {
		t.Errorf("FormatSigned(-500) = %q, want -500", got)
	}
	if got := FormatSigned(0); got != "+0" {
		t.Errorf("FormatSigned(0) = %q, want +0", got)
	}
}

func TestFormatPct(t *testing.T) {
	if got := FormatPct(nil); got != "n/a" {
		t.Errorf("FormatPct(nil) = %q, want n/a", got)
	}
	if got := FormatPct(ptr(5.25)); got != "5.2%" {
		t.Errorf("FormatPct(5.25) = %q, want 5.2%%", got)
	}
	if got := FormatPct(ptr(-3.0)); got != "-3.0%" {
		t.Errorf("FormatPct(-3.0) = %q, want -3.0%%", got)
	}
}

func TestFormatDelta(t *testing.T) {
	if got := FormatDelta(nil, nil); got != "n/a" {
		t.Errorf("FormatDelta(nil, nil) = %q, want n/a", got)
	}
	if got := FormatDelta(ptr(1234), nil); got != "+1,234" {
		t.Errorf("FormatDelta(1234, nil) = %q, want +1,234", got)
	}
	if got := FormatDelta(ptr(1234), ptr(5.2)); got != "+1,234 (5.2%)" {
		t.Errorf("FormatDelta(1234, 5.2) = %q, want +1,234 (5.2%%)", got)
	}
}
