package core

import (
	"errors"
	"testing"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"4.50", 4.5, true},
		{"4,50", 4.5, true},
		{" 100 ", 100, true},
		{"0.01", 0.01, true},
		{"", 0, false},
		{"abc", 0, false},
		{"0", 0, false},
		{"-1", 0, false},
		{"NaN", 0, false},
		{"Inf", 0, false},
		{"1e400", 0, false}, // overflows float64 to +Inf
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if err != nil {
				t.Errorf("ParseAmount(%q) error = %v, want ok", tc.in, err)
				continue
			}
			if got != tc.want {
				t.Errorf("ParseAmount(%q) = %v, want %v", tc.in, got, tc.want)
			}
			continue
		}
		if !errors.Is(err, ErrInvalidAmount) {
			t.Errorf("ParseAmount(%q) error = %v, want ErrInvalidAmount", tc.in, err)
		}
	}
}
