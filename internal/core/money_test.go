package core

import "testing"

func TestParseAmountToCents(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"1", 100, true},
		{"1.0", 100, true},
		{"1.23", 123, true},
		{"1,23", 123, true},
		{"0.01", 1, true},
		{"1.005", 101, true}, // half-up rounding
		{" 2.50 ", 250, true},
		{"0", 0, true}, // zero magnitude is a valid movement
		{"-1", 0, false},
		{"+1", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseAmountToCents(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
		}
	}
}

func TestHalfUp(t *testing.T) {
	cases := []struct{ in, out int64 }{
		{0, 0},
		{40, 20},
		{41, 21},
		{100, 50},
		{101, 51},
	}
	for _, tc := range cases {
		if got := HalfUp(tc.in); got != tc.out {
			t.Fatalf("HalfUp(%d) = %d, want %d", tc.in, got, tc.out)
		}
	}
}
