package utils

import "testing"

func TestAtoiDefault(t *testing.T) {
	cases := []struct {
		in   string
		def  int
		want int
	}{
		{"", 7, 7},
		{"42", 7, 42},
		{"-3", 7, -3},
		{"abc", 7, 7},
		{"4.5", 7, 7},
	}
	for _, tc := range cases {
		if got := AtoiDefault(tc.in, tc.def); got != tc.want {
			t.Errorf("AtoiDefault(%q, %d) = %d, want %d", tc.in, tc.def, got, tc.want)
		}
	}
}

func TestDaysInclusive(t *testing.T) {
	cases := []struct {
		name  string
		start string
		end   string
		want  int
	}{
		{"single day", "2025-07-01", "2025-07-01", 1},
		{"three days", "2025-07-01", "2025-07-03", 3},
		{"month boundary", "2025-06-30", "2025-07-01", 2},
		{"inverted range", "2025-07-10", "2025-07-01", 0},
		{"bad start", "July 1st", "2025-07-01", 0},
		{"bad end", "2025-07-01", "", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DaysInclusive(tc.start, tc.end); got != tc.want {
				t.Fatalf("DaysInclusive(%q, %q) = %d, want %d", tc.start, tc.end, got, tc.want)
			}
		})
	}
}
