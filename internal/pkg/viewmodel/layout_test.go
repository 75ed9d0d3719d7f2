package viewmodel

import "testing"

func TestFormatCents(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{in: 0, want: "0.00"},
		{in: 5, want: "0.05"},
		{in: 30000, want: "300.00"},
		{in: 25050, want: "250.50"},
		{in: 45000, want: "450.00"},
		{in: -1999, want: "-19.99"},
	}

	for _, tt := range tests {
		if got := FormatCents(tt.in); got != tt.want {
			t.Fatalf("FormatCents(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
