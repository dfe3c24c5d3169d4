package export

import "testing"

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		input float64
		want  string
	}{
		{input: 0, want: "0.00"},
		{input: 999.999, want: "1,000.00"},
		{input: 4801.288326, want: "4,801.29"},
		{input: 100000, want: "1,00,000.00"},
		{input: 1234567.891, want: "12,34,567.89"},
		{input: 123456789, want: "12,34,56,789.00"},
		{input: -2741.5655, want: "-2,741.57"},
		{input: -0.001, want: "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatAmount(tt.input); got != tt.want {
				t.Errorf("FormatAmount(%v) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatPercent(t *testing.T) {
	if got := formatPercent(14); got != "14" {
		t.Errorf("formatPercent(14) = %q", got)
	}
	if got := formatPercent(9.99); got != "9.99" {
		t.Errorf("formatPercent(9.99) = %q", got)
	}
}
