package calculations

import (
	"math"
	"testing"
)

func TestBreakdown(t *testing.T) {
	summary := LoanSummary{
		Principal:     800,
		TotalInterest: 100,
		TotalTax:      60,
		ProcessingFee: 40,
	}

	slices := Breakdown(summary)
	if len(slices) != 4 {
		t.Fatalf("expected 4 slices, got %d", len(slices))
	}

	want := map[string]float64{
		SlicePrincipal:     0.8,
		SliceInterest:      0.1,
		SliceTax:           0.06,
		SliceProcessingFee: 0.04,
	}
	total := 0.0
	for _, s := range slices {
		if math.Abs(s.Share-want[s.Label]) > 1e-9 {
			t.Errorf("%s share = %v, want %v", s.Label, s.Share, want[s.Label])
		}
		total += s.Share
	}
	if math.Abs(total-1) > 1e-9 {
		t.Errorf("shares should add up to 1, got %v", total)
	}
}

func TestBreakdownZeroSlices(t *testing.T) {
	slices := Breakdown(LoanSummary{Principal: 12000})
	for _, s := range slices {
		if s.Label == SlicePrincipal {
			if s.Share != 1 {
				t.Errorf("principal share = %v, want 1", s.Share)
			}
			continue
		}
		if s.Share != 0 {
			t.Errorf("%s share = %v, want 0", s.Label, s.Share)
		}
	}
}
