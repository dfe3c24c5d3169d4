package calculations

import (
	"errors"
	"testing"
)

func TestBillingCycleDerive(t *testing.T) {
	tests := []struct {
		name        string
		cycle       BillingCycle
		transaction string
		wantBilling string
		wantDue     string
		wantError   error
	}{
		{
			name:        "before statement day",
			cycle:       DefaultBillingCycle,
			transaction: "2024-01-05",
			wantBilling: "2024-01-20",
			wantDue:     "2024-02-09",
		},
		{
			name:        "on statement day",
			cycle:       DefaultBillingCycle,
			transaction: "2024-01-20",
			wantBilling: "2024-01-20",
			wantDue:     "2024-02-09",
		},
		{
			name:        "after statement day rolls to next month",
			cycle:       DefaultBillingCycle,
			transaction: "2024-01-21",
			wantBilling: "2024-02-20",
			wantDue:     "2024-03-11",
		},
		{
			name:        "december rolls into next year",
			cycle:       DefaultBillingCycle,
			transaction: "2024-12-25",
			wantBilling: "2025-01-20",
			wantDue:     "2025-02-09",
		},
		{
			name:        "custom cycle",
			cycle:       BillingCycle{StatementDay: 5, GraceDays: 15},
			transaction: "2023-02-06",
			wantBilling: "2023-03-05",
			wantDue:     "2023-03-20",
		},
		{
			name:        "invalid transaction date",
			cycle:       DefaultBillingCycle,
			transaction: "2024-13-01",
			wantError:   ErrInvalidDate,
		},
		{
			name:        "statement day that does not exist in every month",
			cycle:       BillingCycle{StatementDay: 31, GraceDays: 20},
			transaction: "2024-01-05",
			wantError:   ErrInvalidInput,
		},
		{
			name:        "negative grace period",
			cycle:       BillingCycle{StatementDay: 20, GraceDays: -1},
			transaction: "2024-01-05",
			wantError:   ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.cycle.Derive(tt.transaction)
			if tt.wantError != nil {
				if !errors.Is(err, tt.wantError) {
					t.Fatalf("Derive() error = %v, want %v", err, tt.wantError)
				}
				return
			}
			if err != nil {
				t.Fatalf("Derive() unexpected error: %v", err)
			}
			if got.BillingDate != tt.wantBilling {
				t.Errorf("BillingDate = %s, want %s", got.BillingDate, tt.wantBilling)
			}
			if got.DueDate != tt.wantDue {
				t.Errorf("DueDate = %s, want %s", got.DueDate, tt.wantDue)
			}
			if got.TransactionDate != tt.transaction {
				t.Errorf("TransactionDate = %s, want %s", got.TransactionDate, tt.transaction)
			}
		})
	}
}

func TestDerivedCycleFeedsProration(t *testing.T) {
	dates, err := DefaultBillingCycle.Derive("2024-01-05")
	if err != nil {
		t.Fatalf("Derive() error = %v", err)
	}

	result, err := AmortizationSchedule(LoanInput{
		Principal:         100000,
		AnnualRatePercent: 14,
		TenureMonths:      24,
		TransactionDate:   dates.TransactionDate,
		FirstDueDate:      dates.DueDate,
	})
	if err != nil {
		t.Fatalf("AmortizationSchedule() error = %v", err)
	}

	// 2024-01-06 .. 2024-02-09 не включая дату платежа
	if result.Summary.FirstCycleDays != 34 {
		t.Errorf("expected 34 days in first cycle, got %d", result.Summary.FirstCycleDays)
	}
}
