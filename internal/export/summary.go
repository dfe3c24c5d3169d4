package export

import (
	"errors"

	"github.com/cloud-ru/mcp-emi-go/internal/calculations"
)

// ErrEmptySchedule - нечего выгружать
var ErrEmptySchedule = errors.New("export: empty schedule")

type unit int

const (
	unitCurrency unit = iota
	unitPercent
	unitMonths
)

type summaryLine struct {
	Label string
	Value float64
	Unit  unit
	Bold  bool
}

// Заголовки таблицы графика, общие для XLSX и PDF
var scheduleColumns = []string{"Month", "Principal", "Interest", "Tax", "Processing Fee", "Total Payment", "Balance"}

func checkResult(result *calculations.CalculationResult) error {
	if result == nil || len(result.Schedule) == 0 {
		return ErrEmptySchedule
	}
	return nil
}

func loanDetailLines(in calculations.LoanInput, s calculations.LoanSummary) []summaryLine {
	return []summaryLine{
		{Label: "Loan Amount", Value: s.Principal, Unit: unitCurrency},
		{Label: "Annual Interest Rate (%)", Value: in.AnnualRatePercent, Unit: unitPercent},
		{Label: "Tenure (Months)", Value: float64(in.TenureMonths), Unit: unitMonths},
		{Label: "Tax Rate (GST) (%)", Value: in.TaxRatePercent, Unit: unitPercent},
		{Label: "Processing Fee (Base)", Value: s.ProcessingFee, Unit: unitCurrency},
	}
}

// calculatedLines показывает первый платеж отдельной строкой, только если
// он отличается от стандартного EMI.
func calculatedLines(s calculations.LoanSummary) []summaryLine {
	var lines []summaryLine
	if s.FirstPaymentDiffers() {
		lines = append(lines,
			summaryLine{Label: "First EMI", Value: *s.FirstPeriodPayment},
			summaryLine{Label: "Standard EMI (from 2nd Month)", Value: s.StandardEMI},
		)
	} else {
		lines = append(lines, summaryLine{Label: "Monthly EMI", Value: s.StandardEMI})
	}
	return append(lines,
		summaryLine{Label: "Total Interest", Value: s.TotalInterest},
		summaryLine{Label: "Total Tax", Value: s.TotalTax},
		summaryLine{Label: "Total Payable", Value: s.TotalPayable, Bold: true},
		summaryLine{Label: "Excess Payable (Cost of Loan)", Value: s.TotalCostOfLoan, Bold: true},
	)
}

func scheduleValues(e calculations.ScheduleEntry) []float64 {
	return []float64{
		e.PrincipalComponent,
		e.InterestComponent,
		e.TaxComponent,
		e.FeeComponent,
		e.TotalPayment,
		e.RemainingBalance,
	}
}
