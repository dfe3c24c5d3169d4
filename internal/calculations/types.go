package calculations

import "github.com/cloud-ru/mcp-emi-go/pkg/utils"

// LoanInput описывает параметры кредита по кредитной карте.
// Даты передаются строками в формате YYYY-MM-DD; пустая строка означает отсутствие даты.
type LoanInput struct {
	Principal         float64 `json:"principal"`
	AnnualRatePercent float64 `json:"annual_rate_percent"`
	TenureMonths      int     `json:"tenure_months"`
	ProcessingFee     float64 `json:"processing_fee"`
	TaxRatePercent    float64 `json:"tax_rate_percent"`
	TransactionDate   string  `json:"transaction_date,omitempty"`
	FirstDueDate      string  `json:"first_due_date,omitempty"`
}

// ScheduleEntry представляет один месяц в графике платежей
type ScheduleEntry struct {
	Month              int     `json:"month"`
	PrincipalComponent float64 `json:"principal_component"`
	InterestComponent  float64 `json:"interest_component"`
	TaxComponent       float64 `json:"tax_component"`
	FeeComponent       float64 `json:"fee_component"`
	TotalPayment       float64 `json:"total_payment"`
	RemainingBalance   float64 `json:"remaining_balance"`
}

// LoanSummary представляет сводку по кредиту.
//
// FirstPeriodPayment заполняется, когда первый платеж рассчитывается отдельно
// (ненулевая ставка, комиссия или переданные даты). Отображать ли его отдельно
// от StandardEMI, решает вызывающий код, см. FirstPaymentDiffers.
type LoanSummary struct {
	StandardEMI        float64  `json:"standard_emi"`
	FirstPeriodPayment *float64 `json:"first_period_payment,omitempty"`
	FirstCycleDays     int      `json:"first_cycle_days"`
	Principal          float64  `json:"principal"`
	TotalInterest      float64  `json:"total_interest"`
	TotalTax           float64  `json:"total_tax"`
	ProcessingFee      float64  `json:"processing_fee"`
	TotalPayable       float64  `json:"total_payable"`
	TotalCostOfLoan    float64  `json:"total_cost_of_loan"`
}

// FirstPaymentDiffers сообщает, отличается ли первый платеж от стандартного EMI
// после округления до копеек.
func (s LoanSummary) FirstPaymentDiffers() bool {
	if s.FirstPeriodPayment == nil {
		return false
	}
	return utils.Round2(*s.FirstPeriodPayment) != utils.Round2(s.StandardEMI)
}

// CalculationResult представляет результат расчета графика
type CalculationResult struct {
	Summary  LoanSummary     `json:"summary"`
	Schedule []ScheduleEntry `json:"schedule"`
}

// ProrationComparison показывает, как корректировка первого периода по датам
// меняет первый платеж и общую переплату.
type ProrationComparison struct {
	Prorated           CalculationResult `json:"prorated"`
	Flat               CalculationResult `json:"flat"`
	FirstCycleDays     int               `json:"first_cycle_days"`
	FirstPaymentDiff   float64           `json:"first_payment_diff"`
	TotalInterestDiff  float64           `json:"total_interest_diff"`
	TotalPayableDiff   float64           `json:"total_payable_diff"`
	ProrationIncreases bool              `json:"proration_increases"`
	Recommendation     string            `json:"recommendation"`
}

// Slice представляет долю в структуре стоимости кредита
type Slice struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Share float64 `json:"share"`
}
