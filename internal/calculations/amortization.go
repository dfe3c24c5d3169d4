package calculations

import (
	"math"
	"strings"
	"time"

	"github.com/cloud-ru/mcp-emi-go/pkg/utils"
)

const (
	// BalanceEpsilon - остаток меньше этой суммы считается погашенным
	BalanceEpsilon = 0.005

	// ProrationBaseDays - базовая длина месяца для корректировки процентов первого периода
	ProrationBaseDays = 30
)

// AmortizationSchedule рассчитывает график аннуитетного кредита с налогом на проценты,
// разовой комиссией и корректировкой процентов первого периода по датам.
//
// Функция не хранит состояния и может вызываться конкурентно.
func AmortizationSchedule(in LoanInput) (*CalculationResult, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	txDate, dueDate, prorate, err := parseProrationDates(in)
	if err != nil {
		return nil, err
	}

	if in.AnnualRatePercent == 0 {
		return zeroRateSchedule(in, txDate, dueDate, prorate), nil
	}

	P := in.Principal
	n := in.TenureMonths
	r := in.AnnualRatePercent / 12.0 / 100.0
	taxRate := in.TaxRatePercent / 100.0

	emi := annuityPayment(P, r, n)

	schedule := make([]ScheduleEntry, 0, n)
	balance := P
	totalInterest := 0.0
	totalTax := 0.0

	// Первый период: основной долг гасится по полной месячной ставке,
	// а проценты к оплате корректируются по фактическим дням.
	standardInterest := balance * r
	interest := standardInterest
	cycleDays := ProrationBaseDays
	if prorate {
		cycleDays = FirstCycleDays(txDate, dueDate)
		interest = standardInterest * float64(cycleDays) / ProrationBaseDays
	}

	principalComponent := emi - standardInterest
	fee := in.ProcessingFee
	tax := (interest + fee) * taxRate
	firstPayment := principalComponent + interest + tax + fee

	totalInterest += interest
	totalTax += tax
	balance -= principalComponent

	schedule = append(schedule, ScheduleEntry{
		Month:              1,
		PrincipalComponent: principalComponent,
		InterestComponent:  interest,
		TaxComponent:       tax,
		FeeComponent:       fee,
		TotalPayment:       firstPayment,
		RemainingBalance:   reportedBalance(balance),
	})

	for m := 2; m <= n; m++ {
		interest := balance * r
		tax := interest * taxRate

		principalComponent := emi - interest
		payment := emi + tax

		// Последний месяц забирает весь остаток, чтобы долг стал ровно нулевым
		if m == n {
			principalComponent = balance
			payment = balance + interest + tax
		}

		totalInterest += interest
		totalTax += tax
		balance -= principalComponent

		schedule = append(schedule, ScheduleEntry{
			Month:              m,
			PrincipalComponent: principalComponent,
			InterestComponent:  interest,
			TaxComponent:       tax,
			FeeComponent:       0,
			TotalPayment:       payment,
			RemainingBalance:   reportedBalance(balance),
		})
	}

	summary := newSummary(in, emi, totalInterest, totalTax, cycleDays)
	summary.FirstPeriodPayment = &firstPayment

	return &CalculationResult{
		Summary:  summary,
		Schedule: schedule,
	}, nil
}

// zeroRateSchedule - беспроцентный график: основной долг делится поровну,
// комиссия и налог на нее оплачиваются в первом месяце.
func zeroRateSchedule(in LoanInput, txDate, dueDate time.Time, prorate bool) *CalculationResult {
	P := in.Principal
	n := in.TenureMonths
	emi := P / float64(n)

	fee := in.ProcessingFee
	feeTax := fee * in.TaxRatePercent / 100.0

	schedule := make([]ScheduleEntry, 0, n)
	balance := P

	for m := 1; m <= n; m++ {
		principalComponent := emi
		if m == n {
			principalComponent = balance
		}

		var monthFee, monthTax float64
		if m == 1 {
			monthFee = fee
			monthTax = feeTax
		}

		balance -= principalComponent

		schedule = append(schedule, ScheduleEntry{
			Month:              m,
			PrincipalComponent: principalComponent,
			InterestComponent:  0,
			TaxComponent:       monthTax,
			FeeComponent:       monthFee,
			TotalPayment:       principalComponent + monthFee + monthTax,
			RemainingBalance:   reportedBalance(balance),
		})
	}

	cycleDays := ProrationBaseDays
	if prorate {
		cycleDays = FirstCycleDays(txDate, dueDate)
	}

	summary := newSummary(in, emi, 0, feeTax, cycleDays)
	if fee > 0 || prorate {
		firstPayment := schedule[0].TotalPayment
		summary.FirstPeriodPayment = &firstPayment
	}

	return &CalculationResult{
		Summary:  summary,
		Schedule: schedule,
	}
}

func newSummary(in LoanInput, emi, totalInterest, totalTax float64, cycleDays int) LoanSummary {
	return LoanSummary{
		StandardEMI:     emi,
		FirstCycleDays:  cycleDays,
		Principal:       in.Principal,
		TotalInterest:   totalInterest,
		TotalTax:        totalTax,
		ProcessingFee:   in.ProcessingFee,
		TotalPayable:    in.Principal + totalInterest + totalTax + in.ProcessingFee,
		TotalCostOfLoan: totalInterest + totalTax + in.ProcessingFee,
	}
}

// annuityPayment считает аннуитетный платеж P*r*(1+r)^n/((1+r)^n-1).
// (1+r)^n-1 берется через Expm1/Log1p: при малых r прямое вычитание теряет
// все значащие цифры.
func annuityPayment(P, r float64, n int) float64 {
	growthMinusOne := math.Expm1(float64(n) * math.Log1p(r))
	switch {
	case growthMinusOne == 0 || math.IsNaN(growthMinusOne):
		// ставка неотличима от нуля
		return P / float64(n)
	case math.IsInf(growthMinusOne, 1):
		// предел при (1+r)^n -> бесконечность
		return P * r
	}
	return P * r * (1.0 + growthMinusOne) / growthMinusOne
}

// reportedBalance гасит остаток с плавающей точкой. Применяется только к
// отображаемому значению: расчет последнего месяца идет по точному остатку.
func reportedBalance(balance float64) float64 {
	if math.Abs(balance) < BalanceEpsilon {
		return 0
	}
	return balance
}

func validateInput(in LoanInput) error {
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"principal", in.Principal},
		{"annual_rate_percent", in.AnnualRatePercent},
		{"processing_fee", in.ProcessingFee},
		{"tax_rate_percent", in.TaxRatePercent},
	} {
		if !utils.IsFinite(f.value) {
			return invalidInput(f.name, "значение не является конечным числом")
		}
	}

	switch {
	case in.Principal <= 0:
		return invalidInput("principal", "сумма кредита должна быть больше нуля")
	case in.AnnualRatePercent < 0:
		return invalidInput("annual_rate_percent", "ставка не может быть отрицательной")
	case in.TenureMonths <= 0:
		return invalidInput("tenure_months", "срок должен быть не меньше одного месяца")
	case in.ProcessingFee < 0:
		return invalidInput("processing_fee", "комиссия не может быть отрицательной")
	case in.TaxRatePercent < 0:
		return invalidInput("tax_rate_percent", "ставка налога не может быть отрицательной")
	}
	return nil
}

// parseProrationDates проверяет переданные даты. Корректировка первого периода
// включается, только если заданы обе даты.
func parseProrationDates(in LoanInput) (txDate, dueDate time.Time, prorate bool, err error) {
	hasTx := strings.TrimSpace(in.TransactionDate) != ""
	hasDue := strings.TrimSpace(in.FirstDueDate) != ""

	if hasTx {
		if txDate, err = ParseDate("transaction_date", in.TransactionDate); err != nil {
			return time.Time{}, time.Time{}, false, err
		}
	}
	if hasDue {
		if dueDate, err = ParseDate("first_due_date", in.FirstDueDate); err != nil {
			return time.Time{}, time.Time{}, false, err
		}
	}
	return txDate, dueDate, hasTx && hasDue, nil
}
