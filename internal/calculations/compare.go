package calculations

import (
	"github.com/cloud-ru/mcp-emi-go/pkg/utils"
)

// CompareProration сравнивает график с корректировкой первого периода по датам
// и тот же кредит с плоским 30-дневным первым периодом
func CompareProration(in LoanInput) (*ProrationComparison, error) {
	// Рассчитываем оба варианта
	prorated, err := AmortizationSchedule(in)
	if err != nil {
		return nil, err
	}

	flatInput := in
	flatInput.TransactionDate = ""
	flatInput.FirstDueDate = ""
	flat, err := AmortizationSchedule(flatInput)
	if err != nil {
		return nil, err
	}

	proratedFirst := prorated.Schedule[0].TotalPayment
	flatFirst := flat.Schedule[0].TotalPayment

	// Вычисляем разницу
	firstPaymentDiff := utils.Round2(proratedFirst - flatFirst)
	interestDiff := utils.Round2(prorated.Summary.TotalInterest - flat.Summary.TotalInterest)
	payableDiff := utils.Round2(prorated.Summary.TotalPayable - flat.Summary.TotalPayable)

	var recommendation string
	switch {
	case firstPaymentDiff > 0:
		recommendation = "Первый платеж выше стандартного: проценты начисляются больше чем за 30 дней. Транзакция ближе к дате выписки сократит первый период."
	case firstPaymentDiff < 0:
		recommendation = "Первый платеж ниже стандартного: первый период короче 30 дней."
	default:
		recommendation = "Корректировка по датам не меняет первый платеж."
	}

	return &ProrationComparison{
		Prorated:           *prorated,
		Flat:               *flat,
		FirstCycleDays:     prorated.Summary.FirstCycleDays,
		FirstPaymentDiff:   firstPaymentDiff,
		TotalInterestDiff:  interestDiff,
		TotalPayableDiff:   payableDiff,
		ProrationIncreases: firstPaymentDiff > 0,
		Recommendation:     recommendation,
	}, nil
}
