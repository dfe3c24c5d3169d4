package calculations

// Подписи долей в структуре стоимости кредита
const (
	SlicePrincipal     = "Principal Amount"
	SliceInterest      = "Total Interest"
	SliceTax           = "Total Tax"
	SliceProcessingFee = "Processing Fee (Base)"
)

// Breakdown раскладывает итоговую сумму выплат на основной долг, проценты,
// налог и комиссию. Доля неположительной составляющей равна нулю.
func Breakdown(summary LoanSummary) []Slice {
	slices := []Slice{
		{Label: SlicePrincipal, Value: summary.Principal},
		{Label: SliceInterest, Value: summary.TotalInterest},
		{Label: SliceTax, Value: summary.TotalTax},
		{Label: SliceProcessingFee, Value: summary.ProcessingFee},
	}

	total := 0.0
	for _, s := range slices {
		total += s.Value
	}
	if total <= 0 {
		return slices
	}

	for i := range slices {
		if slices[i].Value > 0 {
			slices[i].Share = slices[i].Value / total
		}
	}
	return slices
}
