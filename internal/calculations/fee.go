package calculations

import (
	"fmt"

	"github.com/cloud-ru/mcp-emi-go/pkg/utils"
)

// FeeType задает способ указания комиссии за оформление
type FeeType string

const (
	FeeTypePercentage FeeType = "percentage"
	FeeTypeAmount     FeeType = "amount"
)

// FeeSpec - комиссия в процентах от суммы кредита или фиксированной суммой
type FeeSpec struct {
	Type  FeeType `json:"type"`
	Value float64 `json:"value"`
}

// ResolveProcessingFee переводит FeeSpec в сумму комиссии
func ResolveProcessingFee(principal float64, spec FeeSpec) (float64, error) {
	if !utils.IsFinite(spec.Value) {
		return 0, invalidInput("processing_fee", "значение не является конечным числом")
	}
	if spec.Value < 0 {
		return 0, invalidInput("processing_fee", "комиссия не может быть отрицательной")
	}

	switch spec.Type {
	case FeeTypePercentage:
		return principal * spec.Value / 100.0, nil
	case FeeTypeAmount, "":
		return spec.Value, nil
	default:
		return 0, invalidInput("processing_fee_type", fmt.Sprintf("неизвестный тип комиссии %q", spec.Type))
	}
}
