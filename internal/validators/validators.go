package validators

import (
	"fmt"

	"github.com/cloud-ru/mcp-emi-go/internal/calculations"
	"github.com/cloud-ru/mcp-emi-go/internal/config"
	"github.com/cloud-ru/mcp-emi-go/pkg/utils"
)

// ValidatePositiveNumber проверяет, что число конечное и в допустимом диапазоне.
// Ошибка - *calculations.FieldError с видом calculations.ErrInvalidInput.
func ValidatePositiveNumber(name string, value float64, minInclusive, maxInclusive float64) error {
	if !utils.IsFinite(value) {
		return fieldError(name, "значение не является конечным числом")
	}
	if value < minInclusive {
		return fieldError(name, fmt.Sprintf("значение должно быть ≥ %g", minInclusive))
	}
	if value > maxInclusive {
		return fieldError(name, fmt.Sprintf("значение слишком велико (>%g)", maxInclusive))
	}
	return nil
}

// ValidateIntRange проверяет, что целое число в допустимом диапазоне
func ValidateIntRange(name string, value int, minInclusive, maxInclusive int) error {
	if value < minInclusive || value > maxInclusive {
		return fieldError(name, fmt.Sprintf("значение должно быть в диапазоне [%d; %d]", minInclusive, maxInclusive))
	}
	return nil
}

func fieldError(name, reason string) error {
	return &calculations.FieldError{Field: name, Reason: reason, Kind: calculations.ErrInvalidInput}
}

// CheckPrincipal проверяет сумму кредита
func CheckPrincipal(cfg *config.Config, principal float64) error {
	return ValidatePositiveNumber("principal", principal, 1e-9, cfg.MaxPrincipal)
}

// CheckRate проверяет процентную ставку
func CheckRate(cfg *config.Config, rate float64) error {
	return ValidatePositiveNumber("annual_rate_percent", rate, 0.0, cfg.MaxRate)
}

// CheckMonths проверяет срок в месяцах
func CheckMonths(cfg *config.Config, months int) error {
	return ValidateIntRange("tenure_months", months, 1, cfg.MaxMonths)
}

// CheckProcessingFee проверяет комиссию за оформление
func CheckProcessingFee(cfg *config.Config, fee float64) error {
	return ValidatePositiveNumber("processing_fee", fee, 0.0, cfg.MaxProcessingFee)
}

// CheckFeePercent проверяет комиссию, заданную в процентах от суммы кредита
func CheckFeePercent(percent float64) error {
	return ValidatePositiveNumber("processing_fee_percent", percent, 0.0, 100.0)
}

// CheckTaxRate проверяет ставку налога
func CheckTaxRate(cfg *config.Config, rate float64) error {
	return ValidatePositiveNumber("tax_rate_percent", rate, 0.0, cfg.MaxTaxRate)
}
