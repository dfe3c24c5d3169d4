package tools

import (
	"math"
	"strings"

	"github.com/cloud-ru/mcp-emi-go/internal/calculations"
	"github.com/cloud-ru/mcp-emi-go/internal/config"
	"github.com/cloud-ru/mcp-emi-go/internal/validators"
)

func invalidParam(name, reason string) error {
	return &calculations.FieldError{Field: name, Reason: reason, Kind: calculations.ErrInvalidInput}
}

func floatParam(params map[string]interface{}, name string) (float64, bool, error) {
	raw, ok := params[name]
	if !ok || raw == nil {
		return 0, false, nil
	}
	value, ok := raw.(float64)
	if !ok {
		return 0, true, invalidParam(name, "ожидается число")
	}
	return value, true, nil
}

func requiredFloat(params map[string]interface{}, name string) (float64, error) {
	value, present, err := floatParam(params, name)
	if err != nil {
		return 0, err
	}
	if !present {
		return 0, invalidParam(name, "параметр обязателен")
	}
	return value, nil
}

func stringParam(params map[string]interface{}, name string) (string, error) {
	raw, ok := params[name]
	if !ok || raw == nil {
		return "", nil
	}
	value, ok := raw.(string)
	if !ok {
		return "", invalidParam(name, "ожидается строка YYYY-MM-DD")
	}
	return strings.TrimSpace(value), nil
}

// BillingCycle возвращает расчетный цикл из конфигурации
func BillingCycle(cfg *config.Config) calculations.BillingCycle {
	return calculations.BillingCycle{StatementDay: cfg.StatementDay, GraceDays: cfg.GraceDays}
}

// LoanInputFromParams собирает и проверяет параметры кредита.
//
// Комиссия задается либо суммой processing_fee, либо процентом processing_fee_percent.
// Если передана только transaction_date, дата первого платежа выводится из
// расчетного цикла карты.
func LoanInputFromParams(cfg *config.Config, params map[string]interface{}) (calculations.LoanInput, error) {
	var in calculations.LoanInput

	principal, err := requiredFloat(params, "principal")
	if err != nil {
		return in, err
	}
	annualRatePercent, err := requiredFloat(params, "annual_rate_percent")
	if err != nil {
		return in, err
	}
	monthsFloat, err := requiredFloat(params, "tenure_months")
	if err != nil {
		return in, err
	}
	if monthsFloat != math.Trunc(monthsFloat) || math.IsInf(monthsFloat, 0) {
		return in, invalidParam("tenure_months", "срок должен быть целым числом месяцев")
	}
	months := int(monthsFloat)

	taxRatePercent, _, err := floatParam(params, "tax_rate_percent")
	if err != nil {
		return in, err
	}

	if err := validators.CheckPrincipal(cfg, principal); err != nil {
		return in, err
	}
	if err := validators.CheckRate(cfg, annualRatePercent); err != nil {
		return in, err
	}
	if err := validators.CheckMonths(cfg, months); err != nil {
		return in, err
	}
	if err := validators.CheckTaxRate(cfg, taxRatePercent); err != nil {
		return in, err
	}

	fee, err := processingFee(cfg, params, principal)
	if err != nil {
		return in, err
	}

	transactionDate, err := stringParam(params, "transaction_date")
	if err != nil {
		return in, err
	}
	firstDueDate, err := stringParam(params, "first_due_date")
	if err != nil {
		return in, err
	}
	if transactionDate != "" && firstDueDate == "" {
		dates, err := BillingCycle(cfg).Derive(transactionDate)
		if err != nil {
			return in, err
		}
		firstDueDate = dates.DueDate
	}

	return calculations.LoanInput{
		Principal:         principal,
		AnnualRatePercent: annualRatePercent,
		TenureMonths:      months,
		ProcessingFee:     fee,
		TaxRatePercent:    taxRatePercent,
		TransactionDate:   transactionDate,
		FirstDueDate:      firstDueDate,
	}, nil
}

func processingFee(cfg *config.Config, params map[string]interface{}, principal float64) (float64, error) {
	amount, hasAmount, err := floatParam(params, "processing_fee")
	if err != nil {
		return 0, err
	}
	percent, hasPercent, err := floatParam(params, "processing_fee_percent")
	if err != nil {
		return 0, err
	}

	feeSpec := calculations.FeeSpec{Type: calculations.FeeTypeAmount, Value: amount}
	switch {
	case hasAmount && hasPercent:
		return 0, invalidParam("processing_fee", "укажите либо processing_fee, либо processing_fee_percent")
	case hasPercent:
		if err := validators.CheckFeePercent(percent); err != nil {
			return 0, err
		}
		feeSpec = calculations.FeeSpec{Type: calculations.FeeTypePercentage, Value: percent}
	}

	fee, err := calculations.ResolveProcessingFee(principal, feeSpec)
	if err != nil {
		return 0, err
	}
	if err := validators.CheckProcessingFee(cfg, fee); err != nil {
		return 0, err
	}
	return fee, nil
}
