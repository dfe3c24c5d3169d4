package tools

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/cloud-ru/mcp-emi-go/internal/calculations"
	"github.com/cloud-ru/mcp-emi-go/internal/config"
	"github.com/cloud-ru/mcp-emi-go/internal/metrics"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Имена инструментов
const (
	ToolAmortizationSchedule = "amortization_schedule"
	ToolBillingCycle         = "billing_cycle"
	ToolLoanBreakdown        = "loan_breakdown"
	ToolCompareProration     = "compare_proration"
)

// ToolHandler представляет обработчик инструмента MCP
type ToolHandler func(ctx context.Context, params map[string]interface{}) (interface{}, error)

// BreakdownResult - сводка по кредиту и структура его стоимости
type BreakdownResult struct {
	Summary calculations.LoanSummary `json:"summary"`
	Slices  []calculations.Slice     `json:"slices"`
}

// Registry возвращает все инструменты по именам
func Registry(cfg *config.Config, tracer trace.Tracer) map[string]ToolHandler {
	return map[string]ToolHandler{
		ToolAmortizationSchedule: AmortizationScheduleHandler(cfg, tracer),
		ToolBillingCycle:         BillingCycleHandler(cfg, tracer),
		ToolLoanBreakdown:        LoanBreakdownHandler(cfg, tracer),
		ToolCompareProration:     CompareProrationHandler(cfg, tracer),
	}
}

// Names возвращает отсортированный список имен инструментов
func Names(registry map[string]ToolHandler) []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AmortizationScheduleHandler обрабатывает запрос на расчет графика платежей
func AmortizationScheduleHandler(cfg *config.Config, tracer trace.Tracer) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		toolName := ToolAmortizationSchedule

		_, span := tracer.Start(ctx, toolName)
		defer span.End()

		metrics.APICalls.WithLabelValues("mcp", toolName, "started").Inc()

		in, err := LoanInputFromParams(cfg, params)
		if err != nil {
			return nil, rejectParams(span, toolName, err)
		}
		setLoanAttributes(span, in)

		// Расчет
		result, err := calculations.AmortizationSchedule(in)
		if err != nil {
			return nil, failCalculation(span, toolName, err)
		}

		span.SetAttributes(
			attribute.Float64("standard_emi", result.Summary.StandardEMI),
			attribute.Float64("total_payable", result.Summary.TotalPayable),
			attribute.Int("first_cycle_days", result.Summary.FirstCycleDays),
		)
		metrics.ScheduleTenure.Observe(float64(in.TenureMonths))
		succeed(span, toolName)

		return result, nil
	}
}

// BillingCycleHandler обрабатывает запрос на расчет дат выписки и первого платежа
func BillingCycleHandler(cfg *config.Config, tracer trace.Tracer) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		toolName := ToolBillingCycle

		_, span := tracer.Start(ctx, toolName)
		defer span.End()

		metrics.APICalls.WithLabelValues("mcp", toolName, "started").Inc()

		transactionDate, err := stringParam(params, "transaction_date")
		if err != nil {
			return nil, rejectParams(span, toolName, err)
		}
		if transactionDate == "" {
			return nil, rejectParams(span, toolName, invalidParam("transaction_date", "параметр обязателен"))
		}
		span.SetAttributes(attribute.String("transaction_date", transactionDate))

		dates, err := BillingCycle(cfg).Derive(transactionDate)
		if err != nil {
			return nil, failCalculation(span, toolName, err)
		}

		span.SetAttributes(attribute.String("due_date", dates.DueDate))
		succeed(span, toolName)

		return dates, nil
	}
}

// LoanBreakdownHandler обрабатывает запрос на структуру стоимости кредита
func LoanBreakdownHandler(cfg *config.Config, tracer trace.Tracer) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		toolName := ToolLoanBreakdown

		_, span := tracer.Start(ctx, toolName)
		defer span.End()

		metrics.APICalls.WithLabelValues("mcp", toolName, "started").Inc()

		in, err := LoanInputFromParams(cfg, params)
		if err != nil {
			return nil, rejectParams(span, toolName, err)
		}
		setLoanAttributes(span, in)

		result, err := calculations.AmortizationSchedule(in)
		if err != nil {
			return nil, failCalculation(span, toolName, err)
		}

		succeed(span, toolName)

		return &BreakdownResult{
			Summary: result.Summary,
			Slices:  calculations.Breakdown(result.Summary),
		}, nil
	}
}

// CompareProrationHandler обрабатывает запрос на сравнение графика с корректировкой по датам и без нее
func CompareProrationHandler(cfg *config.Config, tracer trace.Tracer) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		toolName := ToolCompareProration

		_, span := tracer.Start(ctx, toolName)
		defer span.End()

		metrics.APICalls.WithLabelValues("mcp", toolName, "started").Inc()

		in, err := LoanInputFromParams(cfg, params)
		if err != nil {
			return nil, rejectParams(span, toolName, err)
		}
		setLoanAttributes(span, in)

		result, err := calculations.CompareProration(in)
		if err != nil {
			return nil, failCalculation(span, toolName, err)
		}

		span.SetAttributes(attribute.Float64("first_payment_diff", result.FirstPaymentDiff))
		succeed(span, toolName)

		return result, nil
	}
}

func setLoanAttributes(span trace.Span, in calculations.LoanInput) {
	span.SetAttributes(
		attribute.Float64("principal", in.Principal),
		attribute.Float64("annual_rate_percent", in.AnnualRatePercent),
		attribute.Int("tenure_months", in.TenureMonths),
		attribute.Float64("processing_fee", in.ProcessingFee),
		attribute.Float64("tax_rate_percent", in.TaxRatePercent),
		attribute.Bool("prorated", in.TransactionDate != "" && in.FirstDueDate != ""),
	)
}

func rejectParams(span trace.Span, toolName string, err error) error {
	span.SetAttributes(attribute.String("error", "validation_error"))
	span.SetStatus(codes.Error, err.Error())
	metrics.ToolCalls.WithLabelValues(toolName, "validation_error").Inc()
	metrics.CalculationErrors.WithLabelValues(toolName, "validation").Inc()
	metrics.APICalls.WithLabelValues("mcp", toolName, "error").Inc()
	return fmt.Errorf("неверные параметры: %w", err)
}

// failCalculation: ошибки входных данных из расчета учитываются как ошибки валидации
func failCalculation(span trace.Span, toolName string, err error) error {
	if errors.Is(err, calculations.ErrInvalidInput) || errors.Is(err, calculations.ErrInvalidDate) {
		return rejectParams(span, toolName, err)
	}
	span.SetAttributes(attribute.String("error", "calculation_error"))
	span.SetStatus(codes.Error, err.Error())
	metrics.ToolCalls.WithLabelValues(toolName, "error").Inc()
	metrics.CalculationErrors.WithLabelValues(toolName, "calculation").Inc()
	metrics.APICalls.WithLabelValues("mcp", toolName, "error").Inc()
	return fmt.Errorf("ошибка при выполнении расчета: %w", err)
}

func succeed(span trace.Span, toolName string) {
	span.SetAttributes(attribute.Bool("success", true))
	metrics.ToolCalls.WithLabelValues(toolName, "success").Inc()
	metrics.APICalls.WithLabelValues("mcp", toolName, "success").Inc()
}
