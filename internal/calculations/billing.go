package calculations

import (
	"fmt"
	"time"
)

// BillingCycle задает расчетный цикл карты: выписка формируется в StatementDay
// каждого месяца, платеж по ней должен поступить через GraceDays дней.
type BillingCycle struct {
	StatementDay int
	GraceDays    int
}

// DefaultBillingCycle - выписка 20-го числа, платеж через 20 дней
var DefaultBillingCycle = BillingCycle{StatementDay: 20, GraceDays: 20}

// CycleDates - даты первого расчетного цикла после транзакции
type CycleDates struct {
	TransactionDate string `json:"transaction_date"`
	BillingDate     string `json:"billing_date"`
	DueDate         string `json:"due_date"`
}

// Validate проверяет параметры цикла. День выписки ограничен 28-м числом,
// чтобы он существовал в любом месяце.
func (c BillingCycle) Validate() error {
	if c.StatementDay < 1 || c.StatementDay > 28 {
		return invalidInput("statement_day", fmt.Sprintf("день выписки должен быть в диапазоне [1; 28], получено %d", c.StatementDay))
	}
	if c.GraceDays < 0 {
		return invalidInput("grace_days", "льготный период не может быть отрицательным")
	}
	return nil
}

// Derive вычисляет дату выписки и дату первого платежа для транзакции.
// Транзакция до дня выписки включительно попадает в выписку текущего месяца,
// более поздняя - в выписку следующего.
func (c BillingCycle) Derive(transactionDate string) (CycleDates, error) {
	if err := c.Validate(); err != nil {
		return CycleDates{}, err
	}
	tx, err := ParseDate("transaction_date", transactionDate)
	if err != nil {
		return CycleDates{}, err
	}

	billing, due := c.datesFor(tx)
	return CycleDates{
		TransactionDate: FormatDate(tx),
		BillingDate:     FormatDate(billing),
		DueDate:         FormatDate(due),
	}, nil
}

func (c BillingCycle) datesFor(tx time.Time) (billing, due time.Time) {
	month := tx.Month()
	if tx.Day() > c.StatementDay {
		month++
	}
	// time.Date нормализует 13-й месяц в январь следующего года
	billing = time.Date(tx.Year(), month, c.StatementDay, 0, 0, 0, 0, time.UTC)
	due = billing.AddDate(0, 0, c.GraceDays)
	return billing, due
}
