package calculations

import (
	"math"
	"strings"
	"time"
)

// DateLayout - формат календарной даты на входе и выходе
const DateLayout = "2006-01-02"

const hoursPerDay = 24

// ParseDate разбирает календарную дату без часового пояса.
// Результат - полночь UTC, поэтому разница дат не зависит от перехода на летнее время.
func ParseDate(field, value string) (time.Time, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, invalidDate(field, value)
	}
	return d, nil
}

// FormatDate форматирует дату как YYYY-MM-DD
func FormatDate(d time.Time) string {
	return d.Format(DateLayout)
}

// DaysBetween возвращает число целых дней от from до to (to не включается).
// Отрицательно, если to раньше from.
func DaysBetween(from, to time.Time) int {
	return int(math.Round(to.Sub(from).Hours() / hoursPerDay))
}

// FirstCycleDays считает дни начисления процентов в первом периоде:
// со дня, следующего за транзакцией, до даты платежа (не включая ее).
// Если платеж приходится на день транзакции или раньше, дней нет.
func FirstCycleDays(transactionDate, firstDueDate time.Time) int {
	accrualStart := transactionDate.AddDate(0, 0, 1)
	days := DaysBetween(accrualStart, firstDueDate)
	if days < 0 {
		return 0
	}
	return days
}
