package export

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatAmount форматирует сумму с двумя знаками и индийской группировкой
// разрядов: 1234567.891 -> "12,34,567.89".
func FormatAmount(v float64) string {
	s := decimal.NewFromFloat(v).Round(2).StringFixed(2)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	if sign != "" && strings.Trim(intPart+frac, "0") == "" {
		sign = ""
	}

	return sign + groupIndian(intPart) + "." + frac
}

// groupIndian: последние три цифры, затем группы по две
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]

	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	groups = append([]string{head}, groups...)
	return strings.Join(groups, ",") + "," + tail
}

// formatPercent печатает ставку без лишних нулей: 14 -> "14", 9.99 -> "9.99"
func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
