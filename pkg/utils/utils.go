package utils

import (
	"math"

	"github.com/shopspring/decimal"
)

// Round2 округляет денежную сумму до 2 знаков после запятой (половина - от нуля)
func Round2(value float64) float64 {
	if !IsFinite(value) {
		return value
	}
	return decimal.NewFromFloat(value).Round(2).InexactFloat64()
}

// IsFinite проверяет, является ли число конечным
func IsFinite(value float64) bool {
	return !math.IsInf(value, 0) && !math.IsNaN(value)
}

// AlmostEqual сравнивает два числа с абсолютным допуском
func AlmostEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}
