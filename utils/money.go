package utils

import (
	"math"
	"strings"
)

// zeroDecimal lists currencies charged in whole units by card processors.
var zeroDecimal = map[string]bool{"CLP": true, "JPY": true, "KRW": true, "PYG": true}

// RoundAmount rounds to cents.
func RoundAmount(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// ToMinorUnits converts amount to the smallest currency unit.
func ToMinorUnits(amount float64, currency string) int64 {
	if zeroDecimal[strings.ToUpper(currency)] {
		return int64(math.Round(amount))
	}
	return int64(math.Round(amount * 100))
}
