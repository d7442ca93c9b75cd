package utils

import "math"

// RoundMoney arredonda valores monetários para centavos, com meio centavo afastado de zero
func RoundMoney(f float64) float64 {
	if f == 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}

	rounded := math.Round(f*100) / 100
	if rounded == 0 {
		return 0
	}
	return rounded
}
