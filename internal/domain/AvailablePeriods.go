package domain

import (
	"fmt"
	"sort"
	"strconv"
)

// AvailablePeriods lista os meses que já têm agregados gravados
type AvailablePeriods struct {
	Periods []string `json:"periods"`          // mm-yyyy, na ordem devolvida pelo banco
	Years   []string `json:"years"`            // anos distintos, crescente
	Months  []string `json:"months"`           // meses distintos, crescente
	Latest  string   `json:"latest,omitempty"` // período mais recente
}

// ParsePeriodKey é o inverso de PeriodKey
func ParsePeriodKey(key string) (year, month int, err error) {
	if len(key) != 7 || key[2] != '-' {
		return 0, 0, fmt.Errorf("período inválido: %q", key)
	}
	month, errMonth := strconv.Atoi(key[:2])
	year, errYear := strconv.Atoi(key[3:])
	if errMonth != nil || errYear != nil {
		return 0, 0, fmt.Errorf("período inválido: %q", key)
	}
	if month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("mês inválido no período %q", key)
	}
	return year, month, nil
}

// NewAvailablePeriods monta o resumo a partir das chaves mm-yyyy; chaves malformadas são ignoradas
func NewAvailablePeriods(keys []string) *AvailablePeriods {
	years := make(map[string]struct{})
	months := make(map[string]struct{})
	result := &AvailablePeriods{Periods: keys}

	latest := 0
	for _, key := range keys {
		year, month, err := ParsePeriodKey(key)
		if err != nil {
			continue
		}
		years[fmt.Sprintf("%04d", year)] = struct{}{}
		months[fmt.Sprintf("%02d", month)] = struct{}{}

		if ordinal := year*100 + month; ordinal > latest {
			latest = ordinal
			result.Latest = key
		}
	}

	result.Years = sortedKeys(years)
	result.Months = sortedKeys(months)
	return result
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
