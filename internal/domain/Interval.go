package domain

import (
	"errors"
	"fmt"
	"time"
)

// MinIntervalLag é a distância mínima exigida pela API entre o fim do intervalo e o momento atual
const MinIntervalLag = 2 * time.Minute

var (
	ErrIntervalStartAfterEnd = errors.New("interval start must be before end")
	ErrIntervalTooRecent     = errors.New("interval end must be at least 2 minutes in the past")
	ErrIntervalSpansMonths   = errors.New("interval must stay within a single calendar month")
)

type Interval struct {
	Start    time.Time      `json:"start"`
	End      time.Time      `json:"end"`
	TimeZone *time.Location `json:"-"`
}

func (i Interval) Validate(now time.Time) error {
	if !i.Start.Before(i.End) {
		return ErrIntervalStartAfterEnd
	}

	if i.End.After(now.Add(-MinIntervalLag)) {
		return ErrIntervalTooRecent
	}

	return nil
}

// WithinOneMonth informa se o intervalo cabe num único mês civil do seu fuso.
// O fim é exclusivo, então terminar às 00:00 do dia 1 do mês seguinte ainda conta como um mês.
func (i Interval) WithinOneMonth() bool {
	loc := i.location()
	start := i.Start.In(loc)
	last := i.End.Add(-time.Nanosecond).In(loc)
	return start.Year() == last.Year() && start.Month() == last.Month()
}

// ISO8601 formata o intervalo no formato "inicio--fim" aceito pelo endpoint de métricas
func (i Interval) ISO8601() string {
	loc := i.location()
	return fmt.Sprintf("%s--%s", i.Start.In(loc).Format(time.RFC3339), i.End.In(loc).Format(time.RFC3339))
}

func (i Interval) location() *time.Location {
	if i.TimeZone == nil {
		return time.UTC
	}
	return i.TimeZone
}

// MonthInterval monta o intervalo de um mês civil no fuso informado.
// O deslocamento de cada extremidade é calculado pela própria zona, então o horário de verão é respeitado.
// O fim é limitado a now-2min quando o mês ainda não terminou.
func MonthInterval(year int, month time.Month, loc *time.Location, now time.Time) Interval {
	if loc == nil {
		loc = time.UTC
	}

	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0)

	limit := now.Add(-MinIntervalLag)
	if end.After(limit) {
		end = limit.In(loc)
	}

	return Interval{Start: start, End: end, TimeZone: loc}
}
