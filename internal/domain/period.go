package domain

import (
	"errors"
	"time"
)

// ErrInvalidPeriod начало периода позже конца
var ErrInvalidPeriod = errors.New("startDate must not be after endDate")

// Period отчётный период по датам, обе границы включительно
type Period struct {
	Start time.Time
	End   time.Time
}

// ResolvePeriod строит период из необязательных дат.
// Без дат берутся последние DefaultAnalyticsRangeDays дней, заканчивая today.
func ResolvePeriod(start, end *time.Time, today time.Time) (Period, error) {
	p := Period{End: truncateDay(today)}
	if end != nil {
		p.End = truncateDay(*end)
	}

	if start != nil {
		p.Start = truncateDay(*start)
	} else {
		p.Start = p.End.AddDate(0, 0, -(DefaultAnalyticsRangeDays - 1))
	}

	if p.Start.After(p.End) {
		return Period{}, ErrInvalidPeriod
	}
	return p, nil
}

// Bounds полуинтервал [from, to) для запросов по timestamp
func (p Period) Bounds() (from, to time.Time) {
	return p.Start, p.End.AddDate(0, 0, 1)
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
