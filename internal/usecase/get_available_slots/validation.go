package get_available_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.SalonID <= 0 {
		return fmt.Errorf("%w: salonID must be positive", ErrInvalidInput)
	}

	if req.StaffID <= 0 {
		return fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.Generation < 0 {
		return fmt.Errorf("%w: generation must not be negative", ErrInvalidInput)
	}

	return nil
}

// isDateBookable проверяет, что дата не в прошлом и не дальше ограничения салона
func isDateBookable(date time.Time, now time.Time, salon *domain.Salon) bool {
	today := dateOnly(now, now.Location())
	day := dateOnly(date, now.Location())

	if day.Before(today) {
		return false
	}

	if latest, ok := salon.LatestBookableDate(today); ok && day.After(latest) {
		return false
	}

	return true
}

// filterByNotice убирает слоты, начинающиеся раньше now + notice
func filterByNotice(slots []types.TimeString, day time.Time, now time.Time, noticeMinutes int) []types.TimeString {
	minAllowed := now.Add(time.Duration(noticeMinutes) * time.Minute)

	result := make([]types.TimeString, 0, len(slots))
	for _, slot := range slots {
		if !slot.OnDate(day).Before(minAllowed) {
			result = append(result, slot)
		}
	}
	return result
}

// dateOnly полночь даты d в часовом поясе loc
func dateOnly(d time.Time, loc *time.Location) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
}
