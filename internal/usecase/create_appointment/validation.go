package create_appointment

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// maxIdempotencyKeyLength ограничение на длину ключа идемпотентности клиента
const maxIdempotencyKeyLength = 128

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ClientID <= 0 {
		return fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}

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

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.Notes != nil && utf8.RuneCountInString(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	if req.IdempotencyKey != nil {
		key := strings.TrimSpace(*req.IdempotencyKey)
		if key == "" || len(key) > maxIdempotencyKeyLength {
			return fmt.Errorf("%w: idempotencyKey must be 1..%d characters", ErrInvalidInput, maxIdempotencyKeyLength)
		}
	}

	return nil
}

// validateDate проверяет, что дата не в прошлом и попадает в горизонт записи салона
func validateDate(day time.Time, now time.Time, salon *domain.Salon) error {
	today := dateOnly(now, now.Location())

	if day.Before(today) {
		return ErrInvalidDate
	}

	if latest, ok := salon.LatestBookableDate(today); ok && day.After(latest) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, salon.AdvanceBookingDays)
	}

	return nil
}

// validateNotice проверяет, что до начала записи не меньше minBookingNoticeMinutes
func validateNotice(day time.Time, startTime types.TimeString, now time.Time, noticeMinutes int) error {
	minAllowed := now.Add(time.Duration(noticeMinutes) * time.Minute)
	if startTime.OnDate(day).Before(minAllowed) {
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, noticeMinutes)
	}
	return nil
}

// idempotencyKey детерминированный UUID из ключа клиента; разные клиенты не пересекаются
func idempotencyKey(clientID int64, key string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("appointment:%d:%s", clientID, strings.TrimSpace(key))))
}

// dateOnly полночь даты d в часовом поясе loc
func dateOnly(d time.Time, loc *time.Location) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
}
