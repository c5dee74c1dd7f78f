package domain

// SlotStepMinutes шаг сетки доступных слотов
const SlotStepMinutes = 30

// Business validation constants
const (
	MinServiceDurationMinutes   = 5
	MaxServiceDurationMinutes   = 480 // 8 hours
	MinAdvanceBookingDays       = 0
	MaxAdvanceBookingDays       = 365 // 1 year
	MinBookingNoticeMinutes     = 0
	MaxBookingNoticeMinutes     = 10080 // 1 week
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxReviewCommentLength      = 1000
	MinRating                   = 1
	MaxRating                   = 5
	MaxNameLength               = 200
)

// DefaultAnalyticsRangeDays период аналитики, если даты не указаны
const DefaultAnalyticsRangeDays = 30

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses статусы, которые не занимают время мастера
// Используется для фильтрации при подсчёте доступных слотов
var InactiveStatuses = []AppointmentStatus{
	StatusCancelledByClient,
	StatusCancelledBySalon,
	StatusNoShow,
}

// ActiveStatuses статусы, занимающие время мастера
var ActiveStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
}

// RemindableStatuses статусы, для которых отправляются напоминания
var RemindableStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
}
