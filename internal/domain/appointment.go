package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending           AppointmentStatus = "pending"
	StatusConfirmed         AppointmentStatus = "confirmed"
	StatusCompleted         AppointmentStatus = "completed"
	StatusCancelledByClient AppointmentStatus = "cancelled_by_client"
	StatusCancelledBySalon  AppointmentStatus = "cancelled_by_salon"
	StatusNoShow            AppointmentStatus = "no_show"
)

// Valid reports whether s is one of the known statuses
func (s AppointmentStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted,
		StatusCancelledByClient, StatusCancelledBySalon, StatusNoShow:
		return true
	}
	return false
}

// IsActive reports whether an appointment in this status occupies staff time
func (s AppointmentStatus) IsActive() bool {
	return s == StatusPending || s == StatusConfirmed || s == StatusCompleted
}

// Appointment represents a client's visit to a staff member of a salon
type Appointment struct {
	ID              int64
	SalonID         int64
	StaffID         int64
	ServiceID       int64
	ClientID        int64
	AppointmentDate time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          AppointmentStatus

	// Denormalized data for history
	ServiceName  string
	ServicePrice float64
	Notes        *string

	IdempotencyKey *uuid.UUID
	ReminderSentAt *time.Time

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the appointment still occupies the staff member's time
func (a *Appointment) IsActive() bool {
	return a.Status.IsActive()
}

// CanBeCancelled returns true if the appointment can be cancelled
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// IsCancelled returns true if the appointment has been cancelled by either side
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelledByClient || a.Status == StatusCancelledBySalon
}

// CanBePaid returns true if a payment may be taken for the appointment
func (a *Appointment) CanBePaid() bool {
	return !a.IsCancelled() && a.Status != StatusNoShow
}

// Interval returns the half-open time range the appointment occupies.
// ok is false when the start time is malformed or the duration is not positive.
func (a *Appointment) Interval() (BookedInterval, bool) {
	start := a.StartTime.Minutes()
	if start < 0 || a.DurationMinutes <= 0 {
		return BookedInterval{}, false
	}
	return BookedInterval{Start: start, End: start + a.DurationMinutes}, true
}

// StartsAt returns the absolute start time in loc
func (a *Appointment) StartsAt(loc *time.Location) time.Time {
	return a.StartTime.OnDate(time.Date(a.AppointmentDate.Year(), a.AppointmentDate.Month(),
		a.AppointmentDate.Day(), 0, 0, 0, 0, loc))
}

// statusTransitions allowed status changes made by salon staff
var statusTransitions = map[AppointmentStatus][]AppointmentStatus{
	StatusPending:   {StatusConfirmed, StatusCancelledBySalon},
	StatusConfirmed: {StatusCompleted, StatusNoShow},
}

// CanTransitionTo reports whether staff may move the appointment to next
func (a *Appointment) CanTransitionTo(next AppointmentStatus) bool {
	for _, s := range statusTransitions[a.Status] {
		if s == next {
			return true
		}
	}
	return false
}

// AppointmentsFilter фильтр для получения записей салона
type AppointmentsFilter struct {
	SalonID         int64              // Обязательный параметр
	StaffID         *int64             // Фильтр по мастеру (опционально)
	StartDate       *time.Time         // Начало периода (опционально)
	EndDate         *time.Time         // Конец периода (опционально)
	Status          *AppointmentStatus // Фильтр по статусу (опционально)
	IncludeInactive bool               // Включать ли отменённые и no-show
}

// IsSingleDay true, если фильтр ограничен одной датой
func (f AppointmentsFilter) IsSingleDay() bool {
	return f.StartDate != nil && f.EndDate != nil && f.StartDate.Equal(*f.EndDate)
}
