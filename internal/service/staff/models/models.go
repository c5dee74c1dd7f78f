package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

var (
	// ErrInvalidWeekday возвращается при дне недели вне диапазона 0..6
	ErrInvalidWeekday = errors.New("weekday must be between 0 and 6")

	// ErrDuplicateWeekday возвращается, когда день недели указан дважды
	ErrDuplicateWeekday = errors.New("weekday is duplicated")

	// ErrInvalidWindow возвращается, когда у активного окна начало не раньше конца
	ErrInvalidWindow = errors.New("active window must start before it ends")
)

// dayOffTime время для выходного дня без указанных часов
const dayOffTime types.TimeString = "00:00"

// Request модели

// AddStaffRequest запрос на добавление сотрудника в салон
type AddStaffRequest struct {
	UserID       int64  `json:"-"` // Кто добавляет
	SalonID      int64  `json:"-"`
	MemberUserID int64  `json:"userId"` // Кого добавляют
	Name         string `json:"name"`
	Role         string `json:"role"` // "admin" | "employee"
}

// WorkingWindowRequest окно работы на один день недели
type WorkingWindowRequest struct {
	Weekday   int              `json:"weekday"` // 0 = воскресенье
	StartTime types.TimeString `json:"startTime"`
	EndTime   types.TimeString `json:"endTime"`
	IsActive  bool             `json:"isActive"`
}

// ReplaceScheduleRequest запрос на замену недельного расписания мастера
type ReplaceScheduleRequest struct {
	UserID  int64                  `json:"-"`
	SalonID int64                  `json:"-"`
	StaffID int64                  `json:"-"`
	Windows []WorkingWindowRequest `json:"windows"`
}

// ToDomainWindows валидирует окна и конвертирует их в domain модели
func (r *ReplaceScheduleRequest) ToDomainWindows() ([]*domain.WorkingWindow, error) {
	seen := make(map[int]struct{}, len(r.Windows))
	windows := make([]*domain.WorkingWindow, 0, len(r.Windows))

	for _, w := range r.Windows {
		if w.Weekday < 0 || w.Weekday > 6 {
			return nil, ErrInvalidWeekday
		}
		if _, ok := seen[w.Weekday]; ok {
			return nil, ErrDuplicateWeekday
		}
		seen[w.Weekday] = struct{}{}

		// Выходной день можно передать без времени
		if !w.IsActive {
			if w.StartTime.IsZero() {
				w.StartTime = dayOffTime
			}
			if w.EndTime.IsZero() {
				w.EndTime = dayOffTime
			}
		}

		if err := w.StartTime.Validate(); err != nil {
			return nil, err
		}
		if err := w.EndTime.Validate(); err != nil {
			return nil, err
		}

		window := &domain.WorkingWindow{
			StaffID:  r.StaffID,
			Weekday:  time.Weekday(w.Weekday),
			Start:    w.StartTime,
			End:      w.EndTime,
			IsActive: w.IsActive,
		}
		if window.IsActive && !window.IsOpen() {
			return nil, ErrInvalidWindow
		}

		windows = append(windows, window)
	}

	return windows, nil
}

// Response модели

// StaffResponse ответ с данными сотрудника
type StaffResponse struct {
	ID        int64     `json:"id"`
	SalonID   int64     `json:"salonId"`
	UserID    int64     `json:"userId"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

// StaffListResponse ответ со списком сотрудников
type StaffListResponse struct {
	Staff []StaffResponse `json:"staff"`
}

// WorkingWindowResponse окно работы
type WorkingWindowResponse struct {
	Weekday   int    `json:"weekday"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	IsActive  bool   `json:"isActive"`
}

// ScheduleResponse недельное расписание мастера
type ScheduleResponse struct {
	StaffID int64                   `json:"staffId"`
	Windows []WorkingWindowResponse `json:"windows"`
}

// Методы конвертации

// FromDomainStaff конвертирует domain модель в DTO
func FromDomainStaff(s *domain.Staff) *StaffResponse {
	if s == nil {
		return nil
	}

	return &StaffResponse{
		ID:        s.ID,
		SalonID:   s.SalonID,
		UserID:    s.UserID,
		Name:      s.Name,
		Role:      string(s.Role),
		IsActive:  s.IsActive,
		CreatedAt: s.CreatedAt,
	}
}

// FromDomainStaffList конвертирует список domain моделей в DTO
func FromDomainStaffList(list []*domain.Staff) *StaffListResponse {
	resp := &StaffListResponse{
		Staff: make([]StaffResponse, 0, len(list)),
	}

	for _, s := range list {
		if item := FromDomainStaff(s); item != nil {
			resp.Staff = append(resp.Staff, *item)
		}
	}

	return resp
}

// FromDomainSchedule конвертирует окна мастера в DTO
func FromDomainSchedule(staffID int64, windows []*domain.WorkingWindow) *ScheduleResponse {
	resp := &ScheduleResponse{
		StaffID: staffID,
		Windows: make([]WorkingWindowResponse, 0, len(windows)),
	}

	for _, w := range windows {
		if w == nil {
			continue
		}
		resp.Windows = append(resp.Windows, WorkingWindowResponse{
			Weekday:   int(w.Weekday),
			StartTime: w.Start.String(),
			EndTime:   w.End.String(),
			IsActive:  w.IsActive,
		})
	}

	return resp
}
