package get_salon_analytics

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// Request модель запроса аналитики салона
type Request struct {
	UserID    int64
	SalonID   int64
	StartDate *time.Time // По умолчанию: EndDate - 29 дней
	EndDate   *time.Time // По умолчанию: сегодня
}

// Response сводка салона за период
type Response struct {
	SalonID   int64
	StartDate time.Time
	EndDate   time.Time
	Summary   *domain.AnalyticsSummary
}
