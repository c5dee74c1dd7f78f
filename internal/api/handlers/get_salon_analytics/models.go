package get_salon_analytics

import (
	"strconv"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	getSalonAnalytics "github.com/m04kA/SMC-SalonService/internal/usecase/get_salon_analytics"
)

// AnalyticsResponse HTTP response model
type AnalyticsResponse struct {
	SalonID   int64  `json:"salonId"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`

	TotalAppointments     int            `json:"totalAppointments"`
	AppointmentsByStatus  map[string]int `json:"appointmentsByStatus"`
	AppointmentsByService map[string]int `json:"appointmentsByService"` // serviceId -> количество
	AppointmentsByStaff   map[string]int `json:"appointmentsByStaff"`   // staffId -> количество

	TotalRevenue     float64            `json:"totalRevenue"`
	RevenueByMethod  map[string]float64 `json:"revenueByMethod"`
	PaymentsByMethod map[string]int     `json:"paymentsByMethod"`

	AverageRating      float64        `json:"averageRating"`
	ReviewCount        int            `json:"reviewCount"`
	RatingDistribution map[string]int `json:"ratingDistribution"`

	UniqueClients    int     `json:"uniqueClients"`
	ReturningClients int     `json:"returningClients"`
	RetentionRate    float64 `json:"retentionRate"`
	CompletionRate   float64 `json:"completionRate"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getSalonAnalytics.Response) *AnalyticsResponse {
	s := resp.Summary
	if s == nil {
		s = domain.NewAnalyticsSummary()
	}

	result := &AnalyticsResponse{
		SalonID:   resp.SalonID,
		StartDate: resp.StartDate.Format(domain.DateFormat),
		EndDate:   resp.EndDate.Format(domain.DateFormat),

		TotalAppointments:     s.TotalAppointments,
		AppointmentsByStatus:  make(map[string]int, len(s.AppointmentsByStatus)),
		AppointmentsByService: make(map[string]int, len(s.AppointmentsByService)),
		AppointmentsByStaff:   make(map[string]int, len(s.AppointmentsByStaff)),

		TotalRevenue:     s.TotalRevenue,
		RevenueByMethod:  make(map[string]float64, len(s.RevenueByMethod)),
		PaymentsByMethod: make(map[string]int, len(s.PaymentsByMethod)),

		AverageRating:      s.AverageRating,
		ReviewCount:        s.ReviewCount,
		RatingDistribution: make(map[string]int, len(s.RatingDistribution)),

		UniqueClients:    s.UniqueClients,
		ReturningClients: s.ReturningClients,
		RetentionRate:    s.RetentionRate,
		CompletionRate:   s.CompletionRate,
	}

	for status, n := range s.AppointmentsByStatus {
		result.AppointmentsByStatus[string(status)] = n
	}
	for id, n := range s.AppointmentsByService {
		result.AppointmentsByService[strconv.FormatInt(id, 10)] = n
	}
	for id, n := range s.AppointmentsByStaff {
		result.AppointmentsByStaff[strconv.FormatInt(id, 10)] = n
	}
	for method, amount := range s.RevenueByMethod {
		result.RevenueByMethod[string(method)] = amount
	}
	for method, n := range s.PaymentsByMethod {
		result.PaymentsByMethod[string(method)] = n
	}
	for rating, n := range s.RatingDistribution {
		result.RatingDistribution[strconv.Itoa(rating)] = n
	}

	return result
}
