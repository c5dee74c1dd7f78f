package models

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// PayRequest запрос на оплату записи
type PayRequest struct {
	UserID int64  `json:"-"`
	Method string `json:"method"` // "card" | "cash"
}

// ListPaymentsRequest запрос на получение оплат салона за период
type ListPaymentsRequest struct {
	UserID    int64      `json:"-"`
	SalonID   int64      `json:"-"`
	StartDate *time.Time `json:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty"`
}

// PaymentResponse ответ с данными оплаты
type PaymentResponse struct {
	ID            int64     `json:"id"`
	AppointmentID int64     `json:"appointmentId"`
	SalonID       int64     `json:"salonId"`
	ClientID      int64     `json:"clientId"`
	Amount        float64   `json:"amount"`
	Currency      string    `json:"currency"`
	Method        string    `json:"method"`
	Status        string    `json:"status"`
	ExternalID    *string   `json:"externalId,omitempty"`
	ClientSecret  *string   `json:"clientSecret,omitempty"` // Только при создании оплаты картой
	CreatedAt     time.Time `json:"createdAt"`
}

// PaymentListResponse ответ со списком оплат
type PaymentListResponse struct {
	StartDate string            `json:"startDate"`
	EndDate   string            `json:"endDate"`
	Payments  []PaymentResponse `json:"payments"`
}

// FromDomainPayment конвертирует domain модель в DTO
func FromDomainPayment(p *domain.Payment) *PaymentResponse {
	if p == nil {
		return nil
	}

	return &PaymentResponse{
		ID:            p.ID,
		AppointmentID: p.AppointmentID,
		SalonID:       p.SalonID,
		ClientID:      p.ClientID,
		Amount:        p.Amount,
		Currency:      p.Currency,
		Method:        string(p.Method),
		Status:        string(p.Status),
		ExternalID:    p.ExternalID,
		CreatedAt:     p.CreatedAt,
	}
}

// FromDomainPaymentList конвертирует список domain моделей в DTO
func FromDomainPaymentList(from, to time.Time, payments []*domain.Payment) *PaymentListResponse {
	resp := &PaymentListResponse{
		StartDate: from.Format(domain.DateFormat),
		EndDate:   to.Format(domain.DateFormat),
		Payments:  make([]PaymentResponse, 0, len(payments)),
	}

	for _, p := range payments {
		if item := FromDomainPayment(p); item != nil {
			resp.Payments = append(resp.Payments, *item)
		}
	}

	return resp
}
