package domain

import (
	"math"
	"time"
)

// PaymentMethod how the client pays
type PaymentMethod string

const (
	PaymentMethodCard PaymentMethod = "card"
	PaymentMethodCash PaymentMethod = "cash"
)

// Valid reports whether m is a known method
func (m PaymentMethod) Valid() bool {
	return m == PaymentMethodCard || m == PaymentMethodCash
}

// PaymentStatus state of a payment
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusSucceeded PaymentStatus = "succeeded"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

// Payment for an appointment
type Payment struct {
	ID            int64
	AppointmentID int64
	SalonID       int64
	ClientID      int64
	Amount        float64
	Currency      string
	Method        PaymentMethod
	Status        PaymentStatus
	ExternalID    *string // Stripe PaymentIntent id
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsSucceeded true if the money was received
func (p *Payment) IsSucceeded() bool {
	return p.Status == PaymentStatusSucceeded
}

// AmountMinorUnits converts a price to cents
func AmountMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
