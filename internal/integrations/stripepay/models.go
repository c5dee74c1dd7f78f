package stripepay

// Статусы PaymentIntent, на которые реагирует сервис
const (
	IntentStatusSucceeded = "succeeded"
	IntentStatusCanceled  = "canceled"
)

// IntentRequest параметры создания PaymentIntent
type IntentRequest struct {
	AppointmentID  int64
	SalonID        int64
	ClientID       int64
	AmountMinor    int64  // Сумма в минимальных единицах валюты
	Currency       string // ISO код в нижнем регистре, например "rub"
	IdempotencyKey string
}

// Intent созданный PaymentIntent
type Intent struct {
	ID           string
	ClientSecret string
	Status       string
}
