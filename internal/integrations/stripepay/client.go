package stripepay

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/paymentintent"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для создания платежей в Stripe
type Client struct {
	intents    *paymentintent.Client
	configured bool
	log        Logger
}

// NewClient создает клиент Stripe с собственным ключом (без глобального stripe.Key)
func NewClient(secretKey string, log Logger) *Client {
	secretKey = strings.TrimSpace(secretKey)
	return &Client{
		intents: &paymentintent.Client{
			B:   stripe.GetBackend(stripe.APIBackend),
			Key: secretKey,
		},
		configured: secretKey != "",
		log:        log,
	}
}

// CreateIntent создает PaymentIntent для оплаты записи картой
func (c *Client) CreateIntent(ctx context.Context, req IntentRequest) (*Intent, error) {
	if !c.configured {
		c.log.Warn("CreateIntent: stripe is not configured, appointment_id=%d", req.AppointmentID)
		return nil, ErrNotConfigured
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(req.AmountMinor),
		Currency: stripe.String(req.Currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	params.IdempotencyKey = stripe.String(req.IdempotencyKey)
	params.AddMetadata("appointment_id", strconv.FormatInt(req.AppointmentID, 10))
	params.AddMetadata("salon_id", strconv.FormatInt(req.SalonID, 10))
	params.AddMetadata("client_id", strconv.FormatInt(req.ClientID, 10))

	pi, err := c.intents.New(params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.Type == stripe.ErrorTypeCard {
			c.log.Warn("CreateIntent: card error for appointment_id=%d: %s", req.AppointmentID, stripeErr.Msg)
			return nil, fmt.Errorf("%w: %s", ErrCardDeclined, stripeErr.Msg)
		}
		c.log.Error("CreateIntent: stripe error for appointment_id=%d: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: CreateIntent - %v", ErrInternal, err)
	}

	c.log.Info("CreateIntent: created payment intent id=%s for appointment_id=%d", pi.ID, req.AppointmentID)
	return &Intent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Status:       string(pi.Status),
	}, nil
}

// GetIntent получает актуальное состояние PaymentIntent
func (c *Client) GetIntent(ctx context.Context, id string) (*Intent, error) {
	if !c.configured {
		c.log.Warn("GetIntent: stripe is not configured, intent_id=%s", id)
		return nil, ErrNotConfigured
	}

	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	pi, err := c.intents.Get(id, params)
	if err != nil {
		c.log.Error("GetIntent: stripe error for intent_id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetIntent - %v", ErrInternal, err)
	}

	return &Intent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Status:       string(pi.Status),
	}, nil
}
