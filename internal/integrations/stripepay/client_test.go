package stripepay

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SalonService/pkg/logger"
)

func TestCreateIntent_NotConfigured(t *testing.T) {
	c := NewClient("   ", logger.NewNop())

	_, err := c.CreateIntent(context.Background(), IntentRequest{
		AppointmentID:  1,
		AmountMinor:    150000,
		Currency:       "rub",
		IdempotencyKey: "payment:1",
	})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestGetIntent_NotConfigured(t *testing.T) {
	c := NewClient("", logger.NewNop())
	_, err := c.GetIntent(context.Background(), "pi_123")
	assert.ErrorIs(t, err, ErrNotConfigured)
}
