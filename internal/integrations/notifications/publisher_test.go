package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/m04kA/SMC-SalonService/pkg/logger"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func headerValue(headers []kafka.Header, key string) string {
	for _, h := range headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func TestPublishReminder(t *testing.T) {
	otel.SetTextMapPropagator(propagation.TraceContext{})

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	w := &fakeWriter{}
	p := NewPublisherWithWriter(w, "appointments.reminders", logger.NewNop())

	err := p.PublishReminder(ctx, &ReminderEvent{
		AppointmentID: 42,
		SalonID:       1,
		ClientID:      500,
		StartTime:     "10:00",
	})
	require.NoError(t, err)
	require.Len(t, w.messages, 1)

	msg := w.messages[0]
	assert.Equal(t, "42", string(msg.Key))
	assert.Equal(t, ReminderEventType, headerValue(msg.Headers, "event_type"))
	assert.NotEmpty(t, headerValue(msg.Headers, "event_id"))
	assert.Contains(t, headerValue(msg.Headers, "traceparent"), "4bf92f3577b34da6a3ce929d0e0e4736")

	var decoded ReminderEvent
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, int64(42), decoded.AppointmentID)
	assert.Equal(t, headerValue(msg.Headers, "event_id"), decoded.EventID)
	assert.Nil(t, decoded.Contact)
}

func TestPublishReminder_Errors(t *testing.T) {
	disabled := NewPublisher(nil, "appointments.reminders", logger.NewNop())
	assert.ErrorIs(t, disabled.PublishReminder(context.Background(), &ReminderEvent{}), ErrDisabled)
	assert.NoError(t, disabled.Close())

	w := &fakeWriter{err: errors.New("leader not available")}
	p := NewPublisherWithWriter(w, "appointments.reminders", logger.NewNop())
	assert.ErrorIs(t, p.PublishReminder(context.Background(), &ReminderEvent{AppointmentID: 1}), ErrPublish)

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}
