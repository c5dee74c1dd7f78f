package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/m04kA/SMC-SalonService/pkg/tracing"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// MessageWriter запись сообщений в Kafka (*kafka.Writer)
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher публикует события уведомлений в Kafka
type Publisher struct {
	writer MessageWriter
	topic  string
	log    Logger
}

// NewPublisher создает publisher поверх kafka.Writer.
// Без брокеров возвращает publisher, который отвечает ErrDisabled.
func NewPublisher(brokers []string, topic string, log Logger) *Publisher {
	if len(brokers) == 0 {
		return &Publisher{topic: topic, log: log}
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 50 * time.Millisecond,
	}

	return NewPublisherWithWriter(writer, topic, log)
}

// NewPublisherWithWriter создает publisher с заданным writer
func NewPublisherWithWriter(writer MessageWriter, topic string, log Logger) *Publisher {
	return &Publisher{
		writer: writer,
		topic:  topic,
		log:    log,
	}
}

// PublishReminder отправляет напоминание о записи.
// Ключ сообщения - ID записи, чтобы события одной записи попадали в одну партицию.
func (p *Publisher) PublishReminder(ctx context.Context, event *ReminderEvent) error {
	if p.writer == nil {
		return ErrDisabled
	}

	if event.EventID == "" {
		event.EventID = uuid.NewString()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: PublishReminder - %v", ErrEncode, err)
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(event.AppointmentID, 10)),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(event.EventID)},
			{Key: "event_type", Value: []byte(ReminderEventType)},
		},
	}
	msg.Headers = tracing.InjectKafkaHeaders(ctx, msg.Headers)

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("%w: PublishReminder - topic=%s, appointment_id=%d: %v", ErrPublish, p.topic, event.AppointmentID, err)
	}

	p.log.Info("PublishReminder: published event_id=%s for appointment_id=%d", event.EventID, event.AppointmentID)
	return nil
}

// Close закрывает соединения с Kafka
func (p *Publisher) Close() error {
	if p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
