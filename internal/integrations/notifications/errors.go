package notifications

import "errors"

var (
	// ErrDisabled возвращается, когда брокеры Kafka не настроены
	ErrDisabled = errors.New("notifications: kafka is not configured")

	// ErrPublish возвращается при ошибке записи сообщения в Kafka
	ErrPublish = errors.New("notifications: failed to publish message")

	// ErrEncode возвращается при ошибке сериализации события
	ErrEncode = errors.New("notifications: failed to encode event")
)
