package tracing

import (
	"context"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

func TestKafkaHeaders_RoundTrip(t *testing.T) {
	shutdown, err := Setup(context.Background(), Config{Enabled: false})
	require.NoError(t, err)
	defer func() { _ = shutdown(context.Background()) }()

	tp := sdktrace.NewTracerProvider()
	defer func() { _ = tp.Shutdown(context.Background()) }()

	ctx, span := tp.Tracer("test").Start(context.Background(), "publish")
	defer span.End()

	headers := InjectKafkaHeaders(ctx, []kafka.Header{{Key: "traceparent", Value: []byte("stale")}})

	var traceparent int
	for _, h := range headers {
		if h.Key == "traceparent" {
			traceparent++
			assert.Contains(t, string(h.Value), span.SpanContext().TraceID().String())
		}
	}
	assert.Equal(t, 1, traceparent)

	extracted := ExtractKafkaContext(context.Background(), kafka.Message{Headers: headers})
	remote := trace.SpanContextFromContext(extracted)
	assert.True(t, remote.IsRemote())
	assert.Equal(t, span.SpanContext().TraceID(), remote.TraceID())
}
