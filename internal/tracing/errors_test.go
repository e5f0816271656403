package tracing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newRecordedSpan(t *testing.T, record func(span sdktrace.ReadWriteSpan)) tracetest.SpanStub {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	_, span := provider.Tracer("test").Start(context.Background(), "op")
	rw, ok := span.(sdktrace.ReadWriteSpan)
	require.True(t, ok)
	record(rw)
	span.End()
	spans := recorder.Ended()
	require.Len(t, spans, 1)
	return tracetest.SpanStubFromReadOnlySpan(spans[0])
}

func attrValue(stub tracetest.SpanStub, key attribute.Key) (string, bool) {
	for _, kv := range stub.Attributes {
		if kv.Key == key {
			return kv.Value.AsString(), true
		}
	}
	return "", false
}

func TestRecordError(t *testing.T) {
	stub := newRecordedSpan(t, func(span sdktrace.ReadWriteSpan) {
		RecordError(span, errors.New("连接超时"), ErrorTypeTimeout)
	})

	errType, ok := attrValue(stub, "error.type")
	require.True(t, ok)
	assert.Equal(t, "timeout", errType)
	assert.Equal(t, codes.Error, stub.Status.Code)
	assert.Equal(t, "连接超时", stub.Status.Description)
	require.Len(t, stub.Events, 1)
}

func TestRecordHTTPError(t *testing.T) {
	// 1. 4xx 归类为 client_error
	stub := newRecordedSpan(t, func(span sdktrace.ReadWriteSpan) {
		RecordHTTPError(span, errors.New("bad request"), 400)
	})
	category, ok := attrValue(stub, "error.category")
	require.True(t, ok)
	assert.Equal(t, "client_error", category)

	// 2. 5xx 归类为 server_error
	stub = newRecordedSpan(t, func(span sdktrace.ReadWriteSpan) {
		RecordHTTPError(span, errors.New("upstream down"), 502)
	})
	category, ok = attrValue(stub, "error.category")
	require.True(t, ok)
	assert.Equal(t, "server_error", category)
}

func TestRecordRabbitMQNack(t *testing.T) {
	stub := newRecordedSpan(t, func(span sdktrace.ReadWriteSpan) {
		RecordRabbitMQNack(span, "outbox-42", "publish failed")
	})

	errType, ok := attrValue(stub, "error.type")
	require.True(t, ok)
	assert.Equal(t, "rabbitmq", errType)
	msgID, ok := attrValue(stub, "messaging.message_id")
	require.True(t, ok)
	assert.Equal(t, "outbox-42", msgID)
}

func TestRecordErrorNilSafe(t *testing.T) {
	// nil span 与 nil error 都不应panic
	assert.NotPanics(t, func() {
		RecordError(nil, errors.New("x"), ErrorTypeInternal)
		RecordError(nil, nil, ErrorTypeInternal)
		RecordErrorWithInfo(nil, errors.New("x"), ErrorTypeDB)
		RecordHTTPError(nil, errors.New("x"), 500)
		RecordRabbitMQNack(nil, "id", "reason")
	})
}
