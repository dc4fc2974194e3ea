package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestTracerRecordsSpansAndErrors(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	tr := NewTracer()
	_, span := tr.Start(context.Background(), "graph.build", "graph.mode", "scoped", "dangling")
	End(span, assert.AnError)

	spans := rec.Ended()
	if assert.Len(t, spans, 1) {
		assert.Equal(t, "graph.build", spans[0].Name())
		assert.Len(t, spans[0].Attributes(), 1)
		assert.Len(t, spans[0].Events(), 1)
	}
}
