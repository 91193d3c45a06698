package tracing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// useRecorder 安装一个把Span记录在内存中的全局Provider
func useRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		otel.SetTracerProvider(prev)
	})
	return recorder
}

// TestInitTracer Collector不可用时也能初始化(连接异步建立)
func TestInitTracer(t *testing.T) {
	prev := otel.GetTracerProvider()
	defer otel.SetTracerProvider(prev)

	shutdown, err := InitTracer("test-service", "localhost:4317")
	require.NoError(t, err)
	require.NotNil(t, shutdown)

	_ = shutdown(context.Background())
	t.Log("✅ Tracer初始化成功")
}

func TestStartSpan(t *testing.T) {
	recorder := useRecorder(t)

	t.Run("子Span继承TraceID", func(t *testing.T) {
		ctx, root := StartSpan(context.Background(), "test", "root")
		_, child := StartSpan(ctx, "test", "child")
		child.End()
		root.End()

		assert.Equal(t, root.SpanContext().TraceID(), child.SpanContext().TraceID())
		assert.NotEqual(t, root.SpanContext().SpanID(), child.SpanContext().SpanID())
	})

	ended := recorder.Ended()
	require.Len(t, ended, 2)
	assert.Equal(t, "child", ended[0].Name())
	assert.Equal(t, "root", ended[1].Name())
}

func TestRecordError(t *testing.T) {
	recorder := useRecorder(t)

	_, ok := StartSpan(context.Background(), "test", "ok")
	RecordError(ok, nil)
	ok.End()

	_, failed := StartSpan(context.Background(), "test", "failed")
	RecordError(failed, errors.New("storage timeout"))
	failed.End()

	ended := recorder.Ended()
	require.Len(t, ended, 2)
	assert.Equal(t, codes.Unset, ended[0].Status().Code)
	assert.Equal(t, codes.Error, ended[1].Status().Code)
	assert.Equal(t, "storage timeout", ended[1].Status().Description)
	assert.Len(t, ended[1].Events(), 1) // exception事件
}

func TestExtractTraceID(t *testing.T) {
	useRecorder(t)

	t.Run("从有效Context提取TraceID", func(t *testing.T) {
		ctx, span := StartSpan(context.Background(), "test", "op")
		defer span.End()

		assert.Equal(t, span.SpanContext().TraceID().String(), ExtractTraceID(ctx))
	})

	t.Run("从无效Context提取TraceID", func(t *testing.T) {
		assert.Empty(t, ExtractTraceID(context.Background()))
	})
}
