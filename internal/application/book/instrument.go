package book

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
	"github.com/xiebiao/bookcatalog/pkg/tracing"
)

const tracerName = "catalog"

// instrument 用例层的可观测性封装
// 每个目录操作:一个Span + 一次计数 + 一次耗时观测,存储故障额外记录Warn日志
type instrument struct {
	log *zap.Logger
}

func newInstrument(log *zap.Logger) instrument {
	if log == nil {
		log = zap.NewNop()
	}
	metrics.InitMetrics()
	return instrument{log: log}
}

// observe 在Span中执行fn,并按结果记录指标
func (in instrument) observe(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	ctx, span := tracing.StartSpan(ctx, tracerName, "catalog."+op)
	defer span.End()

	start := time.Now()
	err := fn(ctx)
	result := metrics.ResultLabel(err)

	span.SetAttributes(
		attribute.String("catalog.operation", op),
		attribute.String("catalog.result", result),
	)
	tracing.RecordError(span, err)

	metrics.IncCounterVec(metrics.CatalogOperationsTotal, map[string]string{"operation": op, "result": result})
	metrics.ObserveHistogramVec(metrics.CatalogOperationDuration, map[string]string{"operation": op}, time.Since(start).Seconds())

	if errors.Is(err, book.ErrStorageUnavailable) {
		in.log.Warn("目录操作失败:存储不可用",
			zap.String("operation", op),
			zap.String("trace_id", tracing.ExtractTraceID(ctx)),
			zap.Error(err),
		)
	}
	return err
}

// returned 记录本次返回的图书数量
func (in instrument) returned(op string, n int) {
	metrics.ObserveHistogramVec(metrics.BooksReturned, map[string]string{"operation": op}, float64(n))
}
