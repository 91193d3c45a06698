// Package metrics 提供基于Prometheus的指标收集
//
// # 核心概念
//
// **1. Counter（计数器）**：只增不减的累计值
//   - 示例：HTTP请求总数、图书目录操作总数、限流拒绝次数
//
// **2. Gauge（仪表盘）**：可增可减的瞬时值
//   - 示例：正在处理的HTTP请求数
//
// **3. Histogram（直方图）**：观测值的分布
//   - 示例：HTTP请求耗时、目录操作耗时、单次查询返回的图书数
//
// # 使用示例
//
//	// 1. 初始化Metrics
//	metrics.InitMetrics()
//
//	// 2. 暴露/metrics端点
//	router.GET("/metrics", gin.WrapH(metrics.Handler()))
//
//	// 3. 在业务代码中记录指标
//	start := time.Now()
//	result, err := svc.List(ctx, filter, page)
//	metrics.IncCounterVec(metrics.CatalogOperationsTotal, map[string]string{
//	    "operation": "list",
//	    "result":    metrics.ResultLabel(err),
//	})
//	metrics.ObserveHistogramVec(metrics.CatalogOperationDuration,
//	    map[string]string{"operation": "list"}, time.Since(start).Seconds())
//
// # 命名规范
//
// 1. Counter以`_total`结尾
// 2. Histogram以单位结尾（`_seconds`）
//
// # 标签
//
// 只使用有限取值的标签（operation、result、method、路由模板），
// 不使用图书ID、用户ID这类高基数字段
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

var (
	// once 防止重复注册
	once sync.Once

	// HTTP请求相关指标

	// HTTPRequestsTotal HTTP请求总数（Counter）
	// 标签：method（GET/POST）、path（路由模板，如/api/v1/books/:id）、status（200/404）
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时（Histogram）
	// 桶设置：1ms、10ms、100ms、500ms、1s、5s、10s
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数（Gauge）
	HTTPRequestsInProgress prometheus.Gauge

	// RateLimitedRequestsTotal 被限流拒绝的请求数（Counter）
	RateLimitedRequestsTotal prometheus.Counter

	// 图书目录业务指标

	// CatalogOperationsTotal 目录操作总数（Counter）
	// 标签：operation（create/get/list/by_author...）、result（ok/validation_failed/duplicate...）
	CatalogOperationsTotal *prometheus.CounterVec

	// CatalogOperationDuration 目录操作耗时（Histogram）
	CatalogOperationDuration *prometheus.HistogramVec

	// BooksReturned 单次检索返回的图书数（Histogram）
	BooksReturned *prometheus.HistogramVec

	// 事件指标

	// CatalogEventsPublishedTotal 目录事件发布总数（Counter）
	// 标签：event（book.created/book.updated/book.deleted）、result（ok/error）
	CatalogEventsPublishedTotal *prometheus.CounterVec
)

// InitMetrics 初始化所有Prometheus指标
//
// 必须在程序启动时调用一次，多次调用是安全的
//
// 设计要点：
// 1. 使用promauto.New*自动注册到默认Registry
// 2. Counter使用*Vec支持标签（多维度统计）
// 3. Histogram的Buckets根据业务场景定制
func InitMetrics() {
	once.Do(func() {
		// HTTP请求指标
		HTTPRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "HTTP请求总数",
			},
			[]string{"method", "path", "status"},
		)

		HTTPRequestDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP请求耗时（秒）",
				Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
			},
			[]string{"method", "path"},
		)

		HTTPRequestsInProgress = promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_progress",
				Help: "正在处理的HTTP请求数",
			},
		)

		RateLimitedRequestsTotal = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "http_rate_limited_requests_total",
				Help: "被限流拒绝的请求数",
			},
		)

		// 图书目录指标
		CatalogOperationsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_operations_total",
				Help: "图书目录操作总数",
			},
			[]string{"operation", "result"},
		)

		CatalogOperationDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "catalog_operation_duration_seconds",
				Help: "图书目录操作耗时（秒）",
				// 单次存储调用，通常在毫秒级
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
			[]string{"operation"},
		)

		BooksReturned = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "catalog_books_returned",
				Help:    "单次检索返回的图书数",
				Buckets: []float64{0, 1, 5, 10, 20, 50, 100},
			},
			[]string{"operation"},
		)

		// 事件指标
		CatalogEventsPublishedTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_events_published_total",
				Help: "图书目录事件发布总数",
			},
			[]string{"event", "result"},
		)
	})
}

// Handler /metrics端点
func Handler() http.Handler {
	return promhttp.Handler()
}

// ResultLabel 错误 → result标签（取值有限）
func ResultLabel(err error) string {
	if err == nil {
		return "ok"
	}
	appErr := apperrors.GetAppError(err)
	switch appErr.Code {
	case apperrors.ErrCodeValidationFailed:
		return "validation_failed"
	case apperrors.ErrCodeDuplicateRecord:
		return "duplicate"
	case apperrors.ErrCodeBookNotFound, apperrors.ErrCodeNotFound:
		return "not_found"
	case apperrors.ErrCodeInvalidIdentifier:
		return "invalid_id"
	case apperrors.ErrCodeUnauthorized:
		return "unauthorized"
	case apperrors.ErrCodeStorageUnavailable:
		return "unavailable"
	default:
		return "error"
	}
}

// IncCounter 递增Counter（便捷函数）
func IncCounter(counter prometheus.Counter) {
	counter.Inc()
}

// IncCounterVec 递增CounterVec（带标签）
func IncCounterVec(counter *prometheus.CounterVec, labels map[string]string) {
	counter.With(labels).Inc()
}

// IncGauge 递增Gauge
func IncGauge(gauge prometheus.Gauge) {
	gauge.Inc()
}

// DecGauge 递减Gauge
func DecGauge(gauge prometheus.Gauge) {
	gauge.Dec()
}

// ObserveHistogramVec 记录HistogramVec观测值（带标签）
func ObserveHistogramVec(histogram *prometheus.HistogramVec, labels map[string]string, value float64) {
	histogram.With(labels).Observe(value)
}
