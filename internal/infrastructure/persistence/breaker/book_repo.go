// Package breaker 为图书仓储加上熔断保护
//
// # 状态机
//
//	CLOSED ──(连续失败达到阈值)──▶ OPEN ──(Timeout后)──▶ HALF_OPEN
//	   ▲                                                   │
//	   └──────────────(探测请求成功)────────────────────────┘
//
// 存储故障时快速失败(直接返回ErrStorageUnavailable)，避免请求堆积在超时上。
// 领域层面的"失败"(不存在、重复、校验)说明存储是健康的，不计入失败次数。
package breaker

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// Config 熔断配置
type Config struct {
	MaxFailures uint32        // 连续失败多少次后打开
	OpenTimeout time.Duration // 打开状态持续时间，之后进入半开
	HalfOpenMax uint32        // 半开状态允许的探测请求数
}

// bookRepository 熔断装饰器
type bookRepository struct {
	next book.Repository
	cb   *gobreaker.CircuitBreaker
}

// NewBookRepository 用熔断器包装图书仓储
func NewBookRepository(next book.Repository, cfg Config, log *zap.Logger) book.Repository {
	if cfg.HalfOpenMax == 0 {
		cfg.HalfOpenMax = 1
	}
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "book-storage",
		MaxRequests: cfg.HalfOpenMax,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.MaxFailures
		},
		IsSuccessful: isHealthy,
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("存储熔断器状态变化",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
	return &bookRepository{next: next, cb: cb}
}

// isHealthy 判断一次调用是否说明存储可用
func isHealthy(err error) bool {
	if err == nil {
		return true
	}
	for _, code := range []int{
		apperrors.ErrCodeBookNotFound,
		apperrors.ErrCodeDuplicateRecord,
		apperrors.ErrCodeValidationFailed,
		apperrors.ErrCodeInvalidIdentifier,
	} {
		if apperrors.HasCode(err, code) {
			return true
		}
	}
	// 调用方自己取消的请求不代表存储故障
	return errors.Is(err, context.Canceled)
}

// execute 在熔断器中执行存储调用
func execute[T any](r *bookRepository, fn func() (T, error)) (T, error) {
	out, err := r.cb.Execute(func() (interface{}, error) {
		return fn()
	})
	if err != nil {
		var zero T
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return zero, book.ErrStorageUnavailable.WithErr(err)
		}
		return zero, err
	}
	return out.(T), nil
}

func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	_, err := execute(r, func() (struct{}, error) {
		return struct{}{}, r.next.Create(ctx, b)
	})
	return err
}

func (r *bookRepository) FindByID(ctx context.Context, id string) (*book.Book, error) {
	return execute(r, func() (*book.Book, error) {
		return r.next.FindByID(ctx, id)
	})
}

func (r *bookRepository) Update(ctx context.Context, id string, f book.Fields) (*book.Book, error) {
	return execute(r, func() (*book.Book, error) {
		return r.next.Update(ctx, id, f)
	})
}

func (r *bookRepository) Delete(ctx context.Context, id string) (*book.Book, error) {
	return execute(r, func() (*book.Book, error) {
		return r.next.Delete(ctx, id)
	})
}

func (r *bookRepository) Find(ctx context.Context, q book.Query) ([]*book.Book, error) {
	return execute(r, func() ([]*book.Book, error) {
		return r.next.Find(ctx, q)
	})
}

func (r *bookRepository) Count(ctx context.Context, conds []book.Condition) (int64, error) {
	return execute(r, func() (int64, error) {
		return r.next.Count(ctx, conds)
	})
}
