package book

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
)

// ListBooksUseCase 图书检索用例
// 设计说明:
// 1. 所有检索共用一个执行路径(run),保证指标/追踪的口径一致
// 2. 参数解析(字符串 → Page/Range)在接口层完成,这里只接收已解析的领域类型
// 3. 校验错误由领域服务返回,用例层原样透传
type ListBooksUseCase struct {
	bookService book.Service
	instrument
}

// NewListBooksUseCase 创建图书检索用例
func NewListBooksUseCase(bookService book.Service, log *zap.Logger) *ListBooksUseCase {
	return &ListBooksUseCase{
		bookService: bookService,
		instrument:  newInstrument(log),
	}
}

// List 组合过滤分页查询
func (uc *ListBooksUseCase) List(ctx context.Context, f book.Filter, p book.Page) (*ListBooksResponse, error) {
	return uc.run(ctx, "list", func(ctx context.Context) (*book.Result, error) {
		return uc.bookService.List(ctx, f, p)
	})
}

// All 全部图书
func (uc *ListBooksUseCase) All(ctx context.Context, p book.Page) (*ListBooksResponse, error) {
	return uc.run(ctx, "all", func(ctx context.Context) (*book.Result, error) {
		return uc.bookService.All(ctx, p)
	})
}

// ByAuthor 按作者检索
func (uc *ListBooksUseCase) ByAuthor(ctx context.Context, author string, p book.Page) (*ListBooksResponse, error) {
	return uc.run(ctx, "by_author", func(ctx context.Context) (*book.Result, error) {
		return uc.bookService.ByAuthor(ctx, author, p)
	})
}

// ByCategory 按分类检索
func (uc *ListBooksUseCase) ByCategory(ctx context.Context, category string, p book.Page) (*ListBooksResponse, error) {
	return uc.run(ctx, "by_category", func(ctx context.Context) (*book.Result, error) {
		return uc.bookService.ByCategory(ctx, category, p)
	})
}

// SearchTitle 按书名关键字检索
func (uc *ListBooksUseCase) SearchTitle(ctx context.Context, keyword string, p book.Page) (*ListBooksResponse, error) {
	return uc.run(ctx, "search_title", func(ctx context.Context) (*book.Result, error) {
		return uc.bookService.BySearchTitle(ctx, keyword, p)
	})
}

// PriceRange 价格区间检索
func (uc *ListBooksUseCase) PriceRange(ctx context.Context, r book.Range, p book.Page) (*ListBooksResponse, error) {
	return uc.run(ctx, "price_range", func(ctx context.Context) (*book.Result, error) {
		return uc.bookService.ByPriceRange(ctx, r, p)
	})
}

// RatingRange 评分区间检索
func (uc *ListBooksUseCase) RatingRange(ctx context.Context, r book.Range, p book.Page) (*ListBooksResponse, error) {
	return uc.run(ctx, "rating_range", func(ctx context.Context) (*book.Result, error) {
		return uc.bookService.ByRatingRange(ctx, r, p)
	})
}

func (uc *ListBooksUseCase) AbovePrice(ctx context.Context, price float64, p book.Page) (*ListBooksResponse, error) {
	return uc.run(ctx, "above_price", func(ctx context.Context) (*book.Result, error) {
		return uc.bookService.AbovePrice(ctx, price, p)
	})
}

func (uc *ListBooksUseCase) BelowPrice(ctx context.Context, price float64, p book.Page) (*ListBooksResponse, error) {
	return uc.run(ctx, "below_price", func(ctx context.Context) (*book.Result, error) {
		return uc.bookService.BelowPrice(ctx, price, p)
	})
}

func (uc *ListBooksUseCase) AboveRating(ctx context.Context, rating float64, p book.Page) (*ListBooksResponse, error) {
	return uc.run(ctx, "above_rating", func(ctx context.Context) (*book.Result, error) {
		return uc.bookService.AboveRating(ctx, rating, p)
	})
}

func (uc *ListBooksUseCase) BelowRating(ctx context.Context, rating float64, p book.Page) (*ListBooksResponse, error) {
	return uc.run(ctx, "below_rating", func(ctx context.Context) (*book.Result, error) {
		return uc.bookService.BelowRating(ctx, rating, p)
	})
}

// Newest 最新创建的n本图书
func (uc *ListBooksUseCase) Newest(ctx context.Context, n int) (*ListBooksResponse, error) {
	return uc.run(ctx, "newest", func(ctx context.Context) (*book.Result, error) {
		return uc.bookService.Newest(ctx, n)
	})
}

// run 执行检索并转换为响应DTO
func (uc *ListBooksUseCase) run(ctx context.Context, op string, query func(ctx context.Context) (*book.Result, error)) (*ListBooksResponse, error) {
	var result *book.Result
	err := uc.observe(ctx, op, func(ctx context.Context) error {
		r, err := query(ctx)
		result = r
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.returned(op, len(result.Books))
	return toListResponse(result), nil
}
