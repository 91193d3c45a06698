package book

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
)

// eventTimeout 单次事件发布的超时
const eventTimeout = 2 * time.Second

// BookInput 创建/更新图书的输入DTO
// 指针为nil表示"未提供",由领域层决定是否必填
type BookInput struct {
	Title       *string
	Description *string
	Author      *string
	Price       *float64
	Rating      *float64
	Category    *string
}

// toFields 输入DTO → 领域可写字段
func (in BookInput) toFields() book.Fields {
	f := book.Fields{
		Title:       in.Title,
		Description: in.Description,
		Author:      in.Author,
		Price:       in.Price,
		Rating:      in.Rating,
	}
	if in.Category != nil {
		c := book.Category(*in.Category)
		f.Category = &c
	}
	return f
}

// CreateBookRequest 创建图书请求DTO
type CreateBookRequest struct {
	BookInput
	Owner  string // 客户端提交的归属(会被忽略)
	UserID string // 从JWT中解析的当前用户
}

// UpdateBookRequest 更新图书请求DTO
type UpdateBookRequest struct {
	BookInput
	ID string
}

// ManageBookUseCase 图书维护用例(创建/查看/更新/删除)
// 设计说明:
// 1. 领域服务负责校验、归属和持久化,用例层只做编排
// 2. 写操作成功后发布领域事件,发布失败不影响响应
// 3. 事件发布使用脱离请求取消信号的Context,客户端断开不会丢失已完成写操作的通知
type ManageBookUseCase struct {
	bookService book.Service
	events      book.EventPublisher
	instrument
}

// NewManageBookUseCase 创建图书维护用例
func NewManageBookUseCase(bookService book.Service, events book.EventPublisher, log *zap.Logger) *ManageBookUseCase {
	return &ManageBookUseCase{
		bookService: bookService,
		events:      events,
		instrument:  newInstrument(log),
	}
}

// Create 创建图书
func (uc *ManageBookUseCase) Create(ctx context.Context, req *CreateBookRequest) (*BookResponse, error) {
	var created *book.Book
	err := uc.observe(ctx, "create", func(ctx context.Context) error {
		draft := book.Draft{Fields: req.toFields(), Owner: req.Owner}
		b, err := uc.bookService.Create(ctx, draft, book.Principal{ID: req.UserID})
		created = b
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info("图书已创建", zap.String("book_id", created.ID), zap.String("owner", created.Owner))
	uc.publish(ctx, book.NewEvent(book.EventCreated, created))
	return toBookResponse(created), nil
}

// Get 获取图书详情
func (uc *ManageBookUseCase) Get(ctx context.Context, id string) (*BookResponse, error) {
	var found *book.Book
	err := uc.observe(ctx, "get", func(ctx context.Context) error {
		b, err := uc.bookService.Get(ctx, id)
		found = b
		return err
	})
	if err != nil {
		return nil, err
	}
	return toBookResponse(found), nil
}

// Update 部分更新图书
func (uc *ManageBookUseCase) Update(ctx context.Context, req *UpdateBookRequest) (*BookResponse, error) {
	fields := req.toFields()

	var updated *book.Book
	err := uc.observe(ctx, "update", func(ctx context.Context) error {
		b, err := uc.bookService.Update(ctx, req.ID, fields)
		updated = b
		return err
	})
	if err != nil {
		return nil, err
	}

	// 空补丁没有产生变更,不发布事件
	if !fields.IsEmpty() {
		uc.publish(ctx, book.NewEvent(book.EventUpdated, updated))
	}
	return toBookResponse(updated), nil
}

// Delete 删除图书,返回被删除的记录
func (uc *ManageBookUseCase) Delete(ctx context.Context, id string) (*BookResponse, error) {
	var deleted *book.Book
	err := uc.observe(ctx, "delete", func(ctx context.Context) error {
		b, err := uc.bookService.Delete(ctx, id)
		deleted = b
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info("图书已删除", zap.String("book_id", deleted.ID))
	uc.publish(ctx, book.NewEvent(book.EventDeleted, deleted))
	return toBookResponse(deleted), nil
}

// publish 尽力而为地发布事件
func (uc *ManageBookUseCase) publish(ctx context.Context, e book.Event) {
	if uc.events == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), eventTimeout)
	defer cancel()

	result := "ok"
	if err := uc.events.Publish(ctx, e); err != nil {
		result = "error"
		uc.log.Warn("事件发布失败",
			zap.String("event", string(e.Type)),
			zap.String("book_id", e.BookID),
			zap.Error(err),
		)
	}
	metrics.IncCounterVec(metrics.CatalogEventsPublishedTotal, map[string]string{"event": string(e.Type), "result": result})
}
