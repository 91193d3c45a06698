package messaging

import (
	"context"
	"time"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
)

// publisher 消息发布能力(*mq.Publisher实现了它)
type publisher interface {
	Publish(ctx context.Context, routingKey string, message interface{}) error
}

// bookMessage 事件消息体(对外契约,字段名保持稳定)
type bookMessage struct {
	Event      string       `json:"event"`
	BookID     string       `json:"book_id"`
	Owner      string       `json:"owner"`
	OccurredAt time.Time    `json:"occurred_at"`
	Book       *bookPayload `json:"book"`
}

type bookPayload struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Author      string    `json:"author"`
	Price       float64   `json:"price"`
	Rating      float64   `json:"rating"`
	Category    string    `json:"category"`
	Owner       string    `json:"owner"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// EventPublisher 图书目录事件发布(RabbitMQ)
// 事件类型直接作为Routing Key(book.created/book.updated/book.deleted)
type EventPublisher struct {
	pub publisher
}

// NewEventPublisher 创建事件发布者
func NewEventPublisher(pub publisher) *EventPublisher {
	return &EventPublisher{pub: pub}
}

// Publish 发布事件
func (p *EventPublisher) Publish(ctx context.Context, e book.Event) error {
	return p.pub.Publish(ctx, string(e.Type), toMessage(e))
}

func toMessage(e book.Event) bookMessage {
	msg := bookMessage{
		Event:      string(e.Type),
		BookID:     e.BookID,
		Owner:      e.Owner,
		OccurredAt: e.OccurredAt,
	}
	if b := e.Book; b != nil {
		msg.Book = &bookPayload{
			ID:          b.ID,
			Title:       b.Title,
			Description: b.Description,
			Author:      b.Author,
			Price:       b.Price,
			Rating:      b.Rating,
			Category:    string(b.Category),
			Owner:       b.Owner,
			CreatedAt:   b.CreatedAt,
			UpdatedAt:   b.UpdatedAt,
		}
	}
	return msg
}

// NopPublisher 未启用事件时使用
type NopPublisher struct{}

// Publish 丢弃事件
func (NopPublisher) Publish(context.Context, book.Event) error { return nil }
