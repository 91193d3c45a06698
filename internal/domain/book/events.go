package book

import (
	"context"
	"time"
)

// EventType 图书目录事件类型(同时作为消息路由键)
type EventType string

const (
	EventCreated EventType = "book.created"
	EventUpdated EventType = "book.updated"
	EventDeleted EventType = "book.deleted"
)

// Event 图书目录变更事件
// 写操作成功之后才会产生,Book为变更后的快照(删除时为被删除的记录)
type Event struct {
	Type       EventType
	BookID     string
	Owner      string
	Book       *Book
	OccurredAt time.Time
}

// NewEvent 根据写操作结果构造事件
func NewEvent(t EventType, b *Book) Event {
	return Event{
		Type:       t,
		BookID:     b.ID,
		Owner:      b.Owner,
		Book:       b,
		OccurredAt: time.Now().UTC(),
	}
}

// EventPublisher 事件发布接口(由infrastructure层的消息队列实现)
// 发布是尽力而为的:失败只记录日志,不影响已完成的写操作
type EventPublisher interface {
	Publish(ctx context.Context, e Event) error
}
