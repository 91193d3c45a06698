package messaging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
)

type recordingPublisher struct {
	keys     []string
	messages []interface{}
}

func (r *recordingPublisher) Publish(_ context.Context, key string, msg interface{}) error {
	r.keys = append(r.keys, key)
	r.messages = append(r.messages, msg)
	return nil
}

func TestEventPublisher_Publish(t *testing.T) {
	rec := &recordingPublisher{}
	p := NewEventPublisher(rec)

	b := &book.Book{ID: "65a1f0c2e4b0a1b2c3d4e5f6", Title: "Dune", Author: "Frank Herbert", Category: book.CategoryScienceFiction, Owner: "user-1"}
	require.NoError(t, p.Publish(context.Background(), book.NewEvent(book.EventCreated, b)))

	require.Equal(t, []string{"book.created"}, rec.keys)
	msg, ok := rec.messages[0].(bookMessage)
	require.True(t, ok)
	assert.Equal(t, "book.created", msg.Event)
	assert.Equal(t, b.ID, msg.BookID)
	assert.Equal(t, "user-1", msg.Owner)
	assert.Equal(t, "Science Fiction", msg.Book.Category)
}

func TestNopPublisher(t *testing.T) {
	var p book.EventPublisher = NopPublisher{}
	assert.NoError(t, p.Publish(context.Background(), book.Event{Type: book.EventDeleted}))
}
