package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
)

func newBook(title, author string, price float64) *book.Book {
	return &book.Book{
		Title:    title,
		Author:   author,
		Price:    price,
		Rating:   4,
		Category: book.CategoryHistory,
		Owner:    "alice",
	}
}

func fixedClock() func() time.Time {
	base := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	n := 0
	return func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Second)
	}
}

func TestBookRepository_Create(t *testing.T) {
	ctx := context.Background()
	repo := NewBookRepository(WithClock(fixedClock()))

	b := newBook("SPQR", "Mary Beard", 18)
	require.NoError(t, repo.Create(ctx, b))
	assert.True(t, book.IsValidID(b.ID))
	assert.Equal(t, time.Date(2024, 5, 1, 8, 0, 1, 0, time.UTC), b.CreatedAt)

	// 唯一键大小写敏感
	assert.ErrorIs(t, repo.Create(ctx, newBook("SPQR", "Mary Beard", 1)), book.ErrDuplicateRecord)
	assert.NoError(t, repo.Create(ctx, newBook("spqr", "Mary Beard", 1)))
}

func TestBookRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewBookRepository()
	b := newBook("SPQR", "Mary Beard", 18)
	require.NoError(t, repo.Create(ctx, b))

	b.Title = "changed"
	got, err := repo.FindByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "SPQR", got.Title)

	got.Price = 0
	again, err := repo.FindByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 18.0, again.Price)
}

func TestBookRepository_Update(t *testing.T) {
	ctx := context.Background()
	repo := NewBookRepository(WithClock(fixedClock()))
	a := newBook("SPQR", "Mary Beard", 18)
	b := newBook("Rubicon", "Tom Holland", 12)
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	title := "Rubicon"
	author := "Tom Holland"
	_, err := repo.Update(ctx, a.ID, book.Fields{Title: &title, Author: &author})
	assert.ErrorIs(t, err, book.ErrDuplicateRecord)

	// 改名后旧键释放
	newTitle := "SPQR 2nd ed."
	updated, err := repo.Update(ctx, a.ID, book.Fields{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, "alice", updated.Owner)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))
	assert.NoError(t, repo.Create(ctx, newBook("SPQR", "Mary Beard", 5)))

	_, err = repo.Update(ctx, book.NewID(), book.Fields{Title: &newTitle})
	assert.ErrorIs(t, err, book.ErrBookNotFound)
}

func TestBookRepository_Delete(t *testing.T) {
	ctx := context.Background()
	repo := NewBookRepository()
	b := newBook("SPQR", "Mary Beard", 18)
	require.NoError(t, repo.Create(ctx, b))

	deleted, err := repo.Delete(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "SPQR", deleted.Title)

	_, err = repo.FindByID(ctx, b.ID)
	assert.ErrorIs(t, err, book.ErrBookNotFound)
	// 删除后唯一键可以复用
	assert.NoError(t, repo.Create(ctx, newBook("SPQR", "Mary Beard", 18)))
}

func TestBookRepository_FindAndCount(t *testing.T) {
	ctx := context.Background()
	repo := NewBookRepository(WithClock(fixedClock()))
	for i, price := range []float64{30, 10, 20, 40} {
		require.NoError(t, repo.Create(ctx, newBook("Vol "+string(rune('A'+i)), "Gibbon", price)))
	}

	floor := 15.0
	q, err := book.BuildQuery(book.Filter{Price: book.Range{Min: &floor}}, book.Page{Page: 1, Limit: 2})
	require.NoError(t, err)

	got, err := repo.Find(ctx, q)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Vol A", got[0].Title)
	assert.Equal(t, "Vol C", got[1].Title)

	n, err := repo.Count(ctx, q.Conditions)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	q.Skip = 10
	got, err = repo.Find(ctx, q)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	q.Skip = -20
	got, err = repo.Find(ctx, q)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestBookRepository_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	repo := NewBookRepository()

	assert.ErrorIs(t, repo.Create(ctx, newBook("SPQR", "Mary Beard", 18)), context.Canceled)
	_, err := repo.Find(ctx, book.Query{})
	assert.ErrorIs(t, err, context.Canceled)
}
