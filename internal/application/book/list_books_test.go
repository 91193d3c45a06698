package book

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/memory"
)

// seedCatalog 写入n本评分递增的图书,创建时间间隔1秒
func seedCatalog(t *testing.T, n int) book.Service {
	t.Helper()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	repo := memory.NewBookRepository(memory.WithClock(func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}))
	svc := book.NewService(repo)

	for i := 1; i <= n; i++ {
		in := duneInput()
		in.Title = strPtr(fmt.Sprintf("Book %02d", i))
		in.Rating = numPtr(float64(i%6) * 0.9)
		_, err := svc.Create(context.Background(), book.Draft{Fields: in.toFields()}, book.Principal{ID: "seed"})
		require.NoError(t, err)
	}
	return svc
}

func TestListBooksUseCase_All(t *testing.T) {
	uc := NewListBooksUseCase(seedCatalog(t, 12), zap.NewNop())

	page, err := book.NewPage(2, 5)
	require.NoError(t, err)

	resp, err := uc.All(context.Background(), page)

	require.NoError(t, err)
	assert.Equal(t, int64(12), resp.Total)
	assert.Equal(t, 2, resp.Page)
	assert.Equal(t, 5, resp.PageSize)
	require.Len(t, resp.List, 5)
	assert.Equal(t, "Book 06", resp.List[0].Title)
	assert.Equal(t, "Book 10", resp.List[4].Title)
}

func TestListBooksUseCase_EmptyPage(t *testing.T) {
	uc := NewListBooksUseCase(seedCatalog(t, 3), zap.NewNop())

	page, err := book.NewPage(5, 10)
	require.NoError(t, err)

	resp, err := uc.All(context.Background(), page)

	require.NoError(t, err)
	assert.NotNil(t, resp.List)
	assert.Empty(t, resp.List)
	assert.Equal(t, int64(3), resp.Total)
}

func TestListBooksUseCase_Newest(t *testing.T) {
	uc := NewListBooksUseCase(seedCatalog(t, 4), zap.NewNop())

	resp, err := uc.Newest(context.Background(), 2)

	require.NoError(t, err)
	require.Len(t, resp.List, 2)
	assert.Equal(t, "Book 04", resp.List[0].Title)
	assert.Equal(t, "Book 03", resp.List[1].Title)
}

func TestListBooksUseCase_ValidationPassThrough(t *testing.T) {
	uc := NewListBooksUseCase(seedCatalog(t, 1), zap.NewNop())

	_, err := uc.ByAuthor(context.Background(), "   ", book.DefaultPagination())
	assert.ErrorIs(t, err, book.ErrValidationFailed)

	_, err = uc.Newest(context.Background(), 0)
	assert.ErrorIs(t, err, book.ErrValidationFailed)
}

func TestListBooksUseCase_Span(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	uc := NewListBooksUseCase(seedCatalog(t, 2), zap.NewNop())
	_, err := uc.SearchTitle(context.Background(), "book", book.DefaultPagination())
	require.NoError(t, err)

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "catalog.search_title", ended[0].Name())

	attrs := map[string]string{}
	for _, kv := range ended[0].Attributes() {
		attrs[string(kv.Key)] = kv.Value.AsString()
	}
	assert.Equal(t, "search_title", attrs["catalog.operation"])
	assert.Equal(t, "ok", attrs["catalog.result"])
}
