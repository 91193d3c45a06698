package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appbook "github.com/xiebiao/bookcatalog/internal/application/book"
	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/memory"
	"github.com/xiebiao/bookcatalog/internal/interface/http/handler"
	"github.com/xiebiao/bookcatalog/internal/interface/http/middleware"
	"github.com/xiebiao/bookcatalog/internal/interface/http/router"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
	"github.com/xiebiao/bookcatalog/pkg/jwt"
)

const secret = "test-secret"

// revokedTokens 内存黑名单
type revokedTokens map[string]bool

func (r revokedTokens) IsRevoked(_ context.Context, token string) (bool, error) {
	return r[token], nil
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Details json.RawMessage `json:"details"`
}

type pageBody struct {
	List       []appbook.BookResponse `json:"list"`
	Total      int64                  `json:"total"`
	Page       int                    `json:"page"`
	PageSize   int                    `json:"page_size"`
	TotalPages int                    `json:"total_pages"`
}

type testServer struct {
	t       *testing.T
	engine  *gin.Engine
	token   string
	revoked revokedTokens
}

func newServer(t *testing.T, limiter *middleware.RateLimiter) *testServer {
	t.Helper()
	log := zap.NewNop()

	svc := book.NewService(memory.NewBookRepository())
	books := handler.NewBookHandler(
		appbook.NewManageBookUseCase(svc, nil, log),
		appbook.NewListBooksUseCase(svc, log),
	)

	jwtManager := jwt.NewManager(secret, time.Hour)
	revoked := revokedTokens{}
	auth := middleware.NewAuthMiddleware(jwtManager, revoked)

	engine, err := router.New(router.Options{ServiceName: "test", Mode: gin.TestMode}, log, books, auth, limiter)
	require.NoError(t, err)

	token, err := jwtManager.Generate("user-1", "user1@example.com")
	require.NoError(t, err)

	return &testServer{t: t, engine: engine, token: token, revoked: revoked}
}

func (s *testServer) do(method, path string, body interface{}, token string) (int, envelope) {
	s.t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &env)
	}
	return w.Code, env
}

func (s *testServer) create(payload map[string]interface{}) appbook.BookResponse {
	s.t.Helper()
	status, env := s.do(http.MethodPost, "/api/v1/books", payload, s.token)
	require.Equal(s.t, http.StatusCreated, status, env.Message)
	var b appbook.BookResponse
	require.NoError(s.t, json.Unmarshal(env.Data, &b))
	return b
}

func (s *testServer) list(path string) pageBody {
	s.t.Helper()
	status, env := s.do(http.MethodGet, path, nil, "")
	require.Equal(s.t, http.StatusOK, status, env.Message)
	var p pageBody
	require.NoError(s.t, json.Unmarshal(env.Data, &p))
	return p
}

func bookPayload(title, author string, price, rating float64) map[string]interface{} {
	return map[string]interface{}{
		"title":       title,
		"description": "desc of " + title,
		"author":      author,
		"price":       price,
		"rating":      rating,
		"category":    "Fiction",
	}
}

func TestPing(t *testing.T) {
	s := newServer(t, nil)
	status, env := s.do(http.MethodGet, "/ping", nil, "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 0, env.Code)
}

func TestCreateBook(t *testing.T) {
	s := newServer(t, nil)

	t.Run("未登录", func(t *testing.T) {
		status, env := s.do(http.MethodPost, "/api/v1/books", bookPayload("Dune", "Frank Herbert", 9.99, 4.5), "")
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, apperrors.ErrCodeUnauthorized, env.Code)
	})

	t.Run("Token格式错误", func(t *testing.T) {
		status, env := s.do(http.MethodPost, "/api/v1/books", bookPayload("Dune", "Frank Herbert", 9.99, 4.5), "garbage")
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, apperrors.ErrCodeInvalidToken, env.Code)
	})

	t.Run("创建成功且归属为当前用户", func(t *testing.T) {
		payload := bookPayload("Dune", "Frank Herbert", 9.99, 4.5)
		payload["owner"] = "mallory"

		b := s.create(payload)

		assert.True(t, book.IsValidID(b.ID))
		assert.Equal(t, "user-1", b.Owner)
		assert.Equal(t, "Fiction", b.Category)
	})

	t.Run("重复书名+作者", func(t *testing.T) {
		status, env := s.do(http.MethodPost, "/api/v1/books", bookPayload("Dune", "Frank Herbert", 20, 3), s.token)
		assert.Equal(t, http.StatusConflict, status)
		assert.Equal(t, apperrors.ErrCodeDuplicateRecord, env.Code)
	})

	t.Run("分类不合法", func(t *testing.T) {
		payload := bookPayload("Emma", "Jane Austen", 5, 4)
		payload["category"] = "fiction"

		status, env := s.do(http.MethodPost, "/api/v1/books", payload, s.token)

		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, apperrors.ErrCodeValidationFailed, env.Code)
		assert.Contains(t, string(env.Details), `"field":"category"`)
	})

	t.Run("缺少必填字段", func(t *testing.T) {
		status, env := s.do(http.MethodPost, "/api/v1/books", map[string]interface{}{"title": "Emma"}, s.token)

		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, apperrors.ErrCodeValidationFailed, env.Code)
		assert.Contains(t, string(env.Details), `"field":"author"`)
	})

	t.Run("JSON格式错误", func(t *testing.T) {
		status, env := s.do(http.MethodPost, "/api/v1/books", `{"title":`, s.token)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, apperrors.ErrCodeBindError, env.Code)
	})

	t.Run("Token已吊销", func(t *testing.T) {
		s.revoked[s.token] = true
		defer delete(s.revoked, s.token)

		status, env := s.do(http.MethodPost, "/api/v1/books", bookPayload("Emma", "Jane Austen", 5, 4), s.token)
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, apperrors.ErrCodeTokenRevoked, env.Code)
	})
}

func TestBookLifecycle(t *testing.T) {
	s := newServer(t, nil)
	created := s.create(bookPayload("Dune", "Frank Herbert", 9.99, 4.5))
	path := "/api/v1/books/" + created.ID

	t.Run("详情", func(t *testing.T) {
		status, env := s.do(http.MethodGet, path, nil, "")
		require.Equal(t, http.StatusOK, status)
		var b appbook.BookResponse
		require.NoError(t, json.Unmarshal(env.Data, &b))
		assert.Equal(t, "Dune", b.Title)
	})

	t.Run("非法ID", func(t *testing.T) {
		status, env := s.do(http.MethodGet, "/api/v1/books/123", nil, "")
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, apperrors.ErrCodeInvalidIdentifier, env.Code)
	})

	t.Run("部分更新不修改归属", func(t *testing.T) {
		status, env := s.do(http.MethodPut, path, map[string]interface{}{"price": 12.5, "owner": "mallory"}, s.token)
		require.Equal(t, http.StatusOK, status, env.Message)
		var b appbook.BookResponse
		require.NoError(t, json.Unmarshal(env.Data, &b))
		assert.Equal(t, 12.5, b.Price)
		assert.Equal(t, "user-1", b.Owner)
	})

	t.Run("更新需要登录", func(t *testing.T) {
		status, _ := s.do(http.MethodPut, path, map[string]interface{}{"price": 1}, "")
		assert.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("删除返回被删除的记录", func(t *testing.T) {
		status, env := s.do(http.MethodDelete, path, nil, s.token)
		require.Equal(t, http.StatusOK, status)
		var b appbook.BookResponse
		require.NoError(t, json.Unmarshal(env.Data, &b))
		assert.Equal(t, created.ID, b.ID)

		status, env = s.do(http.MethodGet, path, nil, "")
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, apperrors.ErrCodeBookNotFound, env.Code)
	})
}

func TestListing(t *testing.T) {
	s := newServer(t, nil)
	ratings := []float64{3, 4, 4.5, 5}
	for i, r := range ratings {
		s.create(bookPayload(fmt.Sprintf("Book %d", i+1), "Ursula K. Le Guin", float64(10*(i+1)), r))
	}
	s.create(bookPayload("Neuromancer", "William Gibson", 15, 4.2))

	t.Run("分页", func(t *testing.T) {
		p := s.list("/api/v1/books?page=2&limit=2")
		assert.Equal(t, int64(5), p.Total)
		assert.Equal(t, 3, p.TotalPages)
		require.Len(t, p.List, 2)
		assert.Equal(t, "Book 3", p.List[0].Title)
	})

	t.Run("分页参数非数字", func(t *testing.T) {
		status, env := s.do(http.MethodGet, "/api/v1/books?page=abc", nil, "")
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, apperrors.ErrCodeValidationFailed, env.Code)
	})

	t.Run("评分下限为闭区间", func(t *testing.T) {
		p := s.list("/api/v1/books/rating-range?min=4")
		var got []float64
		for _, b := range p.List {
			got = append(got, b.Rating)
		}
		assert.ElementsMatch(t, []float64{4, 4.5, 5, 4.2}, got)
	})

	t.Run("价格上限包含边界", func(t *testing.T) {
		p := s.list("/api/v1/books/price-below/20")
		assert.Equal(t, int64(3), p.Total)
	})

	t.Run("区间最小值大于最大值", func(t *testing.T) {
		status, _ := s.do(http.MethodGet, "/api/v1/books/price-range?min=50&max=10", nil, "")
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("区间缺少边界", func(t *testing.T) {
		status, _ := s.do(http.MethodGet, "/api/v1/books/rating-range", nil, "")
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("作者不区分大小写", func(t *testing.T) {
		p := s.list("/api/v1/books/author/le%20guin")
		assert.Equal(t, int64(4), p.Total)
	})

	t.Run("书名关键字", func(t *testing.T) {
		p := s.list("/api/v1/books/title-search/NEURO")
		require.Len(t, p.List, 1)
		assert.Equal(t, "Neuromancer", p.List[0].Title)
	})

	t.Run("组合检索", func(t *testing.T) {
		p := s.list("/api/v1/books/search?author=guin&min_price=20&max_rating=4.5")
		assert.Equal(t, int64(2), p.Total)
	})

	t.Run("最新图书", func(t *testing.T) {
		p := s.list("/api/v1/books/newest/2")
		require.Len(t, p.List, 2)
		assert.Equal(t, "Neuromancer", p.List[0].Title)
	})

	t.Run("最新图书数量非法", func(t *testing.T) {
		status, _ := s.do(http.MethodGet, "/api/v1/books/newest/0", nil, "")
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("超出范围的页为空", func(t *testing.T) {
		p := s.list("/api/v1/books?page=9&limit=10")
		assert.Empty(t, p.List)
		assert.Equal(t, int64(5), p.Total)
	})

	t.Run("页码溢出", func(t *testing.T) {
		status, env := s.do(http.MethodGet, "/api/v1/books?page=9223372036854775807&limit=10", nil, "")
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, apperrors.ErrCodeValidationFailed, env.Code)
	})
}

func TestCategoryMatching(t *testing.T) {
	s := newServer(t, nil)
	for _, c := range []string{"Science Fiction", "Non-Fiction", "History"} {
		payload := bookPayload("About "+c, "Anon", 10, 4)
		payload["category"] = c
		s.create(payload)
	}

	p := s.list("/api/v1/books/category/fiction")
	var got []string
	for _, b := range p.List {
		got = append(got, b.Category)
	}
	assert.Equal(t, []string{"Science Fiction", "Non-Fiction"}, got)

	p = s.list("/api/v1/books/category/HISTORY")
	assert.Equal(t, int64(1), p.Total)
}

func TestRateLimit(t *testing.T) {
	s := newServer(t, middleware.NewRateLimiter(0.001, 1))

	status, _ := s.do(http.MethodGet, "/ping", nil, "")
	assert.Equal(t, http.StatusOK, status)

	status, env := s.do(http.MethodGet, "/ping", nil, "")
	assert.Equal(t, http.StatusTooManyRequests, status)
	assert.Equal(t, apperrors.ErrCodeTooManyRequests, env.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newServer(t, nil)
	s.do(http.MethodGet, "/ping", nil, "")

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}
