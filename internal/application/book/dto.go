package book

import (
	"github.com/xiebiao/bookcatalog/internal/domain/book"
)

// BookResponse 图书响应DTO
type BookResponse struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Author      string  `json:"author"`
	Price       float64 `json:"price"`
	Rating      float64 `json:"rating"`
	Category    string  `json:"category"`
	Owner       string  `json:"owner"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

// ListBooksResponse 列表查询响应DTO
// 接口层通过response.SuccessWithPage补充总页数
type ListBooksResponse struct {
	List     []BookResponse `json:"list"`
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}

// toBookResponse 领域实体 → 响应DTO
// 时间使用RFC3339(毫秒精度),保证客户端可以按字符串排序
func toBookResponse(b *book.Book) *BookResponse {
	return &BookResponse{
		ID:          b.ID,
		Title:       b.Title,
		Description: b.Description,
		Author:      b.Author,
		Price:       b.Price,
		Rating:      b.Rating,
		Category:    string(b.Category),
		Owner:       b.Owner,
		CreatedAt:   b.CreatedAt.UTC().Format(timeLayout),
		UpdatedAt:   b.UpdatedAt.UTC().Format(timeLayout),
	}
}

const timeLayout = "2006-01-02T15:04:05.000Z07:00"

// toListResponse 查询结果 → 分页响应
func toListResponse(r *book.Result) *ListBooksResponse {
	list := make([]BookResponse, len(r.Books))
	for i, b := range r.Books {
		list[i] = *toBookResponse(b)
	}

	return &ListBooksResponse{
		List:     list,
		Total:    r.Total,
		Page:     r.Page.Page,
		PageSize: r.Page.Limit,
	}
}
