package handler

import (
	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/bookcatalog/internal/application/book"
	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/interface/http/dto"
	"github.com/xiebiao/bookcatalog/internal/interface/http/middleware"
	"github.com/xiebiao/bookcatalog/pkg/response"
)

// BookHandler 图书HTTP处理器
// 说明：只负责参数绑定/解析和响应封装，业务规则全部在领域层
type BookHandler struct {
	manageBookUseCase *appbook.ManageBookUseCase
	listBooksUseCase  *appbook.ListBooksUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(manageBookUseCase *appbook.ManageBookUseCase, listBooksUseCase *appbook.ListBooksUseCase) *BookHandler {
	return &BookHandler{
		manageBookUseCase: manageBookUseCase,
		listBooksUseCase:  listBooksUseCase,
	}
}

// Create 创建图书
// @Summary      创建图书
// @Description  登录用户创建图书，归属(owner)始终为当前用户
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateBookRequest true "图书信息"
// @Success      201 {object} response.Response{data=appbook.BookResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      401 {object} response.Response "未登录"
// @Failure      409 {object} response.Response "相同书名和作者的图书已存在"
// @Failure      503 {object} response.Response "存储不可用"
// @Router       /api/v1/books [post]
func (h *BookHandler) Create(c *gin.Context) {
	// 1. 参数绑定
	var req dto.CreateBookRequest
	if !bindJSON(c, &req) {
		return
	}

	// 2. 调用应用层用例(归属取自认证中间件注入的用户ID)
	result, err := h.manageBookUseCase.Create(c.Request.Context(), &appbook.CreateBookRequest{
		BookInput: toInput(req.BookRequest),
		Owner:     req.Owner,
		UserID:    middleware.GetUserID(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// Get 获取图书详情
// @Summary      图书详情
// @Tags         图书
// @Produce      json
// @Param        id path string true "图书ID(24位十六进制)"
// @Success      200 {object} response.Response{data=appbook.BookResponse}
// @Failure      400 {object} response.Response "ID格式错误"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id} [get]
func (h *BookHandler) Get(c *gin.Context) {
	result, err := h.manageBookUseCase.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Update 部分更新图书
// @Summary      更新图书
// @Description  只更新请求中提供的字段，owner不可修改
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "图书ID"
// @Param        request body dto.UpdateBookRequest true "需要更新的字段"
// @Success      200 {object} response.Response{data=appbook.BookResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      401 {object} response.Response "未登录"
// @Failure      404 {object} response.Response "图书不存在"
// @Failure      409 {object} response.Response "相同书名和作者的图书已存在"
// @Router       /api/v1/books/{id} [put]
func (h *BookHandler) Update(c *gin.Context) {
	var req dto.UpdateBookRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.manageBookUseCase.Update(c.Request.Context(), &appbook.UpdateBookRequest{
		ID:        c.Param("id"),
		BookInput: toInput(req.BookRequest),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Delete 删除图书
// @Summary      删除图书
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "图书ID"
// @Success      200 {object} response.Response{data=appbook.BookResponse} "被删除的图书"
// @Failure      400 {object} response.Response "ID格式错误"
// @Failure      401 {object} response.Response "未登录"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id} [delete]
func (h *BookHandler) Delete(c *gin.Context) {
	result, err := h.manageBookUseCase.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// All 分页获取全部图书
// @Summary      图书列表
// @Tags         图书检索
// @Produce      json
// @Param        page  query int false "页码" default(1)
// @Param        limit query int false "每页数量(最大100)" default(10)
// @Success      200 {object} response.Response{data=response.PageData{list=[]appbook.BookResponse}}
// @Failure      400 {object} response.Response "分页参数错误"
// @Router       /api/v1/books [get]
func (h *BookHandler) All(c *gin.Context) {
	page, ok := parsePage(c)
	if !ok {
		return
	}
	respondList(c)(h.listBooksUseCase.All(c.Request.Context(), page))
}

// Search 组合条件检索
// @Summary      组合检索
// @Description  作者/分类/书名为不区分大小写的子串匹配，价格和评分区间为闭区间
// @Tags         图书检索
// @Produce      json
// @Param        author     query string false "作者"
// @Param        category   query string false "分类"
// @Param        title      query string false "书名关键字"
// @Param        min_price  query number false "最低价格"
// @Param        max_price  query number false "最高价格"
// @Param        min_rating query number false "最低评分"
// @Param        max_rating query number false "最高评分"
// @Param        page       query int false "页码" default(1)
// @Param        limit      query int false "每页数量" default(10)
// @Success      200 {object} response.Response{data=response.PageData{list=[]appbook.BookResponse}}
// @Failure      400 {object} response.Response "参数错误"
// @Router       /api/v1/books/search [get]
func (h *BookHandler) Search(c *gin.Context) {
	page, ok := parsePage(c)
	if !ok {
		return
	}
	price, ok := parseRange(c, "min_price", "max_price")
	if !ok {
		return
	}
	rating, ok := parseRange(c, "min_rating", "max_rating")
	if !ok {
		return
	}

	filter := book.Filter{
		Author:   c.Query("author"),
		Category: c.Query("category"),
		Title:    c.Query("title"),
		Price:    price,
		Rating:   rating,
	}
	respondList(c)(h.listBooksUseCase.List(c.Request.Context(), filter, page))
}

// ByAuthor 按作者检索
// @Summary      按作者检索
// @Tags         图书检索
// @Produce      json
// @Param        author path  string true  "作者(子串匹配)"
// @Param        page   query int    false "页码" default(1)
// @Param        limit  query int    false "每页数量" default(10)
// @Success      200 {object} response.Response{data=response.PageData{list=[]appbook.BookResponse}}
// @Router       /api/v1/books/author/{author} [get]
func (h *BookHandler) ByAuthor(c *gin.Context) {
	page, ok := parsePage(c)
	if !ok {
		return
	}
	respondList(c)(h.listBooksUseCase.ByAuthor(c.Request.Context(), c.Param("author"), page))
}

// ByCategory 按分类检索
// @Summary      按分类检索
// @Tags         图书检索
// @Produce      json
// @Param        category path  string true  "分类(子串匹配)"
// @Param        page     query int    false "页码" default(1)
// @Param        limit    query int    false "每页数量" default(10)
// @Success      200 {object} response.Response{data=response.PageData{list=[]appbook.BookResponse}}
// @Router       /api/v1/books/category/{category} [get]
func (h *BookHandler) ByCategory(c *gin.Context) {
	page, ok := parsePage(c)
	if !ok {
		return
	}
	respondList(c)(h.listBooksUseCase.ByCategory(c.Request.Context(), c.Param("category"), page))
}

// SearchTitle 按书名关键字检索
// @Summary      书名检索
// @Tags         图书检索
// @Produce      json
// @Param        keyword path  string true  "书名关键字"
// @Param        page    query int    false "页码" default(1)
// @Param        limit   query int    false "每页数量" default(10)
// @Success      200 {object} response.Response{data=response.PageData{list=[]appbook.BookResponse}}
// @Router       /api/v1/books/title-search/{keyword} [get]
func (h *BookHandler) SearchTitle(c *gin.Context) {
	page, ok := parsePage(c)
	if !ok {
		return
	}
	respondList(c)(h.listBooksUseCase.SearchTitle(c.Request.Context(), c.Param("keyword"), page))
}

// PriceRange 价格区间检索
// @Summary      价格区间检索
// @Tags         图书检索
// @Produce      json
// @Param        min   query number false "最低价格(含)"
// @Param        max   query number false "最高价格(含)"
// @Param        page  query int    false "页码" default(1)
// @Param        limit query int    false "每页数量" default(10)
// @Success      200 {object} response.Response{data=response.PageData{list=[]appbook.BookResponse}}
// @Failure      400 {object} response.Response "区间参数错误"
// @Router       /api/v1/books/price-range [get]
func (h *BookHandler) PriceRange(c *gin.Context) {
	page, ok := parsePage(c)
	if !ok {
		return
	}
	r, ok := parseRange(c, "min", "max")
	if !ok {
		return
	}
	respondList(c)(h.listBooksUseCase.PriceRange(c.Request.Context(), r, page))
}

// RatingRange 评分区间检索
// @Summary      评分区间检索
// @Tags         图书检索
// @Produce      json
// @Param        min   query number false "最低评分(含)"
// @Param        max   query number false "最高评分(含)"
// @Param        page  query int    false "页码" default(1)
// @Param        limit query int    false "每页数量" default(10)
// @Success      200 {object} response.Response{data=response.PageData{list=[]appbook.BookResponse}}
// @Failure      400 {object} response.Response "区间参数错误"
// @Router       /api/v1/books/rating-range [get]
func (h *BookHandler) RatingRange(c *gin.Context) {
	page, ok := parsePage(c)
	if !ok {
		return
	}
	r, ok := parseRange(c, "min", "max")
	if !ok {
		return
	}
	respondList(c)(h.listBooksUseCase.RatingRange(c.Request.Context(), r, page))
}

// AbovePrice 价格不低于指定值
// @Summary      价格下限检索
// @Tags         图书检索
// @Produce      json
// @Param        price path  number true  "价格(含)"
// @Param        page  query int    false "页码" default(1)
// @Param        limit query int    false "每页数量" default(10)
// @Success      200 {object} response.Response{data=response.PageData{list=[]appbook.BookResponse}}
// @Router       /api/v1/books/price-above/{price} [get]
func (h *BookHandler) AbovePrice(c *gin.Context) {
	h.threshold(c, "price", h.listBooksUseCase.AbovePrice)
}

// BelowPrice 价格不高于指定值
// @Summary      价格上限检索
// @Tags         图书检索
// @Produce      json
// @Param        price path  number true  "价格(含)"
// @Param        page  query int    false "页码" default(1)
// @Param        limit query int    false "每页数量" default(10)
// @Success      200 {object} response.Response{data=response.PageData{list=[]appbook.BookResponse}}
// @Router       /api/v1/books/price-below/{price} [get]
func (h *BookHandler) BelowPrice(c *gin.Context) {
	h.threshold(c, "price", h.listBooksUseCase.BelowPrice)
}

// AboveRating 评分不低于指定值
// @Summary      评分下限检索
// @Tags         图书检索
// @Produce      json
// @Param        rating path  number true  "评分(含)"
// @Param        page   query int    false "页码" default(1)
// @Param        limit  query int    false "每页数量" default(10)
// @Success      200 {object} response.Response{data=response.PageData{list=[]appbook.BookResponse}}
// @Router       /api/v1/books/rating-above/{rating} [get]
func (h *BookHandler) AboveRating(c *gin.Context) {
	h.threshold(c, "rating", h.listBooksUseCase.AboveRating)
}

// BelowRating 评分不高于指定值
// @Summary      评分上限检索
// @Tags         图书检索
// @Produce      json
// @Param        rating path  number true  "评分(含)"
// @Param        page   query int    false "页码" default(1)
// @Param        limit  query int    false "每页数量" default(10)
// @Success      200 {object} response.Response{data=response.PageData{list=[]appbook.BookResponse}}
// @Router       /api/v1/books/rating-below/{rating} [get]
func (h *BookHandler) BelowRating(c *gin.Context) {
	h.threshold(c, "rating", h.listBooksUseCase.BelowRating)
}

// Newest 最新创建的图书
// @Summary      最新图书
// @Tags         图书检索
// @Produce      json
// @Param        limit path int true "数量(1-100)"
// @Success      200 {object} response.Response{data=response.PageData{list=[]appbook.BookResponse}}
// @Failure      400 {object} response.Response "数量参数错误"
// @Router       /api/v1/books/newest/{limit} [get]
func (h *BookHandler) Newest(c *gin.Context) {
	n, err := book.ParseLimit("limit", c.Param("limit"))
	if err != nil {
		response.Error(c, err)
		return
	}
	respondList(c)(h.listBooksUseCase.Newest(c.Request.Context(), n))
}
