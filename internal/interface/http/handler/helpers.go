package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/bookcatalog/internal/application/book"
	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/interface/http/dto"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
	"github.com/xiebiao/bookcatalog/pkg/response"
)

// thresholdQuery 单边阈值检索(AbovePrice等)
type thresholdQuery func(ctx context.Context, v float64, p book.Page) (*appbook.ListBooksResponse, error)

// threshold 解析路径中的阈值和分页参数后执行检索
func (h *BookHandler) threshold(c *gin.Context, param string, query thresholdQuery) {
	page, ok := parsePage(c)
	if !ok {
		return
	}
	v, err := book.ParseNumber(param, c.Param(param))
	if err != nil {
		response.Error(c, err)
		return
	}
	if v == nil {
		response.Error(c, book.NewValidationError(book.Violation{Field: param, Message: "必须是数字"}))
		return
	}
	respondList(c)(query(c.Request.Context(), *v, page))
}

// bindJSON 绑定请求体
// validator校验失败转换为字段级ValidationFailed，其余(JSON格式/类型错误)为参数格式错误
func bindJSON(c *gin.Context, obj interface{}) bool {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return true
	}
	if violations, ok := dto.Violations(err); ok {
		response.Error(c, book.NewValidationError(violations...))
		return false
	}
	response.Error(c, apperrors.ErrBindError.WithErr(err))
	return false
}

// parsePage 解析page/limit查询参数
func parsePage(c *gin.Context) (book.Page, bool) {
	page, err := book.ParsePage(c.Query("page"), c.Query("limit"))
	if err != nil {
		response.Error(c, err)
		return book.Page{}, false
	}
	return page, true
}

// parseRange 解析区间查询参数(非数字为校验错误)
func parseRange(c *gin.Context, minKey, maxKey string) (book.Range, bool) {
	lo, err := book.ParseNumber(minKey, c.Query(minKey))
	if err != nil {
		response.Error(c, err)
		return book.Range{}, false
	}
	hi, err := book.ParseNumber(maxKey, c.Query(maxKey))
	if err != nil {
		response.Error(c, err)
		return book.Range{}, false
	}
	return book.Range{Min: lo, Max: hi}, true
}

// respondList 输出分页结果
// 用法：respondList(c)(useCase.All(ctx, page))
func respondList(c *gin.Context) func(*appbook.ListBooksResponse, error) {
	return func(result *appbook.ListBooksResponse, err error) {
		if err != nil {
			response.Error(c, err)
			return
		}
		response.SuccessWithPage(c, result.List, result.Total, result.Page, result.PageSize)
	}
}

// toInput HTTP请求 → 应用层输入
func toInput(r dto.BookRequest) appbook.BookInput {
	return appbook.BookInput{
		Title:       r.Title,
		Description: r.Description,
		Author:      r.Author,
		Price:       r.Price,
		Rating:      r.Rating,
		Category:    r.Category,
	}
}
