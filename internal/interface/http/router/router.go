// Package router 组装gin引擎：全局中间件 + 路由表
package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	_ "github.com/xiebiao/bookcatalog/docs" // Swagger文档
	"github.com/xiebiao/bookcatalog/internal/interface/http/dto"
	"github.com/xiebiao/bookcatalog/internal/interface/http/handler"
	"github.com/xiebiao/bookcatalog/internal/interface/http/middleware"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
	"github.com/xiebiao/bookcatalog/pkg/response"
)

// Options 路由配置
type Options struct {
	ServiceName string
	Mode        string // debug / release / test
	Swagger     bool   // 是否暴露/swagger
}

// New 创建并配置Gin引擎
// 设计说明：
// 1. 中间件顺序：Recovery → 追踪 → 请求日志 → 指标 → 限流，限流拒绝的请求也会被记录和统计
// 2. 读接口公开，写接口(POST/PUT/DELETE)要求登录
// 3. limiter为nil表示不限流
func New(opts Options, log *zap.Logger, books *handler.BookHandler, auth *middleware.AuthMiddleware, limiter *middleware.RateLimiter) (*gin.Engine, error) {
	if opts.Mode != "" {
		gin.SetMode(opts.Mode)
	}
	if err := dto.RegisterValidators(); err != nil {
		return nil, err
	}
	metrics.InitMetrics()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(opts.ServiceName))
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Metrics())
	if limiter != nil {
		r.Use(limiter.Middleware())
	}

	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// Prometheus指标
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Swagger文档：http://localhost:8080/swagger/index.html
	if opts.Swagger {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	v1 := r.Group("/api/v1")
	{
		bookGroup := v1.Group("/books")
		{
			// 公开接口
			bookGroup.GET("", books.All)
			bookGroup.GET("/search", books.Search)
			bookGroup.GET("/newest/:limit", books.Newest)
			bookGroup.GET("/author/:author", books.ByAuthor)
			bookGroup.GET("/category/:category", books.ByCategory)
			bookGroup.GET("/title-search/:keyword", books.SearchTitle)
			bookGroup.GET("/price-range", books.PriceRange)
			bookGroup.GET("/rating-range", books.RatingRange)
			bookGroup.GET("/price-above/:price", books.AbovePrice)
			bookGroup.GET("/price-below/:price", books.BelowPrice)
			bookGroup.GET("/rating-above/:rating", books.AboveRating)
			bookGroup.GET("/rating-below/:rating", books.BelowRating)
			bookGroup.GET("/:id", books.Get)

			// 需要登录
			bookGroup.POST("", auth.RequireAuth(), books.Create)
			bookGroup.PUT("/:id", auth.RequireAuth(), books.Update)
			bookGroup.DELETE("/:id", auth.RequireAuth(), books.Delete)
		}
	}

	return r, nil
}
