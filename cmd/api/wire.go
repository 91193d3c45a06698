//go:build wireinject
// +build wireinject

// Wire依赖注入配置文件
//
// Wire工作流程：
// Step 1: 编写wire.go（本文件），定义Providers和Injector
// Step 2: 运行 `wire gen ./cmd/api`
// Step 3: Wire生成wire_gen.go，包含完整的依赖创建代码
// Step 4: main.go调用wire_gen.go中的InitializeApp()

package main

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	"go.uber.org/zap"

	appbook "github.com/xiebiao/bookcatalog/internal/application/book"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	"github.com/xiebiao/bookcatalog/internal/interface/http/handler"
	"github.com/xiebiao/bookcatalog/internal/interface/http/middleware"
)

// ========================================
// Wire Provider Sets (依赖分组)
// ========================================

// infrastructureSet 基础设施层依赖
// 包含：存储驱动选择、事件发布、Token黑名单
var infrastructureSet = wire.NewSet(
	provideBookRepository,    // mongo / mysql / memory
	provideGuardedRepository, // 存储熔断
	provideEventPublisher,    // RabbitMQ或空实现
	provideRevocationChecker, // Redis黑名单或nil
)

// domainSet 领域层依赖
var domainSet = wire.NewSet(
	provideBookService, // 图书领域服务（带存储超时）
)

// applicationSet 应用层依赖
var applicationSet = wire.NewSet(
	appbook.NewManageBookUseCase, // 图书维护用例
	appbook.NewListBooksUseCase,  // 图书检索用例
)

// middlewareSet 中间件依赖
var middlewareSet = wire.NewSet(
	provideJWTManager,
	middleware.NewAuthMiddleware,
	provideRateLimiter,
)

// handlerSet HTTP处理器依赖
var handlerSet = wire.NewSet(
	handler.NewBookHandler,
)

// ========================================
// Wire Injector (依赖注入器)
// ========================================
//
// 依赖链：
// *gin.Engine → *handler.BookHandler → *appbook.ManageBookUseCase → book.Service → book.Repository → *config.Config
//
// 返回的cleanup按创建的逆序关闭连接（Redis → RabbitMQ → 存储）

// InitializeApp 初始化整个应用
// cfg和log由main创建后传入（日志需要在依赖注入之前就可用）
func InitializeApp(cfg *config.Config, log *zap.Logger) (*gin.Engine, func(), error) {
	wire.Build(
		infrastructureSet,
		domainSet,
		applicationSet,
		middlewareSet,
		handlerSet,
		provideGinEngine,
	)
	return nil, nil, nil
}
