package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/messaging"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/breaker"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/memory"
	mongostore "github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/mongo"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/mysql"
	redisstore "github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookcatalog/internal/interface/http/handler"
	"github.com/xiebiao/bookcatalog/internal/interface/http/middleware"
	"github.com/xiebiao/bookcatalog/internal/interface/http/router"
	"github.com/xiebiao/bookcatalog/pkg/jwt"
	"github.com/xiebiao/bookcatalog/pkg/mq"
)

// ========================================
// Custom Providers (自定义Provider)
// ========================================
// 说明：
// 这些依赖的构造需要读取Config中的某个子配置，或者需要按配置在多个实现之间选择，
// Wire无法自动推断，所以手写Provider。返回的cleanup函数由Wire按逆序串联。

// provideBookRepository 按storage.driver选择存储驱动
func provideBookRepository(cfg *config.Config, log *zap.Logger) (book.Repository, func(), error) {
	switch cfg.Storage.Driver {
	case config.DriverMongo:
		client, err := mongostore.NewClient(cfg, log)
		if err != nil {
			return nil, nil, err
		}
		cleanup := func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := client.Disconnect(ctx); err != nil {
				log.Warn("关闭MongoDB连接失败", zap.Error(err))
			}
		}
		coll, err := mongostore.NewBookCollection(client, cfg)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		return mongostore.NewBookRepository(coll), cleanup, nil

	case config.DriverMySQL:
		db, err := mysql.NewDB(cfg, log)
		if err != nil {
			return nil, nil, err
		}
		cleanup := func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		return mysql.NewBookRepository(db), cleanup, nil

	case config.DriverMemory:
		log.Warn("使用内存存储，数据不会持久化")
		return memory.NewBookRepository(), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("不支持的存储驱动: %s", cfg.Storage.Driver)
	}
}

// provideGuardedRepository 按配置为存储驱动加上熔断保护
func provideGuardedRepository(repo book.Repository, cfg *config.Config, log *zap.Logger) guardedRepository {
	if cfg.Storage.Breaker.Failures == 0 {
		return guardedRepository{repo}
	}
	return guardedRepository{breaker.NewBookRepository(repo, breaker.Config{
		MaxFailures: cfg.Storage.Breaker.Failures,
		OpenTimeout: cfg.Storage.Breaker.OpenTimeout,
	}, log)}
}

// guardedRepository 区分"原始驱动"与"带熔断的仓储"，避免Wire中出现两个book.Repository
type guardedRepository struct {
	book.Repository
}

// provideBookService 创建领域服务(带存储超时)
func provideBookService(repo guardedRepository, cfg *config.Config) book.Service {
	return book.NewService(repo, book.WithStorageTimeout(cfg.Storage.Timeout))
}

// provideEventPublisher 事件发布者，未启用时为空实现
func provideEventPublisher(cfg *config.Config, log *zap.Logger) (book.EventPublisher, func(), error) {
	if !cfg.Events.Enabled {
		return messaging.NopPublisher{}, func() {}, nil
	}
	pub, err := mq.NewPublisher(cfg.Events.URL, cfg.Events.Exchange, cfg.Events.ExchangeType, log)
	if err != nil {
		return nil, nil, err
	}
	return messaging.NewEventPublisher(pub), func() { _ = pub.Close() }, nil
}

// provideJWTManager 从配置创建JWT管理器
func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpire)
}

// provideRevocationChecker Token黑名单，未启用Redis时为nil(跳过检查)
func provideRevocationChecker(cfg *config.Config, log *zap.Logger) (middleware.RevocationChecker, func(), error) {
	if !cfg.Redis.Enabled {
		return nil, func() {}, nil
	}
	client, err := redisstore.NewClient(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return redisstore.NewRevocationStore(client), func() { _ = client.Close() }, nil
}

// provideRateLimiter 按配置创建限流器，未启用时为nil
func provideRateLimiter(cfg *config.Config) *middleware.RateLimiter {
	if !cfg.RateLimit.Enabled {
		return nil
	}
	return middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
}

// provideGinEngine 创建并配置Gin引擎
// Swagger只在非release模式下暴露
func provideGinEngine(
	cfg *config.Config,
	log *zap.Logger,
	bookHandler *handler.BookHandler,
	authMiddleware *middleware.AuthMiddleware,
	limiter *middleware.RateLimiter,
) (*gin.Engine, error) {
	return router.New(router.Options{
		ServiceName: cfg.Server.Name,
		Mode:        cfg.Server.Mode,
		Swagger:     cfg.Server.Mode != gin.ReleaseMode,
	}, log, bookHandler, authMiddleware, limiter)
}
