package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
)

// 索引名称
const (
	uniqueTitleAuthorIndex = "uk_title_author"
	createdAtIndex         = "idx_created_at"
)

// NewClient 创建MongoDB客户端
// 设计说明:
// 1. 配置连接池(MaxPoolSize、MinPoolSize)和服务器选择超时
// 2. 连接后立即Ping主节点,启动阶段暴露配置错误
func NewClient(cfg *config.Config, log *zap.Logger) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Mongo.ConnectTimeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.Mongo.URI).
		SetMaxPoolSize(cfg.Mongo.MaxPoolSize).
		SetMinPoolSize(cfg.Mongo.MinPoolSize).
		SetServerSelectionTimeout(cfg.Mongo.ConnectTimeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("连接MongoDB失败: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("MongoDB连接测试失败: %w", err)
	}

	log.Info("MongoDB连接成功", zap.String("database", cfg.Mongo.Database))
	return client, nil
}

// NewBookCollection 获取图书集合并确保索引存在
func NewBookCollection(client *mongo.Client, cfg *config.Config) (*mongo.Collection, error) {
	coll := client.Database(cfg.Mongo.Database).Collection(cfg.Mongo.Collection)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Mongo.ConnectTimeout)
	defer cancel()
	if err := EnsureIndexes(ctx, coll); err != nil {
		return nil, err
	}
	return coll, nil
}

// EnsureIndexes 创建图书集合索引
// 1. {title:1, author:1} 唯一索引:(书名, 作者)组合的唯一性完全由它保证
// 2. {createdAt:1} 普通索引:默认排序和最新图书查询
// CreateMany是幂等的,索引已存在时不会报错
func EnsureIndexes(ctx context.Context, coll *mongo.Collection) error {
	models := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "title", Value: 1}, {Key: "author", Value: 1}},
			Options: options.Index().SetName(uniqueTitleAuthorIndex).SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "createdAt", Value: 1}},
			Options: options.Index().SetName(createdAtIndex),
		},
	}
	if _, err := coll.Indexes().CreateMany(ctx, models); err != nil {
		return fmt.Errorf("创建图书索引失败: %w", err)
	}
	return nil
}
