package mysql

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2作为ORM框架
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. 开发环境开启SQL日志，生产环境关闭
// 4. 自动迁移表结构（AutoMigrate）
func NewDB(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	// 1. 构建DSN连接字符串
	dsn := cfg.Database.DSN()

	// 2. 配置GORM日志
	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info // 开发环境打印SQL
	}

	// 3. 连接数据库
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true, // 1062 → gorm.ErrDuplicatedKey
		NowFunc: func() time.Time {
			return time.Now().UTC().Truncate(time.Millisecond)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	// 4. 配置连接池
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// 5. 测试连接
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	log.Info("数据库连接成功", zap.String("dbname", cfg.Database.DBName))

	// 6. 自动迁移表结构（开发环境）
	// 注意：生产环境应使用专门的迁移工具（如golang-migrate）
	if err := db.AutoMigrate(&BookModel{}); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// BookModel GORM图书模型
// 设计说明:
// 1. ID使用24位十六进制字符串,与MongoDB驱动保持同一种标识符格式
// 2. (title, author)复合唯一索引,使用utf8mb4_bin排序规则保证大小写敏感的精确匹配
// 3. 物理删除,不使用gorm.DeletedAt
// 4. created_at索引用于默认排序和最新图书查询
type BookModel struct {
	ID          string    `gorm:"primaryKey;size:24;comment:图书ID"`
	Title       string    `gorm:"type:varchar(191) COLLATE utf8mb4_bin;uniqueIndex:uk_title_author,priority:1;not null;comment:书名"`
	Author      string    `gorm:"type:varchar(191) COLLATE utf8mb4_bin;uniqueIndex:uk_title_author,priority:2;not null;comment:作者"`
	Description string    `gorm:"type:text;not null;comment:图书描述"`
	Price       float64   `gorm:"not null;comment:价格"`
	Rating      float64   `gorm:"not null;comment:评分(0-5)"`
	Category    string    `gorm:"size:32;index;not null;comment:分类"`
	Owner       string    `gorm:"size:64;index;not null;comment:创建者ID"`
	CreatedAt   time.Time `gorm:"index:idx_created_at;comment:创建时间"`
	UpdatedAt   time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (BookModel) TableName() string {
	return "books"
}
