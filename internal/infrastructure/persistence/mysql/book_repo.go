package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// bookRepository 图书仓储实现(MySQL)
// 设计说明:
// 1. 实现domain/book/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 处理数据库特定的错误(如书名+作者重复),转换为领域错误
// 4. 更新/删除需要返回记录,在事务中 加锁读取 → 写入 → 读取
type bookRepository struct {
	db *gorm.DB
	tx *TxManager
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db, tx: NewTxManager(db)}
}

// Create 创建图书
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	// 1. 领域实体 → GORM模型(ID在应用侧生成,与Mongo驱动同格式)
	model := &BookModel{
		ID:          book.NewID(),
		Title:       b.Title,
		Author:      b.Author,
		Description: b.Description,
		Price:       b.Price,
		Rating:      b.Rating,
		Category:    string(b.Category),
		Owner:       b.Owner,
	}

	// 2. 插入数据库
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return book.ErrDuplicateRecord
		}
		return apperrors.Wrap(err, "创建图书失败")
	}

	// 3. 回填ID和时间戳
	b.ID = model.ID
	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找图书
func (r *bookRepository) FindByID(ctx context.Context, id string) (*book.Book, error) {
	var model BookModel
	if err := getDB(ctx, r.db).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}
	return toBookEntity(&model), nil
}

// Update 部分更新,只写入已提供的字段
func (r *bookRepository) Update(ctx context.Context, id string, f book.Fields) (*book.Book, error) {
	var updated *book.Book
	err := r.tx.Transaction(ctx, func(ctx context.Context) error {
		db := getDB(ctx, r.db)

		// 1. 加锁读取,不存在直接返回
		var model BookModel
		if err := lockByID(db, id, &model); err != nil {
			return err
		}

		// 2. 写入变更字段(owner不在可写字段中)
		if err := db.Model(&model).Updates(updateColumns(f)).Error; err != nil {
			if isDuplicateError(err) {
				return book.ErrDuplicateRecord
			}
			return apperrors.Wrap(err, "更新图书失败")
		}

		// 3. 重新读取,拿到数据库中的最终值
		if err := db.Where("id = ?", id).First(&model).Error; err != nil {
			return apperrors.Wrap(err, "查询图书失败")
		}

		updated = toBookEntity(&model)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete 物理删除,返回被删除的记录
func (r *bookRepository) Delete(ctx context.Context, id string) (*book.Book, error) {
	var deleted *book.Book
	err := r.tx.Transaction(ctx, func(ctx context.Context) error {
		db := getDB(ctx, r.db)

		var model BookModel
		if err := lockByID(db, id, &model); err != nil {
			return err
		}

		result := db.Where("id = ?", id).Delete(&BookModel{})
		if result.Error != nil {
			return apperrors.Wrap(result.Error, "删除图书失败")
		}
		if result.RowsAffected == 0 {
			return book.ErrBookNotFound
		}

		deleted = toBookEntity(&model)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

// Find 执行声明式查询
func (r *bookRepository) Find(ctx context.Context, q book.Query) ([]*book.Book, error) {
	var models []BookModel
	if err := buildFind(getDB(ctx, r.db), q).Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询图书列表失败")
	}

	// 转换为领域实体
	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}
	return books, nil
}

// Count 统计满足条件的记录数
func (r *bookRepository) Count(ctx context.Context, conds []book.Condition) (int64, error) {
	var total int64
	query := applyConditions(getDB(ctx, r.db).Model(&BookModel{}), conds)
	if err := query.Count(&total).Error; err != nil {
		return 0, apperrors.Wrap(err, "查询图书总数失败")
	}
	return total, nil
}

// lockByID 悲观锁查询(SELECT ... FOR UPDATE),必须在事务中调用
func lockByID(db *gorm.DB, id string, model *BookModel) error {
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return book.ErrBookNotFound
		}
		return apperrors.Wrap(err, "锁定图书失败")
	}
	return nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

// toBookEntity GORM模型 → 领域实体
func toBookEntity(model *BookModel) *book.Book {
	return &book.Book{
		ID:          model.ID,
		Title:       model.Title,
		Description: model.Description,
		Author:      model.Author,
		Price:       model.Price,
		Rating:      model.Rating,
		Category:    book.Category(model.Category),
		Owner:       model.Owner,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

// updateColumns 部分更新 → 列映射
// 不用Updates(struct):struct只会更新非零值字段,而0是合法的价格/评分
func updateColumns(f book.Fields) map[string]interface{} {
	cols := make(map[string]interface{}, 6)
	if f.Title != nil {
		cols["title"] = *f.Title
	}
	if f.Description != nil {
		cols["description"] = *f.Description
	}
	if f.Author != nil {
		cols["author"] = *f.Author
	}
	if f.Price != nil {
		cols["price"] = *f.Price
	}
	if f.Rating != nil {
		cols["rating"] = *f.Rating
	}
	if f.Category != nil {
		cols["category"] = string(*f.Category)
	}
	return cols
}
