package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// bookDocument MongoDB图书文档
// 设计说明:
// 1. 这是infrastructure层的数据模型,包含bson tag
// 2. domain/book/entity.go是领域实体,不依赖MongoDB
// 3. Repository负责两者之间的转换
type bookDocument struct {
	ID          primitive.ObjectID `bson:"_id"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Author      string             `bson:"author"`
	Price       float64            `bson:"price"`
	Rating      float64            `bson:"rating"`
	Category    string             `bson:"category"`
	Owner       string             `bson:"owner"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

// bookRepository 图书仓储实现(MongoDB)
// 设计说明:
// 1. 实现domain/book/repository.go定义的接口
// 2. 负责领域实体与bson文档之间的转换
// 3. 唯一索引冲突(E11000)统一转换为ErrDuplicateRecord
type bookRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

// NewBookRepository 创建图书仓储
func NewBookRepository(coll *mongo.Collection) book.Repository {
	return &bookRepository{coll: coll, now: now}
}

// now MongoDB时间精度为毫秒,截断后写入的值与读出的值一致
func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// Create 创建图书
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	// 1. 领域实体 → 文档
	ts := r.now()
	doc := &bookDocument{
		ID:          primitive.NewObjectID(),
		Title:       b.Title,
		Description: b.Description,
		Author:      b.Author,
		Price:       b.Price,
		Rating:      b.Rating,
		Category:    string(b.Category),
		Owner:       b.Owner,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}

	// 2. 插入(只尝试一次,唯一索引负责拦截重复)
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if isDuplicateError(err) {
			return book.ErrDuplicateRecord
		}
		return apperrors.Wrap(err, "创建图书失败")
	}

	// 3. 回填ID和时间戳
	b.ID = doc.ID.Hex()
	b.CreatedAt = doc.CreatedAt
	b.UpdatedAt = doc.UpdatedAt
	return nil
}

// FindByID 根据ID查找图书
func (r *bookRepository) FindByID(ctx context.Context, id string) (*book.Book, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, book.ErrInvalidIdentifier
	}

	var doc bookDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}
	return toBookEntity(&doc), nil
}

// Update 部分更新
// 使用FindOneAndUpdate原子地完成 更新 + 返回新值,不存在"先查后改"的竞态
func (r *bookRepository) Update(ctx context.Context, id string, f book.Fields) (*book.Book, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, book.ErrInvalidIdentifier
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{"$set": setFields(f, r.now())}

	var doc bookDocument
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc)
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			return nil, book.ErrBookNotFound
		case isDuplicateError(err):
			return nil, book.ErrDuplicateRecord
		}
		return nil, apperrors.Wrap(err, "更新图书失败")
	}
	return toBookEntity(&doc), nil
}

// Delete 物理删除,返回被删除的文档
func (r *bookRepository) Delete(ctx context.Context, id string) (*book.Book, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, book.ErrInvalidIdentifier
	}

	var doc bookDocument
	if err := r.coll.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "删除图书失败")
	}
	return toBookEntity(&doc), nil
}

// Find 执行声明式查询
func (r *bookRepository) Find(ctx context.Context, q book.Query) ([]*book.Book, error) {
	opts := options.Find().SetSort(buildSort(q.Sort))
	if q.Skip > 0 {
		opts.SetSkip(int64(q.Skip))
	}
	if q.Take > 0 {
		opts.SetLimit(int64(q.Take))
	}

	cursor, err := r.coll.Find(ctx, buildFilter(q.Conditions), opts)
	if err != nil {
		return nil, apperrors.Wrap(err, "查询图书列表失败")
	}
	defer cursor.Close(ctx)

	var docs []bookDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, apperrors.Wrap(err, "读取图书列表失败")
	}

	books := make([]*book.Book, len(docs))
	for i := range docs {
		books[i] = toBookEntity(&docs[i])
	}
	return books, nil
}

// Count 统计满足条件的文档数
func (r *bookRepository) Count(ctx context.Context, conds []book.Condition) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, buildFilter(conds))
	if err != nil {
		return 0, apperrors.Wrap(err, "查询图书总数失败")
	}
	return n, nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

// toBookEntity 文档 → 领域实体
func toBookEntity(doc *bookDocument) *book.Book {
	return &book.Book{
		ID:          doc.ID.Hex(),
		Title:       doc.Title,
		Description: doc.Description,
		Author:      doc.Author,
		Price:       doc.Price,
		Rating:      doc.Rating,
		Category:    book.Category(doc.Category),
		Owner:       doc.Owner,
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
	}
}

// setFields 构造$set内容:只包含已提供的字段,owner永远不会出现在这里
func setFields(f book.Fields, ts time.Time) bson.M {
	set := bson.M{"updatedAt": ts}
	if f.Title != nil {
		set["title"] = *f.Title
	}
	if f.Description != nil {
		set["description"] = *f.Description
	}
	if f.Author != nil {
		set["author"] = *f.Author
	}
	if f.Price != nil {
		set["price"] = *f.Price
	}
	if f.Rating != nil {
		set["rating"] = *f.Rating
	}
	if f.Category != nil {
		set["category"] = string(*f.Category)
	}
	return set
}
