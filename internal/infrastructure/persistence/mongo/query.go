package mongo

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
)

// fieldNames 领域字段 → 文档字段
var fieldNames = map[book.Field]string{
	book.FieldID:        "_id",
	book.FieldTitle:     "title",
	book.FieldAuthor:    "author",
	book.FieldCategory:  "category",
	book.FieldPrice:     "price",
	book.FieldRating:    "rating",
	book.FieldCreatedAt: "createdAt",
}

// buildFilter 把过滤条件翻译成MongoDB查询文档
// - OpContains → 不区分大小写的正则,关键字中的元字符会被转义
// - OpGte/OpLte → 同一字段合并为 {$gte, $lte}
func buildFilter(conds []book.Condition) bson.M {
	filter := bson.M{}
	for _, c := range conds {
		name := fieldNames[c.Field]
		switch c.Op {
		case book.OpContains:
			filter[name] = primitive.Regex{Pattern: regexp.QuoteMeta(c.Text), Options: "i"}
		case book.OpGte, book.OpLte:
			bounds, ok := filter[name].(bson.M)
			if !ok {
				bounds = bson.M{}
				filter[name] = bounds
			}
			if c.Op == book.OpGte {
				bounds["$gte"] = c.Number
			} else {
				bounds["$lte"] = c.Number
			}
		}
	}
	return filter
}

// buildSort 排序键 → bson.D(有序)
func buildSort(keys []book.SortKey) bson.D {
	sort := make(bson.D, 0, len(keys))
	for _, k := range keys {
		dir := 1
		if k.Desc {
			dir = -1
		}
		sort = append(sort, bson.E{Key: fieldNames[k.Field], Value: dir})
	}
	return sort
}

// isDuplicateError 判断是否为唯一索引冲突(E11000)
// 插入和FindOneAndUpdate返回的错误类型不同,IsDuplicateKeyError两者都能识别
func isDuplicateError(err error) bool {
	return err != nil && mongo.IsDuplicateKeyError(err)
}
