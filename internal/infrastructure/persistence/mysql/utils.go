package mysql

import (
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
)

// isDuplicateError 判断是否为MySQL唯一索引冲突错误
// MySQL错误码:
// - 1062: Duplicate entry 'xxx' for key 'yyy'
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	// GORM v2的错误判断(需要开启TranslateError)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// 兼容检查:错误信息包含"Duplicate entry"
	return strings.Contains(err.Error(), "Duplicate entry")
}

// columns 领域字段 → 列名
var columns = map[book.Field]string{
	book.FieldID:        "id",
	book.FieldTitle:     "title",
	book.FieldAuthor:    "author",
	book.FieldCategory:  "category",
	book.FieldPrice:     "price",
	book.FieldRating:    "rating",
	book.FieldCreatedAt: "created_at",
}

// likeEscaper 转义LIKE通配符(反斜杠是MySQL默认的转义字符)
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern 构造不区分大小写的子串匹配模式
func containsPattern(text string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(text)) + "%"
}

// applyConditions 把过滤条件翻译成WHERE子句
// 书名/作者列使用utf8mb4_bin(大小写敏感),子串匹配两侧都转成小写
func applyConditions(db *gorm.DB, conds []book.Condition) *gorm.DB {
	for _, c := range conds {
		col := columns[c.Field]
		switch c.Op {
		case book.OpContains:
			db = db.Where("LOWER("+col+") LIKE ?", containsPattern(c.Text))
		case book.OpGte:
			db = db.Where(col+" >= ?", c.Number)
		case book.OpLte:
			db = db.Where(col+" <= ?", c.Number)
		}
	}
	return db
}

// buildFind 条件 + 排序 + 分页
func buildFind(db *gorm.DB, q book.Query) *gorm.DB {
	db = applyConditions(db.Model(&BookModel{}), q.Conditions)
	for _, k := range q.Sort {
		db = db.Order(clause.OrderByColumn{Column: clause.Column{Name: columns[k.Field]}, Desc: k.Desc})
	}
	if q.Skip > 0 {
		db = db.Offset(q.Skip)
	}
	if q.Take > 0 {
		db = db.Limit(q.Take)
	}
	return db
}
