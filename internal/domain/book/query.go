package book

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// 分页参数
// 说明:所有检索接口统一使用同一个默认值,不同接口之间不再有差异
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Field 可用于过滤/排序的字段
type Field string

const (
	FieldID        Field = "id"
	FieldTitle     Field = "title"
	FieldAuthor    Field = "author"
	FieldCategory  Field = "category"
	FieldPrice     Field = "price"
	FieldRating    Field = "rating"
	FieldCreatedAt Field = "created_at"
)

// Op 条件运算符
type Op int

const (
	// OpContains 不区分大小写的子串匹配
	OpContains Op = iota
	// OpGte 大于等于(闭区间下界)
	OpGte
	// OpLte 小于等于(闭区间上界)
	OpLte
)

// Condition 单个过滤条件
// Text用于OpContains,Number用于OpGte/OpLte
type Condition struct {
	Field  Field
	Op     Op
	Text   string
	Number float64
}

// SortKey 排序键
type SortKey struct {
	Field Field
	Desc  bool
}

// Query 存储查询(声明式)
// 设计说明:
// 1. 查询构建器只负责生成 过滤条件 + 排序 + 分页 三元组,从不执行查询
// 2. 各存储驱动(Mongo/MySQL/内存)负责把Query翻译成自己的查询语言
// 3. 过滤先于分页生效(先匹配,再skip/take)
type Query struct {
	Conditions []Condition
	Sort       []SortKey
	Skip       int
	Take       int
}

// 默认排序:按插入顺序(创建时间升序,ID作为并列时的稳定次序)
var defaultSort = []SortKey{{Field: FieldCreatedAt}, {Field: FieldID}}

// 最新图书排序:创建时间降序
var newestSort = []SortKey{{Field: FieldCreatedAt, Desc: true}, {Field: FieldID, Desc: true}}

// Range 数值闭区间,Min/Max为nil表示该侧不限
type Range struct {
	Min *float64
	Max *float64
}

// IsZero 两侧都未设置
func (r Range) IsZero() bool {
	return r.Min == nil && r.Max == nil
}

// Filter 过滤规格
// 字符串字段为空表示不过滤该维度
type Filter struct {
	Author   string
	Category string
	Title    string
	Price    Range
	Rating   Range
}

// Page 分页参数(Page从1开始)
type Page struct {
	Page  int
	Limit int
}

// Skip 计算跳过的记录数
func (p Page) Skip() int {
	return (p.Page - 1) * p.Limit
}

// DefaultPagination 默认分页(第1页,每页10条)
func DefaultPagination() Page {
	return Page{Page: DefaultPage, Limit: DefaultLimit}
}

// NewPage 校验分页参数
// 非正数或超过上限直接返回ValidationFailed,不做静默修正
func NewPage(page, limit int) (Page, error) {
	if v := validatePage(page, limit); len(v) > 0 {
		return Page{}, NewValidationError(v...)
	}
	return Page{Page: page, Limit: limit}, nil
}

// ParsePage 解析传输层的原始分页参数
// 空字符串使用默认值;非数字、非正数、超过上限均为校验错误
func ParsePage(rawPage, rawLimit string) (Page, error) {
	var violations Violations
	page, ok := parsePositiveInt(rawPage, DefaultPage)
	if !ok {
		violations = append(violations, Violation{Field: "page", Message: "页码必须是正整数"})
	}
	limit, ok := parsePositiveInt(rawLimit, DefaultLimit)
	if !ok {
		violations = append(violations, Violation{Field: "limit", Message: "每页数量必须是正整数"})
	}
	if len(violations) > 0 {
		return Page{}, NewValidationError(violations...)
	}
	return NewPage(page, limit)
}

// ParseNumber 解析可选的数值参数(空字符串表示未提供)
func ParseNumber(field, raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, NewValidationError(Violation{Field: field, Message: "必须是数字"})
	}
	return &v, nil
}

// ParseLimit 解析单个数量参数(如最新图书数量)
func ParseLimit(field, raw string) (int, error) {
	n, ok := parsePositiveInt(raw, 0)
	if !ok || n == 0 {
		return 0, NewValidationError(Violation{Field: field, Message: "必须是正整数"})
	}
	return n, nil
}

func parsePositiveInt(raw string, def int) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

func validatePage(page, limit int) Violations {
	var v Violations
	if page <= 0 {
		v = append(v, Violation{Field: "page", Message: "页码必须是正整数"})
	}
	if limit <= 0 {
		v = append(v, Violation{Field: "limit", Message: "每页数量必须是正整数"})
	} else if limit > MaxLimit {
		v = append(v, Violation{Field: "limit", Message: fmt.Sprintf("每页数量不能超过%d", MaxLimit)})
	}
	// (page-1)*limit 不能溢出int
	if len(v) == 0 && page-1 > math.MaxInt/limit {
		v = append(v, Violation{Field: "page", Message: "页码过大"})
	}
	return v
}

// validateRange 校验区间参数
// required为true时至少需要一侧边界(区间查询才有意义)
func validateRange(field string, r Range, required bool) Violations {
	var v Violations
	if required && r.IsZero() {
		return append(v, Violation{Field: field, Message: "至少需要提供最小值或最大值"})
	}
	if r.Min != nil && !isFinite(*r.Min) {
		v = append(v, Violation{Field: field + ".min", Message: "必须是数字"})
	}
	if r.Max != nil && !isFinite(*r.Max) {
		v = append(v, Violation{Field: field + ".max", Message: "必须是数字"})
	}
	if len(v) == 0 && r.Min != nil && r.Max != nil && *r.Min > *r.Max {
		v = append(v, Violation{Field: field, Message: "最小值不能大于最大值"})
	}
	return v
}

// =========================================
// 查询构建
// =========================================

// BuildQuery 将过滤规格与分页参数翻译成声明式查询
func BuildQuery(f Filter, p Page) (Query, error) {
	violations := validatePage(p.Page, p.Limit)
	violations = append(violations, validateRange("price", f.Price, false)...)
	violations = append(violations, validateRange("rating", f.Rating, false)...)
	if len(violations) > 0 {
		return Query{}, NewValidationError(violations...)
	}

	return Query{
		Conditions: f.conditions(),
		Sort:       defaultSort,
		Skip:       p.Skip(),
		Take:       p.Limit,
	}, nil
}

// BuildNewestQuery 最新的n本图书(按创建时间降序)
func BuildNewestQuery(n int) (Query, error) {
	if n <= 0 || n > MaxLimit {
		return Query{}, NewValidationError(Violation{
			Field:   "limit",
			Message: fmt.Sprintf("数量必须是1到%d之间的整数", MaxLimit),
		})
	}
	return Query{Sort: newestSort, Take: n}, nil
}

// conditions 生成过滤条件(各维度相互独立,按AND组合)
func (f Filter) conditions() []Condition {
	var conds []Condition
	if s := strings.TrimSpace(f.Author); s != "" {
		conds = append(conds, Condition{Field: FieldAuthor, Op: OpContains, Text: s})
	}
	if s := strings.TrimSpace(f.Category); s != "" {
		conds = append(conds, Condition{Field: FieldCategory, Op: OpContains, Text: s})
	}
	if s := strings.TrimSpace(f.Title); s != "" {
		conds = append(conds, Condition{Field: FieldTitle, Op: OpContains, Text: s})
	}
	conds = append(conds, f.Price.conditions(FieldPrice)...)
	conds = append(conds, f.Rating.conditions(FieldRating)...)
	return conds
}

func (r Range) conditions(field Field) []Condition {
	var conds []Condition
	if r.Min != nil {
		conds = append(conds, Condition{Field: field, Op: OpGte, Number: *r.Min})
	}
	if r.Max != nil {
		conds = append(conds, Condition{Field: field, Op: OpLte, Number: *r.Max})
	}
	return conds
}

// Matches 判断实体是否满足全部条件
// 供内存驱动使用,语义与Mongo/MySQL驱动保持一致
func Matches(b *Book, conds []Condition) bool {
	for _, c := range conds {
		if !c.matches(b) {
			return false
		}
	}
	return true
}

func (c Condition) matches(b *Book) bool {
	switch c.Op {
	case OpContains:
		return strings.Contains(strings.ToLower(b.text(c.Field)), strings.ToLower(c.Text))
	case OpGte:
		return b.number(c.Field) >= c.Number
	case OpLte:
		return b.number(c.Field) <= c.Number
	}
	return false
}

func (b *Book) text(f Field) string {
	switch f {
	case FieldTitle:
		return b.Title
	case FieldAuthor:
		return b.Author
	case FieldCategory:
		return string(b.Category)
	case FieldID:
		return b.ID
	}
	return ""
}

func (b *Book) number(f Field) float64 {
	switch f {
	case FieldPrice:
		return b.Price
	case FieldRating:
		return b.Rating
	}
	return 0
}

// Less 按排序键比较两本图书
func Less(a, b *Book, keys []SortKey) bool {
	for _, k := range keys {
		c := compare(a, b, k.Field)
		if c == 0 {
			continue
		}
		if k.Desc {
			return c > 0
		}
		return c < 0
	}
	return false
}

func compare(a, b *Book, f Field) int {
	switch f {
	case FieldCreatedAt:
		return a.CreatedAt.Compare(b.CreatedAt)
	case FieldPrice, FieldRating:
		x, y := a.number(f), b.number(f)
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	default:
		return strings.Compare(a.text(f), b.text(f))
	}
}
