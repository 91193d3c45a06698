package book

import (
	"math"
	"strings"
)

// Mode 校验模式
type Mode int

const (
	// ModeCreate 创建:所有字段必填
	ModeCreate Mode = iota
	// ModeUpdate 更新:只校验已提供的字段
	ModeUpdate
)

// 价格/评分取值范围
const (
	MinPrice  = 0.0
	MinRating = 0.0
	MaxRating = 5.0
)

// fieldRule 单个字段的校验规则
// present判断字段是否提供;check返回违规信息,空字符串表示通过
type fieldRule struct {
	field    string
	required string
	present  func(f Fields) bool
	check    func(f Fields) string
}

// rules 字段规则表
// 设计说明:
// 1. 以静态表声明每个字段的规则,Validate按表顺序逐条执行
// 2. 纯计算,无副作用,可在任何写操作之前调用
var rules = []fieldRule{
	{
		field:    "title",
		required: "书名为必填项",
		present:  func(f Fields) bool { return f.Title != nil },
		check:    func(f Fields) string { return notBlank(*f.Title, "书名不能为空") },
	},
	{
		field:    "description",
		required: "描述为必填项",
		present:  func(f Fields) bool { return f.Description != nil },
		check:    func(f Fields) string { return notBlank(*f.Description, "描述不能为空") },
	},
	{
		field:    "author",
		required: "作者为必填项",
		present:  func(f Fields) bool { return f.Author != nil },
		check:    func(f Fields) string { return notBlank(*f.Author, "作者不能为空") },
	},
	{
		field:    "price",
		required: "价格为必填项",
		present:  func(f Fields) bool { return f.Price != nil },
		check: func(f Fields) string {
			p := *f.Price
			if !isFinite(p) || p < MinPrice {
				return "价格必须是大于等于0的数字"
			}
			return ""
		},
	},
	{
		field:    "rating",
		required: "评分为必填项",
		present:  func(f Fields) bool { return f.Rating != nil },
		check: func(f Fields) string {
			r := *f.Rating
			if !isFinite(r) || r < MinRating || r > MaxRating {
				return "评分必须是0到5之间的数字"
			}
			return ""
		},
	},
	{
		field:    "category",
		required: "分类为必填项",
		present:  func(f Fields) bool { return f.Category != nil },
		check: func(f Fields) string {
			if !f.Category.IsValid() {
				return "无效的分类"
			}
			return ""
		},
	},
}

// Validate 校验候选记录
// 返回nil表示通过,否则返回全部字段级违规(不会在第一个错误处停止)
func Validate(f Fields, mode Mode) Violations {
	var violations Violations
	for _, r := range rules {
		if !r.present(f) {
			if mode == ModeCreate {
				violations = append(violations, Violation{Field: r.field, Message: r.required})
			}
			continue
		}
		if msg := r.check(f); msg != "" {
			violations = append(violations, Violation{Field: r.field, Message: msg})
		}
	}
	return violations
}

func notBlank(s, msg string) string {
	if strings.TrimSpace(s) == "" {
		return msg
	}
	return ""
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
