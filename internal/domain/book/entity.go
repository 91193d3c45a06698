package book

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category 图书分类(封闭枚举)
type Category string

// 分类取值与存储中的字符串完全一致(大小写敏感)
const (
	CategoryFiction        Category = "Fiction"
	CategoryNonFiction     Category = "Non-Fiction"
	CategoryMystery        Category = "Mystery"
	CategoryScienceFiction Category = "Science Fiction"
	CategoryFantasy        Category = "Fantasy"
	CategoryRomance        Category = "Romance"
	CategoryHorror         Category = "Horror"
	CategoryHistory        Category = "History"
	CategoryBiography      Category = "Biography"
	CategorySelfHelp       Category = "Self-Help"
	CategoryTravel         Category = "Travel"
	CategoryChildrens      Category = "Children's"
	CategoryCooking        Category = "Cooking"
	CategoryPoetry         Category = "Poetry"
	CategoryPsychology     Category = "Psychology"
	CategoryBusiness       Category = "Business"
	CategoryArt            Category = "Art"
	CategoryHealth         Category = "Health"
	CategoryTechnology     Category = "Technology"
	CategorySports         Category = "Sports"
	CategoryOther          Category = "Other"
)

// Categories 全部合法分类(按声明顺序)
var Categories = []Category{
	CategoryFiction, CategoryNonFiction, CategoryMystery, CategoryScienceFiction,
	CategoryFantasy, CategoryRomance, CategoryHorror, CategoryHistory,
	CategoryBiography, CategorySelfHelp, CategoryTravel, CategoryChildrens,
	CategoryCooking, CategoryPoetry, CategoryPsychology, CategoryBusiness,
	CategoryArt, CategoryHealth, CategoryTechnology, CategorySports, CategoryOther,
}

var categorySet = func() map[Category]struct{} {
	m := make(map[Category]struct{}, len(Categories))
	for _, c := range Categories {
		m[c] = struct{}{}
	}
	return m
}()

// IsValid 判断分类是否属于封闭枚举(精确匹配)
func (c Category) IsValid() bool {
	_, ok := categorySet[c]
	return ok
}

// Book 图书实体(聚合根)
// DDD设计说明:
// 1. ID由存储层在创建时分配,之后不可变
// 2. (Title, Author)组合全局唯一,由存储层唯一索引保证
// 3. Owner在创建时绑定为当前登录用户,之后任何写路径都不能修改
// 4. CreatedAt/UpdatedAt由存储层在写入时维护
type Book struct {
	ID          string
	Title       string
	Description string
	Author      string
	Price       float64  // 价格, >= 0
	Rating      float64  // 评分, [0, 5]
	Category    Category // 分类
	Owner       string   // 创建者ID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Fields 图书的可写字段
// 说明:
// - 指针为nil表示"未提供"
// - 创建时所有字段都必须提供;更新时只校验并写入已提供的字段
// - 不包含Owner字段,更新路径天然无法修改归属
type Fields struct {
	Title       *string
	Description *string
	Author      *string
	Price       *float64
	Rating      *float64
	Category    *Category
}

// IsEmpty 是否未提供任何字段
func (f Fields) IsEmpty() bool {
	return f.Title == nil && f.Description == nil && f.Author == nil &&
		f.Price == nil && f.Rating == nil && f.Category == nil
}

// TouchesIdentity 是否修改了唯一性约束涉及的字段(书名或作者)
func (f Fields) TouchesIdentity() bool {
	return f.Title != nil || f.Author != nil
}

// Draft 创建图书的候选记录
// Owner为客户端提交的值,在身份归属阶段会被无条件覆盖
type Draft struct {
	Fields
	Owner string
}

// toBook 将已校验的草稿转换为实体
// 调用方必须保证Validate(ModeCreate)已通过
func (d Draft) toBook() *Book {
	return &Book{
		Title:       *d.Title,
		Description: *d.Description,
		Author:      *d.Author,
		Price:       *d.Price,
		Rating:      *d.Rating,
		Category:    *d.Category,
		Owner:       d.Owner,
	}
}

// Apply 将部分更新应用到实体副本(Owner与ID保持不变)
// 用于存储驱动在内存中计算更新结果
func (b *Book) Apply(f Fields) *Book {
	cp := *b
	if f.Title != nil {
		cp.Title = *f.Title
	}
	if f.Description != nil {
		cp.Description = *f.Description
	}
	if f.Author != nil {
		cp.Author = *f.Author
	}
	if f.Price != nil {
		cp.Price = *f.Price
	}
	if f.Rating != nil {
		cp.Rating = *f.Rating
	}
	if f.Category != nil {
		cp.Category = *f.Category
	}
	return &cp
}

// =========================================
// 标识符
// =========================================

// NewID 生成新的图书ID(24位十六进制ObjectID)
// 所有存储驱动共用同一种ID格式,保证标识符校验规则一致
func NewID() string {
	return primitive.NewObjectID().Hex()
}

// IsValidID 判断标识符格式是否合法
// 在访问存储之前调用,避免把格式错误的ID交给存储层产生不透明的错误
func IsValidID(id string) bool {
	return primitive.IsValidObjectID(id)
}
