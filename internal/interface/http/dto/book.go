package dto

// BookRequest 图书可写字段
// 说明:
// - 字段均为指针,nil表示"未提供";创建时的必填校验由领域层完成,保证错误格式一致
// - binding tag只做传输层约束(长度上限与存储列宽一致、分类枚举)
// - bookcategory: 自定义分类校验(在RegisterValidators中注册)
type BookRequest struct {
	Title       *string  `json:"title" binding:"omitempty,max=191" example:"Dune"`
	Description *string  `json:"description" binding:"omitempty,max=5000" example:"A science fiction epic set on the desert planet Arrakis"`
	Author      *string  `json:"author" binding:"omitempty,max=191" example:"Frank Herbert"`
	Price       *float64 `json:"price" example:"9.99"`
	Rating      *float64 `json:"rating" example:"4.5"`
	Category    *string  `json:"category" binding:"omitempty,bookcategory" example:"Science Fiction"`
}

// CreateBookRequest HTTP创建图书请求
// owner字段允许提交但会被忽略,归属始终是当前登录用户
type CreateBookRequest struct {
	BookRequest
	Owner string `json:"owner,omitempty" swaggerignore:"true"`
}

// UpdateBookRequest HTTP更新图书请求(部分更新)
type UpdateBookRequest struct {
	BookRequest
}
