package book

import (
	"context"
	"strings"
	"time"
)

// DefaultStorageTimeout 单次存储调用的默认超时
const DefaultStorageTimeout = 5 * time.Second

// Result 列表查询结果
type Result struct {
	Books []*Book
	Total int64 // 满足过滤条件的总记录数(分页前)
	Page  Page
}

// Service 图书目录领域服务接口
// 设计说明:
// 1. 所有写操作遵循 校验 → 身份归属 → 持久化 的顺序,任何一步失败都不会写入存储
// 2. ID格式在访问存储之前校验
// 3. 各种专用检索(按作者、按价格区间等)都是List的薄封装,共享同一套过滤/分页语义
// 4. 服务边界只透出领域错误,底层错误统一转换为ErrStorageUnavailable
type Service interface {
	// Create 创建图书,Owner绑定为principal
	Create(ctx context.Context, d Draft, p Principal) (*Book, error)

	// Get 根据ID获取图书
	Get(ctx context.Context, id string) (*Book, error)

	// Update 部分更新图书(不会修改Owner)
	Update(ctx context.Context, id string, f Fields) (*Book, error)

	// Delete 删除图书,返回被删除的记录
	Delete(ctx context.Context, id string) (*Book, error)

	// List 组合过滤 + 分页
	List(ctx context.Context, f Filter, p Page) (*Result, error)

	// All 不带过滤条件的分页列表
	All(ctx context.Context, p Page) (*Result, error)

	ByAuthor(ctx context.Context, author string, p Page) (*Result, error)
	ByCategory(ctx context.Context, category string, p Page) (*Result, error)
	BySearchTitle(ctx context.Context, keyword string, p Page) (*Result, error)
	ByPriceRange(ctx context.Context, r Range, p Page) (*Result, error)
	ByRatingRange(ctx context.Context, r Range, p Page) (*Result, error)

	// Above/Below 均为闭区间(>= / <=)
	AbovePrice(ctx context.Context, price float64, p Page) (*Result, error)
	BelowPrice(ctx context.Context, price float64, p Page) (*Result, error)
	AboveRating(ctx context.Context, rating float64, p Page) (*Result, error)
	BelowRating(ctx context.Context, rating float64, p Page) (*Result, error)

	// Newest 最新创建的n本图书
	Newest(ctx context.Context, n int) (*Result, error)
}

// Option 服务配置项
type Option func(*service)

// WithStorageTimeout 设置单次存储调用超时(<=0表示不设置)
func WithStorageTimeout(d time.Duration) Option {
	return func(s *service) {
		s.timeout = d
	}
}

// service 领域服务实现
type service struct {
	repo    Repository
	timeout time.Duration
}

// NewService 创建领域服务
func NewService(repo Repository, opts ...Option) Service {
	s := &service{repo: repo, timeout: DefaultStorageTimeout}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create 创建图书
func (s *service) Create(ctx context.Context, d Draft, p Principal) (*Book, error) {
	// 1. 必须有认证主体
	if p.IsZero() {
		return nil, ErrUnauthorized
	}

	// 2. 完整校验(创建时所有字段必填)
	if v := Validate(d.Fields, ModeCreate); len(v) > 0 {
		return nil, NewValidationError(v...)
	}

	// 3. 身份归属(覆盖客户端提交的Owner)
	b := Attribute(d, p).toBook()

	// 4. 持久化(只尝试一次,重复由唯一索引拦截)
	ctx, cancel := s.storageContext(ctx)
	defer cancel()
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, translate(err)
	}
	return b, nil
}

// Get 获取图书
func (s *service) Get(ctx context.Context, id string) (*Book, error) {
	if !IsValidID(id) {
		return nil, ErrInvalidIdentifier
	}

	ctx, cancel := s.storageContext(ctx)
	defer cancel()
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	return b, nil
}

// Update 部分更新图书
func (s *service) Update(ctx context.Context, id string, f Fields) (*Book, error) {
	if !IsValidID(id) {
		return nil, ErrInvalidIdentifier
	}
	if v := Validate(f, ModeUpdate); len(v) > 0 {
		return nil, NewValidationError(v...)
	}

	// 空补丁等价于读取当前记录
	if f.IsEmpty() {
		return s.Get(ctx, id)
	}

	ctx, cancel := s.storageContext(ctx)
	defer cancel()
	b, err := s.repo.Update(ctx, id, f)
	if err != nil {
		return nil, translate(err)
	}
	return b, nil
}

// Delete 删除图书
func (s *service) Delete(ctx context.Context, id string) (*Book, error) {
	if !IsValidID(id) {
		return nil, ErrInvalidIdentifier
	}

	ctx, cancel := s.storageContext(ctx)
	defer cancel()
	b, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	return b, nil
}

// List 组合过滤 + 分页
func (s *service) List(ctx context.Context, f Filter, p Page) (*Result, error) {
	q, err := BuildQuery(f, p)
	if err != nil {
		return nil, err
	}
	return s.run(ctx, q, p)
}

// All 不带过滤条件的分页列表
func (s *service) All(ctx context.Context, p Page) (*Result, error) {
	return s.List(ctx, Filter{}, p)
}

// ByAuthor 按作者检索(不区分大小写的子串匹配)
func (s *service) ByAuthor(ctx context.Context, author string, p Page) (*Result, error) {
	if err := requireKeyword("author", author); err != nil {
		return nil, err
	}
	return s.List(ctx, Filter{Author: author}, p)
}

// ByCategory 按分类检索
func (s *service) ByCategory(ctx context.Context, category string, p Page) (*Result, error) {
	if err := requireKeyword("category", category); err != nil {
		return nil, err
	}
	return s.List(ctx, Filter{Category: category}, p)
}

// BySearchTitle 按书名关键字检索
func (s *service) BySearchTitle(ctx context.Context, keyword string, p Page) (*Result, error) {
	if err := requireKeyword("keyword", keyword); err != nil {
		return nil, err
	}
	return s.List(ctx, Filter{Title: keyword}, p)
}

// ByPriceRange 价格区间检索(至少需要一侧边界)
func (s *service) ByPriceRange(ctx context.Context, r Range, p Page) (*Result, error) {
	if v := validateRange("price", r, true); len(v) > 0 {
		return nil, NewValidationError(v...)
	}
	return s.List(ctx, Filter{Price: r}, p)
}

// ByRatingRange 评分区间检索(至少需要一侧边界)
func (s *service) ByRatingRange(ctx context.Context, r Range, p Page) (*Result, error) {
	if v := validateRange("rating", r, true); len(v) > 0 {
		return nil, NewValidationError(v...)
	}
	return s.List(ctx, Filter{Rating: r}, p)
}

func (s *service) AbovePrice(ctx context.Context, price float64, p Page) (*Result, error) {
	return s.ByPriceRange(ctx, Range{Min: &price}, p)
}

func (s *service) BelowPrice(ctx context.Context, price float64, p Page) (*Result, error) {
	return s.ByPriceRange(ctx, Range{Max: &price}, p)
}

func (s *service) AboveRating(ctx context.Context, rating float64, p Page) (*Result, error) {
	return s.ByRatingRange(ctx, Range{Min: &rating}, p)
}

func (s *service) BelowRating(ctx context.Context, rating float64, p Page) (*Result, error) {
	return s.ByRatingRange(ctx, Range{Max: &rating}, p)
}

// Newest 最新创建的n本图书
func (s *service) Newest(ctx context.Context, n int) (*Result, error) {
	q, err := BuildNewestQuery(n)
	if err != nil {
		return nil, err
	}
	return s.run(ctx, q, Page{Page: 1, Limit: n})
}

// run 执行查询并统计总数
func (s *service) run(ctx context.Context, q Query, p Page) (*Result, error) {
	ctx, cancel := s.storageContext(ctx)
	defer cancel()

	books, err := s.repo.Find(ctx, q)
	if err != nil {
		return nil, translate(err)
	}
	total, err := s.repo.Count(ctx, q.Conditions)
	if err != nil {
		return nil, translate(err)
	}
	if books == nil {
		books = []*Book{}
	}
	return &Result{Books: books, Total: total, Page: p}, nil
}

// storageContext 为存储调用设置超时
func (s *service) storageContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

func requireKeyword(field, v string) error {
	if strings.TrimSpace(v) == "" {
		return NewValidationError(Violation{Field: field, Message: "关键字不能为空"})
	}
	return nil
}
