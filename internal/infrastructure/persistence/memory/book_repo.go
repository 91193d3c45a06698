package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
)

// bookRepository 图书仓储实现(内存)
// 设计说明:
// 1. 用于本地开发(storage.driver=memory)和领域服务测试
// 2. 与Mongo/MySQL驱动保持相同的语义:
//   - (书名, 作者)唯一键,大小写敏感,插入和更新都检查
//   - 先过滤,再排序,最后skip/take
//   - 返回副本,调用方修改结果不会影响存储
//
// 3. 进程内单锁,只保证单实例内的一致性
type bookRepository struct {
	mu    sync.RWMutex
	books map[string]*book.Book
	keys  map[uniqueKey]string // (书名, 作者) → ID
	now   func() time.Time
}

type uniqueKey struct {
	title  string
	author string
}

// Option 内存仓储配置项
type Option func(*bookRepository)

// WithClock 指定时间源(测试中用于构造确定的创建时间)
func WithClock(now func() time.Time) Option {
	return func(r *bookRepository) {
		r.now = now
	}
}

// NewBookRepository 创建内存图书仓储
func NewBookRepository(opts ...Option) book.Repository {
	r := &bookRepository{
		books: make(map[string]*book.Book),
		keys:  make(map[uniqueKey]string),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Create 创建图书
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := keyOf(b)
	if _, exists := r.keys[key]; exists {
		return book.ErrDuplicateRecord
	}

	now := r.now()
	b.ID = book.NewID()
	b.CreatedAt = now
	b.UpdatedAt = now

	cp := *b
	r.books[b.ID] = &cp
	r.keys[key] = b.ID
	return nil
}

// FindByID 根据ID查找图书
func (r *bookRepository) FindByID(ctx context.Context, id string) (*book.Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.books[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	cp := *b
	return &cp, nil
}

// Update 部分更新
func (r *bookRepository) Update(ctx context.Context, id string, f book.Fields) (*book.Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.books[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}

	updated := current.Apply(f)
	oldKey, newKey := keyOf(current), keyOf(updated)
	if newKey != oldKey {
		if _, exists := r.keys[newKey]; exists {
			return nil, book.ErrDuplicateRecord
		}
		delete(r.keys, oldKey)
		r.keys[newKey] = id
	}

	updated.UpdatedAt = r.now()
	r.books[id] = updated

	cp := *updated
	return &cp, nil
}

// Delete 物理删除
func (r *bookRepository) Delete(ctx context.Context, id string) (*book.Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.books[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	delete(r.books, id)
	delete(r.keys, keyOf(b))
	return b, nil
}

// Find 执行查询
func (r *bookRepository) Find(ctx context.Context, q book.Query) ([]*book.Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	matched := make([]*book.Book, 0, len(r.books))
	for _, b := range r.books {
		if book.Matches(b, q.Conditions) {
			cp := *b
			matched = append(matched, &cp)
		}
	}
	r.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		return book.Less(matched[i], matched[j], q.Sort)
	})

	if q.Skip < 0 || q.Skip >= len(matched) {
		return []*book.Book{}, nil
	}
	matched = matched[q.Skip:]
	if q.Take > 0 && q.Take < len(matched) {
		matched = matched[:q.Take]
	}
	return matched, nil
}

// Count 统计满足条件的记录数
func (r *bookRepository) Count(ctx context.Context, conds []book.Condition) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var n int64
	for _, b := range r.books {
		if book.Matches(b, conds) {
			n++
		}
	}
	return n, nil
}

func keyOf(b *book.Book) uniqueKey {
	return uniqueKey{title: b.Title, author: b.Author}
}
