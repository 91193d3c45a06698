package book

import "context"

// Repository 图书仓储接口
// DDD原则:
// 1. 接口定义在domain层,实现在infrastructure层(依赖倒置)
// 2. 方法参数和返回值都是领域对象,不暴露数据库细节
// 3. 存储驱动负责把底层错误转换为领域错误:
//   - (书名, 作者)唯一索引冲突 → ErrDuplicateRecord(插入和更新两条路径)
//   - 记录不存在 → ErrBookNotFound
//   - 其他错误(超时、网络) → 由服务层统一视为ErrStorageUnavailable
type Repository interface {
	// Create 写入新图书,回填ID/CreatedAt/UpdatedAt
	// 不做"先查后写"的重复检查,唯一性完全由存储层唯一索引保证
	Create(ctx context.Context, b *Book) error

	// FindByID 根据ID查找图书
	FindByID(ctx context.Context, id string) (*Book, error)

	// Update 部分更新,返回更新后的记录
	// 只写入Fields中已提供的字段,同时刷新UpdatedAt
	Update(ctx context.Context, id string, f Fields) (*Book, error)

	// Delete 物理删除,返回被删除的记录
	Delete(ctx context.Context, id string) (*Book, error)

	// Find 执行声明式查询(先过滤,再排序,最后skip/take)
	Find(ctx context.Context, q Query) ([]*Book, error)

	// Count 统计满足条件的记录数(用于分页元数据)
	Count(ctx context.Context, conds []Condition) (int64, error)
}
