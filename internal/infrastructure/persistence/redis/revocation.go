package redis

import (
	"context"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// blacklistPrefix 吊销Token的Key前缀
// 由身份服务在登出/强制下线时写入,TTL与Access Token有效期一致,本服务只读
const blacklistPrefix = "blacklist:"

// RevocationStore Token吊销列表
// 设计说明：
// 1. JWT是无状态的，服务端无法主动让Token失效，只能依赖黑名单
// 2. 本服务不签发Token，也不写黑名单，只在认证时查询
// 3. Key设计：blacklist:{token}，过期后自动删除
type RevocationStore struct {
	client redis.Cmdable
}

// NewRevocationStore 创建吊销列表
func NewRevocationStore(client redis.Cmdable) *RevocationStore {
	return &RevocationStore{client: client}
}

// IsRevoked 检查Token是否已被吊销
func (s *RevocationStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	exists, err := s.client.Exists(ctx, blacklistPrefix+token).Result()
	if err != nil {
		return false, apperrors.Wrap(err, "检查黑名单失败")
	}
	return exists > 0, nil
}
