package book

import "strings"

// Principal 已认证的操作主体
// 由认证中间件从Token中解析得到,领域层只关心稳定的ID
type Principal struct {
	ID string
}

// IsZero 是否为空主体
func (p Principal) IsZero() bool {
	return strings.TrimSpace(p.ID) == ""
}

// Attribute 将候选记录归属到当前主体
// 无论客户端是否提交了Owner,都以认证主体为准,防止伪造或转移归属
func Attribute(d Draft, p Principal) Draft {
	d.Owner = p.ID
	return d
}
