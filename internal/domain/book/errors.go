package book

import (
	"strings"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// 图书领域错误定义
// 说明:服务边界之外只会出现以下五类错误(以及认证相关错误)
var (
	// ErrValidationFailed 字段校验失败(Details携带字段级违规列表)
	ErrValidationFailed = apperrors.New(apperrors.ErrCodeValidationFailed, "参数校验失败")

	// ErrDuplicateRecord 书名+作者已存在
	ErrDuplicateRecord = apperrors.New(apperrors.ErrCodeDuplicateRecord, "相同书名和作者的图书已存在")

	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "图书不存在")

	// ErrInvalidIdentifier 图书ID格式非法
	ErrInvalidIdentifier = apperrors.New(apperrors.ErrCodeInvalidIdentifier, "图书ID格式不正确")

	// ErrStorageUnavailable 存储暂不可用(超时、网络故障)
	ErrStorageUnavailable = apperrors.ErrStorageUnavailable

	// ErrUnauthorized 缺少认证主体
	ErrUnauthorized = apperrors.ErrUnauthorized
)

// Violation 字段级校验违规
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Violations 违规列表
type Violations []Violation

func (v Violations) Error() string {
	parts := make([]string, len(v))
	for i, item := range v {
		parts[i] = item.Field + ": " + item.Message
	}
	return strings.Join(parts, "; ")
}

// NewValidationError 构造携带违规列表的ValidationFailed错误
func NewValidationError(violations ...Violation) error {
	return ErrValidationFailed.WithErr(Violations(violations)).WithDetails(Violations(violations))
}

// knownCodes 服务边界允许透出的错误码
var knownCodes = []int{
	apperrors.ErrCodeValidationFailed,
	apperrors.ErrCodeDuplicateRecord,
	apperrors.ErrCodeBookNotFound,
	apperrors.ErrCodeInvalidIdentifier,
	apperrors.ErrCodeStorageUnavailable,
	apperrors.ErrCodeUnauthorized,
}

// translate 保证跨越服务边界的错误一定是上述领域错误之一
// 存储驱动已完成转换;未识别的错误一律视为存储故障
func translate(err error) error {
	if err == nil {
		return nil
	}
	for _, code := range knownCodes {
		if apperrors.HasCode(err, code) {
			return err
		}
	}
	return ErrStorageUnavailable.WithErr(err)
}
