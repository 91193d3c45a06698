package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
)

// RegisterValidators 在gin的校验引擎上注册自定义规则
// 需要在注册路由之前调用一次
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin校验引擎不是validator/v10")
	}

	// 违规字段名使用json名,与领域层校验错误保持一致
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return v.RegisterValidation("bookcategory", validateCategory)
}

func validateCategory(fl validator.FieldLevel) bool {
	return book.Category(fl.Field().String()).IsValid()
}

// Violations 把绑定阶段的校验错误转换为领域违规列表
// 不是校验错误(如JSON格式错误)时返回false
func Violations(err error) (book.Violations, bool) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, false
	}

	out := make(book.Violations, 0, len(verrs))
	for _, fe := range verrs {
		var msg string
		switch fe.Tag() {
		case "max":
			msg = fmt.Sprintf("长度不能超过%s", fe.Param())
		case "bookcategory":
			msg = "分类不在允许的取值范围内"
		default:
			msg = "格式不正确"
		}
		out = append(out, book.Violation{Field: fe.Field(), Message: msg})
	}
	return out, true
}
