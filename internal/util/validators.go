package util

import (
	"github.com/go-playground/validator/v10"
)

// ValidatePostStatus 验证文章状态是否合法
func ValidatePostStatus(fl validator.FieldLevel) bool {
	status, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	return status == "" || status == "draft" || status == "published"
}
