package util

import (
	"regexp"
	"strings"
)

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify 根据标题生成 URL 安全的 slug 基串：小写、
// 非字母数字折叠为单个连字符、去掉首尾连字符、截断到 100 字符。
// 唯一性由存储层的计数器保证。
func Slugify(title string) string {
	slug := strings.ToLower(title)
	slug = slugPattern.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if len(slug) > 100 {
		slug = slug[:100]
	}
	return slug
}
