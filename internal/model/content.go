package model

import "time"

// Post 状态常量：草稿只能单向变为已发布
const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
)

// Post 结构体表示文章模型，作者信息为冗余快照
type Post struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Content        string     `json:"content"`
	Excerpt        string     `json:"excerpt"`
	AuthorID       string     `json:"author_id"`
	AuthorName     string     `json:"author_name"`
	AuthorUsername string     `json:"author_username"`
	Tags           []string   `json:"tags"`
	Slug           string     `json:"slug"`
	Status         string     `json:"status"`
	CoverImage     string     `json:"cover_image,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	PublishedAt    *time.Time `json:"published_at,omitempty"`
}

// PostUpdate 表示部分更新的字段集合，nil 表示不修改
type PostUpdate struct {
	Title      *string
	Content    *string
	Excerpt    *string
	Tags       []string
	Status     *string
	CoverImage *string
}

// TagCount 标签云中的单个条目
type TagCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Pagination 分页信息
type Pagination struct {
	Page     int  `json:"page"`
	PageSize int  `json:"page_size"`
	Total    int  `json:"total"`
	Pages    int  `json:"pages"`
	HasMore  bool `json:"has_more"`
}
