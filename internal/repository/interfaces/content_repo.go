package interfaces

import "publishhub-backend/internal/model"

// ContentRepository 定义了文章相关的存储操作接口。
// 查询不到时返回 (nil, nil)，不作为错误处理。
type ContentRepository interface {
	CreatePost(post *model.Post) error
	GetPostByID(id string) (*model.Post, error)
	GetPostBySlug(slug string) (*model.Post, error)
	UpdatePost(id string, updates *model.PostUpdate) (*model.Post, error)
	DeletePost(id string) (bool, error)
	GetPostsByAuthor(authorID string) ([]*model.Post, error)
	GetAllPublishedPosts() ([]*model.Post, error)
	SearchPosts(query string) ([]*model.Post, error)
	GetPostsByTags(tags []string) ([]*model.Post, error)
	GetPaginatedPosts(page, pageSize int) ([]*model.Post, error)
	CountPublishedPosts() (int, error)
}
