package memory

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"publishhub-backend/internal/model"
	"publishhub-backend/internal/util"

	"github.com/google/uuid"
)

// contentRepository 是 ContentRepository 的内存实现。
// 所有状态集中在单个进程内，随进程退出而丢弃。
type contentRepository struct {
	mu          sync.RWMutex
	posts       map[string]*model.Post
	order       []string // 创建顺序，保证遍历结果稳定
	slugCounter map[string]int
}

func NewContentRepository() *contentRepository {
	return &contentRepository{
		posts:       make(map[string]*model.Post),
		slugCounter: make(map[string]int),
	}
}

func (r *contentRepository) CreatePost(post *model.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	post.ID = uuid.NewString()
	post.Slug = r.nextSlug(post.Title)
	if post.Status == "" {
		post.Status = model.PostStatusDraft
	}
	post.CreatedAt = now
	post.UpdatedAt = now
	if post.Status == model.PostStatusPublished {
		publishedAt := now
		post.PublishedAt = &publishedAt
	}

	r.posts[post.ID] = post
	r.order = append(r.order, post.ID)
	return nil
}

// nextSlug 为同一基串维护计数器，冲突时追加数字后缀
func (r *contentRepository) nextSlug(title string) string {
	base := util.Slugify(title)
	count := r.slugCounter[base]
	r.slugCounter[base] = count + 1
	if count > 0 {
		return fmt.Sprintf("%s-%d", base, count)
	}
	return base
}

func (r *contentRepository) GetPostByID(id string) (*model.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	post, ok := r.posts[id]
	if !ok {
		return nil, nil
	}
	return post, nil
}

func (r *contentRepository) GetPostBySlug(slug string) (*model.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// 线性扫描，当前数据规模下可接受
	for _, id := range r.order {
		if post := r.posts[id]; post != nil && post.Slug == slug {
			return post, nil
		}
	}
	return nil, nil
}

func (r *contentRepository) UpdatePost(id string, updates *model.PostUpdate) (*model.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	post, ok := r.posts[id]
	if !ok {
		return nil, nil
	}

	if updates.Title != nil {
		post.Title = *updates.Title
	}
	if updates.Content != nil {
		post.Content = *updates.Content
	}
	if updates.Excerpt != nil {
		post.Excerpt = *updates.Excerpt
	}
	if updates.Tags != nil {
		post.Tags = updates.Tags
	}
	if updates.CoverImage != nil {
		post.CoverImage = *updates.CoverImage
	}
	if updates.Status != nil {
		post.Status = *updates.Status
		// PublishedAt 只在首次发布时设置，之后不再变化
		if post.Status == model.PostStatusPublished && post.PublishedAt == nil {
			publishedAt := time.Now().UTC()
			post.PublishedAt = &publishedAt
		}
	}
	post.UpdatedAt = time.Now().UTC()

	return post, nil
}

func (r *contentRepository) DeletePost(id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.posts[id]; !ok {
		return false, nil
	}
	delete(r.posts, id)
	for i, pid := range r.order {
		if pid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true, nil
}

func (r *contentRepository) GetPostsByAuthor(authorID string) ([]*model.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	posts := make([]*model.Post, 0)
	for _, id := range r.order {
		if post := r.posts[id]; post != nil && post.AuthorID == authorID {
			posts = append(posts, post)
		}
	}
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return posts, nil
}

func (r *contentRepository) GetAllPublishedPosts() ([]*model.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.publishedLocked(), nil
}

// publishedLocked 返回已发布文章，按发布时间（缺省为创建时间）倒序。
// 调用方必须持有读锁。
func (r *contentRepository) publishedLocked() []*model.Post {
	posts := make([]*model.Post, 0)
	for _, id := range r.order {
		if post := r.posts[id]; post != nil && post.Status == model.PostStatusPublished {
			posts = append(posts, post)
		}
	}
	sort.SliceStable(posts, func(i, j int) bool {
		return publishTime(posts[i]).After(publishTime(posts[j]))
	})
	return posts
}

func publishTime(post *model.Post) time.Time {
	if post.PublishedAt != nil {
		return *post.PublishedAt
	}
	return post.CreatedAt
}

func (r *contentRepository) SearchPosts(query string) ([]*model.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lowerQuery := strings.ToLower(query)
	results := make([]*model.Post, 0)
	for _, id := range r.order {
		post := r.posts[id]
		if post == nil || post.Status != model.PostStatusPublished {
			continue
		}
		if strings.Contains(strings.ToLower(post.Title), lowerQuery) ||
			strings.Contains(strings.ToLower(post.Excerpt), lowerQuery) ||
			strings.Contains(strings.ToLower(post.Content), lowerQuery) {
			results = append(results, post)
		}
	}
	return results, nil
}

func (r *contentRepository) GetPostsByTags(tags []string) ([]*model.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wanted := make(map[string]bool, len(tags))
	for _, tag := range tags {
		wanted[tag] = true
	}

	results := make([]*model.Post, 0)
	for _, id := range r.order {
		post := r.posts[id]
		if post == nil || post.Status != model.PostStatusPublished {
			continue
		}
		// 标签集合取交集即命中（OR 语义）
		for _, tag := range post.Tags {
			if wanted[tag] {
				results = append(results, post)
				break
			}
		}
	}
	return results, nil
}

func (r *contentRepository) GetPaginatedPosts(page, pageSize int) ([]*model.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	allPosts := r.publishedLocked()
	start := (page - 1) * pageSize
	if start >= len(allPosts) {
		return []*model.Post{}, nil
	}
	end := start + pageSize
	if end > len(allPosts) {
		end = len(allPosts)
	}
	return allPosts[start:end], nil
}

func (r *contentRepository) CountPublishedPosts() (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, post := range r.posts {
		if post.Status == model.PostStatusPublished {
			count++
		}
	}
	return count, nil
}
