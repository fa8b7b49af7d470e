package memory

import (
	"fmt"
	"testing"

	"publishhub-backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPost(title, status string, tags ...string) *model.Post {
	return &model.Post{
		Title:          title,
		Content:        "正文 " + title,
		Excerpt:        "摘要 " + title,
		AuthorID:       "user-1",
		AuthorName:     "Test Author",
		AuthorUsername: "testauthor",
		Tags:           tags,
		Status:         status,
	}
}

// TestCreatePost_SlugAssignment 测试创建文章时的 slug 生成与查找
func TestCreatePost_SlugAssignment(t *testing.T) {
	repo := NewContentRepository()

	post := newPost("Hello, World! 你好", model.PostStatusPublished)
	require.NoError(t, repo.CreatePost(post))
	assert.NotEmpty(t, post.ID)
	assert.Equal(t, "hello-world", post.Slug)

	// 创建后立即可以按 slug 查到同一篇文章
	found, err := repo.GetPostBySlug("hello-world")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, post.ID, found.ID)
}

// TestCreatePost_SlugCollision 测试 slug 冲突时追加数字后缀
func TestCreatePost_SlugCollision(t *testing.T) {
	repo := NewContentRepository()

	first := newPost("Same Title", model.PostStatusDraft)
	second := newPost("Same Title", model.PostStatusDraft)
	third := newPost("Same Title", model.PostStatusDraft)
	require.NoError(t, repo.CreatePost(first))
	require.NoError(t, repo.CreatePost(second))
	require.NoError(t, repo.CreatePost(third))

	assert.Equal(t, "same-title", first.Slug)
	assert.Equal(t, "same-title-1", second.Slug)
	assert.Equal(t, "same-title-2", third.Slug)

	// 所有 slug 在存储内唯一
	slugs := map[string]bool{}
	for _, p := range []*model.Post{first, second, third} {
		assert.False(t, slugs[p.Slug])
		slugs[p.Slug] = true
	}
}

// TestCreatePost_SlugNotReusedAfterDelete 计数器持久，删除文章不释放后缀
func TestCreatePost_SlugNotReusedAfterDelete(t *testing.T) {
	repo := NewContentRepository()

	first := newPost("Same Title", model.PostStatusDraft)
	require.NoError(t, repo.CreatePost(first))
	assert.Equal(t, "same-title", first.Slug)

	deleted, err := repo.DeletePost(first.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	// 基串已被占用过，重新创建同名文章拿到的是下一个后缀
	second := newPost("Same Title", model.PostStatusDraft)
	require.NoError(t, repo.CreatePost(second))
	assert.Equal(t, "same-title-1", second.Slug)
}

// TestGetAllPublishedPosts 测试已发布过滤与排序
func TestGetAllPublishedPosts(t *testing.T) {
	repo := NewContentRepository()

	draft := newPost("Draft Post", model.PostStatusDraft)
	older := newPost("Older Post", model.PostStatusPublished)
	newer := newPost("Newer Post", model.PostStatusPublished)
	require.NoError(t, repo.CreatePost(draft))
	require.NoError(t, repo.CreatePost(older))
	require.NoError(t, repo.CreatePost(newer))

	posts, err := repo.GetAllPublishedPosts()
	require.NoError(t, err)
	require.Len(t, posts, 2)

	// 草稿永远不出现
	for _, p := range posts {
		assert.NotEqual(t, draft.ID, p.ID)
	}
	// 最新发布的在前
	assert.False(t, posts[0].CreatedAt.Before(posts[1].CreatedAt))
}

// TestUpdatePost_PublishTransition 测试 PublishedAt 只设置一次
func TestUpdatePost_PublishTransition(t *testing.T) {
	repo := NewContentRepository()

	post := newPost("My Draft", model.PostStatusDraft)
	require.NoError(t, repo.CreatePost(post))
	assert.Nil(t, post.PublishedAt)

	published := model.PostStatusPublished
	updated, err := repo.UpdatePost(post.ID, &model.PostUpdate{Status: &published})
	require.NoError(t, err)
	require.NotNil(t, updated)
	require.NotNil(t, updated.PublishedAt)
	firstPublishedAt := *updated.PublishedAt

	// 再次更新不会改变 PublishedAt
	newTitle := "My Draft v2"
	updated, err = repo.UpdatePost(post.ID, &model.PostUpdate{Title: &newTitle, Status: &published})
	require.NoError(t, err)
	assert.Equal(t, "My Draft v2", updated.Title)
	assert.Equal(t, firstPublishedAt, *updated.PublishedAt)

	// 更新不存在的文章返回 nil
	missing, err := repo.UpdatePost("non-existent-id", &model.PostUpdate{Title: &newTitle})
	require.NoError(t, err)
	assert.Nil(t, missing)
}

// TestUpdatePost_PartialMerge 测试部分字段合并
func TestUpdatePost_PartialMerge(t *testing.T) {
	repo := NewContentRepository()

	post := newPost("Original", model.PostStatusDraft, "go")
	require.NoError(t, repo.CreatePost(post))

	newContent := "replaced content"
	updated, err := repo.UpdatePost(post.ID, &model.PostUpdate{Content: &newContent})
	require.NoError(t, err)
	assert.Equal(t, "replaced content", updated.Content)
	// 未提供的字段保持不变
	assert.Equal(t, "Original", updated.Title)
	assert.Equal(t, []string{"go"}, updated.Tags)
	assert.False(t, updated.UpdatedAt.Before(updated.CreatedAt))
}

// TestDeletePost 测试删除语义
func TestDeletePost(t *testing.T) {
	repo := NewContentRepository()

	post := newPost("To Delete", model.PostStatusPublished)
	require.NoError(t, repo.CreatePost(post))

	deleted, err := repo.DeletePost(post.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	found, err := repo.GetPostByID(post.ID)
	require.NoError(t, err)
	assert.Nil(t, found)

	// 重复删除返回 false
	deleted, err = repo.DeletePost(post.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

// TestSearchPosts 测试大小写无关的子串搜索，只命中已发布文章
func TestSearchPosts(t *testing.T) {
	repo := NewContentRepository()

	published := newPost("Golang Patterns", model.PostStatusPublished)
	draft := newPost("Golang Secrets", model.PostStatusDraft)
	other := newPost("Cooking at Home", model.PostStatusPublished)
	require.NoError(t, repo.CreatePost(published))
	require.NoError(t, repo.CreatePost(draft))
	require.NoError(t, repo.CreatePost(other))

	results, err := repo.SearchPosts("GOLANG")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, published.ID, results[0].ID)

	// 摘要与正文同样参与匹配
	results, err = repo.SearchPosts("摘要 cooking")
	require.NoError(t, err)
	assert.Len(t, results, 1)

	results, err = repo.SearchPosts("no-such-text")
	require.NoError(t, err)
	assert.Empty(t, results)
}

// TestGetPostsByTags 测试标签 OR 匹配
func TestGetPostsByTags(t *testing.T) {
	repo := NewContentRepository()

	goPost := newPost("Go Post", model.PostStatusPublished, "go", "backend")
	rustPost := newPost("Rust Post", model.PostStatusPublished, "rust")
	draftPost := newPost("Draft Go", model.PostStatusDraft, "go")
	require.NoError(t, repo.CreatePost(goPost))
	require.NoError(t, repo.CreatePost(rustPost))
	require.NoError(t, repo.CreatePost(draftPost))

	results, err := repo.GetPostsByTags([]string{"go", "rust"})
	require.NoError(t, err)
	assert.Len(t, results, 2)

	// 标签匹配但未发布的文章不返回
	for _, p := range results {
		assert.NotEqual(t, draftPost.ID, p.ID)
	}

	results, err = repo.GetPostsByTags([]string{"backend"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, goPost.ID, results[0].ID)
}

// TestGetPaginatedPosts 测试分页切片与越界行为
func TestGetPaginatedPosts(t *testing.T) {
	repo := NewContentRepository()

	for i := 0; i < 25; i++ {
		require.NoError(t, repo.CreatePost(newPost(fmt.Sprintf("Post %d", i), model.PostStatusPublished)))
	}

	allPosts, err := repo.GetAllPublishedPosts()
	require.NoError(t, err)
	require.Len(t, allPosts, 25)

	// 第三页应该是排序后列表的第 20-24 条
	page3, err := repo.GetPaginatedPosts(3, 10)
	require.NoError(t, err)
	require.Len(t, page3, 5)
	for i, p := range page3 {
		assert.Equal(t, allPosts[20+i].ID, p.ID)
	}

	// 越界页返回空切片而不是错误
	page4, err := repo.GetPaginatedPosts(4, 10)
	require.NoError(t, err)
	assert.Empty(t, page4)

	total, err := repo.CountPublishedPosts()
	require.NoError(t, err)
	assert.Equal(t, 25, total)
}

// TestGetPostsByAuthor 测试作者文章列表包含草稿并按创建时间倒序
func TestGetPostsByAuthor(t *testing.T) {
	repo := NewContentRepository()

	mine := newPost("Mine", model.PostStatusDraft)
	theirs := newPost("Theirs", model.PostStatusPublished)
	theirs.AuthorID = "user-2"
	require.NoError(t, repo.CreatePost(mine))
	require.NoError(t, repo.CreatePost(theirs))

	posts, err := repo.GetPostsByAuthor("user-1")
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, mine.ID, posts[0].ID)
}
