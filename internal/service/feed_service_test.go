package service

import (
	"testing"

	"publishhub-backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockContentRepository 是 ContentRepository 接口的模拟实现
type MockContentRepository struct {
	mock.Mock
}

func (m *MockContentRepository) CreatePost(post *model.Post) error {
	args := m.Called(post)
	return args.Error(0)
}

func (m *MockContentRepository) GetPostByID(id string) (*model.Post, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockContentRepository) GetPostBySlug(slug string) (*model.Post, error) {
	args := m.Called(slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockContentRepository) UpdatePost(id string, updates *model.PostUpdate) (*model.Post, error) {
	args := m.Called(id, updates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockContentRepository) DeletePost(id string) (bool, error) {
	args := m.Called(id)
	return args.Bool(0), args.Error(1)
}

func (m *MockContentRepository) GetPostsByAuthor(authorID string) ([]*model.Post, error) {
	args := m.Called(authorID)
	return args.Get(0).([]*model.Post), args.Error(1)
}

func (m *MockContentRepository) GetAllPublishedPosts() ([]*model.Post, error) {
	args := m.Called()
	return args.Get(0).([]*model.Post), args.Error(1)
}

func (m *MockContentRepository) SearchPosts(query string) ([]*model.Post, error) {
	args := m.Called(query)
	return args.Get(0).([]*model.Post), args.Error(1)
}

func (m *MockContentRepository) GetPostsByTags(tags []string) ([]*model.Post, error) {
	args := m.Called(tags)
	return args.Get(0).([]*model.Post), args.Error(1)
}

func (m *MockContentRepository) GetPaginatedPosts(page, pageSize int) ([]*model.Post, error) {
	args := m.Called(page, pageSize)
	return args.Get(0).([]*model.Post), args.Error(1)
}

func (m *MockContentRepository) CountPublishedPosts() (int, error) {
	args := m.Called()
	return args.Int(0), args.Error(1)
}

// TestGetFeed 测试分页信息流的分页计算
func TestGetFeed(t *testing.T) {
	mockRepo := new(MockContentRepository)
	service := NewFeedService(mockRepo)

	pagePosts := []*model.Post{{ID: "p1"}, {ID: "p2"}}
	mockRepo.On("GetPaginatedPosts", 2, 10).Return(pagePosts, nil)
	mockRepo.On("CountPublishedPosts").Return(25, nil)

	posts, pagination, err := service.GetFeed(2, 10)
	assert.NoError(t, err)
	assert.Len(t, posts, 2)
	assert.Equal(t, 2, pagination.Page)
	assert.Equal(t, 10, pagination.PageSize)
	assert.Equal(t, 25, pagination.Total)
	assert.Equal(t, 3, pagination.Pages)
	assert.True(t, pagination.HasMore)
	mockRepo.AssertExpectations(t)
}

// TestGetFeedLastPage 测试最后一页的 hasMore 语义
func TestGetFeedLastPage(t *testing.T) {
	mockRepo := new(MockContentRepository)
	service := NewFeedService(mockRepo)

	mockRepo.On("GetPaginatedPosts", 3, 10).Return([]*model.Post{{ID: "p21"}}, nil)
	mockRepo.On("CountPublishedPosts").Return(21, nil)

	_, pagination, err := service.GetFeed(3, 10)
	assert.NoError(t, err)
	assert.Equal(t, 3, pagination.Pages)
	assert.False(t, pagination.HasMore)
}

// TestGetFeedEmpty 测试没有已发布文章时的分页信息
func TestGetFeedEmpty(t *testing.T) {
	mockRepo := new(MockContentRepository)
	service := NewFeedService(mockRepo)

	mockRepo.On("GetPaginatedPosts", 1, 10).Return([]*model.Post{}, nil)
	mockRepo.On("CountPublishedPosts").Return(0, nil)

	posts, pagination, err := service.GetFeed(1, 10)
	assert.NoError(t, err)
	assert.Empty(t, posts)
	assert.Equal(t, 0, pagination.Pages)
	assert.False(t, pagination.HasMore)
}

// TestGetTagCloud 测试标签云的计数和排序
func TestGetTagCloud(t *testing.T) {
	mockRepo := new(MockContentRepository)
	service := NewFeedService(mockRepo)

	posts := []*model.Post{
		{ID: "p1", Tags: []string{"go", "web"}},
		{ID: "p2", Tags: []string{"go"}},
		{ID: "p3", Tags: []string{"web", "go", "database"}},
	}
	mockRepo.On("GetAllPublishedPosts").Return(posts, nil)

	tags, err := service.GetTagCloud()
	assert.NoError(t, err)
	assert.Len(t, tags, 3)
	assert.Equal(t, "go", tags[0].Name)
	assert.Equal(t, 3, tags[0].Count)
	assert.Equal(t, "web", tags[1].Name)
	assert.Equal(t, 2, tags[1].Count)
	assert.Equal(t, "database", tags[2].Name)
	assert.Equal(t, 1, tags[2].Count)
}

// TestGetTagCloudStableOrder 次数相同时应保持首次出现的顺序
func TestGetTagCloudStableOrder(t *testing.T) {
	mockRepo := new(MockContentRepository)
	service := NewFeedService(mockRepo)

	posts := []*model.Post{
		{ID: "p1", Tags: []string{"alpha", "beta"}},
		{ID: "p2", Tags: []string{"alpha", "beta"}},
	}
	mockRepo.On("GetAllPublishedPosts").Return(posts, nil)

	tags, err := service.GetTagCloud()
	assert.NoError(t, err)
	assert.Len(t, tags, 2)
	assert.Equal(t, "alpha", tags[0].Name)
	assert.Equal(t, "beta", tags[1].Name)
}
