package service

import (
	"publishhub-backend/internal/model"
	"publishhub-backend/internal/repository/interfaces"
)

type ContentService struct {
	repo interfaces.ContentRepository
}

func NewContentService(repo interfaces.ContentRepository) *ContentService {
	return &ContentService{repo}
}

func (s *ContentService) CreatePost(post *model.Post) error {
	return s.repo.CreatePost(post)
}

func (s *ContentService) GetPostByID(id string) (*model.Post, error) {
	return s.repo.GetPostByID(id)
}

func (s *ContentService) GetPostBySlug(slug string) (*model.Post, error) {
	return s.repo.GetPostBySlug(slug)
}

func (s *ContentService) UpdatePost(id string, updates *model.PostUpdate) (*model.Post, error) {
	return s.repo.UpdatePost(id, updates)
}

func (s *ContentService) DeletePost(id string) (bool, error) {
	return s.repo.DeletePost(id)
}

func (s *ContentService) GetPostsByAuthor(authorID string) ([]*model.Post, error) {
	return s.repo.GetPostsByAuthor(authorID)
}

func (s *ContentService) GetAllPublishedPosts() ([]*model.Post, error) {
	return s.repo.GetAllPublishedPosts()
}

func (s *ContentService) SearchPosts(query string) ([]*model.Post, error) {
	return s.repo.SearchPosts(query)
}

func (s *ContentService) GetPostsByTags(tags []string) ([]*model.Post, error) {
	return s.repo.GetPostsByTags(tags)
}
