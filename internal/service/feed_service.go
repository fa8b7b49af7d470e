package service

import (
	"sort"

	"publishhub-backend/internal/model"
	"publishhub-backend/internal/repository/interfaces"
)

// FeedService 负责聚合视图：分页信息流和标签云。
// 它只读取内容存储的快照，不做任何写入。
type FeedService struct {
	repo interfaces.ContentRepository
}

func NewFeedService(repo interfaces.ContentRepository) *FeedService {
	return &FeedService{repo}
}

// GetFeed 返回一页已发布文章和分页信息。
// page 和 pageSize 的合法性由调用方（HTTP 边界）保证。
func (s *FeedService) GetFeed(page, pageSize int) ([]*model.Post, *model.Pagination, error) {
	posts, err := s.repo.GetPaginatedPosts(page, pageSize)
	if err != nil {
		return nil, nil, err
	}
	total, err := s.repo.CountPublishedPosts()
	if err != nil {
		return nil, nil, err
	}

	start := (page - 1) * pageSize
	pagination := &model.Pagination{
		Page:     page,
		PageSize: pageSize,
		Total:    total,
		Pages:    (total + pageSize - 1) / pageSize,
		HasMore:  start+pageSize < total,
	}
	return posts, pagination, nil
}

// GetTagCloud 统计所有已发布文章的标签出现次数，
// 按次数降序排列，次数相同时保持首次出现的顺序（稳定排序）
func (s *FeedService) GetTagCloud() ([]*model.TagCount, error) {
	posts, err := s.repo.GetAllPublishedPosts()
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	order := make([]string, 0)
	for _, post := range posts {
		for _, tag := range post.Tags {
			if _, seen := counts[tag]; !seen {
				order = append(order, tag)
			}
			counts[tag]++
		}
	}

	tags := make([]*model.TagCount, 0, len(order))
	for _, name := range order {
		tags = append(tags, &model.TagCount{Name: name, Count: counts[name]})
	}
	sort.SliceStable(tags, func(i, j int) bool {
		return tags[i].Count > tags[j].Count
	})
	return tags, nil
}
