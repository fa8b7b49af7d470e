package feed

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"publishhub-backend/internal/errors"
	"publishhub-backend/internal/model"
	"publishhub-backend/internal/service"
	"publishhub-backend/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// FeedHandler 处理信息流、搜索和标签相关的HTTP请求
type FeedHandler struct {
	feedService    *service.FeedService
	contentService *service.ContentService
}

// NewFeedHandler 创建一个新的 FeedHandler 实例
func NewFeedHandler(feedService *service.FeedService, contentService *service.ContentService) *FeedHandler {
	return &FeedHandler{feedService, contentService}
}

// GetFeed 分页返回已发布的文章，按发布时间倒序
func (h *FeedHandler) GetFeed(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		errors.HandleError(c, errors.New(errors.ErrValidation, "无效的页码"))
		return
	}

	pageSize, err := strconv.Atoi(c.DefaultQuery("pageSize", "10"))
	if err != nil || pageSize < 1 || pageSize > 50 {
		errors.HandleError(c, errors.New(errors.ErrValidation, "无效的分页大小"))
		return
	}

	posts, pagination, err := h.feedService.GetFeed(page, pageSize)
	if err != nil {
		util.Logger.Error("获取信息流失败", zap.Error(err))
		errors.HandleError(c, errors.Wrap(errors.ErrInternal, "获取信息流失败", err))
		return
	}

	errors.HandleSuccess(c, gin.H{
		"posts":      posts,
		"pagination": pagination,
	}, "")
}

// SearchPosts 在已发布文章中搜索，查询词不足两个字符时返回空结果
func (h *FeedHandler) SearchPosts(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))

	if utf8.RuneCountInString(query) < 2 {
		errors.HandleSuccess(c, gin.H{
			"posts": []*model.Post{},
		}, "")
		return
	}

	posts, err := h.contentService.SearchPosts(query)
	if err != nil {
		util.Logger.Error("搜索文章失败", zap.Error(err))
		errors.HandleError(c, errors.Wrap(errors.ErrInternal, "搜索文章失败", err))
		return
	}

	errors.HandleSuccess(c, gin.H{
		"posts": posts,
	}, "")
}

// GetTagCloud 返回已发布文章的标签及其出现次数，按次数降序
func (h *FeedHandler) GetTagCloud(c *gin.Context) {
	tags, err := h.feedService.GetTagCloud()
	if err != nil {
		util.Logger.Error("获取标签云失败", zap.Error(err))
		errors.HandleError(c, errors.Wrap(errors.ErrInternal, "获取标签云失败", err))
		return
	}

	errors.HandleSuccess(c, gin.H{
		"tags": tags,
	}, "")
}

// GetPostsByTags 返回包含任一给定标签的已发布文章
func (h *FeedHandler) GetPostsByTags(c *gin.Context) {
	tagsParam := c.Query("tags")
	if tagsParam == "" {
		errors.HandleError(c, errors.New(errors.ErrValidation, "缺少标签参数"))
		return
	}

	tags := strings.Split(tagsParam, ",")
	for i := range tags {
		tags[i] = strings.TrimSpace(tags[i])
	}

	posts, err := h.contentService.GetPostsByTags(tags)
	if err != nil {
		util.Logger.Error("按标签获取文章失败", zap.Error(err))
		errors.HandleError(c, errors.Wrap(errors.ErrInternal, "按标签获取文章失败", err))
		return
	}

	errors.HandleSuccess(c, gin.H{
		"posts": posts,
	}, "")
}
