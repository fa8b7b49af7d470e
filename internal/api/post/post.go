package post

import (
	"fmt"
	"publishhub-backend/config"
	"publishhub-backend/internal/errors"
	"publishhub-backend/internal/model"
	"publishhub-backend/internal/service"
	"publishhub-backend/internal/storage"
	"publishhub-backend/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PostHandler 处理与文章相关的HTTP请求
type PostHandler struct {
	contentService *service.ContentService
	userService    *service.UserService
	storage        storage.Uploader
}

// NewPostHandler 创建一个新的 PostHandler 实例
func NewPostHandler(contentService *service.ContentService, userService *service.UserService, storage storage.Uploader) *PostHandler {
	return &PostHandler{contentService, userService, storage}
}

// CreatePost 创建一篇文章，默认保存为草稿
func (h *PostHandler) CreatePost(c *gin.Context) {
	var postData struct {
		Title      string   `json:"title" binding:"required,max=200"`
		Content    string   `json:"content" binding:"required"`
		Excerpt    string   `json:"excerpt" binding:"max=500"`
		Tags       []string `json:"tags"`
		Status     string   `json:"status" binding:"post_status"`
		CoverImage string   `json:"cover_image"`
	}

	if err := c.ShouldBindJSON(&postData); err != nil {
		util.Logger.Warn("创建文章失败，无效的请求数据", zap.Error(err))
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "无效的请求数据", err))
		return
	}

	userID := c.GetString("user_id")
	author, err := h.userService.GetUserByID(userID)
	if err != nil || author == nil {
		errors.HandleError(c, errors.Wrap(errors.ErrUserNotFound, "获取作者信息失败", err))
		return
	}

	post := &model.Post{
		Title:          postData.Title,
		Content:        postData.Content,
		Excerpt:        postData.Excerpt,
		Tags:           postData.Tags,
		Status:         postData.Status,
		CoverImage:     postData.CoverImage,
		AuthorID:       author.ID,
		AuthorName:     author.Name,
		AuthorUsername: author.Username,
	}

	if err := h.contentService.CreatePost(post); err != nil {
		util.Logger.Error("创建文章失败", zap.Error(err))
		errors.HandleError(c, errors.Wrap(errors.ErrInternal, "创建文章失败", err))
		return
	}

	errors.HandleSuccess(c, gin.H{
		"post": post,
	}, "文章创建成功")
}

// GetPost 根据ID获取文章
func (h *PostHandler) GetPost(c *gin.Context) {
	id := c.Param("id")

	post, err := h.contentService.GetPostByID(id)
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrInternal, "获取文章失败", err))
		return
	}
	if post == nil {
		errors.HandleError(c, errors.New(errors.ErrPostNotFound, "文章不存在"))
		return
	}

	errors.HandleSuccess(c, gin.H{
		"post": post,
	}, "")
}

// GetPostBySlug 根据 slug 获取文章
func (h *PostHandler) GetPostBySlug(c *gin.Context) {
	slug := c.Param("slug")

	post, err := h.contentService.GetPostBySlug(slug)
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrInternal, "获取文章失败", err))
		return
	}
	if post == nil {
		errors.HandleError(c, errors.New(errors.ErrPostNotFound, "文章不存在"))
		return
	}

	errors.HandleSuccess(c, gin.H{
		"post": post,
	}, "")
}

// UpdatePost 更新文章，仅作者本人可操作
func (h *PostHandler) UpdatePost(c *gin.Context) {
	id := c.Param("id")
	userID := c.GetString("user_id")

	existing, err := h.contentService.GetPostByID(id)
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrInternal, "获取文章失败", err))
		return
	}
	if existing == nil {
		errors.HandleError(c, errors.New(errors.ErrPostNotFound, "文章不存在"))
		return
	}
	if existing.AuthorID != userID {
		util.Logger.Warn("非作者尝试修改文章",
			zap.String("post_id", id),
			zap.String("user_id", userID))
		errors.HandleError(c, errors.New(errors.ErrForbidden, "只有作者可以修改文章"))
		return
	}

	var updateData struct {
		Title      *string  `json:"title"`
		Content    *string  `json:"content"`
		Excerpt    *string  `json:"excerpt"`
		Tags       []string `json:"tags"`
		Status     *string  `json:"status"`
		CoverImage *string  `json:"cover_image"`
	}

	if err := c.ShouldBindJSON(&updateData); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "无效的请求数据", err))
		return
	}

	if updateData.Status != nil && *updateData.Status != model.PostStatusDraft && *updateData.Status != model.PostStatusPublished {
		errors.HandleError(c, errors.New(errors.ErrValidation, "无效的文章状态"))
		return
	}

	updated, err := h.contentService.UpdatePost(id, &model.PostUpdate{
		Title:      updateData.Title,
		Content:    updateData.Content,
		Excerpt:    updateData.Excerpt,
		Tags:       updateData.Tags,
		Status:     updateData.Status,
		CoverImage: updateData.CoverImage,
	})
	if err != nil {
		util.Logger.Error("更新文章失败", zap.Error(err))
		errors.HandleError(c, errors.Wrap(errors.ErrInternal, "更新文章失败", err))
		return
	}

	errors.HandleSuccess(c, gin.H{
		"post": updated,
	}, "文章更新成功")
}

// DeletePost 删除文章，仅作者本人可操作
func (h *PostHandler) DeletePost(c *gin.Context) {
	id := c.Param("id")
	userID := c.GetString("user_id")

	existing, err := h.contentService.GetPostByID(id)
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrInternal, "获取文章失败", err))
		return
	}
	if existing == nil {
		errors.HandleError(c, errors.New(errors.ErrPostNotFound, "文章不存在"))
		return
	}
	if existing.AuthorID != userID {
		errors.HandleError(c, errors.New(errors.ErrForbidden, "只有作者可以删除文章"))
		return
	}

	if _, err := h.contentService.DeletePost(id); err != nil {
		util.Logger.Error("删除文章失败", zap.Error(err))
		errors.HandleError(c, errors.Wrap(errors.ErrInternal, "删除文章失败", err))
		return
	}

	errors.HandleSuccess(c, nil, "文章已删除")
}

// GetPostsByAuthor 获取某位作者的全部文章
func (h *PostHandler) GetPostsByAuthor(c *gin.Context) {
	authorID := c.Param("id")

	posts, err := h.contentService.GetPostsByAuthor(authorID)
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrInternal, "获取作者文章失败", err))
		return
	}

	errors.HandleSuccess(c, gin.H{
		"posts": posts,
	}, "")
}

// GetMyPosts 获取当前登录用户的全部文章，包含草稿
func (h *PostHandler) GetMyPosts(c *gin.Context) {
	userID := c.GetString("user_id")

	posts, err := h.contentService.GetPostsByAuthor(userID)
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrInternal, "获取文章失败", err))
		return
	}

	errors.HandleSuccess(c, gin.H{
		"posts": posts,
	}, "")
}

// UploadCoverImage 上传文章封面图
func (h *PostHandler) UploadCoverImage(c *gin.Context) {
	userID := c.GetString("user_id")

	file, err := c.FormFile("cover")
	if err != nil {
		util.Logger.Error("获取上传文件失败", zap.Error(err))
		errors.HandleError(c, errors.Wrap(errors.ErrBadRequest, "无法获取上传文件", err))
		return
	}

	filename := util.GenerateUniqueFilename(file.Filename)
	path := fmt.Sprintf("covers/%s/%s", userID, filename)

	coverURL, err := h.storage.UploadFile(file, path)
	if err != nil {
		util.Logger.Error("上传封面图失败", zap.Error(err))
		errors.HandleError(c, errors.Wrap(errors.ErrInternal, "上传封面图失败", err))
		return
	}

	fullCoverURL := coverURL
	if config.AppConfig.StorageBackend == "local" {
		fullCoverURL = fmt.Sprintf("%s/uploads/%s", config.AppConfig.BackendURL, coverURL)
	}

	errors.HandleSuccess(c, gin.H{
		"cover_image": fullCoverURL,
	}, "封面图上传成功")
}
