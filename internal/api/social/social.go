package social

import (
	"strings"

	"publishhub-backend/internal/errors"
	"publishhub-backend/internal/model"
	"publishhub-backend/internal/service"
	"publishhub-backend/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxCommentLength = 5000

// SocialHandler 处理评论、点赞和关注相关的HTTP请求
type SocialHandler struct {
	socialService  *service.SocialService
	contentService *service.ContentService
	userService    *service.UserService
}

// NewSocialHandler 创建一个新的 SocialHandler 实例
func NewSocialHandler(socialService *service.SocialService, contentService *service.ContentService, userService *service.UserService) *SocialHandler {
	return &SocialHandler{socialService, contentService, userService}
}

// CreateComment 创建评论，parent_comment_id 非空时表示回复
func (h *SocialHandler) CreateComment(c *gin.Context) {
	var commentData struct {
		PostID          string  `json:"post_id" binding:"required"`
		Content         string  `json:"content" binding:"required"`
		ParentCommentID *string `json:"parent_comment_id"`
	}

	if err := c.ShouldBindJSON(&commentData); err != nil {
		util.Logger.Warn("创建评论失败，无效的请求数据", zap.Error(err))
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "无效的请求数据", err))
		return
	}

	content := strings.TrimSpace(commentData.Content)
	if content == "" {
		errors.HandleError(c, errors.New(errors.ErrValidation, "评论内容不能为空"))
		return
	}
	if len(content) > maxCommentLength {
		errors.HandleError(c, errors.New(errors.ErrValidation, "评论内容超过长度上限"))
		return
	}

	post, err := h.contentService.GetPostByID(commentData.PostID)
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrInternal, "获取文章失败", err))
		return
	}
	if post == nil {
		errors.HandleError(c, errors.New(errors.ErrPostNotFound, "文章不存在"))
		return
	}

	if commentData.ParentCommentID != nil {
		parent, err := h.socialService.GetCommentByID(*commentData.ParentCommentID)
		if err != nil {
			errors.HandleError(c, errors.Wrap(errors.ErrInternal, "获取父评论失败", err))
			return
		}
		if parent == nil {
			errors.HandleError(c, errors.New(errors.ErrCommentNotFound, "父评论不存在"))
			return
		}
		if parent.PostID != commentData.PostID {
			errors.HandleError(c, errors.New(errors.ErrValidation, "父评论不属于该文章"))
			return
		}
	}

	userID := c.GetString("user_id")
	author, err := h.userService.GetUserByID(userID)
	if err != nil || author == nil {
		errors.HandleError(c, errors.Wrap(errors.ErrUserNotFound, "获取用户信息失败", err))
		return
	}

	comment := &model.Comment{
		PostID:          commentData.PostID,
		AuthorID:        author.ID,
		AuthorName:      author.Name,
		AuthorUsername:  author.Username,
		Content:         content,
		ParentCommentID: commentData.ParentCommentID,
	}

	if err := h.socialService.CreateComment(comment); err != nil {
		util.Logger.Error("创建评论失败", zap.Error(err))
		errors.HandleError(c, errors.Wrap(errors.ErrInternal, "创建评论失败", err))
		return
	}

	errors.HandleSuccess(c, gin.H{
		"comment": comment,
	}, "评论创建成功")
}

// GetComments 返回文章的顶层评论，按创建时间倒序
func (h *SocialHandler) GetComments(c *gin.Context) {
	postID := c.Query("postId")
	if postID == "" {
		errors.HandleError(c, errors.New(errors.ErrValidation, "缺少文章ID"))
		return
	}

	comments, err := h.socialService.GetCommentsByPost(postID)
	if err != nil {
		util.Logger.Error("获取评论失败", zap.Error(err))
		errors.HandleError(c, errors.Wrap(errors.ErrInternal, "获取评论失败", err))
		return
	}

	errors.HandleSuccess(c, gin.H{
		"comments": comments,
	}, "")
}

// GetReplies 返回某条评论的回复，按创建时间正序
func (h *SocialHandler) GetReplies(c *gin.Context) {
	commentID := c.Param("id")

	replies, err := h.socialService.GetReplies(commentID)
	if err != nil {
		util.Logger.Error("获取回复失败", zap.Error(err))
		errors.HandleError(c, errors.Wrap(errors.ErrInternal, "获取回复失败", err))
		return
	}

	errors.HandleSuccess(c, gin.H{
		"replies": replies,
	}, "")
}

// DeleteComment 删除评论，仅作者本人可操作，不级联删除回复
func (h *SocialHandler) DeleteComment(c *gin.Context) {
	id := c.Param("id")
	userID := c.GetString("user_id")

	comment, err := h.socialService.GetCommentByID(id)
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrInternal, "获取评论失败", err))
		return
	}
	if comment == nil {
		errors.HandleError(c, errors.New(errors.ErrCommentNotFound, "评论不存在"))
		return
	}
	if comment.AuthorID != userID {
		util.Logger.Warn("非作者尝试删除评论",
			zap.String("comment_id", id),
			zap.String("user_id", userID))
		errors.HandleError(c, errors.New(errors.ErrForbidden, "只有作者可以删除评论"))
		return
	}

	if _, err := h.socialService.DeleteComment(id); err != nil {
		util.Logger.Error("删除评论失败", zap.Error(err))
		errors.HandleError(c, errors.Wrap(errors.ErrInternal, "删除评论失败", err))
		return
	}

	errors.HandleSuccess(c, nil, "评论已删除")
}

// ToggleReaction 点赞或取消点赞，返回最新的点赞数和当前状态
func (h *SocialHandler) ToggleReaction(c *gin.Context) {
	postID := c.Param("id")
	userID := c.GetString("user_id")

	post, err := h.contentService.GetPostByID(postID)
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrInternal, "获取文章失败", err))
		return
	}
	if post == nil {
		errors.HandleError(c, errors.New(errors.ErrPostNotFound, "文章不存在"))
		return
	}

	count, reacted, err := h.socialService.ToggleReaction(postID, userID)
	if err != nil {
		util.Logger.Error("切换点赞失败", zap.Error(err))
		errors.HandleError(c, errors.Wrap(errors.ErrInternal, "切换点赞失败", err))
		return
	}

	errors.HandleSuccess(c, gin.H{
		"count":   count,
		"reacted": reacted,
	}, "")
}

// GetReactionStatus 返回文章点赞数；携带有效令牌时同时返回当前用户是否已点赞
func (h *SocialHandler) GetReactionStatus(c *gin.Context) {
	postID := c.Param("id")

	count, err := h.socialService.GetReactionCount(postID)
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrInternal, "获取点赞数失败", err))
		return
	}

	reacted := false
	authHeader := c.GetHeader("Authorization")
	if token := strings.TrimPrefix(authHeader, "Bearer "); token != "" && token != authHeader && !h.userService.IsTokenBlacklisted(token) {
		if userID, err := util.ValidateToken(token); err == nil {
			reacted, _ = h.socialService.HasUserReacted(postID, userID)
		}
	}

	errors.HandleSuccess(c, gin.H{
		"count":   count,
		"reacted": reacted,
	}, "")
}

// ToggleFollow 关注或取消关注某位用户
func (h *SocialHandler) ToggleFollow(c *gin.Context) {
	followingID := c.Param("id")
	followerID := c.GetString("user_id")

	target, err := h.userService.GetUserByID(followingID)
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrInternal, "获取用户失败", err))
		return
	}
	if target == nil {
		errors.HandleError(c, errors.New(errors.ErrUserNotFound, "用户不存在"))
		return
	}

	followers, isFollowing, err := h.socialService.ToggleFollow(followerID, followingID)
	if err != nil {
		util.Logger.Error("切换关注失败", zap.Error(err))
		errors.HandleError(c, errors.Wrap(errors.ErrInternal, "切换关注失败", err))
		return
	}

	errors.HandleSuccess(c, gin.H{
		"followers":    followers,
		"is_following": isFollowing,
	}, "")
}

// GetFollowStatus 返回用户的关注统计；携带有效令牌时同时返回当前用户是否已关注
func (h *SocialHandler) GetFollowStatus(c *gin.Context) {
	userID := c.Param("id")

	followersCount, err := h.socialService.GetFollowersCount(userID)
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrInternal, "获取粉丝数失败", err))
		return
	}
	followingCount, err := h.socialService.GetFollowingCount(userID)
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrInternal, "获取关注数失败", err))
		return
	}

	isFollowing := false
	authHeader := c.GetHeader("Authorization")
	if token := strings.TrimPrefix(authHeader, "Bearer "); token != "" && token != authHeader && !h.userService.IsTokenBlacklisted(token) {
		if viewerID, err := util.ValidateToken(token); err == nil {
			isFollowing, _ = h.socialService.IsFollowing(viewerID, userID)
		}
	}

	errors.HandleSuccess(c, gin.H{
		"followers":    followersCount,
		"following":    followingCount,
		"is_following": isFollowing,
	}, "")
}
