package user

import (
	"fmt"
	"publishhub-backend/config"
	"publishhub-backend/internal/errors"
	"publishhub-backend/internal/service"
	"publishhub-backend/internal/storage"
	"publishhub-backend/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ProfileHandler struct {
	userService *service.UserService
	storage     storage.Uploader
}

func NewProfileHandler(userService *service.UserService, storage storage.Uploader) *ProfileHandler {
	return &ProfileHandler{userService, storage}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID := c.GetString("user_id")
	user, err := h.userService.GetUserByID(userID)
	if err != nil {
		util.Logger.Error("获取用户资料失败", zap.Error(err))
		if appErr, ok := err.(*errors.AppError); ok {
			errors.HandleError(c, appErr)
			return
		}
		errors.HandleError(c, errors.Wrap(errors.ErrInternal, "获取用户资料失败", err))
		return
	}
	if user == nil {
		errors.HandleError(c, errors.New(errors.ErrUserNotFound, "用户不存在"))
		return
	}

	errors.HandleSuccess(c, gin.H{
		"user": user,
	}, "")
}

// GetUser 根据ID返回公开的用户信息
func (h *ProfileHandler) GetUser(c *gin.Context) {
	id := c.Param("id")
	user, err := h.userService.GetUserByID(id)
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrInternal, "获取用户失败", err))
		return
	}
	if user == nil {
		errors.HandleError(c, errors.New(errors.ErrUserNotFound, "用户不存在"))
		return
	}

	errors.HandleSuccess(c, gin.H{
		"user": user,
	}, "")
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID := c.GetString("user_id")

	currentUser, err := h.userService.GetUserByID(userID)
	if err != nil || currentUser == nil {
		util.Logger.Error("获取用户信息失败", zap.Error(err))
		errors.HandleError(c, errors.Wrap(errors.ErrUserNotFound, "获取用户信息失败", err))
		return
	}

	var updateData struct {
		Name string `json:"name"`
		Bio  string `json:"bio"`
	}

	if err := c.ShouldBindJSON(&updateData); err != nil {
		util.Logger.Warn("更新用户资料失败，无效的请求数据", zap.Error(err))
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "无效的请求数据", err))
		return
	}

	// 只更新允许用户修改的字段
	if updateData.Name != "" {
		currentUser.Name = updateData.Name
	}
	if updateData.Bio != "" {
		currentUser.Bio = updateData.Bio
	}

	if err := h.userService.UpdateUser(currentUser); err != nil {
		util.Logger.Error("更新用户资料失败", zap.Error(err))
		errors.HandleError(c, errors.Wrap(errors.ErrInternal, "更新用户资料失败", err))
		return
	}

	errors.HandleSuccess(c, gin.H{
		"user": currentUser,
	}, "资料更新成功")
}

func (h *ProfileHandler) UploadAvatar(c *gin.Context) {
	userID := c.GetString("user_id")

	file, err := c.FormFile("avatar")
	if err != nil {
		util.Logger.Error("获取上传文件失败", zap.Error(err))
		errors.HandleError(c, errors.Wrap(errors.ErrBadRequest, "无法获取上传文件", err))
		return
	}

	filename := util.GenerateUniqueFilename(file.Filename)
	path := fmt.Sprintf("avatars/%s/%s", userID, filename)

	avatarURL, err := h.storage.UploadFile(file, path)
	if err != nil {
		util.Logger.Error("上传头像失败", zap.Error(err))
		errors.HandleError(c, errors.Wrap(errors.ErrInternal, "上传头像失败", err))
		return
	}

	fullAvatarURL := avatarURL
	if config.AppConfig.StorageBackend == "local" {
		fullAvatarURL = fmt.Sprintf("%s/uploads/%s", config.AppConfig.BackendURL, avatarURL)
	}

	currentUser, err := h.userService.GetUserByID(userID)
	if err != nil || currentUser == nil {
		errors.HandleError(c, errors.Wrap(errors.ErrUserNotFound, "获取用户信息失败", err))
		return
	}
	currentUser.AvatarURL = fullAvatarURL
	if err := h.userService.UpdateUser(currentUser); err != nil {
		util.Logger.Error("更新用户头像失败", zap.Error(err))
		errors.HandleError(c, errors.Wrap(errors.ErrInternal, "更新用户头像失败", err))
		return
	}

	errors.HandleSuccess(c, gin.H{
		"avatar_url": fullAvatarURL,
	}, "头像上传成功")
}
