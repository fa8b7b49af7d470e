package post

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"publishhub-backend/internal/model"
	"publishhub-backend/internal/repository/memory"
	"publishhub-backend/internal/service"
	"publishhub-backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	util.InitLogger("error")
}

// setupPostRouter 返回路由和一篇 author-1 的文章，当前登录用户由 userID 决定
func setupPostRouter(t *testing.T, userID string) (*gin.Engine, *model.Post) {
	gin.SetMode(gin.TestMode)

	userRepo := memory.NewUserRepository()
	contentRepo := memory.NewContentRepository()

	userService := service.NewUserService(userRepo)
	contentService := service.NewContentService(contentRepo)
	handler := NewPostHandler(contentService, userService, nil)

	require.NoError(t, userRepo.Create(&model.User{
		ID: "author-1", Username: "author", Name: "Author", Email: "author@example.com",
	}))
	require.NoError(t, userRepo.Create(&model.User{
		ID: "intruder-1", Username: "intruder", Name: "Intruder", Email: "intruder@example.com",
	}))

	existing := &model.Post{
		Title:          "My Post",
		Content:        "正文",
		AuthorID:       "author-1",
		AuthorName:     "Author",
		AuthorUsername: "author",
		Status:         model.PostStatusPublished,
	}
	require.NoError(t, contentService.CreatePost(existing))

	authStub := func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	}

	router := gin.New()
	router.PUT("/posts/:id", authStub, handler.UpdatePost)
	router.DELETE("/posts/:id", authStub, handler.DeletePost)
	return router, existing
}

// TestUpdatePostForbidden 只有作者可以修改文章
func TestUpdatePostForbidden(t *testing.T) {
	router, existing := setupPostRouter(t, "intruder-1")

	body := []byte(`{"title": "Hijacked"}`)
	req, _ := http.NewRequest("PUT", "/posts/"+existing.ID, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

// TestDeletePostForbidden 只有作者可以删除文章
func TestDeletePostForbidden(t *testing.T) {
	router, existing := setupPostRouter(t, "intruder-1")

	req, _ := http.NewRequest("DELETE", "/posts/"+existing.ID, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

// TestUpdatePostByAuthor 作者本人可以正常修改
func TestUpdatePostByAuthor(t *testing.T) {
	router, existing := setupPostRouter(t, "author-1")

	body := []byte(`{"title": "Updated Title"}`)
	req, _ := http.NewRequest("PUT", "/posts/"+existing.ID, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
