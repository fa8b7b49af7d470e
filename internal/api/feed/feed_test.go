package feed

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"publishhub-backend/internal/repository/memory"
	"publishhub-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func setupRouter() (*gin.Engine, *service.ContentService) {
	gin.SetMode(gin.TestMode)

	repo := memory.NewContentRepository()
	contentService := service.NewContentService(repo)
	feedService := service.NewFeedService(repo)
	handler := NewFeedHandler(feedService, contentService)

	router := gin.New()
	router.GET("/feed", handler.GetFeed)
	router.GET("/search", handler.SearchPosts)
	router.GET("/tags", handler.GetTagCloud)
	return router, contentService
}

// TestGetFeedValidation 测试分页参数校验
func TestGetFeedValidation(t *testing.T) {
	router, _ := setupRouter()

	cases := []struct {
		url    string
		status int
	}{
		{"/feed", http.StatusOK},
		{"/feed?page=0", http.StatusBadRequest},
		{"/feed?page=abc", http.StatusBadRequest},
		{"/feed?pageSize=0", http.StatusBadRequest},
		{"/feed?pageSize=51", http.StatusBadRequest},
		{"/feed?page=2&pageSize=50", http.StatusOK},
	}

	for _, tc := range cases {
		req, _ := http.NewRequest("GET", tc.url, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, tc.status, w.Code, tc.url)
	}
}

// TestSearchShortQuery 查询词不足两个字符时返回空结果
func TestSearchShortQuery(t *testing.T) {
	router, _ := setupRouter()

	req, _ := http.NewRequest("GET", "/search?q=a", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	data := response["data"].(map[string]interface{})
	assert.Empty(t, data["posts"])
}
