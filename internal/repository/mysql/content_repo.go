package mysql

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"publishhub-backend/internal/model"
	"publishhub-backend/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type contentRepository struct {
	db *sql.DB
}

func NewContentRepository(db *sql.DB) *contentRepository {
	return &contentRepository{db: db}
}

const postColumns = `id, title, content, excerpt, author_id, author_name, author_username,
       slug, status, cover_image, created_at, updated_at, published_at`

func (r *contentRepository) CreatePost(post *model.Post) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	post.ID = uuid.NewString()
	post.CreatedAt = now
	post.UpdatedAt = now
	if post.Status == "" {
		post.Status = model.PostStatusDraft
	}
	if post.Status == model.PostStatusPublished {
		publishedAt := now
		post.PublishedAt = &publishedAt
	}

	slug, err := r.uniqueSlug(tx, post.Title)
	if err != nil {
		return err
	}
	post.Slug = slug

	query := `INSERT INTO posts
		(id, title, content, excerpt, author_id, author_name, author_username,
		 slug, status, cover_image, created_at, updated_at, published_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = tx.Exec(query,
		post.ID, post.Title, post.Content, post.Excerpt,
		post.AuthorID, post.AuthorName, post.AuthorUsername,
		post.Slug, post.Status, post.CoverImage,
		post.CreatedAt, post.UpdatedAt, post.PublishedAt)
	if err != nil {
		util.Logger.Error("创建文章失败", zap.Error(err))
		return err
	}

	if err := r.insertTags(tx, post.ID, post.Tags); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		util.Logger.Error("提交事务失败", zap.Error(err))
		return err
	}

	util.Logger.Info("文章创建成功", zap.String("post_id", post.ID), zap.String("slug", post.Slug))
	return nil
}

// uniqueSlug 与内存实现保持同样的冲突语义：slug_counters 表为每个基串
// 维护持久计数器，后缀单调递增，文章删除后也不复用
func (r *contentRepository) uniqueSlug(tx *sql.Tx, title string) (string, error) {
	base := util.Slugify(title)
	_, err := tx.Exec(`INSERT INTO slug_counters (base, count) VALUES (?, 1)
		ON DUPLICATE KEY UPDATE count = count + 1`, base)
	if err != nil {
		return "", err
	}

	var count int
	if err := tx.QueryRow(`SELECT count FROM slug_counters WHERE base = ?`, base).Scan(&count); err != nil {
		return "", err
	}
	if count > 1 {
		return fmt.Sprintf("%s-%d", base, count-1), nil
	}
	return base, nil
}

func (r *contentRepository) insertTags(tx *sql.Tx, postID string, tags []string) error {
	for _, tag := range tags {
		if _, err := tx.Exec(`INSERT INTO post_tags (post_id, tag) VALUES (?, ?)`, postID, tag); err != nil {
			util.Logger.Error("插入文章标签失败", zap.Error(err), zap.String("tag", tag))
			return err
		}
	}
	return nil
}

func (r *contentRepository) GetPostByID(id string) (*model.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = ?`
	return r.scanOne(r.db.QueryRow(query, id))
}

func (r *contentRepository) GetPostBySlug(slug string) (*model.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE slug = ?`
	return r.scanOne(r.db.QueryRow(query, slug))
}

func (r *contentRepository) scanOne(row *sql.Row) (*model.Post, error) {
	var post model.Post
	var coverImage sql.NullString
	var publishedAt sql.NullTime
	err := row.Scan(
		&post.ID, &post.Title, &post.Content, &post.Excerpt,
		&post.AuthorID, &post.AuthorName, &post.AuthorUsername,
		&post.Slug, &post.Status, &coverImage,
		&post.CreatedAt, &post.UpdatedAt, &publishedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	post.CoverImage = coverImage.String
	if publishedAt.Valid {
		post.PublishedAt = &publishedAt.Time
	}
	if err := r.loadTags(&post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *contentRepository) loadTags(post *model.Post) error {
	rows, err := r.db.Query(`SELECT tag FROM post_tags WHERE post_id = ?`, post.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	var tags []string
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return err
		}
		tags = append(tags, tag)
	}
	post.Tags = tags
	return rows.Err()
}

func (r *contentRepository) UpdatePost(id string, updates *model.PostUpdate) (*model.Post, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	setClauses := []string{"updated_at = ?"}
	args := []interface{}{time.Now().UTC()}

	if updates.Title != nil {
		setClauses = append(setClauses, "title = ?")
		args = append(args, *updates.Title)
	}
	if updates.Content != nil {
		setClauses = append(setClauses, "content = ?")
		args = append(args, *updates.Content)
	}
	if updates.Excerpt != nil {
		setClauses = append(setClauses, "excerpt = ?")
		args = append(args, *updates.Excerpt)
	}
	if updates.CoverImage != nil {
		setClauses = append(setClauses, "cover_image = ?")
		args = append(args, *updates.CoverImage)
	}
	if updates.Status != nil {
		setClauses = append(setClauses, "status = ?")
		args = append(args, *updates.Status)
		if *updates.Status == model.PostStatusPublished {
			// 只在首次发布时设置 published_at
			setClauses = append(setClauses, "published_at = COALESCE(published_at, ?)")
			args = append(args, time.Now().UTC())
		}
	}

	query := "UPDATE posts SET " + strings.Join(setClauses, ", ") + " WHERE id = ?"
	args = append(args, id)

	result, err := tx.Exec(query, args...)
	if err != nil {
		util.Logger.Error("更新文章失败", zap.Error(err), zap.String("post_id", id))
		return nil, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		// 区分"不存在"和"未变化"
		var exists int
		if err := tx.QueryRow(`SELECT COUNT(*) FROM posts WHERE id = ?`, id).Scan(&exists); err != nil {
			return nil, err
		}
		if exists == 0 {
			return nil, nil
		}
	}

	if updates.Tags != nil {
		if _, err := tx.Exec(`DELETE FROM post_tags WHERE post_id = ?`, id); err != nil {
			return nil, err
		}
		if err := r.insertTags(tx, id, updates.Tags); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return r.GetPostByID(id)
}

func (r *contentRepository) DeletePost(id string) (bool, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM post_tags WHERE post_id = ?`, id); err != nil {
		return false, err
	}
	result, err := tx.Exec(`DELETE FROM posts WHERE id = ?`, id)
	if err != nil {
		util.Logger.Error("删除文章失败", zap.Error(err), zap.String("post_id", id))
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	if err := tx.Commit(); err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *contentRepository) GetPostsByAuthor(authorID string) ([]*model.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts
		WHERE author_id = ? ORDER BY created_at DESC`
	return r.queryPosts(query, authorID)
}

func (r *contentRepository) GetAllPublishedPosts() ([]*model.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts
		WHERE status = 'published'
		ORDER BY COALESCE(published_at, created_at) DESC`
	return r.queryPosts(query)
}

func (r *contentRepository) SearchPosts(query string) ([]*model.Post, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	sqlQuery := `SELECT ` + postColumns + ` FROM posts
		WHERE status = 'published'
		  AND (LOWER(title) LIKE ? OR LOWER(excerpt) LIKE ? OR LOWER(content) LIKE ?)`
	return r.queryPosts(sqlQuery, pattern, pattern, pattern)
}

func (r *contentRepository) GetPostsByTags(tags []string) ([]*model.Post, error) {
	if len(tags) == 0 {
		return []*model.Post{}, nil
	}

	placeholders := strings.Repeat("?, ", len(tags)-1) + "?"
	query := `SELECT DISTINCT ` + prefixColumns("p") + ` FROM posts p
		JOIN post_tags t ON t.post_id = p.id
		WHERE p.status = 'published' AND t.tag IN (` + placeholders + `)
		ORDER BY p.created_at`
	args := make([]interface{}, len(tags))
	for i, tag := range tags {
		args[i] = tag
	}
	return r.queryPosts(query, args...)
}

func prefixColumns(alias string) string {
	cols := strings.Split(postColumns, ",")
	for i, c := range cols {
		cols[i] = alias + "." + strings.TrimSpace(c)
	}
	return strings.Join(cols, ", ")
}

func (r *contentRepository) GetPaginatedPosts(page, pageSize int) ([]*model.Post, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + postColumns + ` FROM posts
		WHERE status = 'published'
		ORDER BY COALESCE(published_at, created_at) DESC
		LIMIT ? OFFSET ?`
	return r.queryPosts(query, pageSize, offset)
}

func (r *contentRepository) CountPublishedPosts() (int, error) {
	var total int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM posts WHERE status = 'published'`).Scan(&total)
	return total, err
}

func (r *contentRepository) queryPosts(query string, args ...interface{}) ([]*model.Post, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := make([]*model.Post, 0)
	for rows.Next() {
		var post model.Post
		var coverImage sql.NullString
		var publishedAt sql.NullTime
		err := rows.Scan(
			&post.ID, &post.Title, &post.Content, &post.Excerpt,
			&post.AuthorID, &post.AuthorName, &post.AuthorUsername,
			&post.Slug, &post.Status, &coverImage,
			&post.CreatedAt, &post.UpdatedAt, &publishedAt)
		if err != nil {
			return nil, err
		}
		post.CoverImage = coverImage.String
		if publishedAt.Valid {
			post.PublishedAt = &publishedAt.Time
		}
		posts = append(posts, &post)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, post := range posts {
		if err := r.loadTags(post); err != nil {
			return nil, err
		}
	}
	return posts, nil
}
