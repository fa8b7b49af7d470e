package mysql

import (
	"database/sql"
	"time"

	"publishhub-backend/internal/model"
	"publishhub-backend/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type socialRepository struct {
	db *sql.DB
}

func NewSocialRepository(db *sql.DB) *socialRepository {
	return &socialRepository{db: db}
}

const commentColumns = `id, post_id, author_id, author_name, author_username,
       content, parent_comment_id, likes, created_at, updated_at`

func (r *socialRepository) CreateComment(comment *model.Comment) error {
	now := time.Now().UTC()
	comment.ID = uuid.NewString()
	comment.CreatedAt = now
	comment.UpdatedAt = now
	comment.Likes = 0

	query := `INSERT INTO comments
		(id, post_id, author_id, author_name, author_username,
		 content, parent_comment_id, likes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.Exec(query,
		comment.ID, comment.PostID,
		comment.AuthorID, comment.AuthorName, comment.AuthorUsername,
		comment.Content, comment.ParentCommentID, comment.Likes,
		comment.CreatedAt, comment.UpdatedAt)
	if err != nil {
		util.Logger.Error("创建评论失败", zap.Error(err), zap.String("post_id", comment.PostID))
		return err
	}
	return nil
}

func (r *socialRepository) GetCommentByID(id string) (*model.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE id = ?`
	row := r.db.QueryRow(query, id)

	comment, err := scanComment(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return comment, err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanComment(row rowScanner) (*model.Comment, error) {
	var comment model.Comment
	var parentID sql.NullString
	err := row.Scan(
		&comment.ID, &comment.PostID,
		&comment.AuthorID, &comment.AuthorName, &comment.AuthorUsername,
		&comment.Content, &parentID, &comment.Likes,
		&comment.CreatedAt, &comment.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if parentID.Valid {
		comment.ParentCommentID = &parentID.String
	}
	return &comment, nil
}

func (r *socialRepository) GetCommentsByPost(postID string) ([]*model.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments
		WHERE post_id = ? AND parent_comment_id IS NULL
		ORDER BY created_at DESC`
	return r.queryComments(query, postID)
}

func (r *socialRepository) GetReplies(parentCommentID string) ([]*model.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments
		WHERE parent_comment_id = ?
		ORDER BY created_at ASC`
	return r.queryComments(query, parentCommentID)
}

func (r *socialRepository) queryComments(query string, args ...interface{}) ([]*model.Comment, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := make([]*model.Comment, 0)
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}
	return comments, rows.Err()
}

func (r *socialRepository) UpdateComment(id, content string) (*model.Comment, error) {
	query := `UPDATE comments SET content = ?, updated_at = ? WHERE id = ?`
	if _, err := r.db.Exec(query, content, time.Now().UTC(), id); err != nil {
		return nil, err
	}
	return r.GetCommentByID(id)
}

// DeleteComment 不级联删除回复，与内存实现保持一致
func (r *socialRepository) DeleteComment(id string) (bool, error) {
	result, err := r.db.Exec(`DELETE FROM comments WHERE id = ?`, id)
	if err != nil {
		util.Logger.Error("删除评论失败", zap.Error(err), zap.String("comment_id", id))
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// AddReaction 依赖 (post_id, user_id) 唯一索引，重复点赞返回已有记录
func (r *socialRepository) AddReaction(postID, userID string) (*model.Reaction, error) {
	if existing, err := r.findReaction(postID, userID); err != nil {
		return nil, err
	} else if existing != nil {
		return existing, nil
	}

	reaction := &model.Reaction{
		ID:        uuid.NewString(),
		PostID:    postID,
		UserID:    userID,
		Type:      model.ReactionTypeClap,
		CreatedAt: time.Now().UTC(),
	}
	query := `INSERT INTO reactions (id, post_id, user_id, type, created_at)
		VALUES (?, ?, ?, ?, ?)`
	if _, err := r.db.Exec(query,
		reaction.ID, reaction.PostID, reaction.UserID, reaction.Type, reaction.CreatedAt); err != nil {
		util.Logger.Error("创建点赞失败", zap.Error(err), zap.String("post_id", postID))
		return nil, err
	}
	return reaction, nil
}

func (r *socialRepository) findReaction(postID, userID string) (*model.Reaction, error) {
	var reaction model.Reaction
	query := `SELECT id, post_id, user_id, type, created_at FROM reactions
		WHERE post_id = ? AND user_id = ?`
	err := r.db.QueryRow(query, postID, userID).Scan(
		&reaction.ID, &reaction.PostID, &reaction.UserID, &reaction.Type, &reaction.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &reaction, nil
}

func (r *socialRepository) RemoveReaction(postID, userID string) (bool, error) {
	result, err := r.db.Exec(`DELETE FROM reactions WHERE post_id = ? AND user_id = ?`, postID, userID)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *socialRepository) GetReactionCount(postID string) (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM reactions WHERE post_id = ?`, postID).Scan(&count)
	return count, err
}

func (r *socialRepository) HasUserReacted(postID, userID string) (bool, error) {
	reaction, err := r.findReaction(postID, userID)
	return reaction != nil, err
}

func (r *socialRepository) FollowUser(followerID, followingID string) (*model.Follow, error) {
	if followerID == followingID {
		return nil, nil
	}

	if following, err := r.IsFollowing(followerID, followingID); err != nil {
		return nil, err
	} else if following {
		return nil, nil
	}

	follow := &model.Follow{
		FollowerID:  followerID,
		FollowingID: followingID,
		CreatedAt:   time.Now().UTC(),
	}
	query := `INSERT INTO follows (follower_id, following_id, created_at) VALUES (?, ?, ?)`
	if _, err := r.db.Exec(query, follow.FollowerID, follow.FollowingID, follow.CreatedAt); err != nil {
		util.Logger.Error("创建关注关系失败", zap.Error(err))
		return nil, err
	}
	return follow, nil
}

func (r *socialRepository) UnfollowUser(followerID, followingID string) (bool, error) {
	result, err := r.db.Exec(`DELETE FROM follows WHERE follower_id = ? AND following_id = ?`,
		followerID, followingID)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *socialRepository) IsFollowing(followerID, followingID string) (bool, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM follows WHERE follower_id = ? AND following_id = ?`,
		followerID, followingID).Scan(&count)
	return count > 0, err
}

func (r *socialRepository) GetFollowersCount(userID string) (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM follows WHERE following_id = ?`, userID).Scan(&count)
	return count, err
}

func (r *socialRepository) GetFollowingCount(userID string) (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM follows WHERE follower_id = ?`, userID).Scan(&count)
	return count, err
}
