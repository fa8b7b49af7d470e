package model

import "time"

// ReactionTypeClap 目前唯一支持的互动类型
const ReactionTypeClap = "clap"

// Comment 结构体表示评论模型，ParentCommentID 为空表示顶层评论
type Comment struct {
	ID              string    `json:"id"`
	PostID          string    `json:"post_id"`
	AuthorID        string    `json:"author_id"`
	AuthorName      string    `json:"author_name"`
	AuthorUsername  string    `json:"author_username"`
	Content         string    `json:"content"`
	ParentCommentID *string   `json:"parent_comment_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	Likes           int       `json:"likes"`
}

// Reaction 结构体表示点赞（clap）记录
type Reaction struct {
	ID        string    `json:"id"`
	PostID    string    `json:"post_id"`
	UserID    string    `json:"user_id"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

// Follow 结构体表示关注关系，(FollowerID, FollowingID) 为唯一键
type Follow struct {
	FollowerID  string    `json:"follower_id"`
	FollowingID string    `json:"following_id"`
	CreatedAt   time.Time `json:"created_at"`
}
