package interfaces

import "publishhub-backend/internal/model"

// SocialRepository 定义了评论、点赞和关注相关的存储操作接口
type SocialRepository interface {
	CreateComment(comment *model.Comment) error
	GetCommentByID(id string) (*model.Comment, error)
	GetCommentsByPost(postID string) ([]*model.Comment, error)
	GetReplies(parentCommentID string) ([]*model.Comment, error)
	UpdateComment(id, content string) (*model.Comment, error)
	DeleteComment(id string) (bool, error)

	AddReaction(postID, userID string) (*model.Reaction, error)
	RemoveReaction(postID, userID string) (bool, error)
	GetReactionCount(postID string) (int, error)
	HasUserReacted(postID, userID string) (bool, error)

	FollowUser(followerID, followingID string) (*model.Follow, error)
	UnfollowUser(followerID, followingID string) (bool, error)
	IsFollowing(followerID, followingID string) (bool, error)
	GetFollowersCount(userID string) (int, error)
	GetFollowingCount(userID string) (int, error)
}
