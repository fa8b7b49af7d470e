package service

import (
	"publishhub-backend/internal/model"
	"publishhub-backend/internal/repository/interfaces"
)

type SocialService struct {
	repo interfaces.SocialRepository
}

func NewSocialService(repo interfaces.SocialRepository) *SocialService {
	return &SocialService{repo}
}

func (s *SocialService) CreateComment(comment *model.Comment) error {
	return s.repo.CreateComment(comment)
}

func (s *SocialService) GetCommentByID(id string) (*model.Comment, error) {
	return s.repo.GetCommentByID(id)
}

func (s *SocialService) GetCommentsByPost(postID string) ([]*model.Comment, error) {
	return s.repo.GetCommentsByPost(postID)
}

func (s *SocialService) GetReplies(parentCommentID string) ([]*model.Comment, error) {
	return s.repo.GetReplies(parentCommentID)
}

func (s *SocialService) DeleteComment(id string) (bool, error) {
	return s.repo.DeleteComment(id)
}

// ToggleReaction 实现 clap 的开关语义，返回最新计数和当前状态
func (s *SocialService) ToggleReaction(postID, userID string) (int, bool, error) {
	hasReacted, err := s.repo.HasUserReacted(postID, userID)
	if err != nil {
		return 0, false, err
	}

	if hasReacted {
		if _, err := s.repo.RemoveReaction(postID, userID); err != nil {
			return 0, false, err
		}
	} else {
		if _, err := s.repo.AddReaction(postID, userID); err != nil {
			return 0, false, err
		}
	}

	count, err := s.repo.GetReactionCount(postID)
	if err != nil {
		return 0, false, err
	}
	return count, !hasReacted, nil
}

func (s *SocialService) GetReactionCount(postID string) (int, error) {
	return s.repo.GetReactionCount(postID)
}

func (s *SocialService) HasUserReacted(postID, userID string) (bool, error) {
	return s.repo.HasUserReacted(postID, userID)
}

// ToggleFollow 实现关注的开关语义，返回最新关注者数量和当前状态
func (s *SocialService) ToggleFollow(followerID, followingID string) (int, bool, error) {
	isFollowing, err := s.repo.IsFollowing(followerID, followingID)
	if err != nil {
		return 0, false, err
	}

	if isFollowing {
		if _, err := s.repo.UnfollowUser(followerID, followingID); err != nil {
			return 0, false, err
		}
	} else {
		if _, err := s.repo.FollowUser(followerID, followingID); err != nil {
			return 0, false, err
		}
	}

	count, err := s.repo.GetFollowersCount(followingID)
	if err != nil {
		return 0, false, err
	}

	nowFollowing, err := s.repo.IsFollowing(followerID, followingID)
	if err != nil {
		return 0, false, err
	}
	return count, nowFollowing, nil
}

func (s *SocialService) IsFollowing(followerID, followingID string) (bool, error) {
	return s.repo.IsFollowing(followerID, followingID)
}

func (s *SocialService) GetFollowersCount(userID string) (int, error) {
	return s.repo.GetFollowersCount(userID)
}

func (s *SocialService) GetFollowingCount(userID string) (int, error) {
	return s.repo.GetFollowingCount(userID)
}
