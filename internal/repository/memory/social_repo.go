package memory

import (
	"sort"
	"sync"
	"time"

	"publishhub-backend/internal/model"

	"github.com/google/uuid"
)

// socialRepository 是 SocialRepository 的内存实现
type socialRepository struct {
	mu               sync.RWMutex
	comments         map[string]*model.Comment
	commentsByPost   map[string][]string // map[postID][]commentID，只含顶层评论
	commentsByParent map[string][]string // map[parentID][]commentID
	reactions        map[string]*model.Reaction
	reactionOrder    []string
	follows          map[string]*model.Follow // key 为 followerID + "/" + followingID
}

func NewSocialRepository() *socialRepository {
	return &socialRepository{
		comments:         make(map[string]*model.Comment),
		commentsByPost:   make(map[string][]string),
		commentsByParent: make(map[string][]string),
		reactions:        make(map[string]*model.Reaction),
		follows:          make(map[string]*model.Follow),
	}
}

func followKey(followerID, followingID string) string {
	return followerID + "/" + followingID
}

// === 评论 ===

func (r *socialRepository) CreateComment(comment *model.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	comment.ID = uuid.NewString()
	comment.CreatedAt = now
	comment.UpdatedAt = now
	comment.Likes = 0
	r.comments[comment.ID] = comment

	if comment.ParentCommentID == nil {
		r.commentsByPost[comment.PostID] = append(r.commentsByPost[comment.PostID], comment.ID)
	} else {
		parentID := *comment.ParentCommentID
		r.commentsByParent[parentID] = append(r.commentsByParent[parentID], comment.ID)
	}
	return nil
}

func (r *socialRepository) GetCommentByID(id string) (*model.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	comment, ok := r.comments[id]
	if !ok {
		return nil, nil
	}
	return comment, nil
}

func (r *socialRepository) GetCommentsByPost(postID string) ([]*model.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	comments := r.collectLocked(r.commentsByPost[postID])
	// 顶层评论最新的在前
	sort.SliceStable(comments, func(i, j int) bool {
		return comments[i].CreatedAt.After(comments[j].CreatedAt)
	})
	return comments, nil
}

func (r *socialRepository) GetReplies(parentCommentID string) ([]*model.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	replies := r.collectLocked(r.commentsByParent[parentCommentID])
	// 回复按时间正序，符合阅读顺序
	sort.SliceStable(replies, func(i, j int) bool {
		return replies[i].CreatedAt.Before(replies[j].CreatedAt)
	})
	return replies, nil
}

func (r *socialRepository) collectLocked(ids []string) []*model.Comment {
	comments := make([]*model.Comment, 0, len(ids))
	for _, id := range ids {
		if c, ok := r.comments[id]; ok {
			comments = append(comments, c)
		}
	}
	return comments
}

func (r *socialRepository) UpdateComment(id, content string) (*model.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	comment, ok := r.comments[id]
	if !ok {
		return nil, nil
	}
	comment.Content = content
	comment.UpdatedAt = time.Now().UTC()
	return comment, nil
}

// DeleteComment 只删除指定评论本身，其回复保留（不做级联删除）
func (r *socialRepository) DeleteComment(id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	comment, ok := r.comments[id]
	if !ok {
		return false, nil
	}
	delete(r.comments, id)

	if comment.ParentCommentID == nil {
		r.commentsByPost[comment.PostID] = removeID(r.commentsByPost[comment.PostID], id)
	} else {
		parentID := *comment.ParentCommentID
		r.commentsByParent[parentID] = removeID(r.commentsByParent[parentID], id)
	}
	return true, nil
}

func removeID(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

// === 点赞 ===

// AddReaction 在存储层保证 (postID, userID) 唯一：
// 已存在时直接返回已有记录，不会累积重复点赞
func (r *socialRepository) AddReaction(postID, userID string) (*model.Reaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing := r.findReactionLocked(postID, userID); existing != nil {
		return existing, nil
	}

	reaction := &model.Reaction{
		ID:        uuid.NewString(),
		PostID:    postID,
		UserID:    userID,
		Type:      model.ReactionTypeClap,
		CreatedAt: time.Now().UTC(),
	}
	r.reactions[reaction.ID] = reaction
	r.reactionOrder = append(r.reactionOrder, reaction.ID)
	return reaction, nil
}

func (r *socialRepository) findReactionLocked(postID, userID string) *model.Reaction {
	for _, id := range r.reactionOrder {
		if reaction := r.reactions[id]; reaction != nil &&
			reaction.PostID == postID && reaction.UserID == userID {
			return reaction
		}
	}
	return nil
}

func (r *socialRepository) RemoveReaction(postID, userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	reaction := r.findReactionLocked(postID, userID)
	if reaction == nil {
		return false, nil
	}
	delete(r.reactions, reaction.ID)
	r.reactionOrder = removeID(r.reactionOrder, reaction.ID)
	return true, nil
}

func (r *socialRepository) GetReactionCount(postID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, reaction := range r.reactions {
		if reaction.PostID == postID {
			count++
		}
	}
	return count, nil
}

func (r *socialRepository) HasUserReacted(postID, userID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.findReactionLocked(postID, userID) != nil, nil
}

// === 关注 ===

// FollowUser 拒绝自关注，重复关注为幂等空操作，两种情况都返回 (nil, nil)
func (r *socialRepository) FollowUser(followerID, followingID string) (*model.Follow, error) {
	if followerID == followingID {
		return nil, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := followKey(followerID, followingID)
	if _, ok := r.follows[key]; ok {
		return nil, nil
	}

	follow := &model.Follow{
		FollowerID:  followerID,
		FollowingID: followingID,
		CreatedAt:   time.Now().UTC(),
	}
	r.follows[key] = follow
	return follow, nil
}

func (r *socialRepository) UnfollowUser(followerID, followingID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := followKey(followerID, followingID)
	if _, ok := r.follows[key]; !ok {
		return false, nil
	}
	delete(r.follows, key)
	return true, nil
}

func (r *socialRepository) IsFollowing(followerID, followingID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.follows[followKey(followerID, followingID)]
	return ok, nil
}

func (r *socialRepository) GetFollowersCount(userID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, follow := range r.follows {
		if follow.FollowingID == userID {
			count++
		}
	}
	return count, nil
}

func (r *socialRepository) GetFollowingCount(userID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, follow := range r.follows {
		if follow.FollowerID == userID {
			count++
		}
	}
	return count, nil
}
