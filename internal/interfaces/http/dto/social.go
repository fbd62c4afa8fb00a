package dto

import (
	"strings"

	"storyverse-api/internal/domain/entity"
	apperrors "storyverse-api/pkg/errors"
)

// LikeResponse 点赞响应
type LikeResponse struct {
	UserID    string `json:"user_id"`
	StoryID   string `json:"story_id"`
	Username  string `json:"username,omitempty"`
	CreatedAt string `json:"created_at"`
}

// LikeEnvelope 点赞结果，Created 为 false 表示已点过赞
type LikeEnvelope struct {
	Like    *LikeResponse `json:"like"`
	Created bool          `json:"created"`
}

// LikeListResponse 点赞列表响应
type LikeListResponse struct {
	Likes []*LikeResponse `json:"likes"`
	Count int             `json:"count"`
}

// ToLikeResponse 实体转换为响应
func ToLikeResponse(l *entity.Like) *LikeResponse {
	if l == nil {
		return nil
	}
	return &LikeResponse{
		UserID:    l.UserID,
		StoryID:   l.StoryID,
		Username:  l.Username,
		CreatedAt: formatTime(l.CreatedAt),
	}
}

// ToLikeListResponse 实体列表转换为响应
func ToLikeListResponse(likes []*entity.Like) *LikeListResponse {
	items := make([]*LikeResponse, len(likes))
	for i, l := range likes {
		items[i] = ToLikeResponse(l)
	}
	return &LikeListResponse{Likes: items, Count: len(items)}
}

// CreateCommentRequest 评论请求
type CreateCommentRequest struct {
	Content string `json:"content" binding:"max=5000"`
}

// Validate 校验评论内容
func (r *CreateCommentRequest) Validate() error {
	if strings.TrimSpace(r.Content) == "" {
		return apperrors.New(apperrors.CodeInvalidParam, "Comment content is required")
	}
	return nil
}

// CommentResponse 评论响应
type CommentResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	StoryID   string `json:"story_id"`
	Username  string `json:"username,omitempty"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

// CommentEnvelope 单条评论响应
type CommentEnvelope struct {
	Comment *CommentResponse `json:"comment"`
}

// CommentListResponse 评论列表响应
type CommentListResponse struct {
	Comments []*CommentResponse `json:"comments"`
	Count    int                `json:"count"`
}

// ToCommentResponse 实体转换为响应
func ToCommentResponse(cm *entity.Comment) *CommentResponse {
	if cm == nil {
		return nil
	}
	return &CommentResponse{
		ID:        cm.ID,
		UserID:    cm.UserID,
		StoryID:   cm.StoryID,
		Username:  cm.Username,
		Content:   cm.Content,
		CreatedAt: formatTime(cm.CreatedAt),
	}
}

// ToCommentListResponse 实体列表转换为响应
func ToCommentListResponse(comments []*entity.Comment) *CommentListResponse {
	items := make([]*CommentResponse, len(comments))
	for i, cm := range comments {
		items[i] = ToCommentResponse(cm)
	}
	return &CommentListResponse{Comments: items, Count: len(items)}
}
