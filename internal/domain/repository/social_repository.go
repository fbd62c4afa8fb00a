package repository

import (
	"context"

	"storyverse-api/internal/domain/entity"
)

// SocialRepository 点赞与评论仓储接口
type SocialRepository interface {
	// AddLike 重复点赞不报错，created 表示是否新增
	AddLike(ctx context.Context, userID, storyID string) (like *entity.Like, created bool, err error)

	// RemoveLike 返回是否删除了记录
	RemoveLike(ctx context.Context, userID, storyID string) (bool, error)

	// ListLikes 按时间倒序，带用户名
	ListLikes(ctx context.Context, storyID string) ([]*entity.Like, error)

	AddComment(ctx context.Context, comment *entity.Comment) error

	// ListComments 按时间倒序，带用户名
	ListComments(ctx context.Context, storyID string) ([]*entity.Comment, error)

	// DeleteComment 只删除 storyID 下属于 userID 的评论，返回是否删除
	DeleteComment(ctx context.Context, storyID, commentID, userID string) (bool, error)
}
