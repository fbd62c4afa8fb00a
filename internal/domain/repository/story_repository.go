package repository

import (
	"context"

	"storyverse-api/internal/domain/entity"
)

// StoryRepository 故事仓储接口
type StoryRepository interface {
	Create(ctx context.Context, story *entity.Story) error

	// GetByID 获取故事及作者名、点赞数、评论数
	GetByID(ctx context.Context, id string) (*entity.Story, error)

	// List 按过滤条件列出故事，按创建时间倒序
	List(ctx context.Context, filter entity.StoryFilter) ([]*entity.Story, error)

	// ListByUser 列出用户自己的全部故事
	ListByUser(ctx context.Context, userID string) ([]*entity.Story, error)

	// Update 只更新 updates 中允许的列，返回更新后的故事
	Update(ctx context.Context, id string, updates map[string]any) (*entity.Story, error)

	Delete(ctx context.Context, id string) error

	AddChapter(ctx context.Context, chapter *entity.Chapter) error

	// ListChapters 按 order_index 升序
	ListChapters(ctx context.Context, storyID string) ([]*entity.Chapter, error)
}
