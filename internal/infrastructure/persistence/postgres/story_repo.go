package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"storyverse-api/internal/domain/entity"
	"storyverse-api/internal/domain/repository"
)

const storyStatsSelect = `s.*, u.username AS author_username,
	(SELECT COUNT(*) FROM likes WHERE likes.story_id = s.id) AS likes_count,
	(SELECT COUNT(*) FROM comments WHERE comments.story_id = s.id) AS comments_count`

// StoryRepository 故事仓储实现
type StoryRepository struct {
	client *Client
	tx     *TxManager
}

// NewStoryRepository 创建故事仓储
func NewStoryRepository(client *Client) *StoryRepository {
	return &StoryRepository{client: client, tx: NewTxManager(client)}
}

// withStats 附带作者名与统计数
func withStats(db *gorm.DB) *gorm.DB {
	return db.Table("stories AS s").
		Select(storyStatsSelect).
		Joins("JOIN users u ON s.user_id = u.id")
}

// Create 创建故事
func (r *StoryRepository) Create(ctx context.Context, story *entity.Story) error {
	ctx, span := tracer.Start(ctx, "postgres.StoryRepository.Create")
	defer span.End()

	if story.Status == "" {
		story.Status = entity.StoryStatusDraft
	}
	db := getDB(ctx, r.client.db)
	if err := db.Create(story).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create story: %w", err)
	}
	return nil
}

// GetByID 根据 ID 获取故事
func (r *StoryRepository) GetByID(ctx context.Context, id string) (*entity.Story, error) {
	ctx, span := tracer.Start(ctx, "postgres.StoryRepository.GetByID")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var story entity.Story
	if err := withStats(db).Where("s.id = ?", id).Take(&story).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get story: %w", err)
	}
	return &story, nil
}

// List 按过滤条件列出故事
func (r *StoryRepository) List(ctx context.Context, filter entity.StoryFilter) ([]*entity.Story, error) {
	ctx, span := tracer.Start(ctx, "postgres.StoryRepository.List")
	defer span.End()

	status := filter.Status
	if status == "" {
		status = entity.StoryStatusPublished
	}
	limit, offset := repository.NormalizeLimit(filter.Limit, filter.Offset)

	db := getDB(ctx, r.client.db)
	query := withStats(db).Where("s.status = ?", status)
	if filter.Genre != "" {
		query = query.Where("s.genre = ?", filter.Genre)
	}

	var stories []*entity.Story
	if err := query.Order("s.created_at DESC").Limit(limit).Offset(offset).Find(&stories).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list stories: %w", err)
	}
	return stories, nil
}

// ListByUser 列出用户的故事
func (r *StoryRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Story, error) {
	ctx, span := tracer.Start(ctx, "postgres.StoryRepository.ListByUser")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var stories []*entity.Story
	if err := withStats(db).Where("s.user_id = ?", userID).Order("s.created_at DESC").Find(&stories).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list user stories: %w", err)
	}
	return stories, nil
}

// Update 更新允许的列
func (r *StoryRepository) Update(ctx context.Context, id string, updates map[string]any) (*entity.Story, error) {
	ctx, span := tracer.Start(ctx, "postgres.StoryRepository.Update")
	defer span.End()

	filtered := make(map[string]any, len(updates))
	for _, col := range entity.StoryUpdatableFields {
		if v, ok := updates[col]; ok {
			filtered[col] = v
		}
	}
	if len(filtered) == 0 {
		return nil, fmt.Errorf("no valid fields to update")
	}

	db := getDB(ctx, r.client.db)
	res := db.Model(&entity.Story{}).Where("id = ?", id).Updates(filtered)
	if res.Error != nil {
		span.RecordError(res.Error)
		return nil, fmt.Errorf("failed to update story: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return r.GetByID(ctx, id)
}

// Delete 删除故事及其章节、点赞、评论
func (r *StoryRepository) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "postgres.StoryRepository.Delete")
	defer span.End()

	err := r.tx.WithTransaction(ctx, func(ctx context.Context) error {
		db := getDB(ctx, r.client.db)
		for _, model := range []any{&entity.Chapter{}, &entity.Like{}, &entity.Comment{}} {
			if err := db.Where("story_id = ?", id).Delete(model).Error; err != nil {
				return err
			}
		}
		return db.Delete(&entity.Story{}, "id = ?", id).Error
	})
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete story: %w", err)
	}
	return nil
}

// AddChapter 添加章节
func (r *StoryRepository) AddChapter(ctx context.Context, chapter *entity.Chapter) error {
	ctx, span := tracer.Start(ctx, "postgres.StoryRepository.AddChapter")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Create(chapter).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to add chapter: %w", err)
	}
	return nil
}

// ListChapters 获取章节列表
func (r *StoryRepository) ListChapters(ctx context.Context, storyID string) ([]*entity.Chapter, error) {
	ctx, span := tracer.Start(ctx, "postgres.StoryRepository.ListChapters")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var chapters []*entity.Chapter
	if err := db.Where("story_id = ?", storyID).Order("order_index ASC").Find(&chapters).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list chapters: %w", err)
	}
	return chapters, nil
}
