package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm/clause"

	"storyverse-api/internal/domain/entity"
)

// SocialRepository 点赞与评论仓储实现
type SocialRepository struct {
	client *Client
}

// NewSocialRepository 创建社交仓储
func NewSocialRepository(client *Client) *SocialRepository {
	return &SocialRepository{client: client}
}

// AddLike 点赞，重复点赞忽略
func (r *SocialRepository) AddLike(ctx context.Context, userID, storyID string) (*entity.Like, bool, error) {
	ctx, span := tracer.Start(ctx, "postgres.SocialRepository.AddLike")
	defer span.End()

	like := &entity.Like{UserID: userID, StoryID: storyID}
	db := getDB(ctx, r.client.db)
	res := db.Clauses(clause.OnConflict{DoNothing: true}).Create(like)
	if res.Error != nil {
		span.RecordError(res.Error)
		return nil, false, fmt.Errorf("failed to add like: %w", res.Error)
	}
	return like, res.RowsAffected > 0, nil
}

// RemoveLike 取消点赞
func (r *SocialRepository) RemoveLike(ctx context.Context, userID, storyID string) (bool, error) {
	ctx, span := tracer.Start(ctx, "postgres.SocialRepository.RemoveLike")
	defer span.End()

	db := getDB(ctx, r.client.db)
	res := db.Where("user_id = ? AND story_id = ?", userID, storyID).Delete(&entity.Like{})
	if res.Error != nil {
		span.RecordError(res.Error)
		return false, fmt.Errorf("failed to remove like: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// ListLikes 获取点赞列表
func (r *SocialRepository) ListLikes(ctx context.Context, storyID string) ([]*entity.Like, error) {
	ctx, span := tracer.Start(ctx, "postgres.SocialRepository.ListLikes")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var likes []*entity.Like
	err := db.Table("likes AS l").
		Select("l.*, u.username").
		Joins("JOIN users u ON l.user_id = u.id").
		Where("l.story_id = ?", storyID).
		Order("l.created_at DESC").
		Find(&likes).Error
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list likes: %w", err)
	}
	return likes, nil
}

// AddComment 添加评论
func (r *SocialRepository) AddComment(ctx context.Context, comment *entity.Comment) error {
	ctx, span := tracer.Start(ctx, "postgres.SocialRepository.AddComment")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Create(comment).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to add comment: %w", err)
	}
	return nil
}

// ListComments 获取评论列表
func (r *SocialRepository) ListComments(ctx context.Context, storyID string) ([]*entity.Comment, error) {
	ctx, span := tracer.Start(ctx, "postgres.SocialRepository.ListComments")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var comments []*entity.Comment
	err := db.Table("comments AS c").
		Select("c.*, u.username").
		Joins("JOIN users u ON c.user_id = u.id").
		Where("c.story_id = ?", storyID).
		Order("c.created_at DESC").
		Find(&comments).Error
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

// DeleteComment 删除自己的评论
func (r *SocialRepository) DeleteComment(ctx context.Context, storyID, commentID, userID string) (bool, error) {
	ctx, span := tracer.Start(ctx, "postgres.SocialRepository.DeleteComment")
	defer span.End()

	db := getDB(ctx, r.client.db)
	res := db.Where("id = ? AND story_id = ? AND user_id = ?", commentID, storyID, userID).Delete(&entity.Comment{})
	if res.Error != nil {
		span.RecordError(res.Error)
		return false, fmt.Errorf("failed to delete comment: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}
