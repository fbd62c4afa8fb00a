package repository

import (
	"context"

	"storyverse-api/internal/domain/entity"
)

// UserRepository 用户仓储接口
// 查询不到记录时返回 (nil, nil)
type UserRepository interface {
	// Create 创建用户
	Create(ctx context.Context, user *entity.User) error

	// GetByID 根据 ID 获取用户
	GetByID(ctx context.Context, id string) (*entity.User, error)

	// GetByEmail 根据邮箱获取用户
	GetByEmail(ctx context.Context, email string) (*entity.User, error)

	// UpdatePreferences 覆盖用户偏好
	UpdatePreferences(ctx context.Context, id string, preferences entity.Preferences) (*entity.User, error)
}
