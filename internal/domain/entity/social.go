package entity

import (
	"time"
)

// Like 点赞，(user_id, story_id) 唯一
type Like struct {
	UserID    string    `json:"user_id" gorm:"type:uuid;primaryKey"`
	StoryID   string    `json:"story_id" gorm:"type:uuid;primaryKey;index"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	Username string `json:"username,omitempty" gorm:"->;-:migration"`
}

// TableName 指定表名
func (Like) TableName() string {
	return "likes"
}

// Comment 评论
type Comment struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID    string    `json:"user_id" gorm:"type:uuid;index;not null"`
	StoryID   string    `json:"story_id" gorm:"type:uuid;index;not null"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	Username string `json:"username,omitempty" gorm:"->;-:migration"`
}

// TableName 指定表名
func (Comment) TableName() string {
	return "comments"
}
