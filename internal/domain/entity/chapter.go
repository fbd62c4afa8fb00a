package entity

import (
	"time"
)

// Chapter 章节实体
type Chapter struct {
	ID         string    `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StoryID    string    `json:"story_id" gorm:"type:uuid;index;not null"`
	Title      string    `json:"title,omitempty" gorm:"type:varchar(255)"`
	Content    string    `json:"content,omitempty" gorm:"type:text"`
	OrderIndex int       `json:"order_index" gorm:"not null;default:0"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName 指定表名
func (Chapter) TableName() string {
	return "chapters"
}
