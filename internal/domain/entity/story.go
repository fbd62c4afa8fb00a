package entity

import (
	"time"

	"github.com/lib/pq"
)

// StoryStatus 故事状态
type StoryStatus string

const (
	StoryStatusDraft     StoryStatus = "draft"
	StoryStatusPublished StoryStatus = "published"
)

// Valid 是否为已知状态
func (s StoryStatus) Valid() bool {
	return s == StoryStatusDraft || s == StoryStatusPublished
}

// Story 故事实体
// AuthorUsername、LikesCount、CommentsCount 为只读统计字段，由查询填充
type Story struct {
	ID          string         `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID      string         `json:"user_id" gorm:"type:uuid;index;not null"`
	Title       string         `json:"title" gorm:"type:varchar(255);not null"`
	Description string         `json:"description,omitempty" gorm:"type:text"`
	Genre       string         `json:"genre,omitempty" gorm:"type:varchar(100);index"`
	Setting     string         `json:"setting,omitempty" gorm:"type:text"`
	Characters  pq.StringArray `json:"characters" gorm:"type:text[]"`
	Content     string         `json:"content" gorm:"type:text;not null"`
	Status      StoryStatus    `json:"status" gorm:"type:varchar(20);default:'draft';index"`
	CreatedAt   time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `json:"updated_at" gorm:"autoUpdateTime"`

	AuthorUsername string `json:"author_username,omitempty" gorm:"->;-:migration"`
	LikesCount     int64  `json:"likes_count" gorm:"->;-:migration"`
	CommentsCount  int64  `json:"comments_count" gorm:"->;-:migration"`
}

// TableName 指定表名
func (Story) TableName() string {
	return "stories"
}

// IsOwnedBy 是否属于指定用户
func (s *Story) IsOwnedBy(userID string) bool {
	return s.UserID == userID
}

// StoryUpdatableFields 允许通过更新接口修改的列
var StoryUpdatableFields = []string{"title", "description", "content", "status", "genre", "setting"}

// StoryFilter 故事列表过滤条件
type StoryFilter struct {
	Genre  string
	Status StoryStatus
	Limit  int
	Offset int
}
