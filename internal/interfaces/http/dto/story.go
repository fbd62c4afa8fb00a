package dto

import (
	"strings"
	"time"

	"storyverse-api/internal/domain/entity"
	apperrors "storyverse-api/pkg/errors"
)

// CreateStoryRequest 创建故事请求
type CreateStoryRequest struct {
	Title       string             `json:"title" binding:"max=255"`
	Description string             `json:"description"`
	Genre       string             `json:"genre" binding:"max=100"`
	Setting     string             `json:"setting"`
	Characters  []string           `json:"characters"`
	Content     string             `json:"content"`
	Status      entity.StoryStatus `json:"status"`
}

// Validate 校验必填字段与状态
func (r *CreateStoryRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" || strings.TrimSpace(r.Content) == "" {
		return apperrors.New(apperrors.CodeInvalidParam, "Title and content are required")
	}
	if r.Status == "" {
		r.Status = entity.StoryStatusDraft
	}
	if !r.Status.Valid() {
		return apperrors.New(apperrors.CodeInvalidParam, "Status must be draft or published")
	}
	return nil
}

// ToEntity 转换为实体
func (r *CreateStoryRequest) ToEntity(userID string) *entity.Story {
	characters := r.Characters
	if characters == nil {
		characters = []string{}
	}
	return &entity.Story{
		UserID:      userID,
		Title:       r.Title,
		Description: r.Description,
		Genre:       r.Genre,
		Setting:     r.Setting,
		Characters:  characters,
		Content:     r.Content,
		Status:      r.Status,
	}
}

// UpdateStoryRequest 更新故事请求，未出现的字段保持不变
type UpdateStoryRequest struct {
	Title       *string             `json:"title,omitempty" binding:"omitempty,max=255"`
	Description *string             `json:"description,omitempty"`
	Content     *string             `json:"content,omitempty"`
	Status      *entity.StoryStatus `json:"status,omitempty"`
	Genre       *string             `json:"genre,omitempty" binding:"omitempty,max=100"`
	Setting     *string             `json:"setting,omitempty"`
}

// ToUpdates 转换为列更新，校验后返回
func (r *UpdateStoryRequest) ToUpdates() (map[string]any, error) {
	updates := make(map[string]any)
	if r.Title != nil {
		if strings.TrimSpace(*r.Title) == "" {
			return nil, apperrors.New(apperrors.CodeInvalidParam, "Title cannot be empty")
		}
		updates["title"] = *r.Title
	}
	if r.Description != nil {
		updates["description"] = *r.Description
	}
	if r.Content != nil {
		if strings.TrimSpace(*r.Content) == "" {
			return nil, apperrors.New(apperrors.CodeInvalidParam, "Content cannot be empty")
		}
		updates["content"] = *r.Content
	}
	if r.Status != nil {
		if !r.Status.Valid() {
			return nil, apperrors.New(apperrors.CodeInvalidParam, "Status must be draft or published")
		}
		updates["status"] = *r.Status
	}
	if r.Genre != nil {
		updates["genre"] = *r.Genre
	}
	if r.Setting != nil {
		updates["setting"] = *r.Setting
	}
	if len(updates) == 0 {
		return nil, apperrors.New(apperrors.CodeInvalidParam, "No valid fields to update")
	}
	return updates, nil
}

// StoryResponse 故事响应
type StoryResponse struct {
	ID             string   `json:"id"`
	UserID         string   `json:"user_id"`
	Title          string   `json:"title"`
	Description    string   `json:"description,omitempty"`
	Genre          string   `json:"genre,omitempty"`
	Setting        string   `json:"setting,omitempty"`
	Characters     []string `json:"characters"`
	Content        string   `json:"content"`
	Status         string   `json:"status"`
	AuthorUsername string   `json:"author_username,omitempty"`
	LikesCount     int64    `json:"likes_count"`
	CommentsCount  int64    `json:"comments_count"`
	CreatedAt      string   `json:"created_at"`
	UpdatedAt      string   `json:"updated_at"`
}

// StoryEnvelope 单个故事响应
type StoryEnvelope struct {
	Story *StoryResponse `json:"story"`
}

// StoryListResponse 故事列表响应
type StoryListResponse struct {
	Stories []*StoryResponse `json:"stories"`
	Count   int              `json:"count"`
}

// ToStoryResponse 实体转换为响应
func ToStoryResponse(s *entity.Story) *StoryResponse {
	if s == nil {
		return nil
	}
	characters := []string(s.Characters)
	if characters == nil {
		characters = []string{}
	}
	return &StoryResponse{
		ID:             s.ID,
		UserID:         s.UserID,
		Title:          s.Title,
		Description:    s.Description,
		Genre:          s.Genre,
		Setting:        s.Setting,
		Characters:     characters,
		Content:        s.Content,
		Status:         string(s.Status),
		AuthorUsername: s.AuthorUsername,
		LikesCount:     s.LikesCount,
		CommentsCount:  s.CommentsCount,
		CreatedAt:      formatTime(s.CreatedAt),
		UpdatedAt:      formatTime(s.UpdatedAt),
	}
}

// ToStoryListResponse 实体列表转换为响应
func ToStoryListResponse(stories []*entity.Story) *StoryListResponse {
	items := make([]*StoryResponse, len(stories))
	for i, s := range stories {
		items[i] = ToStoryResponse(s)
	}
	return &StoryListResponse{Stories: items, Count: len(items)}
}

// CreateChapterRequest 添加章节请求
type CreateChapterRequest struct {
	Title      string `json:"title" binding:"max=255"`
	Content    string `json:"content"`
	OrderIndex int    `json:"orderIndex"`
}

// ToEntity 转换为实体
func (r *CreateChapterRequest) ToEntity(storyID string) *entity.Chapter {
	return &entity.Chapter{
		StoryID:    storyID,
		Title:      r.Title,
		Content:    r.Content,
		OrderIndex: r.OrderIndex,
	}
}

// ChapterResponse 章节响应
type ChapterResponse struct {
	ID         string `json:"id"`
	StoryID    string `json:"story_id"`
	Title      string `json:"title,omitempty"`
	Content    string `json:"content,omitempty"`
	OrderIndex int    `json:"order_index"`
	CreatedAt  string `json:"created_at"`
}

// ChapterEnvelope 单个章节响应
type ChapterEnvelope struct {
	Chapter *ChapterResponse `json:"chapter"`
}

// ChapterListResponse 章节列表响应
type ChapterListResponse struct {
	Chapters []*ChapterResponse `json:"chapters"`
	Count    int                `json:"count"`
}

// ToChapterResponse 实体转换为响应
func ToChapterResponse(ch *entity.Chapter) *ChapterResponse {
	if ch == nil {
		return nil
	}
	return &ChapterResponse{
		ID:         ch.ID,
		StoryID:    ch.StoryID,
		Title:      ch.Title,
		Content:    ch.Content,
		OrderIndex: ch.OrderIndex,
		CreatedAt:  formatTime(ch.CreatedAt),
	}
}

// ToChapterListResponse 实体列表转换为响应
func ToChapterListResponse(chapters []*entity.Chapter) *ChapterListResponse {
	items := make([]*ChapterResponse, len(chapters))
	for i, ch := range chapters {
		items[i] = ToChapterResponse(ch)
	}
	return &ChapterListResponse{Chapters: items, Count: len(items)}
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
