package dto

import (
	"storyverse-api/internal/application/generation"
)

// StoryMetadata 生成请求的回显
type StoryMetadata struct {
	Genre      string                    `json:"genre"`
	Setting    string                    `json:"setting"`
	Characters []generation.CharacterRef `json:"characters,omitempty"`
	Style      string                    `json:"style,omitempty"`
	Tone       string                    `json:"tone,omitempty"`
}

// GeneratedStoryResponse 生成故事响应
type GeneratedStoryResponse struct {
	Content  string         `json:"content"`
	Metadata *StoryMetadata `json:"metadata"`
}

// EnhancedStoryResponse 润色响应
type EnhancedStoryResponse struct {
	Content string `json:"content"`
}

// CharacterResponse 角色档案响应
type CharacterResponse struct {
	Character *generation.CharacterProfile `json:"character"`
}

// NewGeneratedStoryResponse 组装生成故事响应
func NewGeneratedStoryResponse(content string, req *generation.StoryRequest) *GeneratedStoryResponse {
	return &GeneratedStoryResponse{
		Content: content,
		Metadata: &StoryMetadata{
			Genre:      req.Genre,
			Setting:    req.Setting,
			Characters: req.Characters,
			Style:      req.Style,
			Tone:       req.Tone,
		},
	}
}
