// Package generation 构建生成提示词并调用外部文本生成服务，失败时降级为确定性兜底结果
package generation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	apperrors "storyverse-api/pkg/errors"
)

// StoryRequest 故事生成请求
type StoryRequest struct {
	Genre      string         `json:"genre"`
	Setting    string         `json:"setting"`
	Characters []CharacterRef `json:"characters,omitempty"`
	Conflict   string         `json:"conflict,omitempty"`
	Length     string         `json:"length,omitempty"`
	Style      string         `json:"style,omitempty"`
	Tone       string         `json:"tone,omitempty"`
	PlotTwist  bool           `json:"plotTwist,omitempty"`
}

// Validate 校验必填字段
func (r *StoryRequest) Validate() error {
	if strings.TrimSpace(r.Genre) == "" || strings.TrimSpace(r.Setting) == "" {
		return apperrors.New(apperrors.CodeInvalidParam, "Genre and setting are required")
	}
	return nil
}

// CharacterRef 角色引用，JSON 中可以是字符串或 {"name": ...} 对象
type CharacterRef struct {
	Name string `json:"name"`
}

// UnmarshalJSON 同时接受 "Ann" 与 {"name":"Ann"}
func (c *CharacterRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &c.Name)
	}
	if bytes.Equal(data, []byte("null")) {
		c.Name = ""
		return nil
	}

	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("character must be a string or an object with a name: %w", err)
	}
	c.Name = obj.Name
	return nil
}

// EnhancementRequest 故事润色请求
type EnhancementRequest struct {
	Content     string `json:"content"`
	Enhancement string `json:"enhancement"`
}

// Validate 校验必填字段
func (r *EnhancementRequest) Validate() error {
	if strings.TrimSpace(r.Content) == "" || strings.TrimSpace(r.Enhancement) == "" {
		return apperrors.New(apperrors.CodeInvalidParam, "Content and enhancement type are required")
	}
	return nil
}

// CharacterRequest 角色生成请求，所有字段可选
type CharacterRequest struct {
	Name        string `json:"name,omitempty"`
	Role        string `json:"role,omitempty"`
	Personality string `json:"personality,omitempty"`
	Background  string `json:"background,omitempty"`
}

// CharacterProfile 角色档案
// 离线兜底与在线生成统一为该结构，在线生成时 Raw 保存模型原文
type CharacterProfile struct {
	Name        string `json:"name"`
	Age         string `json:"age"`
	Appearance  string `json:"appearance"`
	Personality string `json:"personality"`
	Background  string `json:"background"`
	Motivations string `json:"motivations"`
	Strengths   string `json:"strengths"`
	Weaknesses  string `json:"weaknesses"`
	Raw         string `json:"raw,omitempty"`
}

// Text 以 "Label: value" 行渲染档案，空字段跳过
func (p *CharacterProfile) Text() string {
	var b strings.Builder
	for _, f := range p.fields() {
		if *f.value == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(f.label)
		b.WriteString(": ")
		b.WriteString(*f.value)
	}
	return b.String()
}

type profileField struct {
	label   string
	aliases []string
	value   *string
}

func (p *CharacterProfile) fields() []profileField {
	return []profileField{
		{"Name", []string{"name", "full name", "character name"}, &p.Name},
		{"Age", []string{"age"}, &p.Age},
		{"Appearance", []string{"appearance", "physical description", "physical appearance", "looks"}, &p.Appearance},
		{"Personality", []string{"personality", "personality traits", "traits"}, &p.Personality},
		{"Background", []string{"background", "backstory", "history"}, &p.Background},
		{"Motivations", []string{"motivations", "motivation", "goals"}, &p.Motivations},
		{"Strengths", []string{"strengths", "strength", "skills"}, &p.Strengths},
		{"Weaknesses", []string{"weaknesses", "weakness", "flaws"}, &p.Weaknesses},
	}
}
