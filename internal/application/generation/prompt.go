package generation

import (
	"strings"
)

const (
	defaultLength = "medium"
	defaultStyle  = "descriptive"
	defaultTone   = "neutral"
)

// lengthGuides 篇幅到目标字数的映射，未知篇幅按 medium 处理
var lengthGuides = map[string]string{
	"short":  "500-800 words",
	"medium": "1000-1500 words",
	"long":   "2000-3000 words",
}

// enhancementInstructions 预置润色指令，未命中时原样使用调用方给出的文本
var enhancementInstructions = map[string]string{
	"more-dramatic":    "Make this story more dramatic and intense",
	"more-dialogue":    "Add more dialogue and character interactions",
	"more-description": "Add more vivid descriptions and world-building details",
	"add-twist":        "Add an unexpected plot twist",
	"darker":           "Make the tone darker and more serious",
	"lighter":          "Make the tone lighter and more humorous",
	"faster-pace":      "Increase the pacing and action",
	"slower-pace":      "Slow down the pacing with more detail",
}

// characterPromptMarker 角色档案提示词中的固定短语，兜底逻辑据此识别请求类型
const characterPromptMarker = "character profile"

// BuildStoryPrompt 构建故事生成提示词
func BuildStoryPrompt(req StoryRequest) string {
	length := orDefault(req.Length, defaultLength)
	style := orDefault(req.Style, defaultStyle)
	tone := orDefault(req.Tone, defaultTone)

	var b strings.Builder
	b.WriteString("Write a " + length + " " + req.Genre + " story set in " + req.Setting + ". ")

	names := make([]string, 0, len(req.Characters))
	for _, c := range req.Characters {
		if c.Name != "" {
			names = append(names, c.Name)
		}
	}
	if len(names) > 0 {
		b.WriteString("The main characters are: " + strings.Join(names, ", ") + ". ")
	}

	if req.Conflict != "" {
		b.WriteString("The central conflict is: " + req.Conflict + ". ")
	}

	b.WriteString("Write in a " + style + " style with a " + tone + " tone. ")

	if req.PlotTwist {
		b.WriteString("Include an unexpected plot twist. ")
	}

	guide, ok := lengthGuides[length]
	if !ok {
		guide = lengthGuides[defaultLength]
	}
	b.WriteString("Target length: approximately " + guide + ".")

	return b.String()
}

// BuildEnhancementPrompt 构建润色提示词
func BuildEnhancementPrompt(content, enhancement string) string {
	instruction, ok := enhancementInstructions[enhancement]
	if !ok {
		instruction = enhancement
	}
	return instruction + ":\n\n" + content
}

// BuildCharacterPrompt 构建角色档案提示词
func BuildCharacterPrompt(req CharacterRequest) string {
	var b strings.Builder
	b.WriteString("Create a detailed " + characterPromptMarker + ". ")

	if req.Name != "" {
		b.WriteString("Name: " + req.Name + ". ")
	}
	if req.Role != "" {
		b.WriteString("Role: " + req.Role + ". ")
	}
	if req.Personality != "" {
		b.WriteString("Personality traits: " + req.Personality + ". ")
	}
	if req.Background != "" {
		b.WriteString("Background: " + req.Background + ". ")
	}

	b.WriteString("Include physical description, motivations, strengths, weaknesses, and backstory.")
	return b.String()
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
