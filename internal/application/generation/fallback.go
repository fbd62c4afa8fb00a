package generation

import (
	"strings"
)

var fallbackStory = strings.Join([]string{
	"This is a generated story based on your prompt. In a production environment, this would be generated by an AI service like GPT-4.",
	"The story begins with intrigue and mystery, drawing readers into a world filled with wonder and possibility. Characters face challenges that test their resolve, relationships that shape their journey, and discoveries that change everything they thought they knew.",
	"Through vivid descriptions and compelling dialogue, the narrative unfolds naturally, building tension and emotional resonance. Each scene connects seamlessly to the next, creating a cohesive and engaging reading experience.",
	"The climax brings all elements together in a satisfying resolution that honors the story's themes while leaving room for reflection and imagination.",
}, "\n\n")

var fallbackCharacter = CharacterProfile{
	Name:        "Generated Character",
	Age:         "25",
	Appearance:  "Tall with dark hair and piercing eyes",
	Personality: "Brave, resourceful, and determined",
	Background:  "Comes from a small village but dreams of adventure",
	Motivations: "To protect those they love and uncover ancient secrets",
	Strengths:   "Quick thinking, skilled in combat",
	Weaknesses:  "Sometimes too trusting, fears losing loved ones",
}

// FallbackStory 返回离线兜底故事文本
func FallbackStory() string {
	return fallbackStory
}

// FallbackCharacter 返回离线兜底角色档案的副本
func FallbackCharacter() *CharacterProfile {
	p := fallbackCharacter
	return &p
}

// fallbackText 按提示词类型选择兜底文本
func fallbackText(prompt string) string {
	if isCharacterPrompt(prompt) {
		return FallbackCharacter().Text()
	}
	return fallbackStory
}

func isCharacterPrompt(prompt string) bool {
	return strings.Contains(prompt, characterPromptMarker)
}
