package generation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCharacterProfile_Lines(t *testing.T) {
	text := `**Name:** Mira Vale
- Age: 31
Physical Description: Wiry, salt-streaked braid
Personality Traits: wry, patient
Backstory: Deserted the navy
after the mutiny.

Motivations: clear her name
Strengths: navigation
Weaknesses: pride`

	p := ParseCharacterProfile(text)
	assert.Equal(t, "Mira Vale", p.Name)
	assert.Equal(t, "31", p.Age)
	assert.Equal(t, "Wiry, salt-streaked braid", p.Appearance)
	assert.Equal(t, "wry, patient", p.Personality)
	assert.Equal(t, "Deserted the navy after the mutiny.", p.Background)
	assert.Equal(t, "clear her name", p.Motivations)
	assert.Equal(t, "navigation", p.Strengths)
	assert.Equal(t, "pride", p.Weaknesses)
	assert.Equal(t, text, p.Raw)
}

func TestParseCharacterProfile_JSON(t *testing.T) {
	p := ParseCharacterProfile("```json\n{\"full_name\":\"Ash\",\"physical_description\":\"tall\",\"flaws\":[\"stubborn\"]}\n```")
	assert.Equal(t, "Ash", p.Name)
	assert.Equal(t, "tall", p.Appearance)
	assert.Equal(t, "stubborn", p.Weaknesses)
}

func TestParseCharacterProfile_FreeText(t *testing.T) {
	p := ParseCharacterProfile("Just a paragraph: nothing structured here.")
	assert.Empty(t, p.Name)
	assert.Equal(t, "Just a paragraph: nothing structured here.", p.Raw)

	assert.Equal(t, &CharacterProfile{}, ParseCharacterProfile("  "))
}
