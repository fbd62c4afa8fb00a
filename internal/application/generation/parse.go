package generation

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ParseCharacterProfile 将模型返回的角色档案文本解析为结构化档案
// 优先解析嵌入的 JSON 对象，否则按 "Label: value" 行解析；原文保存在 Raw 中
func ParseCharacterProfile(text string) *CharacterProfile {
	p := &CharacterProfile{Raw: strings.TrimSpace(text)}
	if p.Raw == "" {
		return p
	}
	if parseProfileJSON(p, p.Raw) {
		return p
	}
	parseProfileLines(p, p.Raw)
	return p
}

func parseProfileJSON(p *CharacterProfile, raw string) bool {
	obj := extractJSONObject(raw)
	if !strings.HasPrefix(obj, "{") {
		return false
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(obj), &m); err != nil {
		return false
	}

	matched := false
	for key, v := range m {
		if target := p.lookup(normalizeLabel(key)); target != nil {
			*target = stringify(v)
			matched = true
		}
	}
	return matched
}

func parseProfileLines(p *CharacterProfile, raw string) {
	var current *string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			current = nil
			continue
		}
		line = strings.TrimLeft(line, "-*#• ")

		if label, value, ok := strings.Cut(line, ":"); ok {
			if target := p.lookup(normalizeLabel(label)); target != nil {
				*target = strings.TrimSpace(strings.Trim(strings.TrimSpace(value), "*"))
				current = target
				continue
			}
		}
		// 续行并入上一个字段
		if current != nil {
			if *current == "" {
				*current = line
			} else {
				*current += " " + line
			}
		}
	}
}

// lookup 按标签别名找到对应字段
func (p *CharacterProfile) lookup(label string) *string {
	for _, f := range p.fields() {
		for _, alias := range f.aliases {
			if label == alias {
				return f.value
			}
		}
	}
	return nil
}

func normalizeLabel(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.Trim(s, "*_ ")
	return strings.ReplaceAll(s, "_", " ")
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			if s := stringify(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}

// extractJSONObject 从夹杂前后缀文本的输出中截取第一个 "{" 到最后一个 "}"
func extractJSONObject(s string) string {
	raw := strings.TrimSpace(s)
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return ""
	}
	return raw[start : end+1]
}
