package services

import (
	"encoding/json"
	"regexp"
	"strings"

	"copyforge/models"
)

// Parsing of model output is deliberately loose: generative text drifts, and
// a response that matches nothing degrades to an empty result instead of an
// error. Callers treat every extracted field as optional.

var (
	variationHeaderRe = regexp.MustCompile(`(?m)^\s*VARIATION\s+(\d+):\s*(.+)$`)
	triggersLineRe    = regexp.MustCompile(`TRIGGERS USED:\s*([^\n]+)`)
	hashtagSectionRe  = regexp.MustCompile(`(?i)HASHTAG STRATEGY[^\n]*:\s*([^\n]+(?:\n[^A-Z\n][^\n]*)*)`)
	hashtagRe         = regexp.MustCompile(`#\w+`)
	storyOverlayRe    = regexp.MustCompile(`(?i)STORY TEXT OVERLAYS?:\s*\[(.*?)\]`)
)

const maxHashtags = 30

// ParseVariations extracts VARIATION blocks from raw model text. Each block
// starts at a "VARIATION <n>: <framework>" header; its content runs to the
// first "---" divider, and an optional "TRIGGERS USED:" line names the
// triggers. Source order is preserved. No matching blocks yields an empty
// slice, never an error.
func ParseVariations(text string) []models.Candidate {
	headers := variationHeaderRe.FindAllStringSubmatchIndex(text, -1)
	candidates := make([]models.Candidate, 0, len(headers))

	for i, loc := range headers {
		framework := strings.TrimSpace(text[loc[4]:loc[5]])

		blockEnd := len(text)
		if i+1 < len(headers) {
			blockEnd = headers[i+1][0]
		}
		block := text[loc[1]:blockEnd]

		content := block
		if idx := strings.Index(block, "---"); idx >= 0 {
			content = block[:idx]
		}
		content = strings.TrimSpace(content)
		if content == "" {
			continue
		}

		triggers := []string{}
		if m := triggersLineRe.FindStringSubmatch(block); m != nil {
			for _, t := range strings.Split(m[1], ",") {
				if t = strings.TrimSpace(t); t != "" {
					triggers = append(triggers, t)
				}
			}
		}

		candidates = append(candidates, models.Candidate{
			Content:   content,
			Framework: framework,
			Triggers:  triggers,
		})
	}

	return candidates
}

// ExtractJSON locates the first balanced {...} substring in the text and
// decodes it into v. It reports false when no object is found or decoding
// fails; callers fall back to zero values for every field.
func ExtractJSON(text string, v any) bool {
	raw := firstJSONObject(text)
	if raw == "" {
		return false
	}
	return json.Unmarshal([]byte(raw), v) == nil
}

func firstJSONObject(text string) string {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return text[start : i+1]
			}
		}
	}
	return ""
}

// ParseHashtags collects #word tokens from the labeled HASHTAG STRATEGY
// section, capped at the platform maximum of 30. Missing section means no
// hashtags.
func ParseHashtags(text string) []string {
	m := hashtagSectionRe.FindStringSubmatch(text)
	if m == nil {
		return []string{}
	}
	tags := hashtagRe.FindAllString(m[1], -1)
	if tags == nil {
		return []string{}
	}
	if len(tags) > maxHashtags {
		tags = tags[:maxHashtags]
	}
	return tags
}

// ParseStoryText returns the first overlay option from the STORY TEXT
// OVERLAYS section, or "" when the section is missing.
func ParseStoryText(text string) string {
	m := storyOverlayRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	options := strings.Split(m[1], ",")
	first := strings.TrimSpace(options[0])
	return strings.Trim(first, `'"`)
}
