// Package classify implements LLM-backed text classification into
// user-defined categories, with one output port per category.
package classify

import (
	"fmt"
	"strings"
)

// defaultSystemPrompt is used when the element settings do not supply one.
const defaultSystemPrompt = "You are a text classification assistant. " +
	"Classify the given text into one of the provided categories. " +
	"Respond with a JSON object containing 'category' and 'confidence' fields."

// BuildPrompt renders the classification prompt sent to the model. The
// category list is quoted so the model sees the exact labels it may pick.
func BuildPrompt(text string, categories []string, systemPrompt string) string {
	base := strings.TrimSpace(systemPrompt)
	if base == "" {
		base = defaultSystemPrompt
	}

	quoted := make([]string, len(categories))
	for i, cat := range categories {
		quoted[i] = fmt.Sprintf("%q", cat)
	}

	return fmt.Sprintf(`%s

Categories: [%s]

Text to classify:
%s

Respond with a JSON object in this format:
{"category": "category_name", "confidence": 0.95}

Classification:`, base, strings.Join(quoted, ", "), text)
}

// ParseCategories splits a comma-separated category setting into trimmed,
// non-empty labels.
func ParseCategories(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if cat := strings.TrimSpace(part); cat != "" {
			out = append(out, cat)
		}
	}
	return out
}
