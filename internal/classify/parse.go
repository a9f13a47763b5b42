package classify

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/demersaj/elements/internal/llm"
)

// Result is a parsed classification decision.
type Result struct {
	Category    string   `json:"category"`
	Confidence  float64  `json:"confidence"`
	RawResponse string   `json:"raw_response"`
	Categories  []string `json:"all_categories"`
}

var (
	confidencePattern = regexp.MustCompile(`(\d+\.?\d*)`)
	labelPattern      = regexp.MustCompile(`(?:category|class|label|classification)[\s:]+([a-zA-Z0-9\s]+)`)
)

// jsonResult mirrors the JSON shape the prompt asks the model to produce.
type jsonResult struct {
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
}

// ParseResult extracts a category and confidence from a model response.
// It tries structured JSON first, then looks for a category name in the
// free text, then a "Category: X" label. When nothing matches the first
// category is returned with low confidence.
func ParseResult(response string, categories []string) Result {
	category, confidence := extractClassification(response, categories)
	return Result{
		Category:    category,
		Confidence:  confidence,
		RawResponse: response,
		Categories:  categories,
	}
}

func extractClassification(response string, categories []string) (string, float64) {
	lower := strings.ToLower(strings.TrimSpace(response))

	if raw, err := llm.ExtractJSON(response); err == nil {
		var parsed jsonResult
		if json.Unmarshal([]byte(raw), &parsed) == nil {
			if match, ok := matchCategory(parsed.Category, categories); ok {
				return match, clampConfidence(parsed.Confidence)
			}
		}
	}

	// Category name mentioned anywhere in the response.
	for _, cat := range categories {
		if strings.Contains(lower, strings.ToLower(cat)) {
			confidence := 0.8
			if m := confidencePattern.FindString(lower); m != "" {
				if v, err := strconv.ParseFloat(m, 64); err == nil {
					confidence = v / 100.0
					if confidence > 1.0 {
						confidence /= 100.0
					}
				}
			}
			return cat, clampConfidence(confidence)
		}
	}

	// "Category: X" style label.
	if m := labelPattern.FindStringSubmatch(lower); m != nil {
		if match, ok := matchCategory(strings.TrimSpace(m[1]), categories); ok {
			return match, 0.8
		}
	}

	if len(categories) > 0 {
		return categories[0], 0.5
	}
	return "unknown", 0.0
}

// matchCategory resolves a candidate label against the configured categories,
// case-insensitively, returning the canonical spelling.
func matchCategory(candidate string, categories []string) (string, bool) {
	candidate = strings.TrimSpace(candidate)
	for _, cat := range categories {
		if strings.EqualFold(cat, candidate) {
			return cat, true
		}
	}
	return "", false
}

func clampConfidence(v float64) float64 {
	if v < 0.0 {
		return 0.0
	}
	if v > 1.0 {
		return 1.0
	}
	return v
}
