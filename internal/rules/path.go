package rules

import (
	"strings"

	"github.com/demersaj/elements/internal/frame"
)

// ResolvePath navigates a nested map by dot-notation path.
// Returns the value and true if found, nil and false otherwise.
func ResolvePath(ctx map[string]any, path string) (any, bool) {
	if path == "" {
		return nil, false
	}

	parts := strings.Split(path, ".")
	var current any = ctx

	for _, part := range parts {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = m[part]
		if !ok {
			return nil, false
		}
	}

	return current, true
}

// FrameContext projects a frame into the nested map conditions evaluate
// against. Side-channel keys live under "other_data", headers under
// "headers", and structural facts ("roi_count", "color_space", "frame_id")
// at the top level.
func FrameContext(f *frame.Frame) map[string]any {
	headers := make(map[string]any, len(f.Headers))
	for k, v := range f.Headers {
		headers[k] = v
	}

	return map[string]any{
		"frame_id":    f.FrameID,
		"color_space": f.ColorSpace,
		"roi_count":   len(f.ROIs),
		"headers":     headers,
		"other_data":  f.OtherData,
	}
}
