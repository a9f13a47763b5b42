package frame

import (
	"strings"

	"github.com/spf13/cast"

	"github.com/demersaj/elements/internal/types"
)

// ExtractText pulls text input from a frame's side channel. Sources are
// checked in priority order: a direct "message" field, then a structured
// "api" message list from which user-role text segments (including
// multimodal text parts) are concatenated with separating spaces.
//
// Returns FRAME_MISSING for a nil frame and FRAME_INPUT_INVALID when no
// non-blank text is found.
func ExtractText(f *Frame) (string, error) {
	if f == nil {
		return "", types.NewError(types.FRAME_MISSING, "received nil frame input")
	}

	var text string
	if v, ok := f.OtherData["message"]; ok {
		text = cast.ToString(v)
	} else if v, ok := f.OtherData["api"]; ok {
		text = textFromAPIMessages(v)
	}

	if strings.TrimSpace(text) == "" {
		return "", types.NewError(types.FRAME_INPUT_INVALID, "no text found in frame side channel")
	}

	return text, nil
}

// textFromAPIMessages concatenates user-role text from an API-style message
// list. Content may be a plain string or a list of multimodal parts, from
// which only {"type": "text"} parts contribute.
func textFromAPIMessages(v any) string {
	messages, ok := v.([]any)
	if !ok {
		return ""
	}

	var b strings.Builder
	for _, m := range messages {
		msg, ok := m.(map[string]any)
		if !ok || cast.ToString(msg["role"]) != "user" {
			continue
		}

		switch content := msg["content"].(type) {
		case string:
			b.WriteString(content)
			b.WriteString(" ")
		case []any:
			for _, p := range content {
				part, ok := p.(map[string]any)
				if !ok || cast.ToString(part["type"]) != "text" {
					continue
				}
				b.WriteString(cast.ToString(part["text"]))
				b.WriteString(" ")
			}
		}
	}

	return b.String()
}
