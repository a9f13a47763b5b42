package chain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPrompt(t *testing.T) {
	tests := []struct {
		name     string
		template string
		input    string
		previous string
		want     string
	}{
		{
			name:     "substitutes input",
			template: "Analyze the following text: {input}",
			input:    "Hello world",
			want:     "Analyze the following text: Hello world",
		},
		{
			name:     "substitutes previous",
			template: "Based on this analysis: {previous}, provide recommendations",
			input:    "original",
			previous: "step one said X",
			want:     "Based on this analysis: step one said X, provide recommendations",
		},
		{
			name:     "first-step degradation uses input for previous",
			template: "Continue with: {previous}",
			input:    "Hello",
			previous: "",
			want:     "Continue with: Hello",
		},
		{
			name:     "both placeholders",
			template: "{input} then {previous}",
			input:    "A",
			previous: "B",
			want:     "A then B",
		},
		{
			name:     "repeated placeholders all substituted",
			template: "{input} {input} {previous} {previous}",
			input:    "x",
			previous: "y",
			want:     "x x y y",
		},
		{
			name:     "unrecognized tokens pass through",
			template: "{input} and {unknown} and {PREVIOUS}",
			input:    "x",
			previous: "y",
			want:     "x and {unknown} and {PREVIOUS}",
		},
		{
			name:     "no placeholders",
			template: "static prompt",
			input:    "x",
			previous: "y",
			want:     "static prompt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatPrompt(tt.template, tt.input, tt.previous)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatPrompt_Idempotent(t *testing.T) {
	template := "Analyze: {input} with context {previous}"
	first := FormatPrompt(template, "in", "prev")
	second := FormatPrompt(template, "in", "prev")
	assert.Equal(t, first, second)
}

func TestFormatPrompt_DegradationLaw(t *testing.T) {
	// For all templates containing both placeholders, empty previous output
	// makes {previous} equal the input substitution.
	templates := []string{
		"{input}/{previous}",
		"start {previous} end {input}",
		"{previous}{previous}{input}",
	}
	for _, tmpl := range templates {
		withInput := FormatPrompt(tmpl, "in", "")
		explicit := FormatPrompt(tmpl, "in", "in")
		assert.Equal(t, explicit, withInput, "template %q", tmpl)
	}
}
