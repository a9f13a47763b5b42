package chain

import "strings"

// Placeholder tokens recognized in step prompt templates. Any other {token}
// passes through unchanged.
const (
	PlaceholderInput    = "{input}"
	PlaceholderPrevious = "{previous}"
)

// FormatPrompt renders a step's prompt from its template. Every occurrence of
// {input} is replaced with inputText. Every occurrence of {previous} is
// replaced with previousOutput when non-empty; on the first step there is no
// prior output, so {previous} degrades to the original input.
//
// Pure and total: malformed templates simply fail to substitute.
func FormatPrompt(template, inputText, previousOutput string) string {
	prompt := strings.ReplaceAll(template, PlaceholderInput, inputText)

	if previousOutput != "" {
		return strings.ReplaceAll(prompt, PlaceholderPrevious, previousOutput)
	}
	return strings.ReplaceAll(prompt, PlaceholderPrevious, inputText)
}
