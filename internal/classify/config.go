package classify

import (
	"github.com/demersaj/elements/internal/element"
	"github.com/demersaj/elements/internal/types"
)

const (
	defaultCategories    = "positive, negative, neutral"
	defaultTemperature   = 0.1
	defaultMinConfidence = 0.5
)

// Config is the resolved classifier configuration.
type Config struct {
	Categories    []string
	SystemPrompt  string
	Provider      string
	APIKey        string
	Temperature   float64
	MinConfidence float64
}

// FromSettings resolves the classifier configuration from element settings,
// applying defaults for anything unset. It fails when the category list
// resolves to empty.
func FromSettings(s *element.Settings) (*Config, error) {
	cfg := &Config{
		SystemPrompt:  s.GetString("system_prompt"),
		Provider:      ProviderUpstream,
		APIKey:        s.GetString("api_key"),
		Temperature:   defaultTemperature,
		MinConfidence: defaultMinConfidence,
	}

	raw := defaultCategories
	if s.IsSet("categories") {
		raw = s.GetString("categories")
	}
	cfg.Categories = ParseCategories(raw)
	if len(cfg.Categories) == 0 {
		return nil, types.NewError(types.SETTINGS_VALIDATION_FAILED, "at least one category must be specified")
	}

	if s.IsSet("llm_provider") {
		cfg.Provider = s.GetString("llm_provider")
	}
	if s.IsSet("temperature") {
		cfg.Temperature = clampConfidence(s.GetFloat64("temperature"))
	}
	if s.IsSet("min_confidence") {
		cfg.MinConfidence = clampConfidence(s.GetFloat64("min_confidence"))
	}

	return cfg, nil
}
