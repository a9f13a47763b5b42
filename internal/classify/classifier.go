package classify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/demersaj/elements/internal/element"
	"github.com/demersaj/elements/internal/frame"
	"github.com/demersaj/elements/internal/llm"
	"github.com/demersaj/elements/internal/llm/providers"
	"github.com/demersaj/elements/internal/types"
)

const (
	// MaxCategories caps the number of distinct category output ports.
	MaxCategories = 10

	// FallbackPort receives frames when no category port applies.
	FallbackPort = "out1"

	// ProviderUpstream defers classification to a connected model element
	// instead of calling an external API directly.
	ProviderUpstream = "api"

	classifyMaxTokens = 500
)

// CategoryPort names the output port for the 1-based category index.
func CategoryPort(i int) string {
	return fmt.Sprintf("category%d", i)
}

// Classifier is an element that labels incoming text frames with one of a
// configured set of categories and routes each frame to the port matching
// its label.
type Classifier struct {
	registry llm.Registry
	tracer   trace.Tracer
}

// NewClassifier builds a classifier that resolves providers through the
// given registry, falling back to per-call construction from settings.
func NewClassifier(registry llm.Registry) *Classifier {
	return &Classifier{
		registry: registry,
		tracer:   otel.Tracer("elements/classify"),
	}
}

func (c *Classifier) Name() string { return "classifier" }

// Run classifies the text carried by the incoming frame and emits a single
// derived frame on the matching category port. Classification metadata is
// overlaid on the frame's side channel; the payload passes through untouched.
func (c *Classifier) Run(ctx context.Context, ec *element.Context, in *frame.Frame) error {
	log := ec.Log()

	text, err := frame.ExtractText(in)
	if err != nil {
		log.Error("classifier received no usable text", "error", err)
		return err
	}

	cfg, err := FromSettings(ec.Settings)
	if err != nil {
		return err
	}

	ctx, span := c.tracer.Start(ctx, "classify.execute")
	defer span.End()

	log.Info("classifying text",
		"categories", strings.Join(cfg.Categories, ", "),
		"provider", cfg.Provider)

	result := c.classify(ctx, log, cfg, text)

	belowThreshold := result.Confidence < cfg.MinConfidence
	label := result.Category
	if belowThreshold {
		label = "uncertain"
	}

	log.Info("classification result",
		"category", label,
		"confidence", fmt.Sprintf("%.2f", result.Confidence))

	out := frame.Project(in, map[string]any{
		"classification":              label,
		"confidence":                  result.Confidence,
		"all_categories":              cfg.Categories,
		"raw_classification_response": result.RawResponse,
		"below_threshold":             belowThreshold,
	})

	port := routePort(result.Category, cfg.Categories, belowThreshold)
	if err := ec.Sink.Emit(port, out); err != nil {
		return types.WrapError(types.ELEMENT_EMIT_FAILED, "failed to emit classified frame", err)
	}
	return nil
}

// classify runs the model call, or the upstream/empty-response fallbacks.
func (c *Classifier) classify(ctx context.Context, log *slog.Logger, cfg *Config, text string) Result {
	if cfg.Provider == ProviderUpstream {
		return Result{
			Category:    cfg.Categories[0],
			Confidence:  0.7,
			RawResponse: "api provider requires an upstream model element",
			Categories:  cfg.Categories,
		}
	}

	prompt := BuildPrompt(text, cfg.Categories, cfg.SystemPrompt)

	response, err := c.complete(ctx, cfg, prompt)
	if err != nil {
		log.Warn("classification call failed, using fallback", "error", err)
		response = ""
	}
	if strings.TrimSpace(response) == "" {
		return Result{
			Category:    cfg.Categories[0],
			Confidence:  0.5,
			RawResponse: response,
			Categories:  cfg.Categories,
		}
	}

	return ParseResult(response, cfg.Categories)
}

func (c *Classifier) complete(ctx context.Context, cfg *Config, prompt string) (string, error) {
	provider, err := c.provider(cfg.Provider, cfg.APIKey)
	if err != nil {
		return "", err
	}

	resp, err := provider.Complete(ctx, llm.CompletionRequest{
		Messages:    []llm.Message{llm.NewUserMessage(prompt)},
		Temperature: cfg.Temperature,
		MaxTokens:   classifyMaxTokens,
	})
	if err != nil {
		return "", err
	}
	return resp.Message.Content, nil
}

// provider prefers a registered instance so harnesses can inject doubles,
// then falls back to building one from the element's own credentials.
func (c *Classifier) provider(name, apiKey string) (llm.Provider, error) {
	if c.registry != nil {
		if p, err := c.registry.Get(name); err == nil {
			return p, nil
		}
	}
	return providers.NewProvider(llm.ProviderConfig{
		Type:   llm.ProviderType(name),
		APIKey: apiKey,
	})
}

// routePort maps a category label to its 1-based output port. Unknown
// labels and below-threshold results fall back to the first port, and the
// index is capped at the smaller of the category count and MaxCategories.
func routePort(category string, categories []string, belowThreshold bool) string {
	index := 0
	for i, cat := range categories {
		if strings.EqualFold(cat, category) {
			index = i + 1
			break
		}
	}

	if index == 0 || belowThreshold {
		index = 1
	}
	if max := min(len(categories), MaxCategories); index > max {
		index = max
	}
	return CategoryPort(index)
}
