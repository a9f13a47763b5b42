package chain

import (
	"fmt"
	"strings"

	"github.com/demersaj/elements/internal/element"
)

// Chain limits and defaults, part of the element's settings contract.
const (
	MinSteps = 1
	MaxSteps = 10

	DefaultNumSteps    = 2
	DefaultTemperature = 0.7
)

// Backend identifies the text-generation target for a step.
type Backend string

const (
	// BackendLocal defers to an upstream-connected model in another pipeline
	// stage; the engine has no direct call path to it.
	BackendLocal Backend = "local"

	BackendOpenAI    Backend = "openai"
	BackendAnthropic Backend = "anthropic"
)

// ParseBackend maps a settings value onto a Backend. Unknown values fall back
// to BackendLocal, the documented default.
func ParseBackend(s string) Backend {
	switch Backend(strings.ToLower(strings.TrimSpace(s))) {
	case BackendOpenAI:
		return BackendOpenAI
	case BackendAnthropic:
		return BackendAnthropic
	default:
		return BackendLocal
	}
}

// StepConfig holds the four independent settings of one chain step.
type StepConfig struct {
	Prompt      string
	Backend     Backend
	APIKey      string
	Temperature float64
}

// Unconfigured reports whether the step lacks a usable prompt template.
// An unconfigured step halts the chain before execution; it is never
// skipped-and-continued.
func (s StepConfig) Unconfigured() bool {
	return strings.TrimSpace(s.Prompt) == ""
}

// Config is the resolved chain configuration: a declared step count plus an
// indexed sequence of step configurations. Steps beyond NumSteps are never
// read.
type Config struct {
	NumSteps int
	Steps    [MaxSteps]StepConfig
}

// FromSettings builds a Config from the host settings store, resolving every
// step once per invocation. Missing optional fields take their documented
// defaults: backend local, credential empty, temperature 0.7. NumSteps is
// clamped to [MinSteps, MaxSteps].
func FromSettings(s *element.Settings) Config {
	numSteps := DefaultNumSteps
	if s.IsSet("num_steps") {
		numSteps = s.GetInt("num_steps")
	}
	if numSteps < MinSteps {
		numSteps = MinSteps
	}
	if numSteps > MaxSteps {
		numSteps = MaxSteps
	}

	cfg := Config{NumSteps: numSteps}
	for i := 1; i <= MaxSteps; i++ {
		step := StepConfig{
			Prompt:      s.GetString(stepKey(i, "prompt")),
			Backend:     BackendLocal,
			Temperature: DefaultTemperature,
		}

		if s.IsSet(stepKey(i, "model")) {
			step.Backend = ParseBackend(s.GetString(stepKey(i, "model")))
		}
		step.APIKey = s.GetString(stepKey(i, "api_key"))
		if s.IsSet(stepKey(i, "temperature")) {
			step.Temperature = clampTemperature(s.GetFloat64(stepKey(i, "temperature")))
		}

		cfg.Steps[i-1] = step
	}

	return cfg
}

// ResolveStep returns the configuration for the 1-based step index. Indexes
// outside [1, MaxSteps] resolve to an unconfigured step.
func (c Config) ResolveStep(i int) StepConfig {
	if i < 1 || i > MaxSteps {
		return StepConfig{Backend: BackendLocal, Temperature: DefaultTemperature}
	}
	return c.Steps[i-1]
}

func stepKey(i int, field string) string {
	return fmt.Sprintf("step%d_%s", i, field)
}

func clampTemperature(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
