// Package chain implements the multi-step prompt-chain engine: one input
// frame is decomposed into a linear pipeline of up to 10 configured steps,
// the output of each step threads into the next, each step dispatches to a
// configurable backend, and every step boundary yields an observable
// intermediate frame. A terminal frame carries the full execution history.
package chain

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/demersaj/elements/internal/element"
	"github.com/demersaj/elements/internal/frame"
	"github.com/demersaj/elements/internal/types"
)

// FinalPort is the output port carrying the terminal frame.
const FinalPort = "final"

// StepPort returns the output port name for the 1-based step index
// ("step1".."step10").
func StepPort(i int) string {
	return fmt.Sprintf("step%d", i)
}

// PendingLocalMarker is the literal placeholder emitted for a step whose
// backend is local: the output must come from an upstream-connected model the
// engine cannot invoke. Never empty, so downstream code can detect it.
func PendingLocalMarker(step int) string {
	return fmt.Sprintf("[Step %d output - requires LLM element]", step)
}

// NoOutputMarker is the literal placeholder substituted when a hosted
// provider fails or returns empty text, keeping the chain's {previous}
// substitution meaningful downstream.
func NoOutputMarker(step int) string {
	return fmt.Sprintf("[Step %d - no output]", step)
}

// StepRecord is one entry in the chain's cumulative audit trail. The JSON
// field names match the side-channel keys downstream consumers read.
type StepRecord struct {
	Step    int    `json:"step"`
	Prompt  string `json:"prompt"`
	Output  string `json:"output"`
	Backend string `json:"model"`
}

// Executor drives the chain state machine. State lives only for the duration
// of one input frame's processing; executions for distinct frames are wholly
// independent.
type Executor struct {
	dispatcher *Dispatcher
	tracer     trace.Tracer
}

// NewExecutor creates a chain executor with the given dispatcher.
func NewExecutor(dispatcher *Dispatcher) *Executor {
	return &Executor{
		dispatcher: dispatcher,
		tracer:     otel.Tracer("elements/chain"),
	}
}

// Name implements element.Element.
func (e *Executor) Name() string {
	return "chain"
}

// Run processes one input frame through the configured steps.
//
// Emission contract: zero or more step frames on step1..stepN in strict step
// order, then exactly one terminal frame on the final port. Fatal errors
// (invalid input, emit failures) propagate to the host after a log write, and
// suppress the terminal frame.
func (e *Executor) Run(ctx context.Context, ec *element.Context, in *frame.Frame) error {
	log := ec.Log()
	log.Info("starting prompt chain execution")

	inputText, err := ExtractInputText(in)
	if err != nil {
		log.Error("chain input rejected", "error", err)
		return err
	}

	cfg := FromSettings(ec.Settings)

	ctx, span := e.tracer.Start(ctx, "chain.execute",
		trace.WithAttributes(attribute.Int("chain.num_steps", cfg.NumSteps)))
	defer span.End()

	log.Info("executing chain", "num_steps", cfg.NumSteps)

	// Per-invocation execution state.
	var history []StepRecord
	previousOutput := ""
	currentInput := inputText

	for step := 1; step <= cfg.NumSteps; step++ {
		stepCfg := cfg.ResolveStep(step)
		if stepCfg.Unconfigured() {
			// Clean halt: prior step frames stay emitted, no record for
			// this step, terminal frame still follows.
			log.Warn("step prompt not configured, halting chain", "step", step)
			break
		}

		log.Info("executing step", "step", step, "backend", stepCfg.Backend)

		prompt := FormatPrompt(stepCfg.Prompt, currentInput, previousOutput)
		output := e.runStep(ctx, log, step, prompt, stepCfg)

		history = append(history, StepRecord{
			Step:    step,
			Prompt:  prompt,
			Output:  output,
			Backend: string(stepCfg.Backend),
		})

		stepFrame := frame.Project(in, map[string]any{
			"chain_step":    step,
			"chain_output":  output,
			"chain_prompt":  prompt,
			"chain_model":   string(stepCfg.Backend),
			"chain_history": snapshot(history),
		})

		if err := ec.Sink.Emit(StepPort(step), stepFrame); err != nil {
			wrapped := types.WrapError(types.CHAIN_EMIT_FAILED,
				fmt.Sprintf("failed to emit step %d frame", step), err)
			log.Error("chain emit failed", "step", step, "error", wrapped)
			return wrapped
		}

		previousOutput = output
		currentInput = output
	}

	finalOutput := previousOutput
	if finalOutput == "" {
		// No step ever ran; the terminal frame carries the original input.
		finalOutput = inputText
	}

	finalFrame := frame.Project(in, map[string]any{
		"chain_final_output": finalOutput,
		"chain_steps":        cfg.NumSteps,
		"chain_history":      snapshot(history),
		"chain_complete":     true,
	})

	if err := ec.Sink.Emit(FinalPort, finalFrame); err != nil {
		wrapped := types.WrapError(types.CHAIN_EMIT_FAILED, "failed to emit final frame", err)
		log.Error("chain emit failed", "port", FinalPort, "error", wrapped)
		return wrapped
	}

	log.Info("chain execution complete", "steps_run", len(history))
	return nil
}

// runStep obtains one step's output text. Backend failures and empty provider
// output are both recovered as the no-output marker; the local backend yields
// the pending marker. The returned text is never empty.
func (e *Executor) runStep(ctx context.Context, log *slog.Logger, step int, prompt string, cfg StepConfig) string {
	ctx, span := e.tracer.Start(ctx, "chain.step",
		trace.WithAttributes(
			attribute.Int("chain.step", step),
			attribute.String("chain.backend", string(cfg.Backend)),
		))
	defer span.End()

	result := e.dispatcher.Dispatch(ctx, prompt, cfg)

	switch result.Status {
	case StatusDeferred:
		log.Info("local backend requires upstream model, substituting pending marker", "step", step)
		return PendingLocalMarker(step)

	case StatusFailed:
		log.Warn("backend dispatch failed", "step", step, "diagnostic", result.Diagnostic)
		return NoOutputMarker(step)

	default:
		if result.Text == "" {
			log.Warn("step returned empty output", "step", step)
			return NoOutputMarker(step)
		}
		log.Info("step output received", "step", step, "backend", cfg.Backend)
		return result.Text
	}
}

// snapshot copies the history so frames emitted earlier never observe later
// appends.
func snapshot(history []StepRecord) []StepRecord {
	out := make([]StepRecord, len(history))
	copy(out, history)
	return out
}
