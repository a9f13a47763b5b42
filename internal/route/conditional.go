package route

import (
	"context"

	"gopkg.in/yaml.v3"

	"github.com/demersaj/elements/internal/element"
	"github.com/demersaj/elements/internal/frame"
	"github.com/demersaj/elements/internal/rules"
	"github.com/demersaj/elements/internal/types"
)

// Output ports for the conditional element.
const (
	TruePort  = "true"
	FalsePort = "false"
)

// Conditional is an element that forwards each frame unchanged to either the
// true or false port depending on whether every configured condition holds.
//
// The "condition" setting is a YAML list of conditions, for example:
//
//	- field: other_data.priority
//	  operator: eq
//	  value: high
//	- field: roi_count
//	  operator: gt
//	  value: 0
//
// An empty condition list is vacuously true.
type Conditional struct{}

func NewConditional() *Conditional { return &Conditional{} }

func (c *Conditional) Name() string { return "conditional" }

func (c *Conditional) Run(ctx context.Context, ec *element.Context, in *frame.Frame) error {
	if in == nil {
		return types.NewError(types.FRAME_MISSING, "received nil frame input")
	}

	conditions, err := parseConditions(ec.Settings.GetString("condition"))
	if err != nil {
		ec.Log().Error("invalid condition setting", "error", err)
		return err
	}

	result := true
	frameCtx := rules.FrameContext(in)
	for i := range conditions {
		ok, err := conditions[i].Evaluate(frameCtx)
		if err != nil {
			return types.WrapError(types.RULES_EVAL_FAILED, "condition evaluation failed", err)
		}
		if !ok {
			result = false
			break
		}
	}

	port := TruePort
	if !result {
		port = FalsePort
	}

	ec.Log().Info("condition evaluated", "result", result, "frame_id", in.FrameID)
	return ec.Sink.Emit(port, in)
}

// parseConditions decodes and validates the YAML condition list.
func parseConditions(source string) ([]rules.Condition, error) {
	var conditions []rules.Condition
	if err := yaml.Unmarshal([]byte(source), &conditions); err != nil {
		return nil, types.WrapError(types.RULES_PARSE_FAILED, "invalid condition list", err)
	}
	for i := range conditions {
		if err := conditions[i].Validate(); err != nil {
			return nil, types.WrapError(types.RULES_PARSE_FAILED, "invalid condition list", err)
		}
	}
	return conditions, nil
}
