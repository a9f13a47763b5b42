package route

import (
	"context"

	"github.com/demersaj/elements/internal/element"
	"github.com/demersaj/elements/internal/frame"
	"github.com/demersaj/elements/internal/rules"
	"github.com/demersaj/elements/internal/types"
)

// Router is an element that forwards each frame unchanged to one of N output
// ports (route1 through routeN, N in [2, 10]) by evaluating a rule set
// against the frame's metadata.
//
// The "routing_rules" setting is a YAML rule set:
//
//	rules:
//	  - all:
//	      - field: other_data.kind
//	        operator: eq
//	        value: alert
//	    route: 2
//	default: 1
//
// With no rule set configured, frames go to the "default_route" setting if
// present, otherwise route1. default_route accepts loose identifiers
// ("route2", "2", 2, false) and is normalized into the port range.
type Router struct {
	cache *rules.Cache
}

// NewRouter builds a router. The cache may be nil, in which case rule sets
// are re-parsed on every frame.
func NewRouter(cache *rules.Cache) *Router {
	return &Router{cache: cache}
}

func (r *Router) Name() string { return "routing" }

func (r *Router) Run(ctx context.Context, ec *element.Context, in *frame.Frame) error {
	if in == nil {
		return types.NewError(types.FRAME_MISSING, "received nil frame input")
	}

	numOutputs := DefaultNumOutputs
	if ec.Settings.IsSet("num_outputs") {
		numOutputs = ClampOutputs(ec.Settings.GetInt("num_outputs"))
	}

	port := RoutePort(1)
	if source := ec.Settings.GetString("routing_rules"); source != "" {
		rs, err := r.ruleSet(source, numOutputs)
		if err != nil {
			ec.Log().Error("invalid routing rules", "error", err)
			return err
		}

		routeNum, err := rs.Evaluate(rules.FrameContext(in))
		if err != nil {
			return types.WrapError(types.RULES_EVAL_FAILED, "routing evaluation failed", err)
		}
		port = RoutePort(routeNum)
	} else if ec.Settings.IsSet("default_route") {
		port = NormalizeRoute(ec.Settings.GetString("default_route"), numOutputs)
	}

	ec.Log().Info("routing frame", "port", port, "outputs", numOutputs, "frame_id", in.FrameID)
	return ec.Sink.Emit(port, in)
}

func (r *Router) ruleSet(source string, maxRoute int) (*rules.RuleSet, error) {
	if r.cache != nil {
		return r.cache.Get(source, maxRoute)
	}
	return rules.ParseRuleSet(source, maxRoute)
}
