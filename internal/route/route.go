// Package route implements frame routing elements: a two-way conditional
// and an N-way router, both driven by declarative rules evaluated against
// the frame's metadata.
package route

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// MinOutputs and MaxOutputs bound the router's output port count.
	MinOutputs = 2
	MaxOutputs = 10

	// DefaultNumOutputs is used when num_outputs is unset.
	DefaultNumOutputs = 2
)

// RoutePort names the output port for the 1-based route number.
func RoutePort(i int) string {
	return fmt.Sprintf("route%d", i)
}

// NormalizeRoute maps a loosely-typed route identifier onto a port name.
// Strings may be "routeN" or a bare number; integers are clamped into
// [1, numOutputs]; booleans pick route1 (true) or route2 (false). Anything
// unrecognized falls back to route1.
func NormalizeRoute(value any, numOutputs int) string {
	switch v := value.(type) {
	case string:
		s := strings.ToLower(strings.TrimSpace(v))
		if rest, ok := strings.CutPrefix(s, "route"); ok {
			if n, err := strconv.Atoi(rest); err == nil && n >= 1 && n <= numOutputs {
				return RoutePort(n)
			}
			return RoutePort(1)
		}
		if n, err := strconv.Atoi(s); err == nil && n >= 1 && n <= numOutputs {
			return RoutePort(n)
		}
		return RoutePort(1)

	case bool:
		if !v && numOutputs >= 2 {
			return RoutePort(2)
		}
		return RoutePort(1)

	case int:
		return clampedPort(v, numOutputs)
	case int64:
		return clampedPort(int(v), numOutputs)
	case float64:
		return clampedPort(int(v), numOutputs)

	default:
		return RoutePort(1)
	}
}

func clampedPort(n, numOutputs int) string {
	if n < 1 {
		return RoutePort(1)
	}
	if n > numOutputs {
		return RoutePort(numOutputs)
	}
	return RoutePort(n)
}

// ClampOutputs forces a configured output count into [MinOutputs, MaxOutputs].
func ClampOutputs(n int) int {
	if n < MinOutputs {
		return MinOutputs
	}
	if n > MaxOutputs {
		return MaxOutputs
	}
	return n
}
