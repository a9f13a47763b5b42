package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/demersaj/elements/internal/frame"
)

func testCtx() map[string]any {
	return map[string]any{
		"roi_count":   3,
		"color_space": "RGB",
		"other_data": map[string]any{
			"value":    10,
			"label":    "person detected",
			"tags":     []any{"indoor", "day"},
			"priority": 0.8,
		},
	}
}

func TestCondition_Evaluate(t *testing.T) {
	tests := []struct {
		name string
		cond Condition
		want bool
	}{
		{"eq int", Condition{Field: "other_data.value", Operator: OpEqual, Value: 10}, true},
		{"eq int mismatch", Condition{Field: "other_data.value", Operator: OpEqual, Value: 11}, false},
		{"eq cross-numeric", Condition{Field: "other_data.value", Operator: OpEqual, Value: 10.0}, true},
		{"eq string", Condition{Field: "color_space", Operator: OpEqual, Value: "RGB"}, true},
		{"ne", Condition{Field: "color_space", Operator: OpNotEqual, Value: "BGR"}, true},
		{"gt", Condition{Field: "roi_count", Operator: OpGreater, Value: 2}, true},
		{"gt false", Condition{Field: "roi_count", Operator: OpGreater, Value: 5}, false},
		{"lt", Condition{Field: "other_data.priority", Operator: OpLess, Value: 1}, true},
		{"gte boundary", Condition{Field: "roi_count", Operator: OpGreaterEq, Value: 3}, true},
		{"lte boundary", Condition{Field: "roi_count", Operator: OpLessEq, Value: 3}, true},
		{"contains substring", Condition{Field: "other_data.label", Operator: OpContains, Value: "person"}, true},
		{"contains slice element", Condition{Field: "other_data.tags", Operator: OpContains, Value: "indoor"}, true},
		{"contains slice miss", Condition{Field: "other_data.tags", Operator: OpContains, Value: "night"}, false},
		{"exists", Condition{Field: "other_data.value", Operator: OpExists}, true},
		{"exists miss", Condition{Field: "other_data.absent", Operator: OpExists}, false},
		{"not_exists", Condition{Field: "other_data.absent", Operator: OpNotExists}, true},
		{"missing field fails comparison", Condition{Field: "other_data.absent", Operator: OpEqual, Value: 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.cond.Evaluate(testCtx())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCondition_Evaluate_Errors(t *testing.T) {
	t.Run("invalid operator", func(t *testing.T) {
		c := Condition{Field: "roi_count", Operator: "matches", Value: 1}
		_, err := c.Evaluate(testCtx())
		assert.Error(t, err)
	})

	t.Run("numeric comparison on string", func(t *testing.T) {
		c := Condition{Field: "color_space", Operator: OpGreater, Value: 1}
		_, err := c.Evaluate(testCtx())
		assert.Error(t, err)
	})

	t.Run("contains on number", func(t *testing.T) {
		c := Condition{Field: "roi_count", Operator: OpContains, Value: 1}
		_, err := c.Evaluate(testCtx())
		assert.Error(t, err)
	})
}

func TestCondition_Validate(t *testing.T) {
	assert.NoError(t, (&Condition{Field: "x", Operator: OpEqual, Value: 1}).Validate())
	assert.Error(t, (&Condition{Field: "", Operator: OpEqual}).Validate())
	assert.Error(t, (&Condition{Field: "x", Operator: "regex"}).Validate())
}

func TestResolvePath(t *testing.T) {
	ctx := testCtx()

	v, ok := ResolvePath(ctx, "other_data.value")
	require.True(t, ok)
	assert.Equal(t, 10, v)

	_, ok = ResolvePath(ctx, "other_data.value.deeper")
	assert.False(t, ok)

	_, ok = ResolvePath(ctx, "")
	assert.False(t, ok)

	v, ok = ResolvePath(ctx, "other_data")
	require.True(t, ok)
	assert.IsType(t, map[string]any{}, v)
}

func TestFrameContext(t *testing.T) {
	f := &frame.Frame{
		FrameID:    "f-1",
		ColorSpace: "BGR",
		ROIs:       []frame.ROI{{}, {}},
		Headers:    map[string]string{"source": "cam"},
		OtherData:  map[string]any{"value": 5},
	}

	ctx := FrameContext(f)
	assert.Equal(t, "f-1", ctx["frame_id"])
	assert.Equal(t, 2, ctx["roi_count"])

	v, ok := ResolvePath(ctx, "headers.source")
	require.True(t, ok)
	assert.Equal(t, "cam", v)

	v, ok = ResolvePath(ctx, "other_data.value")
	require.True(t, ok)
	assert.Equal(t, 5, v)
}
