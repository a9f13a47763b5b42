// Package frame defines the unit of dataflow exchanged between pipeline
// elements. A Frame carries an optional media payload plus an open key-value
// side channel (OtherData) that elements use to pass structured data
// downstream.
package frame

import (
	"github.com/google/uuid"
)

// ROI describes a rectangular region of interest within a frame payload.
type ROI struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Frame is the unit of dataflow between elements.
//
// The payload fields (NDFrame, ROIs, ColorSpace, FrameID, Headers) are
// treated as immutable once attached to a frame and are shared by reference
// between derived frames. OtherData is the mutable side channel and is always
// copied, never aliased, when derived frames are produced, so that sibling
// outputs do not observe each other's mutations.
type Frame struct {
	// NDFrame is the optional numeric array payload.
	NDFrame []float64 `json:"ndframe,omitempty"`

	// ROIs is the optional list of regions of interest.
	ROIs []ROI `json:"rois,omitempty"`

	// ColorSpace tags the payload's color space (e.g. "RGB", "BGR").
	ColorSpace string `json:"color_space,omitempty"`

	// FrameID uniquely identifies the frame.
	FrameID string `json:"frame_id"`

	// Headers carries transport-level metadata.
	Headers map[string]string `json:"headers,omitempty"`

	// OtherData is the open side channel: string key to arbitrary value.
	OtherData map[string]any `json:"other_data,omitempty"`
}

// New creates a frame with a generated FrameID and the given side-channel
// data. The map is used as-is; callers hand over ownership.
func New(otherData map[string]any) *Frame {
	if otherData == nil {
		otherData = make(map[string]any)
	}
	return &Frame{
		FrameID:   uuid.New().String(),
		OtherData: otherData,
	}
}

// CopyOtherData returns a shallow copy of the frame's side-channel data.
// The returned map is safe to mutate without affecting the source frame.
func (f *Frame) CopyOtherData() map[string]any {
	out := make(map[string]any, len(f.OtherData))
	for k, v := range f.OtherData {
		out[k] = v
	}
	return out
}
