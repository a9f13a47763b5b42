package chain

import (
	"github.com/demersaj/elements/internal/frame"
	"github.com/demersaj/elements/internal/types"
)

// ExtractInputText pulls the chain's initial input text from a frame's side
// channel. A missing frame or blank input is a fatal input error: the chain
// produces no frames at all in that case.
func ExtractInputText(f *frame.Frame) (string, error) {
	text, err := frame.ExtractText(f)
	if err != nil {
		if types.CodeOf(err) == types.FRAME_INPUT_INVALID {
			return "", types.NewError(types.CHAIN_INPUT_INVALID, "no input text provided for chain")
		}
		return "", err
	}
	return text, nil
}

// IsInputError reports whether err is a fatal input error (missing frame or
// empty/unextractable input text).
func IsInputError(err error) bool {
	switch types.CodeOf(err) {
	case types.FRAME_MISSING, types.FRAME_INPUT_INVALID, types.CHAIN_INPUT_INVALID:
		return true
	default:
		return false
	}
}
