package frame

// Project builds a derived frame from source. The payload fields are carried
// over by reference; the side channel is shallow-copied and then overlay is
// merged in, with overlay keys winning on collision.
//
// The returned frame shares no mutable side-channel state with the source or
// with any other frame previously projected from it.
func Project(source *Frame, overlay map[string]any) *Frame {
	data := source.CopyOtherData()
	for k, v := range overlay {
		data[k] = v
	}

	return &Frame{
		NDFrame:    source.NDFrame,
		ROIs:       source.ROIs,
		ColorSpace: source.ColorSpace,
		FrameID:    source.FrameID,
		Headers:    source.Headers,
		OtherData:  data,
	}
}
