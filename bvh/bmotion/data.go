package bmotion

type (
	// Motion is the decoded MOTION section. Values holds FrameCount rows of
	// ChannelCount samples each, row-major.
	Motion struct {
		FrameCount   int       `json:"frame_count"`
		FrameTime    float64   `json:"frame_time"`
		ChannelCount int       `json:"channel_count"`
		Values       []float32 `json:"values"`
	}
)

// maxPreallocatedValues bounds the up-front allocation driven by the declared
// frame count, which is not trusted until the rows are read.
const maxPreallocatedValues = 1 << 20
