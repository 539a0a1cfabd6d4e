package bmotion

import (
	"math"
	"testing"

	"bvhkit/bvh/btoken"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(src string, channelCount int) (*Motion, error) {
	return DecodeMotion(btoken.NewLexer([]byte(src)), channelCount)
}

func TestDecodeMotion(t *testing.T) {
	motion, err := decode("MOTION\nFrames: 2\nFrame Time: 0.033333\n0.0 0.0 0.0\n1.0 2.0 3.0\n", 3)
	require.NoError(t, err)

	assert.Equal(t, 2, motion.FrameCount)
	assert.Equal(t, 3, motion.ChannelCount)
	assert.Equal(t, 0.033333, motion.FrameTime)
	assert.Equal(t, []float32{0, 0, 0, 1, 2, 3}, motion.Values)
}

func TestDecodeMotion_HeaderVariants(t *testing.T) {
	for _, src := range []string{
		"MOTION Frames: 1 Frame Time: 8.3333e-3\n1 2",
		"MOTION\r\nFrames : 1\r\nFrame Time : 0.0083333\r\n1 2\r\n",
		"MOTION\nFrames 1\nFrame Time 0.0083333\n\n\n1 2\n\n\n",
		"MOTION\nFrames:1\nFrame Time:0.0083333\n1 2\n",
		"MOTION\nFrames :1\nFrame Time :0.0083333\n1 2\n",
	} {
		motion, err := decode(src, 2)
		require.NoError(t, err, src)
		assert.InDelta(t, 0.0083333, motion.FrameTime, 1e-12, src)
		assert.Equal(t, []float32{1, 2}, motion.Values, src)
	}
}

func TestDecodeMotion_ZeroFrames(t *testing.T) {
	motion, err := decode("MOTION\nFrames: 0\nFrame Time: 0.1\n", 6)
	require.NoError(t, err)
	assert.Equal(t, 0, motion.FrameCount)
	assert.Equal(t, 6, motion.ChannelCount)
	assert.Empty(t, motion.Values)
}

func TestDecodeMotion_ZeroChannels(t *testing.T) {
	motion, err := decode("MOTION\nFrames: 3\nFrame Time: 0.1\n", 0)
	require.NoError(t, err)
	assert.Equal(t, 3, motion.FrameCount)
	assert.Empty(t, motion.Values)
}

func TestDecodeMotion_StopsAfterLastRow(t *testing.T) {
	lexer := btoken.NewLexer([]byte("MOTION\nFrames: 1\nFrame Time: 0.1\n1 2\ntrailing text\n"))
	motion, err := DecodeMotion(lexer, 2)
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 2}, motion.Values)

	token, err := lexer.Next()
	require.NoError(t, err)
	assert.Equal(t, "trailing", token.Text)
}

func TestDecodeMotion_ColumnMismatch(t *testing.T) {
	tests := map[string]struct {
		in       string
		expected MotionParseError
	}{
		"short row": {
			in: "MOTION\nFrames: 2\nFrame Time: 0.1\n1 2 3 4 5 6\n1 2 3 4 5\n",
			expected: MotionParseError{
				Line: 5, Frame: 1, ExpectedColumns: 6, FoundColumns: 5,
			},
		},
		"long row": {
			in: "MOTION\nFrames: 1\nFrame Time: 0.1\n1 2 3 4 5 6 7 8\n",
			expected: MotionParseError{
				Line: 4, Frame: 0, ExpectedColumns: 6, FoundColumns: 8,
			},
		},
	}
	for name, test := range tests {
		_, err := decode(test.in, 6)
		parseErr := MotionParseError{}
		require.True(t, errors.As(err, &parseErr), name)
		assert.Equal(t, test.expected, parseErr, name)
	}
}

func TestDecodeMotion_MissingRows(t *testing.T) {
	_, err := decode("MOTION\nFrames: 3\nFrame Time: 0.1\n1 2\n", 2)
	parseErr := MotionParseError{}
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, 1, parseErr.Frame)
	assert.Contains(t, parseErr.Error(), "after 1 of 3 frames")
}

func TestDecodeMotion_MissingHeaders(t *testing.T) {
	for _, src := range []string{
		"",
		"Frames: 1\nFrame Time: 0.1\n1\n",
		"MOTION\nFrame Time: 0.1\n1\n",
		"MOTION\nFrames: 1\n1\n",
		"MOTION\nFrames: 1\nFrame 0.1\n1\n",
	} {
		_, err := decode(src, 1)
		parseErr := MotionParseError{}
		require.True(t, errors.As(err, &parseErr), src)
		assert.Equal(t, -1, parseErr.Frame, src)
	}
}

func TestDecodeMotion_NumberFormat(t *testing.T) {
	for _, src := range []string{
		"MOTION\nFrames: x\nFrame Time: 0.1\n1\n",
		"MOTION\nFrames: 1.5\nFrame Time: 0.1\n1\n",
		"MOTION\nFrames: 1\nFrame Time: fast\n1\n",
		"MOTION\nFrames: 1\nFrame Time: 0.1\n1 abc\n",
		"MOTION\nFrames: 1\nFrame Time: 0.1\n1 {\n",
	} {
		_, err := decode(src, 2)
		assert.ErrorAs(t, err, &btoken.NumberFormatError{}, src)
	}
}

func TestDecodeMotion_SpecialValues(t *testing.T) {
	motion, err := decode("MOTION\nFrames: 1\nFrame Time: 0.1\nNaN -Inf 1e-3\n", 3)
	require.NoError(t, err)
	require.Len(t, motion.Values, 3)
	assert.True(t, math.IsNaN(float64(motion.Values[0])))
	assert.True(t, math.IsInf(float64(motion.Values[1]), -1))
	assert.Equal(t, float32(0.001), motion.Values[2])
}
