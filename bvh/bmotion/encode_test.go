package bmotion

import (
	"testing"

	"bvhkit/bvh/btoken"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeMotion(t *testing.T) {
	motion := Motion{
		FrameCount:   2,
		FrameTime:    0.033333,
		ChannelCount: 3,
		Values:       []float32{0, 0, 0, 1, 2.5, -3},
	}
	expected := "MOTION\nFrames: 2\nFrame Time: 0.033333\n0.0 0.0 0.0\n1.0 2.5 -3.0\n"
	assert.Equal(t, expected, string(EncodeMotion(motion, DefaultStyle)))
}

func TestEncodeMotion_Style(t *testing.T) {
	motion := Motion{
		FrameCount:   1,
		FrameTime:    1.0 / 120,
		ChannelCount: 2,
		Values:       []float32{1, 2},
	}
	style := Style{Newline: "\r\n", FrameTimePrecision: 7, Precision: 2}
	expected := "MOTION\r\nFrames: 1\r\nFrame Time: 0.0083333\r\n1.00 2.00\r\n"
	assert.Equal(t, expected, string(EncodeMotion(motion, style)))
}

func TestEncodeMotion_ZeroFrames(t *testing.T) {
	motion := Motion{FrameCount: 0, FrameTime: 0.1, ChannelCount: 6, Values: []float32{}}
	assert.Equal(t, "MOTION\nFrames: 0\nFrame Time: 0.1\n", string(EncodeMotion(motion, DefaultStyle)))
}

func TestEncodeMotion_RoundTrip(t *testing.T) {
	motion := Motion{
		FrameCount:   3,
		FrameTime:    1.0 / 30,
		ChannelCount: 2,
		Values:       []float32{0.1, -0.2, 1e-7, 123456.79, 3.1415927, -0},
	}
	decoded, err := DecodeMotion(btoken.NewLexer(EncodeMotion(motion, DefaultStyle)), 2)
	require.NoError(t, err)
	assert.Equal(t, motion, *decoded)
}
