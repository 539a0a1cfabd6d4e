package bvh

import (
	"math"
	"testing"
	"time"

	"bvhkit/bvh/bjoint"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFile_Navigation(t *testing.T) {
	f := mustParseFile(t, "testdata/fingers.bvh")

	_, ok := f.Parent(0)
	assert.False(t, ok)

	index, tip2, ok := f.JointByName("Tip2")
	require.True(t, ok)
	assert.Equal(t, 4, index)
	assert.Equal(t, 2, tip2.Depth)

	parent, ok := f.Parent(index)
	require.True(t, ok)
	assert.Equal(t, "Middle2", parent.Name)

	assert.Equal(
		t,
		[]string{"Middle1", "Middle2"},
		lo.Map(f.Children(0), func(joint bjoint.Joint, _ int) string { return joint.Name }),
	)
	assert.Empty(t, f.Children(index))
	assert.Nil(t, f.Children(99))

	_, _, ok = f.JointByName("Missing")
	assert.False(t, ok)
	_, ok = f.Joint(-1)
	assert.False(t, ok)
}

func TestFile_JointsIsACopy(t *testing.T) {
	f := mustParseFile(t, "testdata/fingers.bvh")
	want := Encode(f)

	joints := f.Joints()
	joints[0].Name = "Changed"
	joints[0].Channels[0].Index = 99
	joints[0].Children[0] = 4
	joints[2].EndSite.Z = 1234

	root := f.Root()
	root.Channels[1].Type = bjoint.XRotation
	root.Children[1] = 2

	middle1, _ := f.Joint(1)
	middle1.Children[0] = 3
	children := f.Children(1)
	children[0].EndSite.X = -1
	middle2, _ := f.Parent(4)
	middle2.Channels[0].Index = 0
	_, tip1, _ := f.JointByName("Tip1")
	tip1.EndSite.Y = 77

	assert.Equal(t, "Base", f.Root().Name)
	assert.True(t, Equal(f, mustParseFile(t, "testdata/fingers.bvh")))
	assert.Equal(t, string(want), string(Encode(f)))
}

func TestFile_Channels(t *testing.T) {
	f := mustParseFile(t, "testdata/fingers.bvh")
	channels := f.Channels()

	require.Len(t, channels, f.ChannelCount())
	for i, channel := range channels {
		assert.Equal(t, i, channel.Index)
	}
	assert.Equal(t, bjoint.ZRotation, channels[3].Type)
}

func TestFile_Samples(t *testing.T) {
	f := mustParseFile(t, "testdata/fingers.bvh")
	_, tip1, _ := f.JointByName("Tip1")
	channel := tip1.Channels[1]

	sample, ok := f.Sample(2, channel)
	require.True(t, ok)
	assert.Equal(t, float32(2), sample)

	require.NoError(t, f.SetSample(2, channel, -7.5))
	sample, _ = f.Sample(2, channel)
	assert.Equal(t, float32(-7.5), sample)

	frame, ok := f.Frame(2)
	require.True(t, ok)
	assert.Equal(t, float32(-7.5), frame[channel.Index])
	frame[channel.Index] = 100
	sample, _ = f.Sample(2, channel)
	assert.Equal(t, float32(-7.5), sample)

	_, ok = f.Sample(3, channel)
	assert.False(t, ok)
	_, ok = f.Frame(-1)
	assert.False(t, ok)
	assert.ErrorIs(t, f.SetSample(3, channel, 0), ErrFrameOutOfRange)
	assert.ErrorIs(t, f.SetSample(0, bjoint.Channel{Index: 18}, 0), ErrChannelOutOfRange)

	assert.Len(t, f.Frames(), 3)
}

func TestFile_Timing(t *testing.T) {
	f := mustParseFile(t, "testdata/simple.bvh")
	assert.Equal(t, 0.033333, f.FrameTime())
	assert.InDelta(t, float64(66666*time.Microsecond), float64(f.Duration()), 1)

	f.SetFrameTime(0.5)
	assert.Equal(t, time.Second, f.Duration())

	f.SetFrameTime(math.Inf(1))
	assert.Equal(t, time.Duration(0), f.Duration())
}
