// Package bvh stores the code to parse and write Biovision Hierarchy motion files.
//
// A File owns its joints as a pre-order slice (root at index 0, children
// referenced by index) and its samples as one frame-major buffer. The joint
// hierarchy cannot change after construction; the frame time and the sample
// values can.
package bvh

import (
	"math"
	"time"

	"bvhkit/bvh/bjoint"
	"bvhkit/bvh/bmotion"
	"bvhkit/ds"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

type (
	File struct {
		joints       []bjoint.Joint
		frameTime    float64
		frameCount   int
		channelCount int
		frames       []float32
	}
)

var (
	ErrFrameOutOfRange   = errors.New("frame index out of range")
	ErrChannelOutOfRange = errors.New("channel index out of range")
)

func newFile(hierarchy bjoint.Hierarchy, motion bmotion.Motion) *File {
	return &File{
		joints:       hierarchy.Joints,
		frameTime:    motion.FrameTime,
		frameCount:   motion.FrameCount,
		channelCount: hierarchy.ChannelCount,
		frames:       motion.Values,
	}
}

// Joints returns the joints in depth-first pre-order. The root is always first.
func (f *File) Joints() []bjoint.Joint {
	return lo.Map(f.joints, func(joint bjoint.Joint, _ int) bjoint.Joint { return cloneJoint(joint) })
}

func (f *File) NumJoints() int {
	return len(f.joints)
}

func (f *File) Root() bjoint.Joint {
	return cloneJoint(f.joints[0])
}

func (f *File) Joint(index int) (bjoint.Joint, bool) {
	if index < 0 || index >= len(f.joints) {
		return bjoint.Joint{}, false
	}
	return cloneJoint(f.joints[index]), true
}

// Parent returns the parent of the joint at index; false for the root.
func (f *File) Parent(index int) (bjoint.Joint, bool) {
	joint, ok := f.Joint(index)
	if !ok {
		return bjoint.Joint{}, false
	}
	return f.Joint(joint.Parent)
}

func (f *File) Children(index int) []bjoint.Joint {
	joint, ok := f.Joint(index)
	if !ok {
		return nil
	}
	children := make([]bjoint.Joint, 0, len(joint.Children))
	for _, child := range joint.Children {
		children = append(children, cloneJoint(f.joints[child]))
	}
	return children
}

// JointByName returns the first joint in pre-order with the given name.
func (f *File) JointByName(name string) (int, bjoint.Joint, bool) {
	for i, joint := range f.joints {
		if joint.Name == name {
			return i, cloneJoint(joint), true
		}
	}
	return -1, bjoint.Joint{}, false
}

// cloneJoint copies the slices and the end site so callers cannot reach into
// the hierarchy of a File.
func cloneJoint(joint bjoint.Joint) bjoint.Joint {
	joint.Channels = ds.ShallowCopy(joint.Channels)
	joint.Children = ds.ShallowCopy(joint.Children)
	if joint.EndSite != nil {
		endSite := *joint.EndSite
		joint.EndSite = &endSite
	}
	return joint
}

// Channels returns every channel of the file in column order.
func (f *File) Channels() []bjoint.Channel {
	channels := make([]bjoint.Channel, 0, f.channelCount)
	for _, joint := range f.joints {
		channels = append(channels, joint.Channels...)
	}
	return channels
}

// FrameTime is the interval between frames, in seconds.
func (f *File) FrameTime() float64 {
	return f.frameTime
}

// SetFrameTime is not synchronized; callers sharing a File across goroutines
// must guard it.
func (f *File) SetFrameTime(frameTime float64) {
	f.frameTime = frameTime
}

func (f *File) FrameCount() int {
	return f.frameCount
}

func (f *File) ChannelCount() int {
	return f.channelCount
}

// Duration is FrameCount × FrameTime.
func (f *File) Duration() time.Duration {
	seconds := float64(f.frameCount) * f.frameTime
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return 0
	}
	return time.Duration(seconds * float64(time.Second))
}

// Frame returns a copy of one row of samples.
func (f *File) Frame(frame int) ([]float32, bool) {
	if frame < 0 || frame >= f.frameCount {
		return nil, false
	}
	start := frame * f.channelCount
	return ds.ShallowCopy(f.frames[start : start+f.channelCount]), true
}

// Frames returns a copy of all samples, one slice per frame.
func (f *File) Frames() [][]float32 {
	frames := make([][]float32, 0, f.frameCount)
	for i := 0; i < f.frameCount; i++ {
		frame, _ := f.Frame(i)
		frames = append(frames, frame)
	}
	return frames
}

func (f *File) Sample(frame int, channel bjoint.Channel) (float32, bool) {
	if frame < 0 || frame >= f.frameCount || channel.Index < 0 || channel.Index >= f.channelCount {
		return 0, false
	}
	return f.frames[frame*f.channelCount+channel.Index], true
}

func (f *File) SetSample(frame int, channel bjoint.Channel, value float32) error {
	if frame < 0 || frame >= f.frameCount {
		return errors.Wrapf(ErrFrameOutOfRange, "SetSample: frame %d of %d", frame, f.frameCount)
	}
	if channel.Index < 0 || channel.Index >= f.channelCount {
		return errors.Wrapf(ErrChannelOutOfRange, "SetSample: channel %d of %d", channel.Index, f.channelCount)
	}
	if hasNaNPayload32(value) {
		return errors.Wrapf(ErrNaNPayload, "SetSample: frame %d channel %d", frame, channel.Index)
	}
	f.frames[frame*f.channelCount+channel.Index] = value
	return nil
}

func (f *File) motion() bmotion.Motion {
	return bmotion.Motion{
		FrameCount:   f.frameCount,
		FrameTime:    f.frameTime,
		ChannelCount: f.channelCount,
		Values:       f.frames,
	}
}
