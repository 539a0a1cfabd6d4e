package bvh

import (
	"fmt"
	"math"

	"bvhkit/bvh/bjoint"
)

// Equal compares the full joint trees and every sample. Floats are compared
// bit for bit, so NaN equals an identical NaN and 0 differs from -0.
func Equal(a *File, b *File) bool {
	if a == nil || b == nil {
		return a == b
	}
	if math.Float64bits(a.frameTime) != math.Float64bits(b.frameTime) ||
		a.frameCount != b.frameCount ||
		a.channelCount != b.channelCount ||
		len(a.joints) != len(b.joints) ||
		len(a.frames) != len(b.frames) {
		return false
	}
	for i := range a.joints {
		if !jointEqual(a.joints[i], b.joints[i]) {
			return false
		}
	}
	for i := range a.frames {
		if math.Float32bits(a.frames[i]) != math.Float32bits(b.frames[i]) {
			return false
		}
	}
	return true
}

func (f *File) Equal(other *File) bool {
	return Equal(f, other)
}

func jointEqual(a bjoint.Joint, b bjoint.Joint) bool {
	if a.Name != b.Name ||
		a.Depth != b.Depth ||
		a.Parent != b.Parent ||
		!pointEqual(a.Offset, b.Offset) ||
		len(a.Channels) != len(b.Channels) ||
		len(a.Children) != len(b.Children) {
		return false
	}
	if (a.EndSite == nil) != (b.EndSite == nil) {
		return false
	}
	if a.EndSite != nil && !pointEqual(*a.EndSite, *b.EndSite) {
		return false
	}
	for i := range a.Channels {
		if a.Channels[i] != b.Channels[i] {
			return false
		}
	}
	for i := range a.Children {
		if a.Children[i] != b.Children[i] {
			return false
		}
	}
	return true
}

func pointEqual(a bjoint.Point, b bjoint.Point) bool {
	return math.Float32bits(a.X) == math.Float32bits(b.X) &&
		math.Float32bits(a.Y) == math.Float32bits(b.Y) &&
		math.Float32bits(a.Z) == math.Float32bits(b.Z)
}

// FirstDifference describes the first mismatch Equal would stop at, in
// reading order: joints, then the motion header, then samples. It returns ""
// for equal files.
func FirstDifference(a *File, b *File) string {
	if a == nil || b == nil {
		if a == b {
			return ""
		}
		return "one file is missing"
	}
	if len(a.joints) != len(b.joints) {
		return fmt.Sprintf("joint count: %d != %d", len(a.joints), len(b.joints))
	}
	for i := range a.joints {
		if !jointEqual(a.joints[i], b.joints[i]) {
			return fmt.Sprintf("joint %d: %q != %q", i, describeJoint(a.joints[i]), describeJoint(b.joints[i]))
		}
	}
	if a.channelCount != b.channelCount {
		return fmt.Sprintf("channel count: %d != %d", a.channelCount, b.channelCount)
	}
	if math.Float64bits(a.frameTime) != math.Float64bits(b.frameTime) {
		return fmt.Sprintf("frame time: %v != %v", a.frameTime, b.frameTime)
	}
	if a.frameCount != b.frameCount {
		return fmt.Sprintf("frame count: %d != %d", a.frameCount, b.frameCount)
	}
	for i := range a.frames {
		if math.Float32bits(a.frames[i]) != math.Float32bits(b.frames[i]) {
			return fmt.Sprintf(
				"frame %d, channel %d: %v != %v",
				i/a.channelCount, i%a.channelCount, a.frames[i], b.frames[i],
			)
		}
	}
	return ""
}

func describeJoint(joint bjoint.Joint) string {
	description := fmt.Sprintf(
		"%s parent=%d children=%v %s %s",
		joint.Name,
		joint.Parent,
		joint.Children,
		bjoint.EncodeOffset(joint.Offset, -1),
		bjoint.EncodeChannels(joint.Channels),
	)
	if joint.EndSite != nil {
		description += " End Site " + bjoint.EncodeOffset(*joint.EndSite, -1)
	}
	return description
}
