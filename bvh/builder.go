package bvh

import (
	"math"

	"bvhkit/bvh/bjoint"
	"bvhkit/bvh/btoken"
	"bvhkit/ds"
	"github.com/pkg/errors"
)

var (
	ErrInvalidJointName = errors.New("invalid joint name")
	ErrNoOpenJoint      = errors.New("no open joint")
	ErrEndSiteNotLast   = errors.New("end site must be the last entry of a joint")
	ErrRowWidth         = errors.New("frame row width does not match the channel count")
	ErrNaNPayload       = errors.New("NaN with a payload cannot be written as text")
)

// Builder assembles a File in declaration order, the same order a parser
// would see: Push opens a child of the current joint, Pop closes it. Channel
// indexes are assigned as joints are pushed. The first error is kept and
// returned by Build.
type Builder struct {
	joints      []bjoint.Joint
	open        *ds.Stack[int]
	nextChannel int
	frameTime   float64
	rows        [][]float32
	err         error
}

func NewBuilder(rootName string, offset bjoint.Point, channelTypes ...bjoint.ChannelType) *Builder {
	b := &Builder{open: ds.NewStack[int]()}
	b.addJoint(-1, rootName, offset, channelTypes)
	return b
}

func (b *Builder) addJoint(parent int, name string, offset bjoint.Point, channelTypes []bjoint.ChannelType) {
	if b.err != nil {
		return
	}
	if err := ValidateJointName(name); err != nil {
		b.err = err
		return
	}

	depth := 0
	if parent >= 0 {
		if b.joints[parent].EndSite != nil {
			b.err = errors.Wrapf(ErrEndSiteNotLast, "Builder.Push %q under %q", name, b.joints[parent].Name)
			return
		}
		depth = b.joints[parent].Depth + 1
	}

	channels := make([]bjoint.Channel, 0, len(channelTypes))
	for _, channelType := range channelTypes {
		channels = append(channels, bjoint.Channel{Type: channelType, Index: b.nextChannel})
		b.nextChannel++
	}

	index := len(b.joints)
	b.joints = append(b.joints, bjoint.Joint{
		Name:     name,
		Offset:   offset,
		Channels: channels,
		Depth:    depth,
		Parent:   parent,
		Children: []int{},
	})
	if parent >= 0 {
		b.joints[parent].Children = append(b.joints[parent].Children, index)
	}
	b.open.Push(index)
}

// Push adds a child to the current joint and makes it current.
func (b *Builder) Push(name string, offset bjoint.Point, channelTypes ...bjoint.ChannelType) *Builder {
	if b.err != nil {
		return b
	}
	parent, ok := b.open.TryPeek()
	if !ok {
		b.err = errors.Wrapf(ErrNoOpenJoint, "Builder.Push %q", name)
		return b
	}
	b.addJoint(parent, name, offset, channelTypes)
	return b
}

// EndSite sets the end site of the current joint. No children can be pushed
// under it afterwards.
func (b *Builder) EndSite(offset bjoint.Point) *Builder {
	if b.err != nil {
		return b
	}
	current, ok := b.open.TryPeek()
	if !ok {
		b.err = errors.Wrap(ErrNoOpenJoint, "Builder.EndSite")
		return b
	}
	if b.joints[current].EndSite != nil {
		b.err = errors.Wrapf(ErrEndSiteNotLast, "Builder.EndSite on %q", b.joints[current].Name)
		return b
	}
	endSite := offset
	b.joints[current].EndSite = &endSite
	return b
}

// Pop closes the current joint; its parent becomes current.
func (b *Builder) Pop() *Builder {
	if b.err != nil {
		return b
	}
	if b.open.Len() == 0 {
		b.err = errors.Wrap(ErrNoOpenJoint, "Builder.Pop")
		return b
	}
	b.open.Pop()
	return b
}

func (b *Builder) FrameTime(frameTime float64) *Builder {
	b.frameTime = frameTime
	return b
}

// AddFrame appends one row of samples. Widths are checked by Build, once
// every channel is known.
func (b *Builder) AddFrame(row ...float32) *Builder {
	b.rows = append(b.rows, ds.ShallowCopy(row))
	return b
}

func (b *Builder) Build() (*File, error) {
	if b.err != nil {
		return nil, b.err
	}

	frames := make([]float32, 0, len(b.rows)*b.nextChannel)
	for i, row := range b.rows {
		if len(row) != b.nextChannel {
			return nil, errors.Wrapf(ErrRowWidth, "Builder.Build frame %d: expected %d, got %d", i, b.nextChannel, len(row))
		}
		for j, value := range row {
			if hasNaNPayload32(value) {
				return nil, errors.Wrapf(ErrNaNPayload, "Builder.Build frame %d column %d", i, j)
			}
		}
		frames = append(frames, row...)
	}
	if hasNaNPayload64(b.frameTime) {
		return nil, errors.Wrap(ErrNaNPayload, "Builder.Build frame time")
	}

	joints := make([]bjoint.Joint, 0, len(b.joints))
	for _, joint := range b.joints {
		points := []bjoint.Point{joint.Offset}
		if joint.EndSite != nil {
			points = append(points, *joint.EndSite)
		}
		for _, point := range points {
			if hasNaNPayload32(point.X) || hasNaNPayload32(point.Y) || hasNaNPayload32(point.Z) {
				return nil, errors.Wrapf(ErrNaNPayload, "Builder.Build offset of %q", joint.Name)
			}
		}
		joints = append(joints, cloneJoint(joint))
	}

	return &File{
		joints:       joints,
		frameTime:    b.frameTime,
		frameCount:   len(b.rows),
		channelCount: b.nextChannel,
		frames:       frames,
	}, nil
}

// ValidateJointName accepts names that the parser reads back unchanged: a
// single identifier or number token.
func ValidateJointName(name string) error {
	tokens, err := btoken.Tokenize([]byte(name))
	if err != nil {
		return errors.Wrapf(ErrInvalidJointName, "%q: %v", name, err)
	}
	if len(tokens) != 2 ||
		(tokens[0].Kind != btoken.KindIdentifier && tokens[0].Kind != btoken.KindNumber) ||
		tokens[0].Text != name {
		return errors.Wrapf(ErrInvalidJointName, "%q", name)
	}
	return nil
}

var (
	canonicalNaN32 = math.Float32bits(float32(math.NaN()))
	canonicalNaN64 = math.Float64bits(math.NaN())
)

// hasNaNPayload32 reports whether v is a NaN other than the one the parser
// produces for "NaN". Such values would change when written as text.
func hasNaNPayload32(v float32) bool {
	return math.IsNaN(float64(v)) && math.Float32bits(v) != canonicalNaN32
}

func hasNaNPayload64(v float64) bool {
	return math.IsNaN(v) && math.Float64bits(v) != canonicalNaN64
}
