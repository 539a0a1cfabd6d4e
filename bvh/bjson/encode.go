package bjson

import (
	"encoding/json"
	"fmt"
	"math"

	"bvhkit/bvh"
	"bvhkit/bvh/bjoint"
	"bvhkit/bvh/btoken"
	"github.com/iancoleman/orderedmap"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// ToOrderedMap builds the document of f. Numbers are stored as json.Number in
// their shortest round-trip form, so DecodeJSON(EncodeJSON(f)) equals f.
func ToOrderedMap(f *bvh.File) (*orderedmap.OrderedMap, error) {
	joints := f.Joints()
	lhmByIndex := make(map[int]*orderedmap.OrderedMap, len(joints))
	for index, joint := range joints {
		path := jointPath(joints, index)
		lhm, err := jointToOrderedMap(path, joint)
		if err != nil {
			return nil, err
		}
		lhmByIndex[index] = lhm
	}
	// end sites go after the children, as in the BVH text
	for index := len(joints) - 1; index >= 0; index-- {
		joint := joints[index]
		lhmByIndex[index].Set(
			KeyChildren,
			lo.Map(
				joint.Children,
				func(child int, _ int) any { return lhmByIndex[child] },
			),
		)
		if joint.EndSite != nil {
			path := jointPath(joints, index) + "." + KeyEndSite
			endSite, err := pointToNumbers(path, *joint.EndSite)
			if err != nil {
				return nil, err
			}
			lhmByIndex[index].Set(KeyEndSite, endSite)
		}
	}

	if math.IsNaN(f.FrameTime()) || math.IsInf(f.FrameTime(), 0) {
		return nil, ErrNonFinite{Path: KeyFrameTime}
	}
	frames := make([]any, 0, f.FrameCount())
	for i, frame := range f.Frames() {
		row, err := floatsToNumbers(fmt.Sprintf("%s[%d]", KeyFrames, i), frame)
		if err != nil {
			return nil, err
		}
		frames = append(frames, row)
	}

	lhm := orderedmap.New()
	lhm.Set(KeyFrameTime, json.Number(btoken.FormatFloat(f.FrameTime(), -1, 64)))
	lhm.Set(KeyFrameCount, f.FrameCount())
	lhm.Set(KeyChannelCount, f.ChannelCount())
	lhm.Set(KeyHierarchy, lhmByIndex[0])
	lhm.Set(KeyFrames, frames)
	return lhm, nil
}

func EncodeJSON(f *bvh.File) ([]byte, error) {
	lhm, err := ToOrderedMap(f)
	if err != nil {
		return nil, errors.Wrap(err, "EncodeJSON error")
	}
	bs, err := json.MarshalIndent(lhm, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "EncodeJSON error")
	}
	return bs, nil
}

func jointToOrderedMap(path string, joint bjoint.Joint) (*orderedmap.OrderedMap, error) {
	offset, err := pointToNumbers(path+"."+KeyOffset, joint.Offset)
	if err != nil {
		return nil, err
	}
	lhm := orderedmap.New()
	lhm.Set(KeyName, joint.Name)
	lhm.Set(KeyOffset, offset)
	lhm.Set(
		KeyChannels,
		lo.Map(
			joint.Channels,
			func(channel bjoint.Channel, _ int) string { return channel.Type.String() },
		),
	)
	return lhm, nil
}

// jointPath names a joint by the child positions leading to it, such as
// hierarchy.children[1].children[0].
func jointPath(joints []bjoint.Joint, index int) string {
	joint := joints[index]
	if joint.IsRoot() {
		return KeyHierarchy
	}
	position, _ := lo.Find(
		lo.Range(len(joints[joint.Parent].Children)),
		func(i int) bool { return joints[joint.Parent].Children[i] == index },
	)
	return fmt.Sprintf("%s.%s[%d]", jointPath(joints, joint.Parent), KeyChildren, position)
}

func pointToNumbers(path string, p bjoint.Point) ([]json.Number, error) {
	return floatsToNumbers(path, []float32{p.X, p.Y, p.Z})
}

func floatsToNumbers(path string, values []float32) ([]json.Number, error) {
	numbers := make([]json.Number, 0, len(values))
	for i, v := range values {
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			return nil, ErrNonFinite{Path: fmt.Sprintf("%s[%d]", path, i)}
		}
		numbers = append(numbers, json.Number(btoken.FormatFloat(float64(v), -1, 32)))
	}
	return numbers, nil
}
