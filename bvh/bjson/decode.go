package bjson

import (
	"encoding/json"
	"fmt"
	"math"

	"bvhkit/bvh"
	"bvhkit/bvh/bjoint"
	"github.com/iancoleman/orderedmap"
	"github.com/pkg/errors"
)

// DecodeJSON reads a document written by EncodeJSON. The declared counts are
// checked against the hierarchy and the frames that were actually read.
func DecodeJSON(bs []byte) (*bvh.File, error) {
	lhm := orderedmap.New()
	if err := json.Unmarshal(bs, lhm); err != nil {
		return nil, errors.Wrap(err, "DecodeJSON error")
	}
	f, err := FromOrderedMap(*lhm)
	if err != nil {
		return nil, errors.Wrap(err, "DecodeJSON error")
	}
	return f, nil
}

func FromOrderedMap(lhm orderedmap.OrderedMap) (*bvh.File, error) {
	frameTime, err := getFloat(lhm, "$", KeyFrameTime)
	if err != nil {
		return nil, err
	}
	frameCount, err := getInt(lhm, "$", KeyFrameCount)
	if err != nil {
		return nil, err
	}
	channelCount, err := getInt(lhm, "$", KeyChannelCount)
	if err != nil {
		return nil, err
	}
	hierarchyAny, err := get(lhm, "$", KeyHierarchy)
	if err != nil {
		return nil, err
	}
	rootLhm, ok := asOrderedMap(hierarchyAny)
	if !ok {
		return nil, ErrUnexpectedType{Path: KeyHierarchy, Expected: "object", Actual: hierarchyAny}
	}
	framesAny, err := get(lhm, "$", KeyFrames)
	if err != nil {
		return nil, err
	}
	frames, ok := framesAny.([]any)
	if !ok {
		return nil, ErrUnexpectedType{Path: KeyFrames, Expected: "array", Actual: framesAny}
	}

	root, err := decodeJoint(KeyHierarchy, rootLhm)
	if err != nil {
		return nil, err
	}
	builder := bvh.NewBuilder(root.name, root.offset, root.channelTypes...)
	if err := buildChildren(builder, KeyHierarchy, root); err != nil {
		return nil, err
	}
	builder.FrameTime(frameTime)
	for i, frameAny := range frames {
		row, err := asFloats(fmt.Sprintf("%s[%d]", KeyFrames, i), frameAny)
		if err != nil {
			return nil, err
		}
		builder.AddFrame(row...)
	}

	f, err := builder.Build()
	if err != nil {
		return nil, err
	}
	if f.ChannelCount() != channelCount {
		return nil, ErrCountMismatch{Key: KeyChannelCount, Declared: channelCount, Actual: f.ChannelCount()}
	}
	if f.FrameCount() != frameCount {
		return nil, ErrCountMismatch{Key: KeyFrameCount, Declared: frameCount, Actual: f.FrameCount()}
	}
	return f, nil
}

type decodedJoint struct {
	name         string
	offset       bjoint.Point
	channelTypes []bjoint.ChannelType
	endSite      *bjoint.Point
	children     []orderedmap.OrderedMap
}

func decodeJoint(path string, lhm orderedmap.OrderedMap) (*decodedJoint, error) {
	nameAny, err := get(lhm, path, KeyName)
	if err != nil {
		return nil, err
	}
	name, ok := nameAny.(string)
	if !ok {
		return nil, ErrUnexpectedType{Path: path + "." + KeyName, Expected: "string", Actual: nameAny}
	}

	offsetAny, err := get(lhm, path, KeyOffset)
	if err != nil {
		return nil, err
	}
	offset, err := asPoint(path+"."+KeyOffset, offsetAny)
	if err != nil {
		return nil, err
	}

	channelsAny, err := get(lhm, path, KeyChannels)
	if err != nil {
		return nil, err
	}
	channelsSlice, ok := channelsAny.([]any)
	if !ok {
		return nil, ErrUnexpectedType{Path: path + "." + KeyChannels, Expected: "array", Actual: channelsAny}
	}
	channelTypes := make([]bjoint.ChannelType, 0, len(channelsSlice))
	for i, channelAny := range channelsSlice {
		channelPath := fmt.Sprintf("%s.%s[%d]", path, KeyChannels, i)
		channelName, ok := channelAny.(string)
		if !ok {
			return nil, ErrUnexpectedType{Path: channelPath, Expected: "channel name", Actual: channelAny}
		}
		channelType, ok := bjoint.ParseChannelType(channelName)
		if !ok {
			return nil, ErrUnexpectedType{Path: channelPath, Expected: "channel name", Actual: channelAny}
		}
		channelTypes = append(channelTypes, channelType)
	}

	joint := decodedJoint{
		name:         name,
		offset:       offset,
		channelTypes: channelTypes,
	}

	if endSiteAny, ok := lhm.Get(KeyEndSite); ok {
		endSite, err := asPoint(path+"."+KeyEndSite, endSiteAny)
		if err != nil {
			return nil, err
		}
		joint.endSite = &endSite
	}

	// a missing "children" is the same as an empty list
	if childrenAny, ok := lhm.Get(KeyChildren); ok {
		childrenSlice, ok := childrenAny.([]any)
		if !ok {
			return nil, ErrUnexpectedType{Path: path + "." + KeyChildren, Expected: "array", Actual: childrenAny}
		}
		for i, childAny := range childrenSlice {
			child, ok := asOrderedMap(childAny)
			if !ok {
				return nil, ErrUnexpectedType{
					Path:     fmt.Sprintf("%s.%s[%d]", path, KeyChildren, i),
					Expected: "object",
					Actual:   childAny,
				}
			}
			joint.children = append(joint.children, child)
		}
	}

	return &joint, nil
}

// buildChildren pushes the children of the current builder joint, then its
// end site.
func buildChildren(builder *bvh.Builder, path string, joint *decodedJoint) error {
	for i, childLhm := range joint.children {
		childPath := fmt.Sprintf("%s.%s[%d]", path, KeyChildren, i)
		child, err := decodeJoint(childPath, childLhm)
		if err != nil {
			return err
		}
		builder.Push(child.name, child.offset, child.channelTypes...)
		if err := buildChildren(builder, childPath, child); err != nil {
			return err
		}
		builder.Pop()
	}
	if joint.endSite != nil {
		builder.EndSite(*joint.endSite)
	}
	return nil
}

func get(lhm orderedmap.OrderedMap, path string, key string) (any, error) {
	value, ok := lhm.Get(key)
	if !ok {
		return nil, ErrMissingKey{Path: path, Key: key}
	}
	return value, nil
}

func getFloat(lhm orderedmap.OrderedMap, path string, key string) (float64, error) {
	value, err := get(lhm, path, key)
	if err != nil {
		return 0, err
	}
	f, ok := asFloat64(value)
	if !ok {
		return 0, ErrUnexpectedType{Path: key, Expected: "number", Actual: value}
	}
	return f, nil
}

func getInt(lhm orderedmap.OrderedMap, path string, key string) (int, error) {
	f, err := getFloat(lhm, path, key)
	if err != nil {
		return 0, err
	}
	if f < 0 || f != math.Trunc(f) || f > math.MaxInt32 {
		value, _ := lhm.Get(key)
		return 0, ErrUnexpectedType{Path: key, Expected: "non-negative integer", Actual: value}
	}
	return int(f), nil
}

// asOrderedMap accepts both forms orderedmap produces for nested objects.
func asOrderedMap(value any) (orderedmap.OrderedMap, bool) {
	switch v := value.(type) {
	case orderedmap.OrderedMap:
		return v, true
	case *orderedmap.OrderedMap:
		if v == nil {
			return orderedmap.OrderedMap{}, false
		}
		return *v, true
	}
	return orderedmap.OrderedMap{}, false
}

func asFloat64(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	}
	return 0, false
}

func asFloats(path string, value any) ([]float32, error) {
	slice, ok := value.([]any)
	if !ok {
		return nil, ErrUnexpectedType{Path: path, Expected: "array of numbers", Actual: value}
	}
	floats := make([]float32, 0, len(slice))
	for i, item := range slice {
		f, ok := asFloat64(item)
		if !ok {
			return nil, ErrUnexpectedType{Path: fmt.Sprintf("%s[%d]", path, i), Expected: "number", Actual: item}
		}
		floats = append(floats, float32(f))
	}
	return floats, nil
}

func asPoint(path string, value any) (bjoint.Point, error) {
	floats, err := asFloats(path, value)
	if err != nil {
		return bjoint.Point{}, err
	}
	if len(floats) != 3 {
		return bjoint.Point{}, ErrUnexpectedType{Path: path, Expected: "3 numbers", Actual: value}
	}
	return bjoint.Point{X: floats[0], Y: floats[1], Z: floats[2]}, nil
}
