// Package bjson converts a bvh.File to and from an ordered JSON document:
//
//	{
//	  "frame_time": 0.033333,
//	  "frame_count": 2,
//	  "channel_count": 3,
//	  "hierarchy": {"name": "Hips", "offset": [0.0, 0.0, 0.0], "channels": ["Xposition", ...], "children": [...]},
//	  "frames": [[0.0, 0.0, 0.0], [1.0, 2.0, 3.0]]
//	}
//
// Joints with an end site carry an "end_site" offset after their children.
package bjson

import (
	"fmt"
)

const (
	KeyFrameTime    = "frame_time"
	KeyFrameCount   = "frame_count"
	KeyChannelCount = "channel_count"
	KeyHierarchy    = "hierarchy"
	KeyFrames       = "frames"

	KeyName     = "name"
	KeyOffset   = "offset"
	KeyChannels = "channels"
	KeyEndSite  = "end_site"
	KeyChildren = "children"
)

type (
	ErrMissingKey struct {
		Path string
		Key  string
	}
	ErrUnexpectedType struct {
		Path     string
		Expected string
		Actual   any
	}
	ErrCountMismatch struct {
		Key      string
		Declared int
		Actual   int
	}
	// ErrNonFinite is returned when encoding a NaN or infinite value, which
	// JSON cannot represent.
	ErrNonFinite struct {
		Path string
	}
)

func (r ErrMissingKey) Error() string {
	return fmt.Sprintf(`missing key "%s" in %s`, r.Key, r.Path)
}

func (r ErrUnexpectedType) Error() string {
	return fmt.Sprintf(`expected %s at %s, got %T "%v"`, r.Expected, r.Path, r.Actual, r.Actual)
}

func (r ErrCountMismatch) Error() string {
	return fmt.Sprintf(`"%s" is %d but the document holds %d`, r.Key, r.Declared, r.Actual)
}

func (r ErrNonFinite) Error() string {
	return fmt.Sprintf("non-finite number at %s", r.Path)
}
