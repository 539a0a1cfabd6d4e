package bjoint

import (
	"strings"
)

type (
	Point struct {
		X float32 `json:"x"`
		Y float32 `json:"y"`
		Z float32 `json:"z"`
	}
	ChannelType int
	Channel     struct {
		Type ChannelType `json:"type"`
		// Index is the column of the channel in a frame row, global across the file.
		Index int `json:"index"`
	}
	Joint struct {
		Name     string    `json:"name"`
		Offset   Point     `json:"offset"`
		EndSite  *Point    `json:"end_site,omitempty"`
		Channels []Channel `json:"channels"`
		Depth    int       `json:"depth"`
		// Parent and Children index into the pre-order joint slice; the root's
		// Parent is -1.
		Parent   int   `json:"parent"`
		Children []int `json:"children"`
	}
	// Hierarchy is the result of decoding the HIERARCHY section: joints in
	// depth-first pre-order, root first.
	Hierarchy struct {
		Joints       []Joint `json:"joints"`
		ChannelCount int     `json:"channel_count"`
	}
)

const (
	XPosition ChannelType = iota
	YPosition
	ZPosition
	XRotation
	YRotation
	ZRotation
)

var ChannelTypes = []ChannelType{
	XPosition, YPosition, ZPosition,
	XRotation, YRotation, ZRotation,
}

func (c ChannelType) String() string {
	switch c {
	case XPosition:
		return "Xposition"
	case YPosition:
		return "Yposition"
	case ZPosition:
		return "Zposition"
	case XRotation:
		return "Xrotation"
	case YRotation:
		return "Yrotation"
	case ZRotation:
		return "Zrotation"
	}
	return "Unknown"
}

// ParseChannelType is case-insensitive: "Xposition", "XPosition" and
// "XPOSITION" are the same channel.
func ParseChannelType(s string) (ChannelType, bool) {
	for _, c := range ChannelTypes {
		if strings.EqualFold(s, c.String()) {
			return c, true
		}
	}
	return 0, false
}

func (j Joint) IsRoot() bool {
	return j.Parent < 0
}

func (j Joint) HasEndSite() bool {
	return j.EndSite != nil
}
