package bjoint

import (
	"bytes"
	"strconv"
	"strings"

	"bvhkit/bvh/btoken"
	"github.com/samber/lo"
)

type Style struct {
	// Indent is repeated once per nesting level.
	Indent  string
	Newline string
	// Precision is the number of decimals for OFFSET values; negative selects
	// the shortest round-trip form.
	Precision int
}

var DefaultStyle = Style{
	Indent:    "  ",
	Newline:   "\n",
	Precision: -1,
}

// EncodeHierarchy writes the HIERARCHY section for joints in pre-order, root
// first. End sites are written after the children of their joint.
func EncodeHierarchy(joints []Joint, style Style) []byte {
	buf := bytes.NewBuffer(make([]byte, 0, 128*len(joints)))
	buf.WriteString("HIERARCHY")
	buf.WriteString(style.Newline)
	if len(joints) > 0 {
		encodeJoint(buf, joints, 0, style)
	}
	return buf.Bytes()
}

func encodeJoint(buf *bytes.Buffer, joints []Joint, index int, style Style) {
	joint := joints[index]
	indent := strings.Repeat(style.Indent, joint.Depth)
	inner := indent + style.Indent

	keyword := btoken.KeywordJoint
	if joint.IsRoot() {
		keyword = btoken.KeywordRoot
	}
	writeLine(buf, style, indent, string(keyword), " ", joint.Name)
	writeLine(buf, style, indent, "{")
	writeLine(buf, style, inner, EncodeOffset(joint.Offset, style.Precision))
	writeLine(buf, style, inner, EncodeChannels(joint.Channels))
	for _, child := range joint.Children {
		encodeJoint(buf, joints, child, style)
	}
	if joint.EndSite != nil {
		writeLine(buf, style, inner, "End Site")
		writeLine(buf, style, inner, "{")
		writeLine(buf, style, inner+style.Indent, EncodeOffset(*joint.EndSite, style.Precision))
		writeLine(buf, style, inner, "}")
	}
	writeLine(buf, style, indent, "}")
}

func writeLine(buf *bytes.Buffer, style Style, parts ...string) {
	for _, part := range parts {
		buf.WriteString(part)
	}
	buf.WriteString(style.Newline)
}

func EncodeOffset(p Point, precision int) string {
	return strings.Join(
		[]string{
			string(btoken.KeywordOffset),
			btoken.FormatFloat(float64(p.X), precision, 32),
			btoken.FormatFloat(float64(p.Y), precision, 32),
			btoken.FormatFloat(float64(p.Z), precision, 32),
		},
		" ",
	)
}

func EncodeChannels(channels []Channel) string {
	parts := append(
		[]string{string(btoken.KeywordChannels), strconv.Itoa(len(channels))},
		lo.Map(
			channels,
			func(channel Channel, _ int) string {
				return channel.Type.String()
			},
		)...,
	)
	return strings.Join(parts, " ")
}
