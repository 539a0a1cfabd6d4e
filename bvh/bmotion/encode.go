package bmotion

import (
	"bytes"
	"strconv"
	"strings"

	"bvhkit/bvh/btoken"
	"bvhkit/ds"
	"github.com/samber/lo"
)

type Style struct {
	Newline string
	// FrameTimePrecision and Precision are numbers of decimals; negative
	// selects the shortest round-trip form.
	FrameTimePrecision int
	Precision          int
}

var DefaultStyle = Style{
	Newline:            "\n",
	FrameTimePrecision: -1,
	Precision:          -1,
}

func EncodeHeader(motion Motion, style Style) []byte {
	buf := bytes.NewBuffer(make([]byte, 0, 64))
	buf.WriteString(string(btoken.KeywordMotion))
	buf.WriteString(style.Newline)
	buf.WriteString("Frames: ")
	buf.WriteString(strconv.Itoa(motion.FrameCount))
	buf.WriteString(style.Newline)
	buf.WriteString("Frame Time: ")
	buf.WriteString(btoken.FormatFloat(motion.FrameTime, style.FrameTimePrecision, 64))
	buf.WriteString(style.Newline)
	return buf.Bytes()
}

// EncodeRow writes one frame as space-separated values.
func EncodeRow(row []float32, style Style) string {
	return strings.Join(
		lo.Map(
			row,
			func(v float32, _ int) string {
				return btoken.FormatFloat(float64(v), style.Precision, 32)
			},
		),
		" ",
	)
}

func EncodeMotion(motion Motion, style Style) []byte {
	header := EncodeHeader(motion, style)
	buf := bytes.NewBuffer(make([]byte, 0, len(header)+len(motion.Values)*10))
	buf.Write(header)
	for _, row := range ds.MakeChunks(motion.Values, motion.ChannelCount) {
		buf.WriteString(EncodeRow(row, style))
		buf.WriteString(style.Newline)
	}
	return buf.Bytes()
}
