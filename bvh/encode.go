package bvh

import (
	"bytes"
	"io"
	"strings"

	"bvhkit/bvh/bjoint"
	"bvhkit/bvh/bmotion"
	"github.com/pkg/errors"
)

type (
	LineTerminator string
	WriteOptions   struct {
		// Indent is written once per nesting level of the hierarchy.
		Indent         string
		LineTerminator LineTerminator
		// Precisions are numbers of decimals. Negative values select the
		// shortest form that parses back to the same value, which keeps
		// Parse(Encode(f)) equal to f.
		OffsetPrecision    int
		FrameTimePrecision int
		MotionPrecision    int
	}
)

const (
	LF   = LineTerminator("\n")
	CRLF = LineTerminator("\r\n")
)

func DefaultWriteOptions() WriteOptions {
	return WriteOptions{
		Indent:             IndentSpaces(2),
		LineTerminator:     LF,
		OffsetPrecision:    -1,
		FrameTimePrecision: -1,
		MotionPrecision:    -1,
	}
}

func IndentSpaces(n int) string {
	return strings.Repeat(" ", n)
}

func IndentTabs() string {
	return "\t"
}

func (r LineTerminator) String() string {
	switch r {
	case LF:
		return "lf"
	case CRLF:
		return "crlf"
	}
	return "unknown"
}

// Encode writes f with the default options.
func Encode(f *File) []byte {
	return DefaultWriteOptions().Encode(f)
}

// Write writes f to w with the default options.
func Write(w io.Writer, f *File) error {
	return DefaultWriteOptions().Write(w, f)
}

func (r WriteOptions) newline() string {
	if r.LineTerminator == "" {
		return string(LF)
	}
	return string(r.LineTerminator)
}

func (r WriteOptions) Encode(f *File) []byte {
	hierarchyBytes := bjoint.EncodeHierarchy(
		f.joints,
		bjoint.Style{
			Indent:    r.Indent,
			Newline:   r.newline(),
			Precision: r.OffsetPrecision,
		},
	)
	motionBytes := bmotion.EncodeMotion(
		f.motion(),
		bmotion.Style{
			Newline:            r.newline(),
			FrameTimePrecision: r.FrameTimePrecision,
			Precision:          r.MotionPrecision,
		},
	)

	bs := make([]byte, 0, len(hierarchyBytes)+len(motionBytes))
	bs = append(bs, hierarchyBytes...)
	bs = append(bs, motionBytes...)
	return bs
}

func (r WriteOptions) Write(w io.Writer, f *File) error {
	if _, err := io.Copy(w, bytes.NewReader(r.Encode(f))); err != nil {
		return errors.Wrap(err, "bvh.Write error")
	}
	return nil
}
