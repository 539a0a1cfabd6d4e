package bvh

import (
	"io"
	"strings"

	"bvhkit/bvh/bjoint"
	"bvhkit/bvh/bmotion"
	"bvhkit/bvh/btoken"
	"github.com/pkg/errors"
)

// Parse reads r to the end and parses it. Either a complete File or an error
// is returned; the error wraps one of btoken.LexError, btoken.NumberFormatError,
// bjoint.HierarchyParseError or bmotion.MotionParseError.
func Parse(r io.Reader) (*File, error) {
	bs, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "bvh.Parse error reading input")
	}
	return ParseBytes(bs)
}

func ParseString(s string) (*File, error) {
	return Parse(strings.NewReader(s))
}

func ParseBytes(bs []byte) (*File, error) {
	lexer := btoken.NewLexer(bs)

	hierarchy, err := bjoint.DecodeHierarchy(lexer)
	if err != nil {
		return nil, errors.Wrap(err, "bvh.ParseBytes error")
	}
	motion, err := bmotion.DecodeMotion(lexer, hierarchy.ChannelCount)
	if err != nil {
		return nil, errors.Wrap(err, "bvh.ParseBytes error")
	}

	return newFile(*hierarchy, *motion), nil
}
