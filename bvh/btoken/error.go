package btoken

import (
	"fmt"
)

type (
	// LexError is returned for a byte that cannot start any token.
	LexError struct {
		Pos  Position
		Byte byte
	}
	// NumberFormatError is returned when a token does not parse as the
	// numeric type the grammar requires at its position.
	NumberFormatError struct {
		Pos  Position
		Text string
		Type string
		Err  error
	}
)

func (p Position) String() string {
	return fmt.Sprintf("line %d, column %d", p.Line, p.Column)
}

func (r LexError) Error() string {
	return fmt.Sprintf("%s: unexpected byte 0x%02x", r.Pos, r.Byte)
}

func (r NumberFormatError) Error() string {
	if r.Err != nil {
		return fmt.Sprintf("%s: invalid %s %q: %v", r.Pos, r.Type, r.Text, r.Err)
	}
	return fmt.Sprintf("%s: invalid %s %q", r.Pos, r.Type, r.Text)
}

func (r NumberFormatError) Unwrap() error {
	return r.Err
}
