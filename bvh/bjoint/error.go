package bjoint

import (
	"fmt"

	"bvhkit/bvh/btoken"
)

type (
	HierarchyParseError struct {
		Pos      btoken.Position
		Expected string
		Found    string
		// Cause is set when the failure comes from a nested conversion, such as
		// a btoken.NumberFormatError for an offset component.
		Cause error
	}
)

func (r HierarchyParseError) Error() string {
	msg := fmt.Sprintf("hierarchy: %s: expected %s, found %s", r.Pos, r.Expected, r.Found)
	if r.Cause != nil {
		msg += ": " + r.Cause.Error()
	}
	return msg
}

func (r HierarchyParseError) Unwrap() error {
	return r.Cause
}

func unexpected(token btoken.Token, expected string) HierarchyParseError {
	return HierarchyParseError{
		Pos:      token.Pos,
		Expected: expected,
		Found:    token.Describe(),
	}
}
