package bmotion

import (
	"fmt"
)

type (
	MotionParseError struct {
		// Line is 1-based; 0 when the input ended.
		Line int
		// Frame is the 0-based row being read, or -1 for header failures.
		Frame           int
		ExpectedColumns int
		FoundColumns    int
		// Detail names the missing header for header failures.
		Detail string
	}
)

func (r MotionParseError) Error() string {
	if r.Frame < 0 {
		return fmt.Sprintf("motion: line %d: %s", r.Line, r.Detail)
	}
	if r.Detail != "" {
		return fmt.Sprintf(
			"motion: line %d: frame %d: %s",
			r.Line, r.Frame, r.Detail,
		)
	}
	return fmt.Sprintf(
		"motion: line %d: frame %d: expected %d columns, found %d",
		r.Line, r.Frame, r.ExpectedColumns, r.FoundColumns,
	)
}
