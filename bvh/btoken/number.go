package btoken

import (
	"strconv"
	"strings"
)

// Float32 parses the token text as a 32-bit float. Any word is attempted, so
// spellings such as "NaN" and "-Inf" are accepted.
func (t Token) Float32() (float32, error) {
	if !t.isWord() {
		return 0, NumberFormatError{Pos: t.Pos, Text: t.Text, Type: "float"}
	}
	v, err := strconv.ParseFloat(t.Text, 32)
	if err != nil {
		return 0, NumberFormatError{Pos: t.Pos, Text: t.Text, Type: "float", Err: unwrapNumError(err)}
	}
	return float32(v), nil
}

func (t Token) Float64() (float64, error) {
	if !t.isWord() {
		return 0, NumberFormatError{Pos: t.Pos, Text: t.Text, Type: "float"}
	}
	v, err := strconv.ParseFloat(t.Text, 64)
	if err != nil {
		return 0, NumberFormatError{Pos: t.Pos, Text: t.Text, Type: "float", Err: unwrapNumError(err)}
	}
	return v, nil
}

// Int parses the token text as a non-negative count.
func (t Token) Int() (int, error) {
	if t.Kind != KindNumber {
		return 0, NumberFormatError{Pos: t.Pos, Text: t.Text, Type: "integer"}
	}
	v, err := strconv.ParseUint(t.Text, 10, 31)
	if err != nil {
		return 0, NumberFormatError{Pos: t.Pos, Text: t.Text, Type: "integer", Err: unwrapNumError(err)}
	}
	return int(v), nil
}

func (t Token) isWord() bool {
	return t.Kind == KindNumber || t.Kind == KindIdentifier
}

func unwrapNumError(err error) error {
	if numErr, ok := err.(*strconv.NumError); ok {
		return numErr.Err
	}
	return err
}

// FormatFloat writes v as a number lexeme. A negative precision selects the
// shortest text that parses back to the same value at the given bit size,
// always with a fractional part for finite values ("1.0" rather than "1").
// Otherwise precision is the fixed number of decimals.
func FormatFloat(v float64, precision int, bitSize int) string {
	if precision >= 0 {
		return strconv.FormatFloat(v, 'f', precision, bitSize)
	}
	s := strconv.FormatFloat(v, 'f', -1, bitSize)
	if IsNumber(s) && !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
