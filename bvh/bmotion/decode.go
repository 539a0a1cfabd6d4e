package bmotion

import (
	"fmt"

	"bvhkit/bvh/btoken"
	"github.com/pkg/errors"
)

// DecodeMotion consumes the MOTION section: the header, then exactly
// frameCount lines of channelCount numbers. Tokens after the last row are
// left unread.
func DecodeMotion(lexer *btoken.Lexer, channelCount int) (*Motion, error) {
	if err := expectHeader(lexer, btoken.KeywordMotion); err != nil {
		return nil, err
	}

	if err := expectHeader(lexer, btoken.KeywordFrames); err != nil {
		return nil, err
	}
	frameCountToken, err := nextAfterColon(lexer)
	if err != nil {
		return nil, err
	}
	frameCount, err := frameCountToken.Int()
	if err != nil {
		return nil, errors.Wrap(err, "DecodeMotion error: read Frames")
	}

	if err := expectHeader(lexer, btoken.KeywordFrame); err != nil {
		return nil, err
	}
	if err := expectHeader(lexer, btoken.KeywordTime); err != nil {
		return nil, err
	}
	frameTimeToken, err := nextAfterColon(lexer)
	if err != nil {
		return nil, err
	}
	frameTime, err := frameTimeToken.Float64()
	if err != nil {
		return nil, errors.Wrap(err, "DecodeMotion error: read Frame Time")
	}

	values, err := decodeRows(lexer, frameCount, channelCount)
	if err != nil {
		return nil, err
	}

	return &Motion{
		FrameCount:   frameCount,
		FrameTime:    frameTime,
		ChannelCount: channelCount,
		Values:       values,
	}, nil
}

func expectHeader(lexer *btoken.Lexer, kw btoken.Keyword) error {
	token, err := lexer.Next()
	if err != nil {
		return err
	}
	if !token.Is(kw) {
		return MotionParseError{
			Line:   token.Pos.Line,
			Frame:  -1,
			Detail: fmt.Sprintf("expected %q, found %s", kw, token.Describe()),
		}
	}
	return nil
}

// nextAfterColon skips the optional colon of "Frames:" and "Frame Time:".
func nextAfterColon(lexer *btoken.Lexer) (btoken.Token, error) {
	token, err := lexer.Next()
	if err != nil {
		return token, err
	}
	if token.Kind == btoken.KindColon {
		return lexer.Next()
	}
	return token, nil
}

// decodeRows reads one frame per line. With no channels every row is empty,
// so nothing is read.
func decodeRows(lexer *btoken.Lexer, frameCount int, channelCount int) ([]float32, error) {
	capacity := frameCount * channelCount
	if capacity > maxPreallocatedValues || capacity < 0 {
		capacity = maxPreallocatedValues
	}
	values := make([]float32, 0, capacity)
	if channelCount == 0 {
		return values, nil
	}

	for frame := 0; frame < frameCount; frame++ {
		first, err := lexer.Peek()
		if err != nil {
			return nil, err
		}
		if first.Kind == btoken.KindEOF {
			return nil, MotionParseError{
				Line:            first.Pos.Line,
				Frame:           frame,
				ExpectedColumns: channelCount,
				Detail:          fmt.Sprintf("input ended after %d of %d frames", frame, frameCount),
			}
		}

		line := first.Pos.Line
		found := 0
		for {
			token, err := lexer.Peek()
			if err != nil {
				return nil, err
			}
			if token.Kind == btoken.KindEOF || token.Pos.Line != line {
				break
			}
			_, _ = lexer.Next()
			if found >= channelCount {
				// keep counting so the error reports the full row width
				found++
				continue
			}
			value, err := token.Float32()
			if err != nil {
				return nil, errors.Wrapf(err, "DecodeMotion error: frame %d", frame)
			}
			values = append(values, value)
			found++
		}
		if found != channelCount {
			return nil, MotionParseError{
				Line:            line,
				Frame:           frame,
				ExpectedColumns: channelCount,
				FoundColumns:    found,
			}
		}
	}

	return values, nil
}
