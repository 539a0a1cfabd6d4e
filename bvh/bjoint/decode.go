package bjoint

import (
	"fmt"

	"bvhkit/bvh/btoken"
)

type decoder struct {
	lexer  *btoken.Lexer
	joints []Joint
}

// DecodeHierarchy consumes the HIERARCHY section: the keyword and exactly one
// ROOT block. Channel indices are assigned in declaration order starting at 0,
// and the final count becomes Hierarchy.ChannelCount.
func DecodeHierarchy(lexer *btoken.Lexer) (*Hierarchy, error) {
	d := decoder{lexer: lexer}

	if _, err := d.expectKeyword(btoken.KeywordHierarchy); err != nil {
		return nil, err
	}
	if _, err := d.expectKeyword(btoken.KeywordRoot); err != nil {
		return nil, err
	}
	_, channelCount, err := d.decodeJoint(-1, 0, 0)
	if err != nil {
		return nil, err
	}

	return &Hierarchy{
		Joints:       d.joints,
		ChannelCount: channelCount,
	}, nil
}

func (d *decoder) next() (btoken.Token, error) {
	return d.lexer.Next()
}

func (d *decoder) expectKeyword(kw btoken.Keyword) (btoken.Token, error) {
	token, err := d.next()
	if err != nil {
		return token, err
	}
	if !token.Is(kw) {
		return token, unexpected(token, fmt.Sprintf("%q", kw))
	}
	return token, nil
}

func (d *decoder) expectKind(kind btoken.Kind) (btoken.Token, error) {
	token, err := d.next()
	if err != nil {
		return token, err
	}
	if token.Kind != kind {
		return token, unexpected(token, kind.String())
	}
	return token, nil
}

// decodeJoint parses `<name> { OFFSET CHANNELS (JOINT ...)* (End Site ...)? }`
// after the ROOT or JOINT keyword. It returns the joint's index and the next
// free channel index.
func (d *decoder) decodeJoint(parent int, depth int, nextChannel int) (int, int, error) {
	name, err := d.decodeName()
	if err != nil {
		return 0, 0, err
	}
	if _, err := d.expectKind(btoken.KindLBrace); err != nil {
		return 0, 0, err
	}

	index := len(d.joints)
	d.joints = append(d.joints, Joint{
		Name:     name,
		Depth:    depth,
		Parent:   parent,
		Channels: []Channel{},
		Children: []int{},
	})
	if parent >= 0 {
		d.joints[parent].Children = append(d.joints[parent].Children, index)
	}

	offset, err := d.decodeOffset()
	if err != nil {
		return 0, 0, err
	}
	d.joints[index].Offset = offset

	channels, nextChannel, err := d.decodeChannels(nextChannel)
	if err != nil {
		return 0, 0, err
	}
	d.joints[index].Channels = channels

	for {
		token, err := d.next()
		if err != nil {
			return 0, 0, err
		}
		switch {
		case token.Kind == btoken.KindRBrace:
			return index, nextChannel, nil
		case token.Is(btoken.KeywordJoint):
			if d.joints[index].EndSite != nil {
				return 0, 0, unexpected(token, `"}" after End Site`)
			}
			_, nextChannel, err = d.decodeJoint(index, depth+1, nextChannel)
			if err != nil {
				return 0, 0, err
			}
		case token.Is(btoken.KeywordEnd):
			if d.joints[index].EndSite != nil {
				return 0, 0, unexpected(token, `"}" after End Site`)
			}
			endSite, err := d.decodeEndSite()
			if err != nil {
				return 0, 0, err
			}
			d.joints[index].EndSite = &endSite
		default:
			if _, ok := ParseChannelType(token.Text); ok && token.Kind == btoken.KindIdentifier {
				return 0, 0, HierarchyParseError{
					Pos:      token.Pos,
					Expected: fmt.Sprintf("%d channel types", len(channels)),
					Found:    fmt.Sprintf("extra channel type %s", token.Describe()),
				}
			}
			return 0, 0, unexpected(token, `"JOINT", "End Site" or "}"`)
		}
	}
}

// decodeName accepts identifiers and numbers; some exporters name joints by
// number.
func (d *decoder) decodeName() (string, error) {
	token, err := d.next()
	if err != nil {
		return "", err
	}
	if token.Kind != btoken.KindIdentifier && token.Kind != btoken.KindNumber {
		return "", unexpected(token, "joint name")
	}
	return token.Text, nil
}

func (d *decoder) decodeOffset() (Point, error) {
	if _, err := d.expectKeyword(btoken.KeywordOffset); err != nil {
		return Point{}, err
	}
	axes := [3]float32{}
	for i, axis := range []string{"x", "y", "z"} {
		token, err := d.next()
		if err != nil {
			return Point{}, err
		}
		v, err := token.Float32()
		if err != nil {
			return Point{}, HierarchyParseError{
				Pos:      token.Pos,
				Expected: fmt.Sprintf("OFFSET %s component", axis),
				Found:    token.Describe(),
				Cause:    err,
			}
		}
		axes[i] = v
	}
	return Point{X: axes[0], Y: axes[1], Z: axes[2]}, nil
}

func (d *decoder) decodeChannels(nextChannel int) ([]Channel, int, error) {
	if _, err := d.expectKeyword(btoken.KeywordChannels); err != nil {
		return nil, 0, err
	}
	countToken, err := d.next()
	if err != nil {
		return nil, 0, err
	}
	count, err := countToken.Int()
	if err != nil {
		return nil, 0, HierarchyParseError{
			Pos:      countToken.Pos,
			Expected: "channel count",
			Found:    countToken.Describe(),
			Cause:    err,
		}
	}

	channels := make([]Channel, 0, count)
	for len(channels) < count {
		peekedToken, err := d.lexer.Peek()
		if err != nil {
			return nil, 0, err
		}
		if peekedToken.Kind != btoken.KindIdentifier {
			// the declared count is larger than the list that follows
			return nil, 0, HierarchyParseError{
				Pos:      peekedToken.Pos,
				Expected: fmt.Sprintf("%d channel types", count),
				Found:    fmt.Sprintf("%d followed by %s", len(channels), peekedToken.Describe()),
			}
		}
		token, _ := d.next()
		channelType, ok := ParseChannelType(token.Text)
		if !ok {
			return nil, 0, unexpected(token, "channel type")
		}
		channels = append(channels, Channel{Type: channelType, Index: nextChannel})
		nextChannel++
	}

	return channels, nextChannel, nil
}

// decodeEndSite parses `Site { OFFSET x y z }` after the End keyword.
func (d *decoder) decodeEndSite() (Point, error) {
	if _, err := d.expectKeyword(btoken.KeywordSite); err != nil {
		return Point{}, err
	}
	if _, err := d.expectKind(btoken.KindLBrace); err != nil {
		return Point{}, err
	}
	offset, err := d.decodeOffset()
	if err != nil {
		return Point{}, err
	}
	if _, err := d.expectKind(btoken.KindRBrace); err != nil {
		return Point{}, err
	}
	return offset, nil
}
