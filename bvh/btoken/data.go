package btoken

type (
	Kind     int
	Keyword  string
	Position struct {
		// Offset is the 0-based byte offset into the input.
		Offset int `json:"offset"`
		Line   int `json:"line"`
		Column int `json:"column"`
	}
	Token struct {
		Kind Kind `json:"kind"`
		// Keyword is only set for KindKeyword.
		Keyword Keyword  `json:"keyword,omitempty"`
		Text    string   `json:"text"`
		Pos     Position `json:"pos"`
	}
)

const (
	KindEOF Kind = iota
	KindKeyword
	KindIdentifier
	KindNumber
	KindLBrace
	KindRBrace
	KindColon
)

const (
	KeywordHierarchy = Keyword("HIERARCHY")
	KeywordRoot      = Keyword("ROOT")
	KeywordJoint     = Keyword("JOINT")
	KeywordOffset    = Keyword("OFFSET")
	KeywordChannels  = Keyword("CHANNELS")
	KeywordEnd       = Keyword("End")
	KeywordSite      = Keyword("Site")
	KeywordMotion    = Keyword("MOTION")
	KeywordFrames    = Keyword("Frames")
	KeywordFrame     = Keyword("Frame")
	KeywordTime      = Keyword("Time")
)

var keywords = map[string]Keyword{
	string(KeywordHierarchy): KeywordHierarchy,
	string(KeywordRoot):      KeywordRoot,
	string(KeywordJoint):     KeywordJoint,
	string(KeywordOffset):    KeywordOffset,
	string(KeywordChannels):  KeywordChannels,
	string(KeywordEnd):       KeywordEnd,
	string(KeywordSite):      KeywordSite,
	string(KeywordMotion):    KeywordMotion,
	string(KeywordFrames):    KeywordFrames,
	string(KeywordFrame):     KeywordFrame,
	string(KeywordTime):      KeywordTime,
}

func (k Kind) String() string {
	switch k {
	case KindEOF:
		return "end of input"
	case KindKeyword:
		return "keyword"
	case KindIdentifier:
		return "identifier"
	case KindNumber:
		return "number"
	case KindLBrace:
		return `"{"`
	case KindRBrace:
		return `"}"`
	case KindColon:
		return `":"`
	}
	return "unknown"
}

// Is reports whether the token is the keyword kw.
func (t Token) Is(kw Keyword) bool {
	return t.Kind == KindKeyword && t.Keyword == kw
}

// Describe renders the token for diagnostics.
func (t Token) Describe() string {
	switch t.Kind {
	case KindEOF, KindLBrace, KindRBrace, KindColon:
		return t.Kind.String()
	}
	return `"` + t.Text + `"`
}
