package bvh

import (
	"bytes"
	"os"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type EndToEndTestSuite struct {
	FilePaths      []string
	FileByteSlices [][]byte
	ParsedFiles    []*File
	Options        []WriteOptions
	R              *require.Assertions
	suite.Suite
}

func (suite *EndToEndTestSuite) SetupSuite() {
	suite.R = suite.Require()
	suite.FilePaths = []string{
		"testdata/simple.bvh",
		"testdata/fingers.bvh",
		"testdata/crlf_mixamo.bvh",
		"testdata/zero_frames.bvh",
	}
	suite.FileByteSlices = lo.Map(
		suite.FilePaths,
		func(path string, _ int) []byte {
			bs, err := os.ReadFile(path)
			suite.R.NoError(err)
			return bs
		},
	)
	suite.ParsedFiles = lo.Map(
		suite.FileByteSlices,
		func(bs []byte, _ int) *File {
			f, err := ParseBytes(bs)
			suite.R.NoError(err)
			return f
		},
	)
	tabsCRLF := DefaultWriteOptions()
	tabsCRLF.Indent = IndentTabs()
	tabsCRLF.LineTerminator = CRLF
	noIndent := DefaultWriteOptions()
	noIndent.Indent = ""
	suite.Options = []WriteOptions{DefaultWriteOptions(), tabsCRLF, noIndent}
}

func (suite *EndToEndTestSuite) TestEncodeParse() {
	lo.ForEach(
		lo.Zip2(suite.FilePaths, suite.ParsedFiles),
		func(tuple lo.Tuple2[string, *File], _ int) {
			filePath := tuple.A
			parsed := tuple.B
			for _, options := range suite.Options {
				reparsed, err := ParseBytes(options.Encode(parsed))
				suite.R.NoErrorf(err, filePath)
				suite.R.Truef(Equal(parsed, reparsed), "%s with %+v", filePath, options)
			}
		},
	)
}

func (suite *EndToEndTestSuite) TestEncodeIsStable() {
	lo.ForEach(
		suite.ParsedFiles,
		func(parsed *File, i int) {
			once := Encode(parsed)
			reparsed, err := ParseBytes(once)
			suite.R.NoError(err)
			suite.R.Equalf(string(once), string(Encode(reparsed)), suite.FilePaths[i])
		},
	)
}

func (suite *EndToEndTestSuite) TestWriteParse() {
	lo.ForEach(
		lo.Zip2(suite.FilePaths, suite.ParsedFiles),
		func(tuple lo.Tuple2[string, *File], _ int) {
			buf := &bytes.Buffer{}
			suite.R.NoError(Write(buf, tuple.B))
			reparsed, err := Parse(buf)
			suite.R.NoErrorf(err, tuple.A)
			suite.R.Truef(tuple.B.Equal(reparsed), tuple.A)
		},
	)
}

func (suite *EndToEndTestSuite) TestEditedFileSurvives() {
	f, err := ParseBytes(suite.FileByteSlices[1])
	suite.R.NoError(err)
	_, tip2, ok := f.JointByName("Tip2")
	suite.R.True(ok)
	suite.R.NoError(f.SetSample(1, tip2.Channels[2], 0.1))
	f.SetFrameTime(1.0 / 120)

	reparsed, err := ParseBytes(Encode(f))
	suite.R.NoError(err)
	suite.R.True(Equal(f, reparsed))
	suite.R.False(Equal(f, suite.ParsedFiles[1]))
}

func TestEndToEnd(t *testing.T) {
	suite.Run(t, new(EndToEndTestSuite))
}
