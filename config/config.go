package config

import (
	"log/slog"

	"bvhkit/bvh"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	LineTerminatorLF   = "lf"
	LineTerminatorCRLF = "crlf"

	// ShortestPrecision writes numbers in their shortest round-trip form.
	ShortestPrecision = -1
	maxPrecision      = 16
)

type Config struct {
	LogLevel slog.Level  `yaml:"log_level"`
	Write    WriteConfig `yaml:"write"`
	Check    CheckConfig `yaml:"check"`
}

func (c *Config) Validate() error {
	if err := c.Write.Validate(); err != nil {
		return err
	}
	return c.Check.Validate()
}

// WriteConfig controls how BVH text is written by convert.
type WriteConfig struct {
	Indent             int    `yaml:"indent"`
	Tabs               bool   `yaml:"tabs"`
	LineTerminator     string `yaml:"line_terminator"`
	OffsetPrecision    int    `yaml:"offset_precision"`
	FrameTimePrecision int    `yaml:"frame_time_precision"`
	MotionPrecision    int    `yaml:"motion_precision"`
}

func (c *WriteConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Indent, validation.Min(0), validation.Max(8)),
		validation.Field(&c.LineTerminator, validation.Required, validation.In(LineTerminatorLF, LineTerminatorCRLF)),
		validation.Field(&c.OffsetPrecision, validation.Min(ShortestPrecision), validation.Max(maxPrecision)),
		validation.Field(&c.FrameTimePrecision, validation.Min(ShortestPrecision), validation.Max(maxPrecision)),
		validation.Field(&c.MotionPrecision, validation.Min(ShortestPrecision), validation.Max(maxPrecision)),
	)
}

func (c WriteConfig) Options() bvh.WriteOptions {
	options := bvh.WriteOptions{
		Indent:             bvh.IndentSpaces(c.Indent),
		LineTerminator:     bvh.LF,
		OffsetPrecision:    c.OffsetPrecision,
		FrameTimePrecision: c.FrameTimePrecision,
		MotionPrecision:    c.MotionPrecision,
	}
	if c.Tabs {
		options.Indent = bvh.IndentTabs()
	}
	if c.LineTerminator == LineTerminatorCRLF {
		options.LineTerminator = bvh.CRLF
	}
	return options
}

type CheckConfig struct {
	// Workers is the number of files parsed at the same time.
	Workers int `yaml:"workers"`
}

func (c *CheckConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Workers, validation.Required, validation.Min(1), validation.Max(64)),
	)
}

func Default() *Config {
	return &Config{
		LogLevel: slog.LevelInfo,
		Write: WriteConfig{
			Indent:             2,
			LineTerminator:     LineTerminatorLF,
			OffsetPrecision:    ShortestPrecision,
			FrameTimePrecision: ShortestPrecision,
			MotionPrecision:    ShortestPrecision,
		},
		Check: CheckConfig{
			Workers: 4,
		},
	}
}
