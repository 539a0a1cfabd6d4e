package cli

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"bvhkit/config"
	"bvhkit/source"
	"github.com/alexflint/go-arg"
	"github.com/pkg/errors"
)

type (
	Args struct {
		Config  string      `arg:"--config,env:BVHKIT_CONFIG" help:"path to a YAML config file" placeholder:"bvhkit.yaml"`
		Verbose bool        `arg:"-v" help:"log debug messages"`
		Info    *InfoCmd    `arg:"subcommand:info" help:"print the skeleton and motion summary"`
		Convert *ConvertCmd `arg:"subcommand:convert" help:"convert between .bvh and .json"`
		Diff    *DiffCmd    `arg:"subcommand:diff" help:"compare two files structurally"`
		Check   *CheckCmd   `arg:"subcommand:check" help:"parse many files and report failures"`
		CSV     *CSVCmd     `arg:"subcommand:csv" help:"export hierarchy and channel curves as CSV"`
		View    *ViewCmd    `arg:"subcommand:view" help:"browse joints and frames interactively"`
	}
	InfoCmd struct {
		Source string `arg:"positional,required" placeholder:"SRC"`
	}
	ConvertCmd struct {
		From  string `arg:"required" help:"path to source file" placeholder:"walk.bvh"`
		To    string `arg:"required" help:"path to destination file" placeholder:"walk.json"`
		Force bool   `help:"overwrite the destination file"`
	}
	DiffCmd struct {
		A string `arg:"positional,required" placeholder:"A"`
		B string `arg:"positional,required" placeholder:"B"`
	}
	CheckCmd struct {
		Sources []string `arg:"positional,required" placeholder:"SRC"`
	}
	CSVCmd struct {
		From     string `arg:"required" help:"path to source file" placeholder:"walk.bvh"`
		Dir      string `arg:"required" help:"destination directory" placeholder:"out"`
		EndSites bool   `help:"add a hierarchy row for each end site"`
		Force    bool   `help:"overwrite existing CSV files"`
	}
	ViewCmd struct {
		Source string `arg:"positional,required" placeholder:"SRC"`
	}
)

var ErrNoCommand = errors.New("no command given")

func (Args) Description() string {
	des := strings.Join(
		[]string{
			"bvhkit reads, checks and rewrites Biovision Hierarchy motion files.\n",
			"Sources and destinations are local paths or URLs.",
		},
		"\n",
	)
	des += "\n"
	return des
}

// Runtime carries what every command needs.
type Runtime struct {
	Config *config.Config
	Source *source.Source
	Logger *slog.Logger
	Out    io.Writer
}

func NewLogger(w io.Writer, level slog.Level, verbose bool) *slog.Logger {
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// LoadConfig starts from config.Default and applies the file at path, if it
// exists. A missing file leaves the defaults in place.
func LoadConfig(path string) (*config.Config, error) {
	cfg := config.Default()
	if _, err := config.LoadOrDefault(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Run(ctx context.Context, args Args, rt Runtime) error {
	switch {
	case args.Info != nil:
		return StartInfo(ctx, rt, args.Info.Source)
	case args.Convert != nil:
		return StartConverting(ctx, rt, args.Convert.From, args.Convert.To, args.Convert.Force)
	case args.Diff != nil:
		return StartDiff(ctx, rt, args.Diff.A, args.Diff.B)
	case args.Check != nil:
		return StartChecking(ctx, rt, args.Check.Sources)
	case args.CSV != nil:
		return StartExportingCSV(ctx, rt, args.CSV.From, args.CSV.Dir, args.CSV.EndSites, args.CSV.Force)
	case args.View != nil:
		return StartViewing(ctx, rt, args.View.Source)
	}
	return ErrNoCommand
}

func Start() {
	args := Args{}
	p := arg.MustParse(&args)
	if p.Subcommand() == nil {
		p.WriteHelp(os.Stdout)
		os.Exit(1)
	}

	cfg, err := LoadConfig(args.Config)
	if err != nil {
		NewLogger(os.Stderr, slog.LevelInfo, args.Verbose).Error("config error", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger := NewLogger(os.Stderr, cfg.LogLevel, args.Verbose)
	rt := Runtime{
		Config: cfg,
		Source: source.New(logger),
		Logger: logger,
		Out:    os.Stdout,
	}

	if err := Run(context.Background(), args, rt); err != nil {
		logger.Error("command failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
