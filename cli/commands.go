package cli

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"bvhkit/bvh"
	"bvhkit/bvh/bcsv"
	"bvhkit/bvh/bhash"
	"bvhkit/source"
	"bvhkit/ui"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

var (
	ErrFilesDiffer  = errors.New("files differ")
	ErrCheckFailed  = errors.New("some files failed to parse")
	ErrSameLocation = errors.New("source and destination are the same")
)

func CheckExistence(ctx context.Context, rt Runtime, location string) bool {
	ok, err := rt.Source.Exists(ctx, location)
	if err != nil {
		rt.Logger.Warn("existence check failed", slog.String("location", location), slog.String("error", err.Error()))
		return false
	}
	return ok
}

// Describe renders the joint tree, indented by depth, followed by the motion
// summary.
func Describe(f *bvh.File, fingerprint uint64) string {
	builder := strings.Builder{}
	for _, joint := range f.Joints() {
		indent := strings.Repeat("  ", joint.Depth)
		builder.WriteString(fmt.Sprintf("%s%s (%d channels)\n", indent, joint.Name, len(joint.Channels)))
		if joint.EndSite != nil {
			builder.WriteString(indent + "  End Site\n")
		}
	}
	builder.WriteString(fmt.Sprintf("joints: %d\n", f.NumJoints()))
	builder.WriteString(fmt.Sprintf("channels: %d\n", f.ChannelCount()))
	builder.WriteString(fmt.Sprintf("frames: %d\n", f.FrameCount()))
	builder.WriteString(fmt.Sprintf("frame time: %vs\n", f.FrameTime()))
	builder.WriteString(fmt.Sprintf("duration: %s\n", f.Duration()))
	builder.WriteString(fmt.Sprintf("fingerprint: %s\n", bhash.Format(fingerprint)))
	return builder.String()
}

func StartInfo(ctx context.Context, rt Runtime, location string) error {
	f, err := rt.Source.LoadFile(ctx, location)
	if err != nil {
		return err
	}
	fingerprint, err := bhash.Fingerprint(f)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(rt.Out, Describe(f, fingerprint))
	return err
}

// StartConverting rewrites from into to, picking both formats from the file
// extensions. BVH output follows the write section of the config.
func StartConverting(ctx context.Context, rt Runtime, from string, to string, force bool) error {
	if from == to {
		return errors.Wrapf(ErrSameLocation, "convert %q", from)
	}
	if !CheckExistence(ctx, rt, from) {
		return errors.Wrapf(source.ErrNotFound, "convert %q", from)
	}
	if CheckExistence(ctx, rt, to) && !force {
		return errors.Wrapf(
			source.ErrExists,
			"convert to %q: type the command again with --force to allow overwriting",
			to,
		)
	}

	f, err := rt.Source.LoadFile(ctx, from)
	if err != nil {
		return err
	}
	if err := rt.Source.StoreFile(ctx, to, f, rt.Config.Write.Options(), force); err != nil {
		return err
	}
	rt.Logger.Info("converted", slog.String("from", from), slog.String("to", to))
	_, err = fmt.Fprintf(rt.Out, "Done converting. Please check your result file at: %s\n", to)
	return err
}

func StartDiff(ctx context.Context, rt Runtime, a string, b string) error {
	files := make([]*bvh.File, 2)
	for i, location := range []string{a, b} {
		f, err := rt.Source.LoadFile(ctx, location)
		if err != nil {
			return err
		}
		files[i] = f
	}

	difference := bvh.FirstDifference(files[0], files[1])
	if difference == "" {
		fingerprint, err := bhash.Fingerprint(files[0])
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(rt.Out, "equal (fingerprint %s)\n", bhash.Format(fingerprint))
		return err
	}

	if _, err := fmt.Fprintf(rt.Out, "%s\nsame skeleton: %t\n", difference, sameHierarchy(files[0], files[1])); err != nil {
		return err
	}
	return ErrFilesDiffer
}

func sameHierarchy(a *bvh.File, b *bvh.File) bool {
	aHash, errA := bhash.HierarchyFingerprint(a)
	bHash, errB := bhash.HierarchyFingerprint(b)
	return errA == nil && errB == nil && aHash == bHash
}

type CheckResult struct {
	Location string
	Err      error
}

// CheckAll parses every location with at most workers files in flight.
// Results keep the order of locations.
func CheckAll(ctx context.Context, rt Runtime, locations []string, workers int) []CheckResult {
	results := make([]CheckResult, len(locations))
	g := errgroup.Group{}
	g.SetLimit(workers)
	for i, location := range locations {
		i, location := i, location
		g.Go(func() error {
			_, err := rt.Source.LoadFile(ctx, location)
			results[i] = CheckResult{Location: location, Err: err}
			if err != nil {
				rt.Logger.Debug("check failed", slog.String("location", location), slog.String("error", err.Error()))
			}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func StartChecking(ctx context.Context, rt Runtime, locations []string) error {
	results := CheckAll(ctx, rt, locations, rt.Config.Check.Workers)
	failures := lo.Filter(
		results,
		func(result CheckResult, _ int) bool { return result.Err != nil },
	)
	for _, result := range results {
		status := "ok"
		if result.Err != nil {
			status = result.Err.Error()
		}
		if _, err := fmt.Fprintf(rt.Out, "%s: %s\n", result.Location, status); err != nil {
			return err
		}
	}
	if len(failures) > 0 {
		return errors.Wrapf(ErrCheckFailed, "%d of %d", len(failures), len(results))
	}
	return nil
}

// joinLocation appends name to a directory path or URL.
func joinLocation(dir string, name string) string {
	return strings.TrimRight(dir, "/") + "/" + name
}

func StartExportingCSV(ctx context.Context, rt Runtime, from string, dir string, endSites bool, force bool) error {
	f, err := rt.Source.LoadFile(ctx, from)
	if err != nil {
		return err
	}

	hierarchy := &bytes.Buffer{}
	if err := bcsv.WriteHierarchy(hierarchy, f, endSites); err != nil {
		return err
	}
	channels := &bytes.Buffer{}
	if err := bcsv.WriteChannels(channels, f); err != nil {
		return err
	}

	outputs := []lo.Tuple2[string, []byte]{
		{A: joinLocation(dir, bcsv.FileNameHierarchy), B: hierarchy.Bytes()},
		{A: joinLocation(dir, bcsv.FileNameChannels), B: channels.Bytes()},
	}
	for _, output := range outputs {
		if err := rt.Source.Store(ctx, output.A, output.B, force); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(rt.Out, "wrote %s\n", output.A); err != nil {
			return err
		}
	}
	return nil
}

func StartViewing(ctx context.Context, rt Runtime, location string) error {
	f, err := rt.Source.LoadFile(ctx, location)
	if err != nil {
		return err
	}
	return ui.Start(location, f)
}
