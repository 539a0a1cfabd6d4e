// Package source reads and writes animation files by path or URL. Plain
// paths are resolved against the working directory; anything with a scheme is
// handed to afs as is.
package source

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"bvhkit/bvh"
	"bvhkit/bvh/bjson"
	"github.com/pkg/errors"
	"github.com/viant/afs"
)

type Format string

const (
	FormatBVH     = Format("bvh")
	FormatJSON    = Format("json")
	FormatUnknown = Format("")

	DefaultFileMode = os.FileMode(0644)
	DefaultDirMode  = os.ModeDir | 0755
)

var (
	ErrNotFound      = errors.New("source does not exist")
	ErrExists        = errors.New("destination exists")
	ErrUnknownFormat = errors.New("unknown file format")
)

type Source struct {
	fs     afs.Service
	logger *slog.Logger
}

func New(logger *slog.Logger) *Source {
	if logger == nil {
		logger = slog.Default()
	}
	return &Source{
		fs:     afs.New(),
		logger: logger,
	}
}

// FormatOf tells the format from the extension of location.
func FormatOf(location string) Format {
	switch strings.ToLower(filepath.Ext(location)) {
	case ".bvh":
		return FormatBVH
	case ".json":
		return FormatJSON
	}
	return FormatUnknown
}

func normalize(location string) (string, error) {
	if strings.Contains(location, "://") {
		return location, nil
	}
	abs, err := filepath.Abs(location)
	if err != nil {
		return "", errors.Wrapf(err, "normalize %q", location)
	}
	return abs, nil
}

func (s *Source) Exists(ctx context.Context, location string) (bool, error) {
	URL, err := normalize(location)
	if err != nil {
		return false, err
	}
	ok, err := s.fs.Exists(ctx, URL)
	if err != nil {
		return false, errors.Wrapf(err, "Exists %q", location)
	}
	return ok, nil
}

func (s *Source) Load(ctx context.Context, location string) ([]byte, error) {
	URL, err := normalize(location)
	if err != nil {
		return nil, err
	}
	ok, err := s.fs.Exists(ctx, URL)
	if err != nil {
		return nil, errors.Wrapf(err, "Load %q", location)
	}
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "Load %q", location)
	}
	bs, err := s.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, errors.Wrapf(err, "Load %q", location)
	}
	s.logger.Debug("loaded", "location", URL, "bytes", len(bs))
	return bs, nil
}

// Store writes data to location. An existing destination is only replaced
// with force.
func (s *Source) Store(ctx context.Context, location string, data []byte, force bool) error {
	URL, err := normalize(location)
	if err != nil {
		return err
	}
	ok, err := s.fs.Exists(ctx, URL)
	if err != nil {
		return errors.Wrapf(err, "Store %q", location)
	}
	if ok && !force {
		return errors.Wrapf(ErrExists, "Store %q", location)
	}
	if err := s.ensureParent(ctx, URL); err != nil {
		return errors.Wrapf(err, "Store %q", location)
	}
	if err := s.fs.Upload(ctx, URL, DefaultFileMode, bytes.NewReader(data)); err != nil {
		return errors.Wrapf(err, "Store %q", location)
	}
	s.logger.Debug("stored", "location", URL, "bytes", len(data), "overwritten", ok)
	return nil
}

func (s *Source) ensureParent(ctx context.Context, URL string) error {
	index := strings.LastIndex(URL, "/")
	if index <= 0 || strings.HasSuffix(URL[:index], ":/") {
		return nil
	}
	parent := URL[:index]
	ok, err := s.fs.Exists(ctx, parent)
	if err != nil || ok {
		return err
	}
	s.logger.Debug("creating directory", "location", parent)
	return s.fs.Create(ctx, parent, DefaultDirMode, true)
}

// LoadFile loads and parses location, as JSON for .json and as BVH text
// otherwise.
func (s *Source) LoadFile(ctx context.Context, location string) (*bvh.File, error) {
	bs, err := s.Load(ctx, location)
	if err != nil {
		return nil, err
	}
	if FormatOf(location) == FormatJSON {
		return bjson.DecodeJSON(bs)
	}
	return bvh.ParseBytes(bs)
}

// StoreFile encodes f in the format of the location's extension.
func (s *Source) StoreFile(ctx context.Context, location string, f *bvh.File, options bvh.WriteOptions, force bool) error {
	var data []byte
	switch FormatOf(location) {
	case FormatBVH:
		data = options.Encode(f)
	case FormatJSON:
		bs, err := bjson.EncodeJSON(f)
		if err != nil {
			return err
		}
		data = bs
	default:
		return errors.Wrapf(ErrUnknownFormat, "StoreFile %q", location)
	}
	return s.Store(ctx, location, data, force)
}
