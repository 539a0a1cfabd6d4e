package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"bvhkit/bvh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const simple = "HIERARCHY\nROOT Hips\n{\n  OFFSET 0.0 0.0 0.0\n  CHANNELS 1 Xposition\n}\nMOTION\nFrames: 1\nFrame Time: 0.5\n2.0\n"

func TestFormatOf(t *testing.T) {
	assert.Equal(t, FormatBVH, FormatOf("walk.bvh"))
	assert.Equal(t, FormatBVH, FormatOf("s3://bucket/WALK.BVH"))
	assert.Equal(t, FormatJSON, FormatOf("/tmp/walk.json"))
	assert.Equal(t, FormatUnknown, FormatOf("walk.txt"))
	assert.Equal(t, FormatUnknown, FormatOf("walk"))
}

func TestSource_StoreLoad(t *testing.T) {
	ctx := context.Background()
	s := New(nil)
	location := filepath.Join(t.TempDir(), "walk.bvh")

	ok, err := s.Exists(ctx, location)
	require.NoError(t, err)
	assert.False(t, ok)
	_, err = s.Load(ctx, location)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Store(ctx, location, []byte(simple), false))
	bs, err := os.ReadFile(location)
	require.NoError(t, err)
	assert.Equal(t, simple, string(bs))

	assert.ErrorIs(t, s.Store(ctx, location, []byte("x"), false), ErrExists)
	require.NoError(t, s.Store(ctx, location, []byte("x"), true))

	bs, err = s.Load(ctx, location)
	require.NoError(t, err)
	assert.Equal(t, "x", string(bs))
}

func TestSource_FileConversion(t *testing.T) {
	ctx := context.Background()
	s := New(nil)
	dir := t.TempDir()

	f, err := bvh.ParseString(simple)
	require.NoError(t, err)

	jsonLocation := filepath.Join(dir, "walk.json")
	require.NoError(t, s.StoreFile(ctx, jsonLocation, f, bvh.DefaultWriteOptions(), false))
	fromJSON, err := s.LoadFile(ctx, jsonLocation)
	require.NoError(t, err)
	assert.True(t, bvh.Equal(f, fromJSON))

	bvhLocation := filepath.Join(dir, "walk.bvh")
	require.NoError(t, s.StoreFile(ctx, bvhLocation, fromJSON, bvh.DefaultWriteOptions(), false))
	bs, err := os.ReadFile(bvhLocation)
	require.NoError(t, err)
	assert.Equal(t, simple, string(bs))

	err = s.StoreFile(ctx, filepath.Join(dir, "walk.txt"), f, bvh.DefaultWriteOptions(), false)
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestSource_StoreCreatesDirectories(t *testing.T) {
	ctx := context.Background()
	s := New(nil)
	location := filepath.Join(t.TempDir(), "a", "b", "walk.bvh")

	require.NoError(t, s.Store(ctx, location, []byte(simple), false))
	ok, err := s.Exists(ctx, location)
	require.NoError(t, err)
	assert.True(t, ok)
}
