// Package bhash fingerprints parsed files. Files that are Equal have the same
// fingerprint, whatever formatting they were read from.
package bhash

import (
	"fmt"

	"bvhkit/bvh"
	"bvhkit/bvh/bjoint"
	"github.com/minio/highwayhash"
	"github.com/pkg/errors"
)

var key = []byte("bvhkit-fingerprint-key-000000000")

func Hash(data []byte) (uint64, error) {
	hash, err := highwayhash.New64(key)
	if err != nil {
		return 0, errors.Wrap(err, "bhash.Hash error")
	}
	_, err = hash.Write(data)
	return hash.Sum64(), err
}

// Fingerprint hashes the canonical encoding of f.
func Fingerprint(f *bvh.File) (uint64, error) {
	return Hash(bvh.Encode(f))
}

// HierarchyFingerprint hashes the skeleton only, so files that share a
// skeleton but differ in motion have the same value.
func HierarchyFingerprint(f *bvh.File) (uint64, error) {
	return Hash(bjoint.EncodeHierarchy(f.Joints(), bjoint.DefaultStyle))
}

func Format(fingerprint uint64) string {
	return fmt.Sprintf("%016x", fingerprint)
}
