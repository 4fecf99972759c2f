// Package checksum provides the content digests used to compare activity
// files between runs. MD5 is the default for parity with existing external
// tooling; none of these digests are a security boundary.
package checksum

import (
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"

	"github.com/cespare/xxhash/v2"
)

// Algorithm selects the digest used for content hashing.
type Algorithm string

const (
	MD5    Algorithm = "md5"
	SHA256 Algorithm = "sha256"
	XXHash Algorithm = "xxhash"
)

// New returns a hash.Hash for the given algorithm.
// Returns an error if the algorithm is not supported.
func New(algorithm Algorithm) (hash.Hash, error) {
	switch algorithm {
	case MD5:
		return md5.New(), nil
	case SHA256:
		return sha256.New(), nil
	case XXHash:
		return xxhash.New(), nil
	default:
		return nil, fmt.Errorf("unsupported checksum algorithm: %s", algorithm)
	}
}

// Sum computes the hex-encoded digest of data using the given algorithm.
func Sum(data []byte, algorithm Algorithm) (string, error) {
	h, err := New(algorithm)
	if err != nil {
		return "", err
	}
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil)), nil
}
