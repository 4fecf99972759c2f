// Package activity holds the in-memory representation of one candidate
// fitness file, regardless of the type of file.
package activity

import (
	"strings"

	"github.com/cwbooth5/filefitness/pkg/checksum"
)

// Activity is one candidate file under check: its name and its full byte
// content. The buffer is read once at construction and treated as immutable
// for the lifetime of the check.
type Activity struct {
	Name string
	Data []byte
}

// New builds an Activity from a file name and its raw bytes.
func New(name string, data []byte) Activity {
	return Activity{Name: name, Data: data}
}

// Extension returns the substring after the final '.' in the name, case
// preserved, or "" when the name has no dot. It is used purely for checker
// dispatch; callers that need case-insensitivity lower-case the result.
func (a Activity) Extension() string {
	idx := strings.LastIndex(a.Name, ".")
	if idx < 0 {
		return ""
	}
	return a.Name[idx+1:]
}

// ContentHash computes the MD5 digest of the exact byte buffer. It exists so
// the file can be externally compared to other versions/files, and is
// recomputed on every call.
func (a Activity) ContentHash() string {
	sum, _ := checksum.Sum(a.Data, checksum.MD5)
	return sum
}

// HashWith computes the content digest using the given algorithm.
func (a Activity) HashWith(algorithm checksum.Algorithm) (string, error) {
	return checksum.Sum(a.Data, algorithm)
}

// Size returns the length of the byte buffer.
func (a Activity) Size() int {
	return len(a.Data)
}
