package activity

import (
	"testing"

	"github.com/cwbooth5/filefitness/pkg/checksum"
)

func TestExtension(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"ride1.fit", "fit"},
		{"course.gpx", "gpx"},
		{"RIDE2.FIT", "FIT"}, // case preserved; callers normalize
		{"archive.tar.gz", "gz"},
		{"noextension", ""},
	}
	for _, c := range cases {
		act := New(c.name, nil)
		if got := act.Extension(); got != c.want {
			t.Errorf("Extension(%q) = %q, want %q", c.name, got, c.want)
		}
	}
}

func TestContentHashDeterministic(t *testing.T) {
	a := New("a.fit", []byte("identical bytes"))
	b := New("b.fit", []byte("identical bytes"))

	if a.ContentHash() != b.ContentHash() {
		t.Errorf("identical buffers hashed differently: %q vs %q", a.ContentHash(), b.ContentHash())
	}
	if a.ContentHash() != a.ContentHash() {
		t.Error("repeated calls disagree")
	}
}

func TestContentHashDiffers(t *testing.T) {
	a := New("a.fit", []byte("identical bytes"))
	c := New("c.fit", []byte("identical byteZ"))
	if a.ContentHash() == c.ContentHash() {
		t.Error("one-byte change produced the same digest")
	}
}

func TestHashWith(t *testing.T) {
	act := New("a.fit", []byte("hello"))

	md5sum, err := act.HashWith(checksum.MD5)
	if err != nil {
		t.Fatalf("HashWith(md5): %v", err)
	}
	if md5sum != act.ContentHash() {
		t.Errorf("HashWith(md5) = %q, ContentHash = %q", md5sum, act.ContentHash())
	}

	sha, err := act.HashWith(checksum.SHA256)
	if err != nil {
		t.Fatalf("HashWith(sha256): %v", err)
	}
	if sha == md5sum {
		t.Error("sha256 and md5 digests should differ")
	}

	if _, err := act.HashWith(checksum.Algorithm("bogus")); err == nil {
		t.Error("expected error for unsupported algorithm")
	}
}
