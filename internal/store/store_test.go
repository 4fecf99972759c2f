package store

import (
	"path/filepath"
	"testing"
)

func openStore(t *testing.T) *DigestStore {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "digests.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordFirstSighting(t *testing.T) {
	s := openStore(t)

	prev, err := s.Record("ride1.fit", "abc123", "md5")
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if prev != nil {
		t.Errorf("first sighting should have no previous entry, got %+v", prev)
	}

	entry, err := s.Get("ride1.fit")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if entry == nil {
		t.Fatal("entry should exist after Record")
	}
	if entry.Hash != "abc123" || entry.Algorithm != "md5" {
		t.Errorf("entry = %+v", entry)
	}
	if entry.FirstSeen.IsZero() || entry.LastSeen.IsZero() {
		t.Error("timestamps should be set")
	}
}

func TestRecordUnchanged(t *testing.T) {
	s := openStore(t)

	if _, err := s.Record("ride1.fit", "abc123", "md5"); err != nil {
		t.Fatal(err)
	}
	prev, err := s.Record("ride1.fit", "abc123", "md5")
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if prev == nil || prev.Hash != "abc123" {
		t.Errorf("previous entry = %+v, want hash abc123", prev)
	}
}

func TestRecordChanged(t *testing.T) {
	s := openStore(t)

	if _, err := s.Record("ride1.fit", "abc123", "md5"); err != nil {
		t.Fatal(err)
	}
	prev, err := s.Record("ride1.fit", "def456", "md5")
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if prev == nil || prev.Hash != "abc123" {
		t.Errorf("previous entry = %+v, want hash abc123", prev)
	}

	entry, err := s.Get("ride1.fit")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if entry.Hash != "def456" {
		t.Errorf("Hash = %q, want %q", entry.Hash, "def456")
	}
	if !entry.FirstSeen.Equal(prev.FirstSeen) {
		t.Error("FirstSeen should survive updates")
	}
}

func TestGetMissing(t *testing.T) {
	s := openStore(t)

	entry, err := s.Get("never-seen.gpx")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if entry != nil {
		t.Errorf("entry = %+v, want nil", entry)
	}
}
