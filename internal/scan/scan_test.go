package scan

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newScanner(buf *bytes.Buffer) *Scanner {
	log := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return &Scanner{Log: log}
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCollectDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "ride1.fit", []byte("fit bytes"))
	writeFile(t, dir, "course.gpx", []byte("<gpx/>"))
	writeFile(t, dir, "lap2.txt", []byte("notes"))

	var buf bytes.Buffer
	activities, err := newScanner(&buf).Collect([]string{dir})
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}

	if len(activities) != 2 {
		t.Fatalf("collected %d activities, want 2", len(activities))
	}
	for _, act := range activities {
		if strings.HasSuffix(act.Name, ".txt") {
			t.Errorf("%s should have been skipped", act.Name)
		}
	}
	if !strings.Contains(buf.String(), "file skipped") || !strings.Contains(buf.String(), "lap2.txt") {
		t.Errorf("missing skip note for lap2.txt:\n%s", buf.String())
	}
}

func TestCollectCaseInsensitiveSuffix(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "RIDE2.FIT", []byte("fit bytes"))
	writeFile(t, dir, "Track.Gpx", []byte("<gpx/>"))

	var buf bytes.Buffer
	activities, err := newScanner(&buf).Collect([]string{dir})
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(activities) != 2 {
		t.Errorf("collected %d activities, want 2", len(activities))
	}
}

func TestCollectNonRecursive(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "top.fit", []byte("fit bytes"))
	sub := filepath.Join(dir, "nested")
	if err := os.Mkdir(sub, 0755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, sub, "below.fit", []byte("fit bytes"))

	var buf bytes.Buffer
	activities, err := newScanner(&buf).Collect([]string{dir})
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(activities) != 1 {
		t.Fatalf("collected %d activities, want 1 (no recursion)", len(activities))
	}
	if filepath.Base(activities[0].Name) != "top.fit" {
		t.Errorf("collected %q, want top.fit", activities[0].Name)
	}
	if !strings.Contains(buf.String(), "directory skipped") {
		t.Errorf("missing skip note for the nested directory:\n%s", buf.String())
	}
}

func TestCollectSingleFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "solo.gpx", []byte("<gpx/>"))

	var buf bytes.Buffer
	activities, err := newScanner(&buf).Collect([]string{path})
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(activities) != 1 {
		t.Fatalf("collected %d activities, want 1", len(activities))
	}
	if activities[0].Name != path {
		t.Errorf("Name = %q, want %q", activities[0].Name, path)
	}
	if string(activities[0].Data) != "<gpx/>" {
		t.Errorf("Data = %q, want file content", activities[0].Data)
	}
}

func TestCollectMissingTarget(t *testing.T) {
	var buf bytes.Buffer
	_, err := newScanner(&buf).Collect([]string{filepath.Join(t.TempDir(), "nope")})
	if err == nil {
		t.Fatal("expected error for a missing target")
	}
}

func TestCollectMaxFileSize(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "big.fit", bytes.Repeat([]byte{0}, 64))
	writeFile(t, dir, "small.fit", []byte("ok"))

	var buf bytes.Buffer
	s := newScanner(&buf)
	s.MaxFileSize = 32
	activities, err := s.Collect([]string{dir})
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(activities) != 1 {
		t.Fatalf("collected %d activities, want 1 (oversized skipped)", len(activities))
	}
	if !strings.Contains(buf.String(), "exceeds size limit") {
		t.Errorf("missing oversize warning:\n%s", buf.String())
	}
}
