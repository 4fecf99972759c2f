// Package scan discovers candidate activity files and reads them fully into
// memory. We aren't going to try and guess a file by its contents; the
// extension needs to be correct.
package scan

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/cwbooth5/filefitness/pkg/activity"
)

// Scanner collects eligible files from target paths.
type Scanner struct {
	Log         *slog.Logger
	MaxFileSize int64 // bytes; 0 means unlimited
}

// Collect walks each target and returns an Activity for every eligible file
// in discovery order. A target may be a single file or a directory, which is
// scanned one level deep (no recursion). The .fit/.gpx suffix match is
// case-insensitive; everything else is skipped with a debug note.
func (s *Scanner) Collect(targets []string) ([]activity.Activity, error) {
	var activities []activity.Activity

	for _, target := range targets {
		info, err := os.Stat(target)
		if err != nil {
			return nil, fmt.Errorf("scan: stat %s: %w", target, err)
		}

		if !info.IsDir() {
			act, ok, err := s.load(target)
			if err != nil {
				return nil, err
			}
			if ok {
				activities = append(activities, act)
			}
			continue
		}

		entries, err := os.ReadDir(target)
		if err != nil {
			return nil, fmt.Errorf("scan: read dir %s: %w", target, err)
		}
		for _, entry := range entries {
			path := filepath.Join(target, entry.Name())
			if entry.IsDir() {
				s.Log.Debug("directory skipped", "path", path)
				continue
			}
			act, ok, err := s.load(path)
			if err != nil {
				return nil, err
			}
			if ok {
				activities = append(activities, act)
			}
		}
	}

	s.Log.Info("files found for processing", "count", len(activities))
	return activities, nil
}

// load reads one file into an Activity if it is eligible. Oversized files
// are skipped with a warning rather than failing the batch.
func (s *Scanner) load(path string) (activity.Activity, bool, error) {
	if !eligible(path) {
		s.Log.Debug("file skipped", "path", path)
		return activity.Activity{}, false, nil
	}

	if s.MaxFileSize > 0 {
		info, err := os.Stat(path)
		if err != nil {
			return activity.Activity{}, false, fmt.Errorf("scan: stat %s: %w", path, err)
		}
		if info.Size() > s.MaxFileSize {
			s.Log.Warn("file exceeds size limit, skipped", "path", path, "size", info.Size(), "limit", s.MaxFileSize)
			return activity.Activity{}, false, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return activity.Activity{}, false, fmt.Errorf("scan: read %s: %w", path, err)
	}
	return activity.New(path, data), true, nil
}

// eligible reports whether the file name carries one of the supported
// extensions, matched case-insensitively.
func eligible(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, ".fit") || strings.HasSuffix(lower, ".gpx")
}
