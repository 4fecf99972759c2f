// Package check validates the integrity of activity files. The .fit and
// .gpx file formats are supported: each has a format-specific checker, and
// the Evaluator dispatches a file to the right one and converts classified
// defects into a logged verdict.
package check

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"

	"github.com/cwbooth5/filefitness/pkg/activity"
)

// Evaluator runs integrity checks and reports verdicts through an explicitly
// provided logger, so the checking logic carries no global state.
type Evaluator struct {
	log *slog.Logger
}

// NewEvaluator builds an Evaluator that reports through log. A nil logger
// discards all output.
func NewEvaluator(log *slog.Logger) *Evaluator {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Evaluator{log: log}
}

// Evaluate checks the integrity of a single activity and returns the
// verdict. Classified defects are logged and yield false; a non-nil error
// means the failure was outside the taxonomy and the caller should treat it
// as fatal.
//
// Dispatch is on the lower-cased extension, so .FIT and .GPX files are
// evaluated the same as their lower-case counterparts.
func (e *Evaluator) Evaluate(act activity.Activity) (bool, error) {
	var err error
	switch strings.ToLower(act.Extension()) {
	case "fit":
		err = CheckFIT(act, e.log)
	case "gpx":
		err = CheckGPX(act, e.log)
	default:
		// The scanner only admits fit and gpx files; anything else landing
		// here is a bug upstream.
		return false, fmt.Errorf("check: no checker for extension %q (%s)", act.Extension(), act.Name)
	}

	if err != nil {
		if d, ok := AsDefect(err); ok {
			e.log.Error("integrity error", "file", act.Name, "kind", string(d.Kind), "detail", d.Err.Error())
			return false, nil
		}
		return false, err
	}

	e.log.Info("integrity OK", "file", act.Name)
	return true, nil
}

// reportAverages logs the rounded mean of each non-empty reading list. An
// empty list just means the file carries no such sensor data, which is not
// a defect, so it is skipped rather than reported.
func reportAverages(log *slog.Logger, name string, power, hr []int64) {
	if len(power) > 0 {
		log.Info("average power", "file", name, "watts", mean(power))
	}
	if len(hr) > 0 {
		log.Info("average heart rate", "file", name, "bpm", mean(hr))
	}
}

func mean(samples []int64) int {
	var sum int64
	for _, s := range samples {
		sum += s
	}
	return int(math.Round(float64(sum) / float64(len(samples))))
}
