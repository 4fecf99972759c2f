// Package runner evaluates a batch of activities, sequentially or fanned out
// across workers. Each file's check is an independent pure function of its
// bytes, so the only coordination needed is the verdict tally.
package runner

import (
	"log/slog"
	"runtime"
	"sync"

	"github.com/cwbooth5/filefitness/internal/store"
	"github.com/cwbooth5/filefitness/pkg/activity"
	"github.com/cwbooth5/filefitness/pkg/check"
	"github.com/cwbooth5/filefitness/pkg/checksum"
)

// Summary tallies the verdicts from one batch.
type Summary struct {
	Total  int
	Passed int
	Failed int
}

// Runner drives integrity evaluation over a set of activities.
type Runner struct {
	Eval      *check.Evaluator
	Log       *slog.Logger
	Store     *store.DigestStore // optional; nil disables digest tracking
	Workers   int                // 1 = sequential, 0 = one per CPU
	Algorithm checksum.Algorithm // digest algorithm for the store; defaults to md5
}

// Run evaluates every activity and returns the tally. A classified defect in
// one file never affects another file's evaluation; only errors outside the
// defect taxonomy abort the batch, and the first such error is returned.
func (r *Runner) Run(activities []activity.Activity) (Summary, error) {
	workers := r.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(activities) {
		workers = len(activities)
	}

	if workers <= 1 {
		return r.runSequential(activities)
	}
	return r.runParallel(activities, workers)
}

func (r *Runner) runSequential(activities []activity.Activity) (Summary, error) {
	sum := Summary{Total: len(activities)}
	for _, act := range activities {
		ok, err := r.evaluate(act)
		if err != nil {
			return sum, err
		}
		if ok {
			sum.Passed++
		} else {
			sum.Failed++
		}
	}
	return sum, nil
}

func (r *Runner) runParallel(activities []activity.Activity, workers int) (Summary, error) {
	sum := Summary{Total: len(activities)}
	jobs := make(chan activity.Activity)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for act := range jobs {
				ok, err := r.evaluate(act)
				mu.Lock()
				switch {
				case err != nil:
					if firstErr == nil {
						firstErr = err
					}
				case ok:
					sum.Passed++
				default:
					sum.Failed++
				}
				mu.Unlock()
			}
		}()
	}

	for _, act := range activities {
		jobs <- act
	}
	close(jobs)
	wg.Wait()

	return sum, firstErr
}

func (r *Runner) evaluate(act activity.Activity) (bool, error) {
	ok, err := r.Eval.Evaluate(act)
	if err != nil {
		return false, err
	}
	r.recordDigest(act)
	return ok, nil
}

// recordDigest updates the digest index and reports whether the file's
// content moved since the last run. Store problems are warnings, never a
// reason to fail the check.
func (r *Runner) recordDigest(act activity.Activity) {
	if r.Store == nil {
		return
	}

	algorithm := r.Algorithm
	if algorithm == "" {
		algorithm = checksum.MD5
	}
	hash, err := act.HashWith(algorithm)
	if err != nil {
		r.Log.Warn("content hash failed", "file", act.Name, "error", err)
		return
	}

	prev, err := r.Store.Record(act.Name, hash, string(algorithm))
	if err != nil {
		r.Log.Warn("digest store update failed", "file", act.Name, "error", err)
		return
	}

	switch {
	case prev == nil:
		r.Log.Debug("content recorded", "file", act.Name, "hash", hash)
	case prev.Hash == hash:
		r.Log.Debug("content unchanged since last run", "file", act.Name, "last_seen", prev.LastSeen)
	default:
		r.Log.Info("content changed since last run", "file", act.Name, "previous_hash", prev.Hash, "hash", hash)
	}
}
