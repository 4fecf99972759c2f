// Command filefitness checks .fit and .gpx files for integrity so they can
// be vetted prior to use/import into other programs. It looks for common
// issues, such as empty files, truncated files, and malformed XML.
//
// Usage:
//
//	filefitness [flags] <file-or-directory> ...
//
// Directories are scanned one level deep. Exit codes: 0 when every checked
// file passes, 1 when at least one file fails its integrity check, 2 on
// usage or fatal errors.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/cwbooth5/filefitness/internal/config"
	"github.com/cwbooth5/filefitness/internal/runner"
	"github.com/cwbooth5/filefitness/internal/scan"
	"github.com/cwbooth5/filefitness/internal/store"
	"github.com/cwbooth5/filefitness/pkg/check"
	"github.com/cwbooth5/filefitness/pkg/checksum"
)

const defaultConfigPath = ".filefitness.yaml"

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

func run(args []string, stderr io.Writer) int {
	flags := flag.NewFlagSet("filefitness", flag.ContinueOnError)
	flags.SetOutput(stderr)
	var (
		configPath = flags.String("config", defaultConfigPath, "path to the YAML config file")
		logLevel   = flags.String("log-level", "", "minimum log level: debug, info, warn, error (overrides config)")
		workers    = flags.Int("workers", -1, "parallel checks: 1 = sequential, 0 = one per CPU (overrides config)")
		dbPath     = flags.String("db", "", "path to the digest database (overrides config)")
		hashAlgo   = flags.String("hash", "", "content hash algorithm: md5, sha256, xxhash (overrides config)")
	)
	if err := flags.Parse(args); err != nil {
		return 2
	}
	targets := flags.Args()
	if len(targets) == 0 {
		fmt.Fprintln(stderr, "usage: filefitness [flags] <file-or-directory> ...")
		return 2
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "warning: loading config: %v\n", err)
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *workers >= 0 {
		cfg.Workers = *workers
	}
	if *dbPath != "" {
		cfg.DigestDB = *dbPath
	}
	if *hashAlgo != "" {
		cfg.Hash = *hashAlgo
	}

	level, err := parseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}
	log := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	maxSize, err := cfg.MaxFileSizeBytes()
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}

	var digests *store.DigestStore
	if cfg.DigestDB != "" {
		digests, err = store.Open(cfg.DigestDB)
		if err != nil {
			fmt.Fprintf(stderr, "error: open digest store: %v\n", err)
			return 2
		}
		defer digests.Close()
	}

	scanner := &scan.Scanner{Log: log, MaxFileSize: maxSize}
	activities, err := scanner.Collect(targets)
	if err != nil {
		log.Error("scan failed", "error", err)
		return 2
	}

	r := &runner.Runner{
		Eval:      check.NewEvaluator(log),
		Log:       log,
		Store:     digests,
		Workers:   cfg.Workers,
		Algorithm: checksum.Algorithm(cfg.Hash),
	}
	sum, err := r.Run(activities)
	if err != nil {
		log.Error("run aborted", "error", err)
		return 2
	}

	log.Info("batch complete", "total", sum.Total, "passed", sum.Passed, "failed", sum.Failed)
	if sum.Failed > 0 {
		return 1
	}
	return 0
}

func parseLevel(s string) (slog.Level, error) {
	switch s {
	case "debug", "":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}
