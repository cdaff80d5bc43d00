// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package aggregate parses reference files in parallel and merges the
// results into a single manifest keyed by API name.
package aggregate

import (
	"context"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/puzpuzpuz/xsync/v3"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/scrape-docs/internal/docparse"
	"github.com/pdiddy/scrape-docs/pkg/types"
)

// DocParser parses one file into an APIDoc. Any error means the file
// contributes nothing to the manifest.
type DocParser interface {
	ParseFile(path string) (*types.APIDoc, error)
}

// Options controls a Run.
type Options struct {
	// Workers bounds parallel parses. Zero or negative uses GOMAXPROCS.
	Workers int

	// ReportDuplicates logs name collisions at warn instead of debug.
	ReportDuplicates bool
}

// Summary holds counts from an aggregation run.
type Summary struct {
	Parsed     int
	Skipped    int
	Failed     int
	Duplicates int
	Elapsed    time.Duration
}

// Total returns the number of files processed.
func (s Summary) Total() int {
	return s.Parsed + s.Skipped + s.Failed + s.Duplicates
}

// Run parses every file with p and returns the merged manifest. Files are
// independent; per-file errors are logged and counted, never returned.
// When two files resolve to the same API name the first to insert wins.
//
// If ctx is cancelled Run returns ctx.Err() and no manifest; in-flight
// parses finish but no new ones start.
func Run(ctx context.Context, files []string, p DocParser, opts Options, log zerolog.Logger) (types.Manifest, Summary, error) {
	start := time.Now()

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	docs := xsync.NewMapOf[string, *entry]()
	var parsed, skipped, failed, dups atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, path := range files {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			doc, err := p.ParseFile(path)
			if err != nil {
				if docparse.IsSkip(err) {
					skipped.Add(1)
					log.Warn().Str("file", path).Err(err).Msg("skipping document")
				} else {
					failed.Add(1)
					log.Error().Str("file", path).Err(err).Msg("reading document")
				}
				return nil
			}

			winner, loaded := docs.LoadOrStore(doc.APIName, &entry{doc: doc, path: path})
			if loaded {
				dups.Add(1)
				ev := log.Debug()
				if opts.ReportDuplicates {
					ev = log.Warn()
				}
				ev.Str("api", doc.APIName).
					Str("file", path).
					Str("kept", winner.path).
					Msg("duplicate api name")
				return nil
			}
			parsed.Add(1)
			return nil
		})
	}

	waitErr := g.Wait()

	summary := Summary{
		Parsed:     int(parsed.Load()),
		Skipped:    int(skipped.Load()),
		Failed:     int(failed.Load()),
		Duplicates: int(dups.Load()),
		Elapsed:    time.Since(start),
	}

	if err := ctx.Err(); err != nil {
		return nil, summary, err
	}
	if waitErr != nil {
		return nil, summary, waitErr
	}

	manifest := make(types.Manifest, docs.Size())
	docs.Range(func(name string, e *entry) bool {
		manifest[name] = *e.doc
		return true
	})
	return manifest, summary, nil
}

// entry remembers which file produced a manifest record, for duplicate
// diagnostics.
type entry struct {
	doc  *types.APIDoc
	path string
}
