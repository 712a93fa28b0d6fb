// Package engine implements the fbxbatch pipeline: batch import, scene
// cleanup and material merge. It is a pure computation layer over the
// interfaces in internal/scene; progress is emitted through callbacks so
// any presentation layer can subscribe.
package engine

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/draycall/fbxbatch/internal/scene"
)

// SaveExtension is the output extension for saved cleaned scenes.
const SaveExtension = ".gltf"

// Options control one batch run.
type Options struct {
	SortMode         SortMode
	CleanAfterImport bool
	MergeAfterClean  bool
	SaveCleanedFiles bool
}

// ProgressEvent is emitted after every completed file so a UI can update.
type ProgressEvent struct {
	File      string
	Index     int // 1-based index of the completed file
	Total     int
	Succeeded int
	Failed    int
}

// ProgressFunc receives progress events. It is called from the goroutine
// running the pipeline.
type ProgressFunc func(ev ProgressEvent)

// Importer drives the per-file pipeline: reset, import, clean, merge,
// save.
type Importer struct {
	host       scene.Host
	log        zerolog.Logger
	sizer      Sizer
	onProgress ProgressFunc
}

// NewImporter creates an importer over host.
func NewImporter(h scene.Host, logger zerolog.Logger) *Importer {
	return &Importer{host: h, log: logger, sizer: StatSizer}
}

// WithProgress sets the progress callback.
func (im *Importer) WithProgress(fn ProgressFunc) *Importer {
	im.onProgress = fn
	return im
}

// WithSizer overrides the file size lookup used by the size sort modes.
func (im *Importer) WithSizer(s Sizer) *Importer {
	im.sizer = s
	return im
}

// Run processes paths according to opts and returns the run status. The
// status always satisfies SuccessCount + FailedCount == files processed.
//
// Per-file failures (import errors, no objects produced, clean or merge
// trouble) are recorded and the loop continues with the next file.
// Cancellation is cooperative: the context is checked once per iteration
// boundary, never mid-file, and a cancelled run returns the status
// accumulated so far with Cancelled set.
func (im *Importer) Run(ctx context.Context, paths []string, opts Options) (*ImportStatus, error) {
	if len(paths) == 0 {
		return nil, ErrNoFiles
	}

	sorted := make([]string, len(paths))
	copy(sorted, paths)
	SortFiles(opts.SortMode, sorted, im.sizer)

	status := NewImportStatus(len(sorted))
	log := im.log.With().Str("run_id", status.RunID).Logger()
	log.Info().Int("files", status.TotalFiles).Str("sort", string(opts.SortMode)).Msg("batch import started")

	graph := im.host.Graph()
	for i, path := range sorted {
		if ctx.Err() != nil {
			status.Cancelled = true
			log.Warn().Int("processed", status.Processed()).Msg("batch import cancelled")
			break
		}

		status.CurrentIndex = i
		status.CurrentFile = path

		if err := im.processFile(ctx, graph, path, opts, log); err != nil {
			status.recordFailure(path, err.Error())
			log.Error().Err(err).Str("file", path).Msg("file failed")
		} else {
			status.recordSuccess(path)
			log.Info().Str("file", path).Msg("file processed")
		}

		if im.onProgress != nil {
			im.onProgress(ProgressEvent{
				File:      path,
				Index:     i + 1,
				Total:     status.TotalFiles,
				Succeeded: status.SuccessCount,
				Failed:    status.FailedCount,
			})
		}
	}

	status.Elapsed = time.Since(status.StartTime)
	log.Info().
		Int("succeeded", status.SuccessCount).
		Int("failed", status.FailedCount).
		Bool("cancelled", status.Cancelled).
		Dur("elapsed", status.Elapsed).
		Msg("batch import finished")
	return status, nil
}

// processFile runs the full pipeline for one file. Success requires the
// scene object count to strictly increase over the import call; the host
// primitive itself gives no explicit signal.
func (im *Importer) processFile(
	ctx context.Context,
	graph scene.Graph,
	path string,
	opts Options,
	log zerolog.Logger,
) error {
	if err := graph.ResetWorkspace(); err != nil {
		return err
	}

	before := len(graph.Objects())
	if err := im.host.Importer().Import(ctx, path); err != nil {
		return err
	}
	if len(graph.Objects()) <= before {
		return ErrNoObjectsImported
	}

	if !opts.CleanAfterImport {
		return nil
	}

	cleaner := NewCleaner(graph, log)
	report, err := cleaner.Clean()
	if err != nil {
		return err
	}

	if opts.MergeAfterClean {
		merger := NewMerger(graph, im.host.Mesh(), log)
		if _, err := merger.Merge(ctx, report.Kept); err != nil {
			// An empty geometry set after cleaning is a per-file
			// condition, not a batch failure.
			log.Warn().Err(err).Str("file", path).Msg("merge skipped")
		}
	}

	if opts.SaveCleanedFiles {
		out := SavePathFor(path, SaveExtension)
		if err := im.host.Saver().Save(graph, out); err != nil {
			return err
		}
		log.Debug().Str("file", out).Msg("cleaned scene saved")
	}
	return nil
}
