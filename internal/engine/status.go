package engine

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// FileResult records the outcome of one imported file.
type FileResult struct {
	Path string
	OK   bool
	// Err holds the failure detail when OK is false.
	Err string
}

// ImportStatus is the run record of one batch import. It is created at
// the start of the run, mutated during the loop and returned to the
// caller; there is no process-wide instance.
type ImportStatus struct {
	// RunID uniquely identifies this run in logs.
	RunID string

	TotalFiles   int
	CurrentIndex int
	CurrentFile  string

	SuccessCount int
	FailedCount  int
	Results      []FileResult

	StartTime time.Time
	Elapsed   time.Duration
	Cancelled bool
}

// NewImportStatus creates a status for a run over total files.
func NewImportStatus(total int) *ImportStatus {
	return &ImportStatus{
		RunID:      ulid.Make().String(),
		TotalFiles: total,
		StartTime:  time.Now(),
	}
}

// recordSuccess appends a successful file result.
func (s *ImportStatus) recordSuccess(path string) {
	s.SuccessCount++
	s.Results = append(s.Results, FileResult{Path: path, OK: true})
}

// recordFailure appends a failed file result with its detail.
func (s *ImportStatus) recordFailure(path, detail string) {
	s.FailedCount++
	s.Results = append(s.Results, FileResult{Path: path, OK: false, Err: detail})
}

// Processed returns how many files have completed, successfully or not.
func (s *ImportStatus) Processed() int {
	return s.SuccessCount + s.FailedCount
}
