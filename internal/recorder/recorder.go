package recorder

import (
	"time"

	"github.com/ryanlwk/marksix-analysisv1/internal/model"
)

// UpdateRun describes one completed update for the audit log.
type UpdateRun struct {
	Timestamp    time.Time
	Source       string
	RowsFetched  int
	RowsAdded    int
	ForceRefresh bool
}

// Recorder archives update runs and merged draws outside the CSV, so the
// update trail survives full-file rewrites.
type Recorder interface {
	RecordUpdate(run *UpdateRun) error
	RecordDraws(draws []model.Draw) error
	Close() error
}
