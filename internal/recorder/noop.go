package recorder

import "github.com/ryanlwk/marksix-analysisv1/internal/model"

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordUpdate(_ *UpdateRun) error  { return nil }
func (n *NoopRecorder) RecordDraws(_ []model.Draw) error { return nil }
func (n *NoopRecorder) Close() error                     { return nil }
