package pipeline

import "time"

// Event is a domain event published after pipeline stages.
type Event interface{ Name() string }

// Event names used in the pipeline.
const (
	EventExportCompleted = "ExportCompleted"
)

// ExportCompleted announces a finished web export.
type ExportCompleted struct {
	RunID       string    `json:"run_id"`
	ContentHash string    `json:"content_hash"`
	Dir         string    `json:"dir"`
	Files       int       `json:"files"`
	Speakers    int       `json:"speakers"`
	Wahlperiode int       `json:"wahlperiode"`
	GeneratedAt time.Time `json:"generated_at"`
}

func (ExportCompleted) Name() string { return EventExportCompleted }
