package domain

import "time"

type GenerationStatus string

const (
	GenerationRunning   GenerationStatus = "running"
	GenerationSucceeded GenerationStatus = "succeeded"
	GenerationFailed    GenerationStatus = "failed"
	GenerationImported  GenerationStatus = "imported"
)

// GenerationRun is one orchestrator invocation as kept in the run ledger.
type GenerationRun struct {
	ID             string           `json:"id"`
	Period         string           `json:"period"`
	Status         GenerationStatus `json:"status"`
	Overwrite      bool             `json:"overwrite"`
	SkippedRecords int              `json:"skipped_records"`
	ErrorMessage   *string          `json:"error_message,omitempty"`
	StartedAt      time.Time        `json:"started_at"`
	FinishedAt     *time.Time       `json:"finished_at,omitempty"`
}
