package handler

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"github.com/durabrake/financial-dashboard/internal/domain"
	"github.com/durabrake/financial-dashboard/internal/usecases/generating"
)

// DocumentReader serves raw archive documents.
type DocumentReader interface {
	ReadDocument(period domain.Period, document string) ([]byte, string, error)
}

// GenerationTrigger starts runs in the background and reports on them.
type GenerationTrigger interface {
	TriggerManualRun(ctx context.Context, req generating.Request) error
	GetStatus() map[string]any
}
