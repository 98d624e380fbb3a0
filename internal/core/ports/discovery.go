package ports

import (
	"context"

	"github.com/thushan/ollaview/internal/core/domain"
)

// ModelLister lists the models installed in the inference service
type ModelLister interface {
	ListModels(ctx context.Context) (*domain.ModelList, error)
}

// RefreshRecorder receives the outcome of each refresh cycle
type RefreshRecorder interface {
	RecordSuccess(list *domain.ModelList)
	RecordFailure(kind domain.ErrorKind)
}
