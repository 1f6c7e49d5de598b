package driving

import (
	"context"

	"github.com/custodia-labs/pbi-refresh/internal/core/domain"
)

// ResultHandler receives each refresh result as soon as it is known.
type ResultHandler func(result domain.RefreshResult)

// DispatchService fans refresh requests out over the registry.
type DispatchService interface {
	// Dispatch issues one refresh per dataset in the groups selected by mode.
	// Per-dataset failures are reported in the results and never abort the batch.
	// A SingleGroup mode with an unknown key returns an error wrapping domain.ErrNotFound
	// without issuing any request. onResult may be nil.
	Dispatch(
		ctx context.Context,
		mode domain.DispatchMode,
		groups domain.Registry,
		token domain.Token,
		onResult ResultHandler,
	) ([]domain.RefreshResult, error)
}
