package driven

import (
	"context"

	"github.com/custodia-labs/pbi-refresh/internal/core/domain"
)

// Refresher triggers a refresh of one dataset.
//
// Refresh never returns an error: transport failures and rejected requests
// are reported as a domain.OutcomeFailure with diagnostic detail.
type Refresher interface {
	Refresh(ctx context.Context, resourceID string, token domain.Token) domain.RefreshOutcome
}
