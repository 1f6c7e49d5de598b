package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/custodia-labs/pbi-refresh/internal/core/domain"
	"github.com/custodia-labs/pbi-refresh/internal/core/ports/driven"
	"github.com/custodia-labs/pbi-refresh/internal/core/ports/driving"
	"github.com/custodia-labs/pbi-refresh/internal/logger"
)

// Ensure DispatchService implements the interface.
var _ driving.DispatchService = (*DispatchService)(nil)

// DispatchService issues refresh requests over the registry, one dataset at a time.
type DispatchService struct {
	refresher driven.Refresher
	newRunID  func() string
}

// NewDispatchService creates a new dispatch service.
func NewDispatchService(refresher driven.Refresher) *DispatchService {
	return &DispatchService{
		refresher: refresher,
		newRunID:  uuid.NewString,
	}
}

// Dispatch refreshes every dataset in the groups selected by mode.
//
// Groups are visited in ascending key order and datasets in stored order.
// Each dataset gets exactly one request; failures are recorded and the batch continues.
// Cancelling ctx stops the batch between requests and returns the results so far
// together with the context error.
func (s *DispatchService) Dispatch(
	ctx context.Context,
	mode domain.DispatchMode,
	groups domain.Registry,
	token domain.Token,
	onResult driving.ResultHandler,
) ([]domain.RefreshResult, error) {
	selected, err := selectGroups(mode, groups)
	if err != nil {
		return nil, err
	}

	runID := s.newRunID()
	logger.Section("Dispatch")
	logger.Info("run %s: %s, %d group(s)", runID, mode, len(selected))

	var results []domain.RefreshResult
	for _, group := range selected {
		logger.Debug("run %s: group %s has %d dataset(s)", runID, group.Key, len(group.Members))
		for _, resourceID := range group.Members {
			if err := ctx.Err(); err != nil {
				return results, fmt.Errorf("dispatch interrupted: %w", err)
			}

			outcome := s.refresher.Refresh(ctx, resourceID, token)
			result := domain.RefreshResult{
				RunID:      runID,
				GroupKey:   group.Key,
				ResourceID: resourceID,
				Outcome:    outcome,
			}
			if outcome.Succeeded() {
				logger.Debug("run %s: %s accepted (%d)", runID, resourceID, outcome.StatusCode)
			} else {
				logger.Info("run %s: %s rejected (%d) %s", runID, resourceID, outcome.StatusCode, outcome.Detail)
			}

			results = append(results, result)
			if onResult != nil {
				onResult(result)
			}
		}
	}

	return results, nil
}

func selectGroups(mode domain.DispatchMode, groups domain.Registry) ([]domain.ResourceGroup, error) {
	key, single := mode.Key()
	if !single {
		return groups.Groups(), nil
	}
	group, ok := groups.Get(key)
	if !ok {
		return nil, fmt.Errorf("group %s: %w", key, domain.ErrNotFound)
	}
	return []domain.ResourceGroup{group}, nil
}
