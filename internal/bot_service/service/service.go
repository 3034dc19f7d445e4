package service

import (
	"context"
	"strings"

	"github.com/MorningZephyr/zhen-bot/internal/models"
	"github.com/MorningZephyr/zhen-bot/internal/profile"
	"github.com/MorningZephyr/zhen-bot/internal/profile/representer"
	"github.com/MorningZephyr/zhen-bot/pkg/logger"
)

// Service is the application layer of the bot. It fronts the profile engine
// and the representation adapter, and converts storage faults into the typed
// error status so transport handlers never see raw Go errors from reads and
// writes.
type Service struct {
	engine      *profile.Engine
	representer *representer.Representer
	logger      *logger.Logger
}

// NewService creates a Service. representer may be nil when the deployment
// only learns and retrieves facts without persona answering.
func NewService(engine *profile.Engine, rep *representer.Representer, log *logger.Logger) *Service {
	return &Service{
		engine:      engine,
		representer: rep,
		logger:      log,
	}
}

// Learn runs one learn attempt on behalf of caller.
func (s *Service) Learn(ctx context.Context, caller models.CallerContext, statement string) *models.LearnResult {
	result, err := s.engine.Learn(ctx, caller, statement)
	if err != nil {
		s.logger.WithError(models.ErrorInfo{Message: err.Error(), Type: "storage_error"}).
			Error("learn failed on storage")
		return &models.LearnResult{
			Status:  models.StatusError,
			Message: "Error saving information: " + err.Error(),
		}
	}
	return result
}

// ListFacts returns everything known about the owner. Any caller may read.
func (s *Service) ListFacts(ctx context.Context, ownerID string) *models.ProfileSummary {
	summary, err := s.engine.ListFacts(ctx, ownerID)
	if err != nil {
		s.logger.WithError(models.ErrorInfo{Message: err.Error(), Type: "storage_error"}).
			Error("list facts failed on storage")
		return &models.ProfileSummary{
			Status:  models.StatusError,
			Message: "Error retrieving facts: " + err.Error(),
			Facts:   map[string]models.FactSummary{},
		}
	}
	return summary
}

// SearchFacts runs a keyword query over the owner's profile.
func (s *Service) SearchFacts(ctx context.Context, ownerID, query string) *models.SearchResult {
	result, err := s.engine.SearchFacts(ctx, ownerID, query)
	if err != nil {
		s.logger.WithError(models.ErrorInfo{Message: err.Error(), Type: "storage_error"}).
			Error("search failed on storage")
		return &models.SearchResult{
			Status:  models.StatusError,
			Message: "Error searching facts: " + err.Error(),
			Matches: map[string]models.SearchMatch{},
			Query:   query,
		}
	}
	return result
}

// Ask answers a question in the owner's voice, grounded on the stored
// profile. The caller does not need to be the owner.
func (s *Service) Ask(ctx context.Context, owner models.CallerContext, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", errEmptyQuestion
	}
	if s.representer == nil {
		return "", errAskDisabled
	}

	snapshot, err := s.engine.Snapshot(ctx, owner.OwnerID)
	if err != nil {
		s.logger.WithError(models.ErrorInfo{Message: err.Error(), Type: "storage_error"}).
			Error("ask failed on storage")
		return "", err
	}

	return s.representer.Answer(ctx, owner, snapshot, question)
}
