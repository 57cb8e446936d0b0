package service

import (
	"context"
	"errors"
	"fmt"
	"menteazul/internal/cache"
	"menteazul/internal/model"
	"menteazul/internal/platform/logger"
	"menteazul/internal/qchat"
	"menteazul/internal/repository"
)

var (
	ErrResultNotFound   = errors.New("result not found")
	ErrForbidden        = errors.New("not allowed to access this resource")
	ErrEvaluationFailed = errors.New("could not complete evaluation")
)

// ResultService stores and reads the per-user result history
type ResultService struct {
	repo      repository.ResultRepo
	dashboard cache.DashboardCache
	ds        *qchat.Dataset
	log       *logger.Logger

	broadcaster Broadcaster
}

// NewResultService creates a new result service
func NewResultService(repo repository.ResultRepo, dashboard cache.DashboardCache, ds *qchat.Dataset, log *logger.Logger) *ResultService {
	return &ResultService{
		repo:        repo,
		dashboard:   dashboard,
		ds:          ds,
		log:         log.With("component", "ResultService"),
		broadcaster: noopBroadcaster{},
	}
}

// SetBroadcaster sets the broadcaster for real-time updates
func (s *ResultService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Record persists an evaluation. The dashboard cache is dropped and
// connected clients of the user are notified once the write succeeds.
// Recording a session that already has a result returns that result.
func (s *ResultService) Record(ctx context.Context, userID string, child qchat.Child, eval *qchat.Evaluation, sessionID string) (*model.Result, error) {
	result := model.NewResult(userID, child, eval)
	result.SessionID = sessionID

	_, err := s.repo.Create(ctx, result)
	if errors.Is(err, repository.ErrDuplicateSession) {
		return s.recorded(ctx, userID, sessionID)
	}
	if err != nil {
		s.log.Error("failed to store result", "user_id", userID, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrEvaluationFailed, err)
	}

	if err := s.dashboard.Invalidate(ctx, userID); err != nil {
		s.log.Warn("failed to invalidate dashboard", "user_id", userID, "error", err)
	}

	s.log.Info("result stored",
		"user_id", userID,
		"result", result.ID,
		"variant", result.VariantID,
		"age_group", result.AgeGroupID,
		"risk_level", result.RiskLevel,
	)
	s.broadcaster.BroadcastToUser(userID, EventResultSaved, result.Summary())
	return result, nil
}

func (s *ResultService) recorded(ctx context.Context, userID, sessionID string) (*model.Result, error) {
	existing, err := s.repo.GetBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEvaluationFailed, err)
	}
	if existing == nil {
		return nil, fmt.Errorf("%w: session %s has no stored result", ErrEvaluationFailed, sessionID)
	}
	if existing.UserID != userID {
		return nil, ErrForbidden
	}
	s.log.Info("result already stored", "user_id", userID, "session_id", sessionID, "result", existing.ID)
	return existing, nil
}

// List returns the user's results, newest first
func (s *ResultService) List(ctx context.Context, userID string, limit int) ([]model.ResultSummary, error) {
	results, err := s.repo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]model.ResultSummary, 0, len(results))
	for _, r := range results {
		out = append(out, r.Summary())
	}
	return out, nil
}

// Get returns one result owned by userID
func (s *ResultService) Get(ctx context.Context, userID, id string) (*model.Result, error) {
	result, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, ErrResultNotFound
	}
	if result.UserID != userID {
		return nil, ErrForbidden
	}
	return result, nil
}

// RenderPDF returns a printable report of one result
func (s *ResultService) RenderPDF(ctx context.Context, userID, id string) ([]byte, error) {
	result, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	v, g, err := s.ds.AgeGroup(result.VariantID, result.AgeGroupID)
	if err != nil {
		return nil, err
	}
	return RenderResultPDF(result, v, g)
}
