package service

import (
	"context"
	"menteazul/internal/model"
	"menteazul/internal/qchat"
	"strings"
)

// EvaluationService scores answer sets, optionally storing the outcome
type EvaluationService struct {
	engine  *qchat.Engine
	results *ResultService
}

// NewEvaluationService creates a new evaluation service
func NewEvaluationService(engine *qchat.Engine, results *ResultService) *EvaluationService {
	return &EvaluationService{engine: engine, results: results}
}

// Score evaluates req without persisting anything
func (s *EvaluationService) Score(req qchat.ScoreRequest) (*qchat.Evaluation, error) {
	return s.engine.Evaluate(req)
}

// Submit evaluates req and appends the result to the user's history
func (s *EvaluationService) Submit(ctx context.Context, userID string, req model.EvaluationRequest) (*model.Result, error) {
	req.Child.Name = strings.TrimSpace(req.Child.Name)
	if req.Child.Name == "" || req.Child.AgeMonths <= 0 {
		return nil, qchat.ErrInvalidChildInfo
	}

	eval, err := s.engine.Evaluate(req.ScoreRequest)
	if err != nil {
		return nil, err
	}
	return s.results.Record(ctx, userID, req.Child, eval, "")
}
