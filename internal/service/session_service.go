package service

import (
	"context"
	"errors"
	"menteazul/internal/cache"
	"menteazul/internal/model"
	"menteazul/internal/platform/logger"
	"menteazul/internal/qchat"
	"time"

	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionService walks a user through a questionnaire one answer at a time
type SessionService struct {
	engine   *qchat.Engine
	sessions cache.SessionCache
	results  *ResultService
	log      *logger.Logger
	now      func() time.Time

	broadcaster Broadcaster
}

// NewSessionService creates a new session service
func NewSessionService(engine *qchat.Engine, sessions cache.SessionCache, results *ResultService, log *logger.Logger) *SessionService {
	return &SessionService{
		engine:      engine,
		sessions:    sessions,
		results:     results,
		log:         log.With("component", "SessionService"),
		now:         time.Now,
		broadcaster: noopBroadcaster{},
	}
}

// SetBroadcaster sets the broadcaster for real-time updates
func (s *SessionService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Start opens a session on the chosen age group
func (s *SessionService) Start(ctx context.Context, userID string, req model.StartSessionRequest) (*model.SessionView, error) {
	flow := qchat.NewFlow(s.engine)
	if err := flow.Start(req.VariantID, req.AgeGroupID, req.Child); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	session := &model.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		Flow:      flow.State(),
		StartedAt: now,
		UpdatedAt: now,
	}
	if err := s.sessions.Set(ctx, session); err != nil {
		return nil, err
	}

	s.log.Info("session started", "user_id", userID, "session_id", session.ID, "age_group", session.Flow.AgeGroupID)
	return s.view(session, flow), nil
}

// Get returns the current state of a session
func (s *SessionService) Get(ctx context.Context, userID, id string) (*model.SessionView, error) {
	session, flow, err := s.load(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return s.view(session, flow), nil
}

// Answer selects an option on the current question. Answering the last
// question scores the run and stores its result. A repeated or concurrent
// final answer gets the result already stored for the session.
func (s *SessionService) Answer(ctx context.Context, userID, id string, optionIndex int) (*model.SessionView, error) {
	session, flow, err := s.load(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	eval, err := flow.Answer(optionIndex)
	if err != nil {
		return nil, err
	}

	if eval != nil {
		result, err := s.results.Record(ctx, userID, session.Flow.Child, eval, session.ID)
		if err != nil {
			// the cached session still points at the last question so the client can retry
			return nil, err
		}
		session.ResultID = result.ID
	}

	if err := s.save(ctx, session, flow); err != nil {
		return nil, err
	}

	s.broadcaster.BroadcastToUser(userID, EventSessionProgress, model.SessionProgress{
		SessionID:    session.ID,
		Status:       flow.Status(),
		CurrentIndex: session.Flow.Index,
		Total:        len(flow.Group().Questions),
	})
	return s.view(session, flow), nil
}

// Previous moves back one question without discarding its answer
func (s *SessionService) Previous(ctx context.Context, userID, id string) (*model.SessionView, error) {
	session, flow, err := s.load(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := flow.Previous(); err != nil {
		return nil, err
	}
	if err := s.save(ctx, session, flow); err != nil {
		return nil, err
	}
	return s.view(session, flow), nil
}

// Cancel drops a session so the questionnaire can be restarted
func (s *SessionService) Cancel(ctx context.Context, userID, id string) error {
	if _, _, err := s.load(ctx, userID, id); err != nil {
		return err
	}
	return s.sessions.Delete(ctx, id)
}

func (s *SessionService) load(ctx context.Context, userID, id string) (*model.Session, *qchat.Flow, error) {
	session, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if session == nil {
		return nil, nil, ErrSessionNotFound
	}
	if session.UserID != userID {
		return nil, nil, ErrForbidden
	}
	flow, err := qchat.RestoreFlow(s.engine, session.Flow)
	if err != nil {
		return nil, nil, err
	}
	return session, flow, nil
}

func (s *SessionService) save(ctx context.Context, session *model.Session, flow *qchat.Flow) error {
	session.Flow = flow.State()
	session.UpdatedAt = s.now().UTC()
	return s.sessions.Set(ctx, session)
}

func (s *SessionService) view(session *model.Session, flow *qchat.Flow) *model.SessionView {
	v := &model.SessionView{
		ID:           session.ID,
		Status:       flow.Status(),
		VariantID:    session.Flow.VariantID,
		AgeGroupID:   session.Flow.AgeGroupID,
		Child:        session.Flow.Child,
		CurrentIndex: session.Flow.Index,
		ResultID:     session.ResultID,
		Result:       flow.Result(),
	}
	if g := flow.Group(); g != nil {
		v.TotalQuestions = len(g.Questions)
	}
	if q, ok := flow.Current(); ok {
		v.Question = q
		if idx, ok := flow.Selected(q.ID); ok {
			v.SelectedOption = &idx
		}
	}
	return v
}
