package service

import (
	"context"
	"errors"
	"menteazul/internal/cache"
	"menteazul/internal/config"
	"menteazul/internal/model"
	"menteazul/internal/platform/logger"
	"menteazul/internal/qchat"
	"menteazul/internal/repository"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type event struct {
	userID  string
	msgType string
	payload interface{}
}

type recordingBroadcaster struct {
	mu     sync.Mutex
	events []event
}

func (b *recordingBroadcaster) BroadcastToUser(userID, msgType string, payload interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event{userID, msgType, payload})
}

func (b *recordingBroadcaster) ofType(msgType string) []event {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []event
	for _, e := range b.events {
		if e.msgType == msgType {
			out = append(out, e)
		}
	}
	return out
}

type failingResultRepo struct{ repository.ResultRepo }

func (failingResultRepo) Create(context.Context, *model.Result) (string, error) {
	return "", errors.New("connection refused")
}

// gatedSessionCache holds armed Get calls until n of them are in flight
type gatedSessionCache struct {
	cache.SessionCache
	armed bool
	gate  sync.WaitGroup
}

func (c *gatedSessionCache) Get(ctx context.Context, id string) (*model.Session, error) {
	s, err := c.SessionCache.Get(ctx, id)
	if c.armed {
		c.gate.Done()
		c.gate.Wait()
	}
	return s, err
}

// flakySessionCache fails the next Set once failNext is raised
type flakySessionCache struct {
	cache.SessionCache
	failNext bool
}

func (c *flakySessionCache) Set(ctx context.Context, session *model.Session) error {
	if c.failNext {
		c.failNext = false
		return errors.New("redis timeout")
	}
	return c.SessionCache.Set(ctx, session)
}

type testEnv struct {
	engine      *qchat.Engine
	users       repository.UserRepo
	results     repository.ResultRepo
	dashCache   cache.DashboardCache
	broadcaster *recordingBroadcaster

	auth       *AuthService
	user       *UserService
	result     *ResultService
	evaluation *EvaluationService
	session    *SessionService
	dashboard  *DashboardService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ds, err := qchat.LoadDataset()
	require.NoError(t, err)

	log := logger.Nop()
	env := &testEnv{
		engine:      qchat.NewEngine(ds),
		users:       repository.NewMemoryUserRepo(),
		results:     repository.NewMemoryResultRepo(),
		dashCache:   cache.NewMemoryDashboardCache(time.Minute),
		broadcaster: &recordingBroadcaster{},
	}
	env.auth = NewAuthService(env.users, cache.NewMemoryTokenDenylist(), config.AuthConfig{
		JWTSecret:   "test-secret",
		TokenTTL:    time.Hour,
		BcryptCost:  4,
		MinPassword: 6,
	})
	env.user = NewUserService(env.users)
	env.result = NewResultService(env.results, env.dashCache, ds, log)
	env.result.SetBroadcaster(env.broadcaster)
	env.evaluation = NewEvaluationService(env.engine, env.result)
	env.session = NewSessionService(env.engine, cache.NewMemorySessionCache(time.Hour), env.result, log)
	env.session.SetBroadcaster(env.broadcaster)
	env.dashboard = NewDashboardService(env.results, env.dashCache, log)
	return env
}

func maxAnswers(t *testing.T, e *qchat.Engine, variantID, groupID string) qchat.AnswerSet {
	t.Helper()
	_, g, err := e.Dataset().AgeGroup(variantID, groupID)
	require.NoError(t, err)
	answers := qchat.AnswerSet{}
	for _, q := range g.Questions {
		answers[q.ID] = q.MaxWeight()
	}
	return answers
}

func newResultFor(userID string, eval *qchat.Evaluation) *model.Result {
	return model.NewResult(userID, qchat.Child{Name: "Leo", AgeMonths: 21}, eval)
}
