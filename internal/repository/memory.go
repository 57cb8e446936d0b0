package repository

import (
	"context"
	"menteazul/internal/model"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Memory repositories back STORAGE_DRIVER=memory and the service tests.
// They copy on the way in and out so callers never share state with the store.

type memoryUserRepo struct {
	mu      sync.RWMutex
	byID    map[string]model.User
	byEmail map[string]string
}

// NewMemoryUserRepo creates an in-process user repository
func NewMemoryUserRepo() UserRepo {
	return &memoryUserRepo{
		byID:    make(map[string]model.User),
		byEmail: make(map[string]string),
	}
}

func (r *memoryUserRepo) Create(ctx context.Context, user *model.User) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user.Email = normalizeEmail(user.Email)
	if _, exists := r.byEmail[user.Email]; exists {
		return "", ErrDuplicateEmail
	}
	user.ID = primitive.NewObjectID().Hex()
	r.byID[user.ID] = *user
	r.byEmail[user.Email] = user.ID
	return user.ID, nil
}

func (r *memoryUserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *memoryUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mu.RLock()
	id, ok := r.byEmail[normalizeEmail(email)]
	r.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return r.GetByID(ctx, id)
}

func (r *memoryUserRepo) Update(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.byID[user.ID]
	if !ok {
		return nil
	}
	existing.DisplayName = user.DisplayName
	existing.Profile = user.Profile
	existing.LastLoginAt = user.LastLoginAt
	r.byID[user.ID] = existing
	return nil
}

type memoryResultRepo struct {
	mu        sync.RWMutex
	results   map[string]model.Result
	bySession map[string]string
}

// NewMemoryResultRepo creates an in-process result repository
func NewMemoryResultRepo() ResultRepo {
	return &memoryResultRepo{
		results:   make(map[string]model.Result),
		bySession: make(map[string]string),
	}
}

func (r *memoryResultRepo) Create(ctx context.Context, result *model.Result) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if result.SessionID != "" {
		if _, exists := r.bySession[result.SessionID]; exists {
			return "", ErrDuplicateSession
		}
	}

	result.ID = primitive.NewObjectID().Hex()
	stored := *result
	stored.Answers = result.Answers.Clone()
	r.results[result.ID] = stored
	if result.SessionID != "" {
		r.bySession[result.SessionID] = result.ID
	}
	return result.ID, nil
}

func (r *memoryResultRepo) GetBySession(ctx context.Context, sessionID string) (*model.Result, error) {
	r.mu.RLock()
	id, ok := r.bySession[sessionID]
	r.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return r.GetByID(ctx, id)
}

func (r *memoryResultRepo) GetByID(ctx context.Context, id string) (*model.Result, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res, ok := r.results[id]
	if !ok {
		return nil, nil
	}
	res.Answers = res.Answers.Clone()
	return &res, nil
}

func (r *memoryResultRepo) ListByUser(ctx context.Context, userID string, limit int) ([]*model.Result, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []*model.Result{}
	for _, res := range r.results {
		if res.UserID != userID {
			continue
		}
		res := res
		res.Answers = res.Answers.Clone()
		out = append(out, &res)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CompletedAt.Equal(out[j].CompletedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CompletedAt.After(out[j].CompletedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
