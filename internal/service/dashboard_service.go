package service

import (
	"context"
	"menteazul/internal/cache"
	"menteazul/internal/model"
	"menteazul/internal/platform/logger"
	"menteazul/internal/qchat"
	"menteazul/internal/repository"
	"time"
)

// DashboardService summarises a user's screening history
type DashboardService struct {
	results repository.ResultRepo
	cache   cache.DashboardCache
	log     *logger.Logger
	now     func() time.Time
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(results repository.ResultRepo, c cache.DashboardCache, log *logger.Logger) *DashboardService {
	return &DashboardService{
		results: results,
		cache:   c,
		log:     log.With("component", "DashboardService"),
		now:     time.Now,
	}
}

// Get returns the cached dashboard or rebuilds it from stored results
func (s *DashboardService) Get(ctx context.Context, userID string) (*model.Dashboard, error) {
	cached, version, cacheErr := s.cache.Get(ctx, userID)
	if cacheErr != nil {
		s.log.Warn("dashboard cache read failed", "user_id", userID, "error", cacheErr)
	} else if cached != nil {
		return cached, nil
	}

	results, err := s.results.ListByUser(ctx, userID, 0)
	if err != nil {
		return nil, err
	}

	d := &model.Dashboard{
		UserID:       userID,
		TotalResults: len(results),
		ByRiskLevel: map[qchat.RiskLevel]int{
			qchat.RiskLow:      0,
			qchat.RiskModerate: 0,
			qchat.RiskHigh:     0,
		},
		Children:    []string{},
		GeneratedAt: s.now().UTC(),
	}
	seen := make(map[string]bool)
	for i, r := range results {
		if i == 0 {
			latest := r.Summary()
			d.Latest = &latest
		}
		d.ByRiskLevel[r.RiskLevel]++
		if name := r.Child.Name; name != "" && !seen[name] {
			seen[name] = true
			d.Children = append(d.Children, name)
		}
	}

	// version is unknown when the read failed
	if cacheErr == nil {
		if err := s.cache.Set(ctx, d, version); err != nil {
			s.log.Warn("dashboard cache write failed", "user_id", userID, "error", err)
		}
	}
	return d, nil
}
