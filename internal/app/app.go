package app

import (
	"context"
	"fmt"
	"menteazul/internal/cache"
	"menteazul/internal/config"
	"menteazul/internal/guides"
	"menteazul/internal/platform/logger"
	"menteazul/internal/qchat"
	"menteazul/internal/repository"
	"menteazul/internal/service"
	"menteazul/internal/transport/rest"
	"menteazul/internal/transport/ws"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// App wires stores, services and transport for one process
type App struct {
	Config *config.Config
	Log    *logger.Logger

	Dataset *qchat.Dataset
	Engine  *qchat.Engine
	Hub     *ws.Hub

	UserRepo         repository.UserRepo
	ResultRepo       repository.ResultRepo
	SessionCache     cache.SessionCache
	DashboardCache   cache.DashboardCache
	TokenDenylist    cache.TokenDenylist
	AuthService      *service.AuthService
	UserService      *service.UserService
	ResultService    *service.ResultService
	EvaluationSvc    *service.EvaluationService
	SessionService   *service.SessionService
	DashboardService *service.DashboardService

	closers []func(context.Context) error
	handler http.Handler
}

// New connects the configured stores and builds every service
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*App, error) {
	ds, err := qchat.LoadDataset()
	if err != nil {
		return nil, fmt.Errorf("load questionnaires: %w", err)
	}
	catalog, err := guides.Load()
	if err != nil {
		return nil, fmt.Errorf("load guides: %w", err)
	}

	a := &App{
		Config:  cfg,
		Log:     log,
		Dataset: ds,
		Engine:  qchat.NewEngine(ds, qchat.WithStrictAnswers(cfg.Scoring.StrictAnswers)),
	}

	if cfg.UseMemoryStorage() {
		log.Warn("using in-memory storage; data is lost on restart")
		a.UserRepo = repository.NewMemoryUserRepo()
		a.ResultRepo = repository.NewMemoryResultRepo()
		a.SessionCache = cache.NewMemorySessionCache(cfg.Cache.SessionTTL)
		a.DashboardCache = cache.NewMemoryDashboardCache(cfg.Cache.DashboardTTL)
		a.TokenDenylist = cache.NewMemoryTokenDenylist()
	} else if err := a.connectStores(ctx); err != nil {
		a.Close(context.Background())
		return nil, err
	}

	// Initialize WebSocket hub
	a.Hub = ws.NewHub(log)

	// Initialize services
	a.AuthService = service.NewAuthService(a.UserRepo, a.TokenDenylist, cfg.Auth)
	a.UserService = service.NewUserService(a.UserRepo)
	a.ResultService = service.NewResultService(a.ResultRepo, a.DashboardCache, ds, log)
	a.EvaluationSvc = service.NewEvaluationService(a.Engine, a.ResultService)
	a.SessionService = service.NewSessionService(a.Engine, a.SessionCache, a.ResultService, log)
	a.DashboardService = service.NewDashboardService(a.ResultRepo, a.DashboardCache, log)

	// Inject broadcaster (Hub implements service.Broadcaster)
	a.ResultService.SetBroadcaster(a.Hub)
	a.SessionService.SetBroadcaster(a.Hub)

	a.handler = rest.NewRouter(&rest.Container{
		Config:               cfg,
		Log:                  log,
		AuthService:          a.AuthService,
		UserService:          a.UserService,
		QuestionnaireService: service.NewQuestionnaireService(ds),
		EvaluationService:    a.EvaluationSvc,
		SessionService:       a.SessionService,
		ResultService:        a.ResultService,
		DashboardService:     a.DashboardService,
		GuideService:         service.NewGuideService(catalog),
		WSHub:                a.Hub,
	})
	return a, nil
}

func (a *App) connectStores(ctx context.Context) error {
	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(a.Config.Mongo.URI))
	if err != nil {
		return fmt.Errorf("connect mongodb: %w", err)
	}
	a.closers = append(a.closers, mongoClient.Disconnect)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		return fmt.Errorf("ping mongodb: %w", err)
	}
	a.Log.Info("connected to MongoDB", "database", a.Config.Mongo.Database)

	db := mongoClient.Database(a.Config.Mongo.Database)
	repository.EnsureIndexes(ctx, db, a.Log)
	a.UserRepo = repository.NewUserRepo(db)
	a.ResultRepo = repository.NewResultRepo(db)

	// Redis connection
	rdb := redis.NewClient(&redis.Options{
		Addr:     a.Config.Redis.Addr,
		Password: a.Config.Redis.Password,
		DB:       a.Config.Redis.DB,
	})
	a.closers = append(a.closers, func(context.Context) error { return rdb.Close() })

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}
	a.Log.Info("connected to Redis", "addr", a.Config.Redis.Addr)

	a.SessionCache = cache.NewSessionCache(rdb, a.Config.Cache.SessionTTL)
	a.DashboardCache = cache.NewDashboardCache(rdb, a.Config.Cache.DashboardTTL)
	a.TokenDenylist = cache.NewTokenDenylist(rdb)
	return nil
}

// Handler is the HTTP entrypoint
func (a *App) Handler() http.Handler {
	return a.handler
}

// Close releases store connections in reverse order
func (a *App) Close(ctx context.Context) {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			a.Log.Warn("failed to close store", "error", err)
		}
	}
	a.closers = nil
}
