package rest

import (
	"menteazul/internal/config"
	"menteazul/internal/platform/logger"
	"menteazul/internal/service"
	"menteazul/internal/transport/rest/docs"
	"menteazul/internal/transport/rest/handler"
	"menteazul/internal/transport/rest/middleware"
	"menteazul/internal/transport/ws"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/swaggo/swag"
)

// Container holds all dependencies for the router
type Container struct {
	Config               *config.Config
	Log                  *logger.Logger
	AuthService          *service.AuthService
	UserService          *service.UserService
	QuestionnaireService *service.QuestionnaireService
	EvaluationService    *service.EvaluationService
	SessionService       *service.SessionService
	ResultService        *service.ResultService
	DashboardService     *service.DashboardService
	GuideService         *service.GuideService
	WSHub                *ws.Hub
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	userHandler := handler.NewUserHandler(c.UserService)
	questionnaireHandler := handler.NewQuestionnaireHandler(c.QuestionnaireService)
	evaluationHandler := handler.NewEvaluationHandler(c.EvaluationService)
	sessionHandler := handler.NewSessionHandler(c.SessionService)
	resultHandler := handler.NewResultHandler(c.ResultService)
	dashboardHandler := handler.NewDashboardHandler(c.DashboardService)
	guideHandler := handler.NewGuideHandler(c.GuideService)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService, c.Log)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)
	limiter := middleware.NewRateLimiter(c.Config.Auth.RateLimit, c.Config.Auth.RateBurst, c.Config.Auth.TrustProxy)

	// CORS middleware (apply first)
	r.Use(corsMiddleware(c.Config.CORS))
	r.Use(middleware.RequestLogger(c.Log))

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Auth routes are throttled per client IP
	authRoutes := v1.PathPrefix("/auth").Subrouter()
	authRoutes.Use(limiter.Limit)
	authRoutes.HandleFunc("/register", authHandler.Register).Methods("POST", "OPTIONS")
	authRoutes.HandleFunc("/login", authHandler.Login).Methods("POST", "OPTIONS")
	authRoutes.Handle("/logout", authMW.RequireUser(http.HandlerFunc(authHandler.Logout))).Methods("POST", "OPTIONS")

	// Public routes
	v1.HandleFunc("/questionnaires", questionnaireHandler.List).Methods("GET", "OPTIONS")
	v1.HandleFunc("/questionnaires/{variant}/groups/{group}", questionnaireHandler.GetAgeGroup).Methods("GET", "OPTIONS")
	v1.HandleFunc("/score", evaluationHandler.Score).Methods("POST", "OPTIONS")
	v1.HandleFunc("/guides", guideHandler.Catalog).Methods("GET", "OPTIONS")
	v1.HandleFunc("/guides/resources", guideHandler.Resources).Methods("GET", "OPTIONS")

	v1.HandleFunc("/openapi.json", openAPIHandler).Methods("GET", "OPTIONS")

	// WebSocket routes (public with token in query param)
	v1.HandleFunc("/ws/dashboard", wsHandler.DashboardWS).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Account routes (require user auth)
	userRoutes := v1.NewRoute().Subrouter()
	userRoutes.Use(authMW.RequireUser)

	userRoutes.HandleFunc("/me", userHandler.Me).Methods("GET", "OPTIONS")
	userRoutes.HandleFunc("/me", userHandler.UpdateMe).Methods("PUT", "OPTIONS")
	userRoutes.HandleFunc("/evaluations", evaluationHandler.Submit).Methods("POST", "OPTIONS")
	userRoutes.HandleFunc("/sessions", sessionHandler.Start).Methods("POST", "OPTIONS")
	userRoutes.HandleFunc("/sessions/{id}", sessionHandler.Get).Methods("GET", "OPTIONS")
	userRoutes.HandleFunc("/sessions/{id}", sessionHandler.Cancel).Methods("DELETE", "OPTIONS")
	userRoutes.HandleFunc("/sessions/{id}/answers", sessionHandler.Answer).Methods("POST", "OPTIONS")
	userRoutes.HandleFunc("/sessions/{id}/previous", sessionHandler.Previous).Methods("POST", "OPTIONS")
	userRoutes.HandleFunc("/results", resultHandler.List).Methods("GET", "OPTIONS")
	userRoutes.HandleFunc("/results/{id}", resultHandler.Get).Methods("GET", "OPTIONS")
	userRoutes.HandleFunc("/results/{id}/report.pdf", resultHandler.Report).Methods("GET", "OPTIONS")
	userRoutes.HandleFunc("/dashboard", dashboardHandler.Get).Methods("GET", "OPTIONS")

	return r
}

func openAPIHandler(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
	if err != nil {
		http.Error(w, `{"error":"api description unavailable"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(doc))
}

func corsMiddleware(cfg config.CORSConfig) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", cfg.AllowedOrigins)
			w.Header().Set("Access-Control-Allow-Methods", cfg.AllowedMethods)
			w.Header().Set("Access-Control-Allow-Headers", cfg.AllowedHeaders)

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
