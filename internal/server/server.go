package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/rnvv/igreja/internal/config"
	"github.com/rnvv/igreja/internal/handler"
	"github.com/rnvv/igreja/internal/middleware"
	"github.com/rnvv/igreja/internal/store"
	ws "github.com/rnvv/igreja/internal/websocket"
)

type Server struct {
	db           *sql.DB
	hub          *ws.Hub
	authH        *handler.AuthHandler
	dashboardH   *handler.DashboardHandler
	memberH      *handler.MemberHandler
	transactionH *handler.TransactionHandler
	sessionStore *store.SessionStore
	churchStore  *store.ChurchStore
	rateLimiter  *middleware.RateLimiter
	logger       *slog.Logger
}

func New(db *sql.DB, cfg config.Config, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))

	churchStore := store.NewChurchStore(db)
	sessionStore := store.NewSessionStore(db)
	memberStore := store.NewMemberStore(db)
	transactionStore := store.NewTransactionStore(db)

	return &Server{
		db:           db,
		hub:          hub,
		authH:        handler.NewAuthHandler(churchStore, sessionStore, logger.With("component", "auth")),
		dashboardH:   handler.NewDashboardHandler(memberStore, transactionStore, cfg.Currency, logger.With("component", "dashboard")),
		memberH:      handler.NewMemberHandler(memberStore, hub, logger.With("component", "member")),
		transactionH: handler.NewTransactionHandler(transactionStore, hub, cfg.Currency, logger.With("component", "transaction")),
		sessionStore: sessionStore,
		churchStore:  churchStore,
		rateLimiter:  middleware.NewRateLimiter(),
		logger:       logger,
	}
}

// SessionStore returns the session store for cleanup tasks.
func (s *Server) SessionStore() *store.SessionStore {
	return s.sessionStore
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

func (s *Server) Router() http.Handler {
	outerMux := http.NewServeMux()

	// Public routes (no auth required)
	outerMux.HandleFunc("GET /login", s.authH.LoginPage)
	outerMux.HandleFunc("POST /login", s.rateLimitedHandler(s.authH.Login))
	outerMux.HandleFunc("GET /registrar", s.authH.RegisterPage)
	outerMux.HandleFunc("POST /registrar", s.rateLimitedHandler(s.authH.Register))
	outerMux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir("web/static"))))
	outerMux.HandleFunc("GET /health", s.healthHandler)

	// Protected routes — wrapped with RequireAuth middleware
	protectedMux := http.NewServeMux()
	s.registerProtectedRoutes(protectedMux)

	authMiddleware := middleware.RequireAuth(s.sessionStore, s.churchStore)
	outerMux.Handle("/", authMiddleware(protectedMux))

	return middleware.RequestLogger(s.logger.With("component", "http"))(outerMux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) rateLimitedHandler(h http.HandlerFunc) http.HandlerFunc {
	keyFunc := func(r *http.Request) string {
		return middleware.RealIP(r)
	}
	rl := middleware.RateLimit(s.rateLimiter, keyFunc, 10, time.Minute)
	return func(w http.ResponseWriter, r *http.Request) {
		rl(http.HandlerFunc(h)).ServeHTTP(w, r)
	}
}

func (s *Server) registerProtectedRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /logout", s.authH.Logout)

	// Page routes
	mux.HandleFunc("GET /", s.dashboardH.Page)
	mux.HandleFunc("GET /membros", s.memberH.Page)
	mux.HandleFunc("GET /financeiro", s.transactionH.Page)

	// HTMX partials
	mux.HandleFunc("GET /partials/membros", s.memberH.ListPartial)
	mux.HandleFunc("POST /partials/membros", s.memberH.Create)
	mux.HandleFunc("GET /partials/financeiro", s.transactionH.ListPartial)
	mux.HandleFunc("POST /partials/financeiro", s.transactionH.Create)

	// WebSocket live refresh
	mux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub, s.logger.With("component", "websocket")))
}
