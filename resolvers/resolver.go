// Package resolvers exposes the streak over HTTP: a query for the current
// streak and a mutation that runs the manual check.
package resolvers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"

	"github.com/writewithwrabit/wordstreak/auth"
	"github.com/writewithwrabit/wordstreak/models"
	"github.com/writewithwrabit/wordstreak/tracker"
)

// StreakService is what the resolvers need from the tracker.
type StreakService interface {
	Current(ctx context.Context) (models.StreakState, error)
	Trigger(ctx context.Context) (tracker.Result, error)
}

type Resolver struct {
	streaks StreakService
	logger  *slog.Logger
}

func New(streaks StreakService, logger *slog.Logger) *Resolver {
	return &Resolver{streaks: streaks, logger: logger}
}

func (r *Resolver) Query() *queryResolver {
	return &queryResolver{r}
}

func (r *Resolver) Mutation() *mutationResolver {
	return &mutationResolver{r}
}

// RouterOptions configures Router.
type RouterOptions struct {
	AllowedOrigins []string
	// Verifier enables bearer-token authentication on the check mutation.
	Verifier auth.Verifier
}

// Router mounts the streak endpoints with the usual middleware stack.
func (r *Resolver) Router(opts RouterOptions) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Heartbeat("/health"))
	router.Use(cors.New(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}).Handler)
	router.Use(r.logRequests)

	router.Get("/streak", r.Query().Streak)
	router.Group(func(g chi.Router) {
		if opts.Verifier != nil {
			g.Use(auth.Middleware(opts.Verifier, r.logger))
			g.Use(auth.Require)
		}
		g.Post("/streak/check", r.Mutation().CheckStreak)
	})

	return router
}

func (r *Resolver) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
		next.ServeHTTP(ww, req)
		r.logger.InfoContext(req.Context(), "request",
			"method", req.Method,
			"path", req.URL.Path,
			"status", ww.Status(),
			"request_id", middleware.GetReqID(req.Context()),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Error string `json:"error"`
}
