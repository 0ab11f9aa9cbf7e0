package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pavelanni/quizmaster/internal/model"
	"github.com/pavelanni/quizmaster/internal/question"
	"github.com/pavelanni/quizmaster/internal/quiz"
	"github.com/pavelanni/quizmaster/internal/store"
)

// Handler holds shared dependencies for HTTP handlers.
type Handler struct {
	store     *store.Store
	questions *question.Store
	quizzes   *quiz.Manager
	config    model.Config
}

// New creates a new Handler.
func New(s *store.Store, q *question.Store, cfg model.Config) *Handler {
	return &Handler{
		store:     s,
		questions: q,
		quizzes:   quiz.NewManager(),
		config:    cfg,
	}
}

// Routes registers all HTTP routes.
func (h *Handler) Routes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.csrfMiddleware)

		r.Get("/", h.handleLanding)
		r.Post("/login", h.handleLogin)
		r.Get("/register", h.handleRegisterPage)
		r.Post("/register", h.handleRegister)

		r.Group(func(r chi.Router) {
			r.Use(h.requireAuth)

			r.Get("/logout", h.handleLogout)
			r.Get("/home", h.handleHome)
			r.Get("/category/{category}", h.handleCategory)
			r.Post("/start", h.handleStart)
			r.Get("/quiz", h.handleQuestion)
			r.Post("/submit", h.handleSubmit)
			r.Get("/results", h.handleResults)
		})
	})
}

// BasePathMiddleware stores the configured base path in the request
// context so views can build absolute links under sub-path deployments.
func (h *Handler) BasePathMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := model.ContextWithBasePath(r.Context(), h.config.BasePath)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// path prefixes a redirect target with the configured base path.
func (h *Handler) path(p string) string {
	return h.config.BasePath + p
}

func (h *Handler) cookiePath() string {
	if h.config.BasePath != "" {
		return h.config.BasePath + "/"
	}
	return "/"
}
