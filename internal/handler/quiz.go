package handler

import (
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pavelanni/quizmaster/internal/handler/views"
	appI18n "github.com/pavelanni/quizmaster/internal/i18n"
	"github.com/pavelanni/quizmaster/internal/model"
	"github.com/pavelanni/quizmaster/internal/quiz"
)

func (h *Handler) handleHome(w http.ResponseWriter, r *http.Request) {
	msg := h.popFlash(w, r)

	counts, _, err := h.questions.Counts()
	if err != nil {
		slog.Error("failed to load question bank", "error", err)
		h.renderLoadError(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := views.HomePage(counts, msg).Render(r.Context(), w); err != nil {
		slog.Error("render error", "error", err)
	}
}

func (h *Handler) handleCategory(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "category")
	if decoded, err := url.PathUnescape(name); err == nil {
		name = decoded
	}

	questions, err := h.questions.LoadCategory(name)
	if err != nil {
		slog.Error("failed to load category", "category", name, "error", err)
		h.renderLoadError(w, r)
		return
	}
	if len(questions) == 0 {
		h.setFlash(w, "NoQuestionsFound", name)
		http.Redirect(w, r, h.path("/home"), http.StatusSeeOther)
		return
	}

	msg := h.popFlash(w, r)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := views.CategoryPage(name, len(questions), msg).Render(r.Context(), w); err != nil {
		slog.Error("render error", "error", err)
	}
}

func (h *Handler) handleStart(w http.ResponseWriter, r *http.Request) {
	category := strings.TrimSpace(r.FormValue("category"))
	requested, err := strconv.Atoi(r.FormValue("total_questions"))
	if err != nil {
		requested = 0
	}

	questions, err := h.questions.LoadCategory(category)
	if err != nil {
		slog.Error("failed to load category", "category", category, "error", err)
		h.renderLoadError(w, r)
		return
	}

	sess, err := quiz.Start(category, questions, requested)
	if err != nil {
		h.setFlash(w, "InvalidQuizParams", "")
		http.Redirect(w, r, h.path("/category/"+url.PathEscape(category)), http.StatusSeeOther)
		return
	}

	token := model.SessionTokenFromContext(r.Context())
	h.quizzes.Put(token, sess)
	slog.Info("quiz started",
		"quiz_id", sess.ID,
		"category", category,
		"total_questions", sess.TotalQuestions,
	)

	http.Redirect(w, r, h.path("/quiz"), http.StatusSeeOther)
}

func (h *Handler) handleQuestion(w http.ResponseWriter, r *http.Request) {
	sess := h.quizzes.Get(model.SessionTokenFromContext(r.Context()))
	if sess == nil {
		http.Redirect(w, r, h.path("/home"), http.StatusSeeOther)
		return
	}

	q, number, ok := quiz.Current(sess)
	if !ok {
		http.Redirect(w, r, h.path("/results"), http.StatusSeeOther)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := views.QuizPage(q, number, sess.TotalQuestions).Render(r.Context(), w); err != nil {
		slog.Error("render error", "error", err)
	}
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	sess := h.quizzes.Get(model.SessionTokenFromContext(r.Context()))
	if sess == nil {
		http.Redirect(w, r, h.path("/home"), http.StatusSeeOther)
		return
	}

	if err := quiz.Submit(sess, r.FormValue("answer")); err != nil {
		http.Redirect(w, r, h.path("/results"), http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, h.path("/quiz"), http.StatusSeeOther)
}

func (h *Handler) handleResults(w http.ResponseWriter, r *http.Request) {
	sess := h.quizzes.Get(model.SessionTokenFromContext(r.Context()))
	if sess == nil || len(sess.Answers) == 0 {
		http.Redirect(w, r, h.path("/home"), http.StatusSeeOther)
		return
	}

	res := quiz.Results(sess, time.Now())
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := views.ResultsPage(res).Render(r.Context(), w); err != nil {
		slog.Error("render error", "error", err)
	}
}

func (h *Handler) renderLoadError(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	if err := views.ErrorPage(appI18n.T(r.Context(), "QuestionsLoadError")).Render(r.Context(), w); err != nil {
		slog.Error("render error", "error", err)
	}
}
