package model

import (
	"context"
	"time"
)

// OptionLabels is the fixed set of choice labels every question carries,
// in display order.
var OptionLabels = []string{"A", "B", "C", "D"}

// ValidLabel reports whether s is one of the recognized choice labels.
func ValidLabel(s string) bool {
	for _, l := range OptionLabels {
		if s == l {
			return true
		}
	}
	return false
}

// Question is a single multiple-choice question. Immutable once loaded.
type Question struct {
	Text    string            `json:"question"`
	Options map[string]string `json:"options"`
	Answer  string            `json:"answer"`
}

// QuestionFile mirrors the top-level structure of the question bank file.
type QuestionFile struct {
	Categories map[string][]Question `json:"categories"`
}

// AnswerRecord is the stored outcome of one answered question, including
// a snapshot of the options shown to the user.
type AnswerRecord struct {
	Question      string            `json:"question"`
	UserAnswer    string            `json:"user_answer"`
	CorrectAnswer string            `json:"correct_answer"`
	IsCorrect     bool              `json:"is_correct"`
	Options       map[string]string `json:"options"`
}

// QuizSession holds one user's quiz progress. It lives in the in-memory
// session registry, never in the database.
//
// Invariants: 0 <= CurrentIndex <= TotalQuestions and
// len(Answers) == CurrentIndex after every submission.
type QuizSession struct {
	ID             string         `json:"id"`
	Category       string         `json:"category"`
	TotalQuestions int            `json:"total_questions"`
	Questions      []Question     `json:"questions"`
	CurrentIndex   int            `json:"current_index"`
	Answers        []AnswerRecord `json:"answers"`
	StartedAt      time.Time      `json:"started_at"`
}

// Completed reports whether every question has been answered.
func (s *QuizSession) Completed() bool {
	return s.CurrentIndex >= s.TotalQuestions
}

// QuizResults is the scored summary of a completed quiz.
type QuizResults struct {
	Category       string         `json:"category"`
	TotalQuestions int            `json:"total_questions"`
	Correct        int            `json:"correct"`
	Score          float64        `json:"score"`
	TimeTaken      string         `json:"time_taken"`
	Answers        []AnswerRecord `json:"answers"`
}

// User represents a registered account.
type User struct {
	ID           int64
	Email        string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// AuthSession represents an authentication session.
type AuthSession struct {
	ID        string
	UserID    int64
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Config holds runtime parameters set via CLI flags and environment.
type Config struct {
	SecretKey     string // HMAC key for signing session cookies
	BasePath      string // URL prefix for sub-path deployments (e.g. "/quiz")
	SecureCookies bool   // Set Secure flag on cookies (disable for local dev)
}

type userCtxKey struct{}

// ContextWithUser stores a user in the request context.
func ContextWithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, userCtxKey{}, u)
}

// UserFromContext retrieves the authenticated user from context, or nil.
func UserFromContext(ctx context.Context) *User {
	u, _ := ctx.Value(userCtxKey{}).(*User)
	return u
}

type basePathCtxKey struct{}

// ContextWithBasePath stores the base path prefix in context.
func ContextWithBasePath(ctx context.Context, basePath string) context.Context {
	return context.WithValue(ctx, basePathCtxKey{}, basePath)
}

// BasePathFromContext retrieves the base path from context (empty string if not set).
func BasePathFromContext(ctx context.Context) string {
	bp, _ := ctx.Value(basePathCtxKey{}).(string)
	return bp
}

type sessionTokenCtxKey struct{}

// ContextWithSessionToken stores the verified auth session token in context.
func ContextWithSessionToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, sessionTokenCtxKey{}, token)
}

// SessionTokenFromContext retrieves the auth session token from context.
func SessionTokenFromContext(ctx context.Context) string {
	t, _ := ctx.Value(sessionTokenCtxKey{}).(string)
	return t
}

type csrfCtxKey struct{}

// ContextWithCSRFToken stores the CSRF token in context.
func ContextWithCSRFToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, csrfCtxKey{}, token)
}

// CSRFTokenFromContext retrieves the CSRF token from context.
func CSRFTokenFromContext(ctx context.Context) string {
	t, _ := ctx.Value(csrfCtxKey{}).(string)
	return t
}
