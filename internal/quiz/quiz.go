// Package quiz implements the quiz progression state machine: start,
// current question, answer submission, and the scored summary.
package quiz

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/pavelanni/quizmaster/internal/model"
)

// ErrInvalidCount is returned when the requested question count is not positive.
var ErrInvalidCount = errors.New("question count must be positive")

// ErrEmptyCategory is returned when the chosen category has no questions.
var ErrEmptyCategory = errors.New("category has no questions")

// Start creates a new quiz session over the given category questions.
// The requested count is clamped to the number available; the session
// takes the first N questions in file order. Requested counts <= 0 and
// empty categories are rejected and no session is created.
func Start(category string, questions []model.Question, requested int) (*model.QuizSession, error) {
	if requested <= 0 {
		return nil, ErrInvalidCount
	}
	if len(questions) == 0 {
		return nil, ErrEmptyCategory
	}

	total := requested
	if total > len(questions) {
		total = len(questions)
	}

	return &model.QuizSession{
		ID:             uuid.NewString(),
		Category:       category,
		TotalQuestions: total,
		Questions:      questions[:total],
		CurrentIndex:   0,
		Answers:        []model.AnswerRecord{},
		StartedAt:      time.Now(),
	}, nil
}

// Current returns the question at the session's current index and its
// 1-based display number. ok is false once the session is completed;
// the caller should show results instead of an out-of-range question.
func Current(s *model.QuizSession) (q model.Question, number int, ok bool) {
	if s.Completed() {
		return model.Question{}, 0, false
	}
	return s.Questions[s.CurrentIndex], s.CurrentIndex + 1, true
}

// Submit records an answer for the current question and advances the
// session. Any value outside the A-D label set is scored as incorrect
// rather than rejected: not answering is a wrong answer. Submitting to
// a completed session is the only error.
func Submit(s *model.QuizSession, userAnswer string) error {
	if s.Completed() {
		return fmt.Errorf("quiz already completed after %d questions", s.TotalQuestions)
	}

	q := s.Questions[s.CurrentIndex]
	isCorrect := model.ValidLabel(userAnswer) && userAnswer == q.Answer

	s.Answers = append(s.Answers, model.AnswerRecord{
		Question:      q.Text,
		UserAnswer:    userAnswer,
		CorrectAnswer: q.Answer,
		IsCorrect:     isCorrect,
		Options:       q.Options,
	})
	s.CurrentIndex++
	return nil
}

// Results computes the scored summary for a session as of now.
// Score is the correct percentage rounded to two decimals.
func Results(s *model.QuizSession, now time.Time) model.QuizResults {
	correct := 0
	for _, a := range s.Answers {
		if a.IsCorrect {
			correct++
		}
	}

	score := round2(float64(correct) / float64(s.TotalQuestions) * 100)

	return model.QuizResults{
		Category:       s.Category,
		TotalQuestions: s.TotalQuestions,
		Correct:        correct,
		Score:          score,
		TimeTaken:      FormatElapsed(now.Sub(s.StartedAt)),
		Answers:        s.Answers,
	}
}

// FormatElapsed renders a duration as "<minutes>m <seconds>s". The
// duration is first rounded to two decimal places of seconds, then the
// minute and second parts are truncated to integers, so 125.4s is
// "2m 5s" and 59s is "0m 59s".
func FormatElapsed(d time.Duration) string {
	seconds := round2(d.Seconds())
	whole := int(seconds)
	return fmt.Sprintf("%dm %ds", whole/60, whole%60)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
