// Package question reads the multiple-choice question bank from a JSON
// file. Every call re-reads the file so edits show up on the next
// request; the bank is small enough that caching would buy nothing.
package question

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/pavelanni/quizmaster/internal/model"
)

// ErrNoQuestions is returned when the bank contains no usable category.
var ErrNoQuestions = errors.New("question bank contains no questions")

// Store loads questions from a JSON file with the structure
// {"categories": {name: [{question, options, answer}, ...]}}.
type Store struct {
	path string
}

// NewStore creates a store backed by the file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load returns all categories with their question lists. It fails when
// the file is missing, is not valid JSON, or any question fails
// validation; callers treat failure as "no data" and render an error page.
func (s *Store) Load() (map[string][]model.Question, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read questions file: %w", err)
	}

	var qf model.QuestionFile
	if err := json.Unmarshal(data, &qf); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.path, err)
	}
	if qf.Categories == nil {
		return nil, fmt.Errorf("parse %s: missing top-level \"categories\" key", s.path)
	}

	for name, questions := range qf.Categories {
		for i, q := range questions {
			if err := validate(q); err != nil {
				return nil, fmt.Errorf("category %q question %d: %w", name, i+1, err)
			}
		}
	}
	return qf.Categories, nil
}

// LoadCategory returns one category's question list in file order.
// An unknown category yields an empty list, not an error.
func (s *Store) LoadCategory(name string) ([]model.Question, error) {
	categories, err := s.Load()
	if err != nil {
		return nil, err
	}
	return categories[name], nil
}

// Counts returns the number of questions per category and the maximum
// count over all categories. A bank with no questions in any category
// is an error: the start form needs at least one selectable question.
func (s *Store) Counts() (map[string]int, int, error) {
	categories, err := s.Load()
	if err != nil {
		return nil, 0, err
	}

	counts := make(map[string]int, len(categories))
	maxCount := 0
	for name, questions := range categories {
		counts[name] = len(questions)
		if len(questions) > maxCount {
			maxCount = len(questions)
		}
	}
	if maxCount == 0 {
		return nil, 0, ErrNoQuestions
	}
	return counts, maxCount, nil
}

// FirstN returns the first n questions in file order, clamped to the
// number available. No shuffling: question order is the file order.
func FirstN(questions []model.Question, n int) []model.Question {
	if n > len(questions) {
		n = len(questions)
	}
	return questions[:n]
}

func validate(q model.Question) error {
	if q.Text == "" {
		return errors.New("empty question text")
	}
	if len(q.Options) != len(model.OptionLabels) {
		return fmt.Errorf("expected %d options, got %d", len(model.OptionLabels), len(q.Options))
	}
	for _, label := range model.OptionLabels {
		if q.Options[label] == "" {
			return fmt.Errorf("missing or empty option %q", label)
		}
	}
	if !model.ValidLabel(q.Answer) {
		return fmt.Errorf("answer %q is not one of A, B, C, D", q.Answer)
	}
	return nil
}
