package question

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pavelanni/quizmaster/internal/model"
)

const validBank = `{
  "categories": {
    "science": [
      {"question": "Q1", "options": {"A": "a", "B": "b", "C": "c", "D": "d"}, "answer": "B"},
      {"question": "Q2", "options": {"A": "a", "B": "b", "C": "c", "D": "d"}, "answer": "A"},
      {"question": "Q3", "options": {"A": "a", "B": "b", "C": "c", "D": "d"}, "answer": "D"}
    ],
    "history": [
      {"question": "H1", "options": {"A": "a", "B": "b", "C": "c", "D": "d"}, "answer": "C"}
    ]
  }
}`

func writeBank(t *testing.T, content string) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "questions.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return NewStore(path)
}

func TestLoad(t *testing.T) {
	s := writeBank(t, validBank)

	categories, err := s.Load()
	require.NoError(t, err)
	require.Len(t, categories, 2)

	science := categories["science"]
	require.Len(t, science, 3)
	assert.Equal(t, "Q1", science[0].Text)
	assert.Equal(t, "B", science[0].Answer)
	assert.Equal(t, "b", science[0].Options["B"])
}

func TestLoadMissingFile(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "nope.json"))
	_, err := s.Load()
	require.Error(t, err)
}

func TestLoadMalformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not JSON", `{"categories": [}`},
		{"missing categories key", `{"sections": {}}`},
		{"empty question text", `{"categories": {"c": [
			{"question": "", "options": {"A": "a", "B": "b", "C": "c", "D": "d"}, "answer": "A"}]}}`},
		{"missing option", `{"categories": {"c": [
			{"question": "Q", "options": {"A": "a", "B": "b", "C": "c"}, "answer": "A"}]}}`},
		{"empty option", `{"categories": {"c": [
			{"question": "Q", "options": {"A": "a", "B": "", "C": "c", "D": "d"}, "answer": "A"}]}}`},
		{"extra option label", `{"categories": {"c": [
			{"question": "Q", "options": {"A": "a", "B": "b", "C": "c", "D": "d", "E": "e"}, "answer": "A"}]}}`},
		{"answer not a label", `{"categories": {"c": [
			{"question": "Q", "options": {"A": "a", "B": "b", "C": "c", "D": "d"}, "answer": "E"}]}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := writeBank(t, tt.content)
			_, err := s.Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadCategory(t *testing.T) {
	s := writeBank(t, validBank)

	questions, err := s.LoadCategory("history")
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, "H1", questions[0].Text)

	// Unknown category is empty, not an error.
	questions, err = s.LoadCategory("philosophy")
	require.NoError(t, err)
	assert.Empty(t, questions)
}

func TestCounts(t *testing.T) {
	s := writeBank(t, validBank)

	counts, maxCount, err := s.Counts()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"science": 3, "history": 1}, counts)
	assert.Equal(t, 3, maxCount)
}

func TestCountsEmptyBank(t *testing.T) {
	s := writeBank(t, `{"categories": {"empty": []}}`)

	_, _, err := s.Counts()
	require.ErrorIs(t, err, ErrNoQuestions)
}

func TestFirstN(t *testing.T) {
	questions := []model.Question{
		{Text: "Q1"}, {Text: "Q2"}, {Text: "Q3"},
	}

	tests := []struct {
		name string
		n    int
		want int
	}{
		{"fewer than available", 2, 2},
		{"exactly available", 3, 3},
		{"more than available clamps", 10, 3},
		{"zero", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FirstN(questions, tt.n)
			require.Len(t, got, tt.want)
			if tt.want > 0 {
				// File order is preserved.
				assert.Equal(t, "Q1", got[0].Text)
			}
		})
	}
}
