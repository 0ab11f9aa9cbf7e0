package quiz

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pavelanni/quizmaster/internal/model"
)

func makeQuestions(n int) []model.Question {
	questions := make([]model.Question, n)
	for i := range questions {
		questions[i] = model.Question{
			Text:    fmt.Sprintf("Q%d", i+1),
			Options: map[string]string{"A": "a", "B": "b", "C": "c", "D": "d"},
			Answer:  "A",
		}
	}
	return questions
}

func TestStartClampsRequestedCount(t *testing.T) {
	questions := makeQuestions(4)

	sess, err := Start("science", questions, 10)
	require.NoError(t, err)
	assert.Equal(t, 4, sess.TotalQuestions)
	assert.Len(t, sess.Questions, 4)
	assert.Equal(t, 0, sess.CurrentIndex)
	assert.Empty(t, sess.Answers)
	assert.NotEmpty(t, sess.ID)
	assert.False(t, sess.StartedAt.IsZero())
}

func TestStartTakesFirstNInOrder(t *testing.T) {
	questions := makeQuestions(5)

	sess, err := Start("science", questions, 3)
	require.NoError(t, err)
	require.Len(t, sess.Questions, 3)
	assert.Equal(t, "Q1", sess.Questions[0].Text)
	assert.Equal(t, "Q2", sess.Questions[1].Text)
	assert.Equal(t, "Q3", sess.Questions[2].Text)
}

func TestStartRejectsBadParameters(t *testing.T) {
	questions := makeQuestions(3)

	_, err := Start("science", questions, 0)
	assert.ErrorIs(t, err, ErrInvalidCount)

	_, err = Start("science", questions, -2)
	assert.ErrorIs(t, err, ErrInvalidCount)

	_, err = Start("empty", nil, 5)
	assert.ErrorIs(t, err, ErrEmptyCategory)
}

func TestSubmitKeepsAnswersInStepWithIndex(t *testing.T) {
	sess, err := Start("science", makeQuestions(3), 3)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		require.NoError(t, Submit(sess, "A"))
		assert.Equal(t, sess.CurrentIndex, len(sess.Answers))
	}
	assert.True(t, sess.Completed())

	// Submitting past the end is the only submit error.
	assert.Error(t, Submit(sess, "A"))
	assert.Equal(t, 3, sess.CurrentIndex)
}

func TestSubmitScoresInvalidLabelAsIncorrect(t *testing.T) {
	for _, answer := range []string{"", "E", "x", "AB", "a"} {
		t.Run(fmt.Sprintf("answer %q", answer), func(t *testing.T) {
			sess, err := Start("science", makeQuestions(1), 1)
			require.NoError(t, err)

			require.NoError(t, Submit(sess, answer))
			require.Len(t, sess.Answers, 1)
			assert.False(t, sess.Answers[0].IsCorrect)
			assert.Equal(t, answer, sess.Answers[0].UserAnswer)
		})
	}
}

func TestSubmitRecordsSnapshot(t *testing.T) {
	questions := makeQuestions(2)
	questions[1].Answer = "C"

	sess, err := Start("science", questions, 2)
	require.NoError(t, err)

	require.NoError(t, Submit(sess, "A"))
	require.NoError(t, Submit(sess, "B"))

	first := sess.Answers[0]
	assert.Equal(t, "Q1", first.Question)
	assert.Equal(t, "A", first.CorrectAnswer)
	assert.True(t, first.IsCorrect)
	assert.Equal(t, questions[0].Options, first.Options)

	second := sess.Answers[1]
	assert.Equal(t, "C", second.CorrectAnswer)
	assert.False(t, second.IsCorrect)
}

func TestResultsScore(t *testing.T) {
	tests := []struct {
		name    string
		total   int
		correct int
		want    float64
	}{
		{"3 of 4", 4, 3, 75.0},
		{"all correct", 5, 5, 100.0},
		{"none correct", 4, 0, 0.0},
		{"2 of 3 rounds to two decimals", 3, 2, 66.67},
		{"1 of 6", 6, 1, 16.67},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess, err := Start("science", makeQuestions(tt.total), tt.total)
			require.NoError(t, err)
			for i := 0; i < tt.total; i++ {
				answer := "B" // wrong
				if i < tt.correct {
					answer = "A"
				}
				require.NoError(t, Submit(sess, answer))
			}

			res := Results(sess, time.Now())
			assert.Equal(t, tt.correct, res.Correct)
			assert.InDelta(t, tt.want, res.Score, 0.001)
			assert.Equal(t, tt.total, res.TotalQuestions)
			assert.Len(t, res.Answers, tt.total)
		})
	}
}

func TestResultsElapsedTime(t *testing.T) {
	sess, err := Start("science", makeQuestions(1), 1)
	require.NoError(t, err)
	require.NoError(t, Submit(sess, "A"))

	res := Results(sess, sess.StartedAt.Add(125*time.Second))
	assert.Equal(t, "2m 5s", res.TimeTaken)
}

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{125 * time.Second, "2m 5s"},
		{59 * time.Second, "0m 59s"},
		{0, "0m 0s"},
		{60 * time.Second, "1m 0s"},
		{3661 * time.Second, "61m 1s"},
		{125540 * time.Millisecond, "2m 5s"},
		{59996 * time.Millisecond, "1m 0s"}, // rounds up to 60.00s
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatElapsed(tt.d))
		})
	}
}

func TestManager(t *testing.T) {
	m := NewManager()

	assert.Nil(t, m.Get("tok"))

	first, err := Start("science", makeQuestions(2), 2)
	require.NoError(t, err)
	m.Put("tok", first)
	assert.Same(t, first, m.Get("tok"))

	// Starting a new quiz overwrites the old one.
	second, err := Start("history", makeQuestions(1), 1)
	require.NoError(t, err)
	m.Put("tok", second)
	assert.Same(t, second, m.Get("tok"))

	// Tokens are independent.
	m.Put("other", first)
	assert.Same(t, second, m.Get("tok"))

	m.Delete("tok")
	assert.Nil(t, m.Get("tok"))
	assert.Same(t, first, m.Get("other"))
}
