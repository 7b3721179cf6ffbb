package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionLifecycle(t *testing.T) {
	s := NewSession("01TESTSESSION")
	assert.Equal(t, StateEmpty, s.State)

	quiz := threeQuestionQuiz()
	s.Install(quiz)
	assert.Equal(t, StateGenerated, s.State)
	assert.Same(t, quiz, s.Quiz)
	assert.Empty(t, s.Answers)

	require.NoError(t, s.Answer(0, "a1"))
	assert.Equal(t, StateAnswering, s.State)

	report, err := s.Submit()
	require.NoError(t, err)
	assert.Equal(t, StateSubmitted, s.State)
	assert.Equal(t, 1.0, report.Obtained)
}

func TestSessionAnswerValidation(t *testing.T) {
	s := NewSession("01TESTSESSION")

	err := s.Answer(0, "a1")
	require.Error(t, err, "answering before generation must fail")

	s.Install(threeQuestionQuiz())

	assert.Error(t, s.Answer(-1, "a1"), "negative index")
	assert.Error(t, s.Answer(3, "a1"), "index past the end")
	assert.Error(t, s.Answer(0, "not an option"))

	require.NoError(t, s.Answer(0, "a1"))

	_, err = s.Submit()
	require.NoError(t, err)
	assert.Error(t, s.Answer(1, "a2"), "answering after submit must fail")
}

func TestSessionReAnswerLastWriteWins(t *testing.T) {
	s := NewSession("01TESTSESSION")
	s.Install(threeQuestionQuiz())

	require.NoError(t, s.Answer(0, "wrong 1"))
	require.NoError(t, s.Answer(0, "a1"))
	assert.Equal(t, "a1", s.Answers[0])

	report, err := s.Submit()
	require.NoError(t, err)
	assert.True(t, report.PerQuestion[0].IsCorrect)
}

func TestSessionSubmitReadsSnapshot(t *testing.T) {
	s := NewSession("01TESTSESSION")
	s.Install(threeQuestionQuiz())
	require.NoError(t, s.Answer(0, "a1"))

	report, err := s.Submit()
	require.NoError(t, err)

	// Later map interaction must not alter the computed report
	s.Answers[1] = "a2"
	assert.Equal(t, 1.0, report.Obtained)
	require.Len(t, report.PerQuestion, 3)
	assert.False(t, report.PerQuestion[1].Answered)
}

func TestSessionDoubleSubmit(t *testing.T) {
	s := NewSession("01TESTSESSION")
	s.Install(threeQuestionQuiz())

	_, err := s.Submit()
	require.NoError(t, err)

	_, err = s.Submit()
	assert.Error(t, err)
}

func TestSessionResetKeepsQuiz(t *testing.T) {
	s := NewSession("01TESTSESSION")
	quiz := threeQuestionQuiz()
	s.Install(quiz)
	require.NoError(t, s.Answer(0, "a1"))
	_, err := s.Submit()
	require.NoError(t, err)

	require.NoError(t, s.Reset())

	assert.Equal(t, StateGenerated, s.State)
	assert.Same(t, quiz, s.Quiz, "take-again keeps the same quiz")
	assert.Empty(t, s.Answers)
	assert.Nil(t, s.Report)
}

func TestSessionResetWithoutQuiz(t *testing.T) {
	s := NewSession("01TESTSESSION")
	assert.Error(t, s.Reset())
}

func TestSessionInstallDiscardsEverything(t *testing.T) {
	s := NewSession("01TESTSESSION")
	s.Install(threeQuestionQuiz())
	require.NoError(t, s.Answer(0, "a1"))
	_, err := s.Submit()
	require.NoError(t, err)

	replacement := &Quiz{
		Questions:      []Question{mcq("New?", "x")},
		Difficulty:     DifficultyHard,
		RequestedCount: 1,
	}
	s.Install(replacement)

	assert.Equal(t, StateGenerated, s.State)
	assert.Same(t, replacement, s.Quiz)
	assert.Empty(t, s.Answers)
	assert.Nil(t, s.Report)
}

func TestSessionDiscard(t *testing.T) {
	s := NewSession("01TESTSESSION")
	s.Install(threeQuestionQuiz())
	s.Discard()

	assert.Equal(t, StateEmpty, s.State)
	assert.Nil(t, s.Quiz)
	assert.Nil(t, s.Report)
	assert.Empty(t, s.Answers)
}
