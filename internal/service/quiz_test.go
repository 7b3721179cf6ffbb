package service

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"assessly/internal/config"
	"assessly/internal/domain"
	"assessly/internal/dto"
	"assessly/internal/extract"
	"assessly/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// TestMain initializes the logger for all tests in this package
func TestMain(m *testing.M) {
	if err := logger.Initialize(config.LoggerConfig{Level: "debug", Env: "test"}); err != nil {
		panic("Failed to initialize logger for tests: " + err.Error())
	}
	exitVal := m.Run()
	_ = logger.Sync()
	os.Exit(exitVal)
}

// --- Mocks ---

type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(ctx context.Context, text string, count int, difficulty domain.Difficulty) (string, error) {
	args := m.Called(ctx, text, count, difficulty)
	return args.String(0), args.Error(1)
}

func stubExtractor(text string, err error) Extractor {
	return func(data []byte, kind extract.Kind) (string, error) {
		return text, err
	}
}

const validPayload = `[
	{"question":"Q1?","options":["a","b","c","d"],"correct_answer":"a","marks":1},
	{"question":"Q2?","options":["a","b","c","d"],"correct_answer":"b","marks":1}
]`

func newService(gen *MockGenerator, extractor Extractor) (QuizService, *SessionStore) {
	store := NewSessionStore()
	return NewQuizService(gen, extractor, store, time.Minute), store
}

func generateQuiz(t *testing.T, svc QuizService) *dto.GenerateQuizResponse {
	t.Helper()
	resp, err := svc.GenerateFromDocument(context.Background(), GenerateRequest{
		Filename:     "doc.pdf",
		Data:         []byte("irrelevant"),
		NumQuestions: 5,
		Difficulty:   domain.DifficultyMedium,
	})
	require.NoError(t, err)
	return resp
}

// --- Generation pipeline ---

func TestGenerateFromDocument(t *testing.T) {
	gen := new(MockGenerator)
	gen.On("Generate", mock.Anything, "document text", 5, domain.DifficultyMedium).
		Return(validPayload, nil)

	svc, store := newService(gen, stubExtractor("document  text", nil))

	resp := generateQuiz(t, svc)

	assert.NotEmpty(t, resp.SessionID)
	assert.Len(t, resp.QuizData, 2)
	assert.Equal(t, "medium", resp.Difficulty)
	assert.Equal(t, 5, resp.RequestedCount)
	assert.Zero(t, resp.Skipped)
	assert.Equal(t, 1, store.Len())

	// Generation must not leak correct answers
	for _, q := range resp.QuizData {
		assert.NotEmpty(t, q.Question)
		assert.Len(t, q.Options, 4)
	}

	// The prompt text must be the normalized form
	gen.AssertExpectations(t)
}

func TestGenerateInvalidFilename(t *testing.T) {
	gen := new(MockGenerator)
	svc, store := newService(gen, stubExtractor("text", nil))

	_, err := svc.GenerateFromDocument(context.Background(), GenerateRequest{
		Filename:     "doc.txt",
		NumQuestions: 5,
		Difficulty:   domain.DifficultyEasy,
	})

	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeInvalidInput, domainErr.Code)
	assert.Zero(t, store.Len(), "no session is installed on failure")
	gen.AssertNotCalled(t, "Generate")
}

func TestGenerateExtractionFailureAbortsPipeline(t *testing.T) {
	gen := new(MockGenerator)
	extractErr := domain.NewExtractionError("No text extracted from file", nil)
	svc, store := newService(gen, stubExtractor("", extractErr))

	_, err := svc.GenerateFromDocument(context.Background(), GenerateRequest{
		Filename:     "doc.pdf",
		NumQuestions: 5,
		Difficulty:   domain.DifficultyEasy,
	})

	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeExtraction, domainErr.Code)
	assert.Zero(t, store.Len())
	gen.AssertNotCalled(t, "Generate")
}

func TestGenerateNormalizedToNothing(t *testing.T) {
	gen := new(MockGenerator)
	svc, _ := newService(gen, stubExtractor("$$$ %%% @@@", nil))

	_, err := svc.GenerateFromDocument(context.Background(), GenerateRequest{
		Filename:     "doc.pdf",
		NumQuestions: 5,
		Difficulty:   domain.DifficultyEasy,
	})

	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeExtraction, domainErr.Code)
	gen.AssertNotCalled(t, "Generate")
}

func TestGenerateProviderFailure(t *testing.T) {
	gen := new(MockGenerator)
	gen.On("Generate", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", domain.NewProviderError(errors.New("connection refused")))

	svc, store := newService(gen, stubExtractor("text", nil))

	_, err := svc.GenerateFromDocument(context.Background(), GenerateRequest{
		Filename:     "doc.pdf",
		NumQuestions: 5,
		Difficulty:   domain.DifficultyEasy,
	})

	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeProviderError, domainErr.Code)
	assert.Zero(t, store.Len())
}

func TestGenerateMalformedProviderOutput(t *testing.T) {
	gen := new(MockGenerator)
	gen.On("Generate", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("sorry, I cannot do that", nil)

	svc, store := newService(gen, stubExtractor("text", nil))

	_, err := svc.GenerateFromDocument(context.Background(), GenerateRequest{
		Filename:     "doc.pdf",
		NumQuestions: 5,
		Difficulty:   domain.DifficultyEasy,
	})

	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeMalformedJSON, domainErr.Code)
	assert.Zero(t, store.Len())
}

func TestGenerateAllQuestionsCorrupted(t *testing.T) {
	gen := new(MockGenerator)
	gen.On("Generate", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(`[{"question":"Q?","options":["a"],"correct_answer":"a"}]`, nil)

	svc, store := newService(gen, stubExtractor("text", nil))

	_, err := svc.GenerateFromDocument(context.Background(), GenerateRequest{
		Filename:     "doc.pdf",
		NumQuestions: 5,
		Difficulty:   domain.DifficultyEasy,
	})

	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeEmptyQuiz, domainErr.Code)
	assert.Zero(t, store.Len(), "hard failure installs no quiz")
}

func TestGeneratePartiallyValidQuizIsUsable(t *testing.T) {
	gen := new(MockGenerator)
	gen.On("Generate", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(`[
			{"question":"Good?","options":["a","b","c","d"],"correct_answer":"a"},
			{"question":"Bad?","options":["a","b"],"correct_answer":"a"}
		]`, nil)

	svc, _ := newService(gen, stubExtractor("text", nil))

	resp, err := svc.GenerateFromDocument(context.Background(), GenerateRequest{
		Filename:     "doc.pdf",
		NumQuestions: 5,
		Difficulty:   domain.DifficultyEasy,
	})

	require.NoError(t, err)
	assert.Len(t, resp.QuizData, 1)
	assert.Equal(t, 1, resp.Skipped)
}

func TestRegenerationReplacesSessionUnconditionally(t *testing.T) {
	gen := new(MockGenerator)
	gen.On("Generate", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(validPayload, nil)

	svc, store := newService(gen, stubExtractor("text", nil))

	first := generateQuiz(t, svc)

	// Mid-session: answer and submit
	_, err := svc.RecordAnswer(first.SessionID, 0, "a")
	require.NoError(t, err)
	_, err = svc.Submit(first.SessionID)
	require.NoError(t, err)

	// Regenerate into the same session
	second, err := svc.GenerateFromDocument(context.Background(), GenerateRequest{
		Filename:     "doc.pdf",
		Data:         []byte("x"),
		NumQuestions: 5,
		Difficulty:   domain.DifficultyHard,
		SessionID:    first.SessionID,
	})
	require.NoError(t, err)
	assert.Equal(t, first.SessionID, second.SessionID)
	assert.Equal(t, 1, store.Len())

	session, ok := store.Get(first.SessionID)
	require.True(t, ok)
	assert.Equal(t, domain.StateGenerated, session.State)
	assert.Empty(t, session.Answers)
	assert.Nil(t, session.Report)
}

func TestRegenerationUnknownSession(t *testing.T) {
	gen := new(MockGenerator)
	gen.On("Generate", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(validPayload, nil)

	svc, _ := newService(gen, stubExtractor("text", nil))

	_, err := svc.GenerateFromDocument(context.Background(), GenerateRequest{
		Filename:     "doc.pdf",
		NumQuestions: 5,
		Difficulty:   domain.DifficultyEasy,
		SessionID:    "01UNKNOWNSESSION",
	})

	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeSessionNotFound, domainErr.Code)
}

// --- Session operations ---

func TestAnswerSubmitResetFlow(t *testing.T) {
	gen := new(MockGenerator)
	gen.On("Generate", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(validPayload, nil)

	svc, _ := newService(gen, stubExtractor("text", nil))
	resp := generateQuiz(t, svc)

	state, err := svc.RecordAnswer(resp.SessionID, 0, "a")
	require.NoError(t, err)
	assert.Equal(t, string(domain.StateAnswering), state.State)
	assert.Equal(t, 1, state.Answered)
	assert.Equal(t, 2, state.Questions)

	// Wrong answer on the second question
	_, err = svc.RecordAnswer(resp.SessionID, 1, "c")
	require.NoError(t, err)

	report, err := svc.Submit(resp.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 0.75, report.Obtained)
	assert.Equal(t, 2.0, report.Total)
	assert.Equal(t, 38, report.Percentage)
	require.Len(t, report.PerQuestion, 2)
	assert.True(t, report.PerQuestion[0].IsCorrect)
	assert.Equal(t, "c", report.PerQuestion[1].UserAnswer)

	state, err = svc.Reset(resp.SessionID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StateGenerated), state.State)
	assert.Zero(t, state.Answered)
	assert.Equal(t, 2, state.Questions, "take-again keeps the quiz")
}

func TestSubmitWithNoAnswers(t *testing.T) {
	gen := new(MockGenerator)
	gen.On("Generate", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(validPayload, nil)

	svc, _ := newService(gen, stubExtractor("text", nil))
	resp := generateQuiz(t, svc)

	report, err := svc.Submit(resp.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, report.Obtained)
	assert.Equal(t, 0, report.Percentage)
	for _, q := range report.PerQuestion {
		assert.Equal(t, dto.NoAnswerGiven, q.UserAnswer)
	}
}

func TestSessionOpsUnknownSession(t *testing.T) {
	gen := new(MockGenerator)
	svc, _ := newService(gen, stubExtractor("text", nil))

	_, err := svc.RecordAnswer("01NOPE", 0, "a")
	assertSessionNotFound(t, err)

	_, err = svc.Submit("01NOPE")
	assertSessionNotFound(t, err)

	_, err = svc.Reset("01NOPE")
	assertSessionNotFound(t, err)

	assertSessionNotFound(t, svc.Discard("01NOPE"))
}

func TestDiscardRemovesSession(t *testing.T) {
	gen := new(MockGenerator)
	gen.On("Generate", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(validPayload, nil)

	svc, store := newService(gen, stubExtractor("text", nil))
	resp := generateQuiz(t, svc)

	require.NoError(t, svc.Discard(resp.SessionID))
	assert.Zero(t, store.Len())

	_, err := svc.Submit(resp.SessionID)
	assertSessionNotFound(t, err)
}

func assertSessionNotFound(t *testing.T, err error) {
	t.Helper()
	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeSessionNotFound, domainErr.Code)
}
