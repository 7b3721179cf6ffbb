package service

import (
	"context"
	"time"

	"assessly/internal/adapter/quizgen"
	"assessly/internal/domain"
	"assessly/internal/dto"
	"assessly/internal/extract"
	"assessly/internal/logger"
	"assessly/internal/util"
	"assessly/internal/validation"

	"go.uber.org/zap"
)

// QuizService runs the document-to-quiz pipeline and manages quiz sessions
type QuizService interface {
	// GenerateFromDocument extracts text from the uploaded file, asks the
	// provider for a quiz and installs it into a session. A non-empty
	// sessionID regenerates into that session, discarding its previous quiz,
	// answers and score unconditionally.
	GenerateFromDocument(ctx context.Context, req GenerateRequest) (*dto.GenerateQuizResponse, error)
	RecordAnswer(sessionID string, index int, answer string) (*dto.SessionStateResponse, error)
	Submit(sessionID string) (*dto.ScoreReportResponse, error)
	Reset(sessionID string) (*dto.SessionStateResponse, error)
	Discard(sessionID string) error
}

// GenerateRequest carries the inputs of one generation call
type GenerateRequest struct {
	Filename     string
	Data         []byte
	NumQuestions int
	Difficulty   domain.Difficulty
	SessionID    string
}

// Extractor turns raw document bytes into plain text; extract.Text in
// production, a stub in tests
type Extractor func(data []byte, kind extract.Kind) (string, error)

type quizService struct {
	generator domain.QuizGenerator
	extractor Extractor
	sessions  *SessionStore
	timeout   time.Duration
}

// NewQuizService creates a QuizService. timeout bounds the provider call;
// large documents and slow providers make this minutes, not seconds.
func NewQuizService(generator domain.QuizGenerator, extractor Extractor, sessions *SessionStore, timeout time.Duration) QuizService {
	return &quizService{
		generator: generator,
		extractor: extractor,
		sessions:  sessions,
		timeout:   timeout,
	}
}

func (s *quizService) GenerateFromDocument(ctx context.Context, req GenerateRequest) (*dto.GenerateQuizResponse, error) {
	log := logger.Get()

	kind, err := extract.KindFromFilename(req.Filename)
	if err != nil {
		return nil, err
	}

	text, err := s.extractor(req.Data, kind)
	if err != nil {
		return nil, err
	}

	normalized := util.NormalizeText(text)
	if normalized == "" {
		return nil, domain.NewExtractionError("No text extracted from file", nil)
	}

	log.Info("Document extracted",
		zap.String("filename", req.Filename),
		zap.String("kind", string(kind)),
		zap.Int("text_len", len(normalized)),
	)

	genCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.generator.Generate(genCtx, normalized, req.NumQuestions, req.Difficulty)
	if err != nil {
		return nil, err
	}

	elements, err := quizgen.ParseQuizPayload(raw)
	if err != nil {
		return nil, err
	}

	quiz, report, err := validation.BuildQuiz(elements, req.NumQuestions, req.Difficulty)
	if err != nil {
		return nil, err
	}
	if report.Skipped() > 0 {
		log.Warn("Provider returned corrupted questions",
			zap.Int("skipped", report.Skipped()),
			zap.Int("usable", len(quiz.Questions)),
		)
	}

	session, err := s.sessionFor(req.SessionID)
	if err != nil {
		return nil, err
	}
	session.Install(quiz)

	log.Info("Quiz installed",
		zap.String("session_id", session.ID),
		zap.Int("questions", len(quiz.Questions)),
		zap.Int("requested", req.NumQuestions),
		zap.String("difficulty", string(req.Difficulty)),
	)

	return dto.NewGenerateQuizResponse(session, report.Skipped()), nil
}

// sessionFor resolves the target session of a generation call: a fresh one
// when no id was sent, the existing one on regeneration
func (s *quizService) sessionFor(sessionID string) (*domain.Session, error) {
	if sessionID == "" {
		return s.sessions.Create(), nil
	}
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, domain.NewSessionNotFoundError(sessionID)
	}
	return session, nil
}

func (s *quizService) RecordAnswer(sessionID string, index int, answer string) (*dto.SessionStateResponse, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, domain.NewSessionNotFoundError(sessionID)
	}

	if err := session.Answer(index, answer); err != nil {
		return nil, err
	}
	return dto.NewSessionStateResponse(session), nil
}

func (s *quizService) Submit(sessionID string) (*dto.ScoreReportResponse, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, domain.NewSessionNotFoundError(sessionID)
	}

	report, err := session.Submit()
	if err != nil {
		return nil, err
	}

	logger.Get().Info("Quiz submitted",
		zap.String("session_id", sessionID),
		zap.Float64("obtained", report.Obtained),
		zap.Float64("total", report.Total),
		zap.Int("percentage", report.Percentage),
	)

	return dto.NewScoreReportResponse(sessionID, report), nil
}

func (s *quizService) Reset(sessionID string) (*dto.SessionStateResponse, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, domain.NewSessionNotFoundError(sessionID)
	}

	if err := session.Reset(); err != nil {
		return nil, err
	}
	return dto.NewSessionStateResponse(session), nil
}

func (s *quizService) Discard(sessionID string) error {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return domain.NewSessionNotFoundError(sessionID)
	}

	session.Discard()
	s.sessions.Delete(sessionID)
	return nil
}
