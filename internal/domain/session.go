package domain

import (
	"fmt"
	"time"
)

// SessionState tracks where a quiz session is in its lifecycle
type SessionState string

const (
	StateEmpty     SessionState = "empty"
	StateGenerated SessionState = "generated"
	StateAnswering SessionState = "answering"
	StateSubmitted SessionState = "submitted"
)

// Session owns one Quiz/AnswerSet/ScoreReport triple exclusively. All
// mutation happens through the named transitions below; the zero trigger for
// Generated -> Answering is recording the first answer.
type Session struct {
	ID        string
	State     SessionState
	Quiz      *Quiz
	Answers   AnswerSet
	Report    *ScoreReport
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewSession creates an empty session with the given identifier
func NewSession(id string) *Session {
	now := time.Now()
	return &Session{
		ID:        id,
		State:     StateEmpty,
		Answers:   make(AnswerSet),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Install replaces the session's quiz unconditionally. Any prior answers and
// score report are dropped, even mid-session.
func (s *Session) Install(quiz *Quiz) {
	s.Quiz = quiz
	s.Answers = make(AnswerSet)
	s.Report = nil
	s.State = StateGenerated
	s.UpdatedAt = time.Now()
}

// Answer records the selected option for a question. Re-answering the same
// index overwrites the prior selection; no history is kept.
func (s *Session) Answer(index int, choice string) error {
	switch s.State {
	case StateGenerated, StateAnswering:
	case StateSubmitted:
		return NewInvalidStateError("quiz already submitted; reset to answer again")
	default:
		return NewInvalidStateError("no quiz has been generated")
	}

	if index < 0 || index >= len(s.Quiz.Questions) {
		return NewInvalidInputError(fmt.Sprintf("question index out of range: %d", index))
	}

	valid := false
	for _, opt := range s.Quiz.Questions[index].Options {
		if opt == choice {
			valid = true
			break
		}
	}
	if !valid {
		return NewInvalidInputError(fmt.Sprintf("answer is not an option of question %d", index))
	}

	s.Answers[index] = choice
	s.State = StateAnswering
	s.UpdatedAt = time.Now()
	return nil
}

// Submit freezes the current answers and computes the score report. Scoring
// reads from a snapshot, so later interaction cannot retroactively alter an
// already-computed report.
func (s *Session) Submit() (*ScoreReport, error) {
	switch s.State {
	case StateGenerated, StateAnswering:
	case StateSubmitted:
		return nil, NewInvalidStateError("quiz already submitted")
	default:
		return nil, NewInvalidStateError("no quiz has been generated")
	}

	snapshot := s.Answers.Clone()
	s.Report = s.Quiz.Score(snapshot)
	s.State = StateSubmitted
	s.UpdatedAt = time.Now()
	return s.Report, nil
}

// Reset clears answers and score while keeping the same quiz (take-again)
func (s *Session) Reset() error {
	if s.Quiz == nil {
		return NewInvalidStateError("no quiz has been generated")
	}
	s.Answers = make(AnswerSet)
	s.Report = nil
	s.State = StateGenerated
	s.UpdatedAt = time.Now()
	return nil
}

// Discard drops the quiz entirely, returning the session to Empty
func (s *Session) Discard() {
	s.Quiz = nil
	s.Answers = make(AnswerSet)
	s.Report = nil
	s.State = StateEmpty
	s.UpdatedAt = time.Now()
}
