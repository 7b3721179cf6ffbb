package dto

import "assessly/internal/domain"

// NoAnswerGiven is the display value for an unanswered question in a review
const NoAnswerGiven = "No Answer Given"

// QuestionView is one question as shown to the quiz taker. The correct
// answer is deliberately absent until submission.
type QuestionView struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Marks    float64  `json:"marks"`
}

// GenerateQuizResponse is the payload of a successful generation call
// @Description Generated quiz with its session identifier
type GenerateQuizResponse struct {
	SessionID      string         `json:"session_id"`
	QuizData       []QuestionView `json:"quiz_data"`
	Difficulty     string         `json:"difficulty"`
	RequestedCount int            `json:"requested_count"`
	Skipped        int            `json:"skipped"`
}

// AnswerRequest records one selected option
// @Description Request body for answering a question
type AnswerRequest struct {
	Index  int    `json:"index"`
	Answer string `json:"answer"`
}

// SessionStateResponse reports the session state after a mutation
type SessionStateResponse struct {
	SessionID string `json:"session_id"`
	State     string `json:"state"`
	Answered  int    `json:"answered"`
	Questions int    `json:"questions"`
}

// QuestionResultView is the per-question review entry after submission
type QuestionResultView struct {
	Index         int    `json:"index"`
	Question      string `json:"question"`
	IsCorrect     bool   `json:"is_correct"`
	UserAnswer    string `json:"user_answer"`
	CorrectAnswer string `json:"correct_answer"`
}

// ScoreReportResponse is the scoring result of a submitted quiz
type ScoreReportResponse struct {
	SessionID   string               `json:"session_id"`
	Obtained    float64              `json:"obtained"`
	Total       float64              `json:"total"`
	Percentage  int                  `json:"percentage"`
	PerQuestion []QuestionResultView `json:"per_question"`
}

// HealthResponse is the liveness probe payload
type HealthResponse struct {
	Status string `json:"status"`
}

// NewGenerateQuizResponse maps a freshly installed session to its response
func NewGenerateQuizResponse(session *domain.Session, skipped int) *GenerateQuizResponse {
	views := make([]QuestionView, 0, len(session.Quiz.Questions))
	for _, q := range session.Quiz.Questions {
		views = append(views, QuestionView{
			Question: q.Text,
			Options:  q.Options,
			Marks:    q.Marks,
		})
	}
	return &GenerateQuizResponse{
		SessionID:      session.ID,
		QuizData:       views,
		Difficulty:     string(session.Quiz.Difficulty),
		RequestedCount: session.Quiz.RequestedCount,
		Skipped:        skipped,
	}
}

// NewSessionStateResponse maps a session's current progress
func NewSessionStateResponse(session *domain.Session) *SessionStateResponse {
	questions := 0
	if session.Quiz != nil {
		questions = len(session.Quiz.Questions)
	}
	return &SessionStateResponse{
		SessionID: session.ID,
		State:     string(session.State),
		Answered:  len(session.Answers),
		Questions: questions,
	}
}

// NewScoreReportResponse maps a domain score report for display. Unanswered
// questions show the NoAnswerGiven marker instead of an answer.
func NewScoreReportResponse(sessionID string, report *domain.ScoreReport) *ScoreReportResponse {
	perQuestion := make([]QuestionResultView, 0, len(report.PerQuestion))
	for _, r := range report.PerQuestion {
		userAnswer := r.UserAnswer
		if !r.Answered {
			userAnswer = NoAnswerGiven
		}
		perQuestion = append(perQuestion, QuestionResultView{
			Index:         r.Index,
			Question:      r.Question,
			IsCorrect:     r.IsCorrect,
			UserAnswer:    userAnswer,
			CorrectAnswer: r.CorrectAnswer,
		})
	}
	return &ScoreReportResponse{
		SessionID:   sessionID,
		Obtained:    report.Obtained,
		Total:       report.Total,
		Percentage:  report.Percentage,
		PerQuestion: perQuestion,
	}
}
