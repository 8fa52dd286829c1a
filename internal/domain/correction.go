package domain

import "github.com/google/uuid"

// Action enumerates the terminal outcomes of one correction decision.
type Action string

const (
	ActionApproved             Action = "approved"
	ActionCorrectionRequested  Action = "correction_requested"
	ActionManualReviewRequired Action = "manual_review_required"
	ActionNoIssuesFound        Action = "no_issues_found"
)

// CorrectionSession identifies one article's place in the bounded correction
// loop. The attempt counter is caller-owned: the engine never stores it, and
// callers must serialize sessions for the same article themselves.
type CorrectionSession struct {
	ArticleID   string
	WorkspaceID uuid.UUID
	Attempt     int
}

// Next returns the session advanced by one attempt.
func (s CorrectionSession) Next() CorrectionSession {
	s.Attempt++
	return s
}

// Exhausted reports whether the bounded retry budget is spent.
func (s CorrectionSession) Exhausted() bool {
	return s.Attempt >= MaxCorrectionAttempts
}

// Decision is the result of one pass through the correction policy.
type Decision struct {
	Action       Action            `json:"action"`
	ArticleID    string            `json:"article_id"`
	Score        int               `json:"score"`
	Issues       []string          `json:"issues,omitempty"`
	Instructions []string          `json:"correction_instructions,omitempty"`
	Session      CorrectionSession `json:"-"`
	Attempt      int               `json:"correction_attempt"`
	Message      string            `json:"message"`
}

// Event names published by the corrector; the transport is a collaborator.
const (
	EventArticleApproved        = "article.approved_for_publishing"
	EventArticleGenerateRequest = "article.generate.request"
)

// ApprovedEvent is the payload of article.approved_for_publishing.
type ApprovedEvent struct {
	ArticleID string `json:"article_id"`
	Score     int    `json:"score"`
	Status    Status `json:"status"`
}

// GenerateRequestEvent is the payload of article.generate.request.
type GenerateRequestEvent struct {
	ArticleID         string   `json:"article_id"`
	CorrectionReason  []string `json:"correction_reason"`
	Instructions      []string `json:"correction_instructions"`
	CorrectionAttempt int      `json:"correction_attempt"`
}
