package feedback

import (
	"fmt"
	"time"
)

// Sentiment is the categorical tag on a feedback record.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// Valid reports whether s is one of the three defined sentiments.
func (s Sentiment) Valid() bool {
	switch s {
	case SentimentPositive, SentimentNeutral, SentimentNegative:
		return true
	default:
		return false
	}
}

// ParseSentiment converts a persisted sentiment name.
func ParseSentiment(s string) (Sentiment, error) {
	if v := Sentiment(s); v.Valid() {
		return v, nil
	}
	return "", fmt.Errorf("unknown sentiment %q", s)
}

// Feedback is a single feedback record with the manager and employee names
// resolved for display.
type Feedback struct {
	ID             string     `json:"id"`
	ManagerID      string     `json:"managerId"`
	EmployeeID     string     `json:"employeeId"`
	ManagerName    string     `json:"managerName"`
	EmployeeName   string     `json:"employeeName"`
	Strengths      string     `json:"strengths"`
	AreasToImprove string     `json:"areasToImprove"`
	Sentiment      Sentiment  `json:"sentiment"`
	Acknowledged   bool       `json:"acknowledged"`
	AcknowledgedAt *time.Time `json:"acknowledgedAt"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// CreateFeedbackInput holds the fields a manager supplies for new feedback.
type CreateFeedbackInput struct {
	EmployeeID     string    `json:"employeeId"`
	Strengths      string    `json:"strengths"`
	AreasToImprove string    `json:"areasToImprove"`
	Sentiment      Sentiment `json:"sentiment"`
}

// UpdateFeedbackInput holds optional fields for a partial update. Nil fields
// keep their stored value.
type UpdateFeedbackInput struct {
	Strengths      *string    `json:"strengths,omitempty"`
	AreasToImprove *string    `json:"areasToImprove,omitempty"`
	Sentiment      *Sentiment `json:"sentiment,omitempty"`
}

// Empty reports whether no field is set.
func (in UpdateFeedbackInput) Empty() bool {
	return in.Strengths == nil && in.AreasToImprove == nil && in.Sentiment == nil
}
