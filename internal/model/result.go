package model

import (
	"time"

	"menteazul/internal/qchat"
)

// Result is one completed questionnaire run. Never modified after insert.
type Result struct {
	ID        string      `json:"id" bson:"_id,omitempty"`
	UserID    string      `json:"userId" bson:"userId"`
	Child     qchat.Child `json:"child" bson:"child"`
	SessionID string      `json:"sessionId,omitempty" bson:"sessionId,omitempty"`

	qchat.Evaluation `bson:",inline"`
}

// NewResult wraps an evaluation with its owner and child
func NewResult(userID string, child qchat.Child, eval *qchat.Evaluation) *Result {
	return &Result{
		UserID:     userID,
		Child:      child,
		Evaluation: *eval,
	}
}

// ResultSummary is the list view of a result
type ResultSummary struct {
	ID          string          `json:"id"`
	ChildName   string          `json:"childName"`
	VariantID   string          `json:"variantId"`
	AgeGroupID  string          `json:"ageGroupId"`
	TotalScore  int             `json:"totalScore"`
	RiskLevel   qchat.RiskLevel `json:"riskLevel"`
	CompletedAt time.Time       `json:"completedAt"`
}

// Summary returns the list view of r
func (r *Result) Summary() ResultSummary {
	return ResultSummary{
		ID:          r.ID,
		ChildName:   r.Child.Name,
		VariantID:   r.VariantID,
		AgeGroupID:  r.AgeGroupID,
		TotalScore:  r.TotalScore,
		RiskLevel:   r.RiskLevel,
		CompletedAt: r.CompletedAt,
	}
}

// EvaluationRequest scores answers and stores the result
type EvaluationRequest struct {
	qchat.ScoreRequest
	Child qchat.Child `json:"child"`
}
