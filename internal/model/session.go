package model

import (
	"time"

	"menteazul/internal/qchat"
)

// Session is an in-progress questionnaire run kept in the cache
type Session struct {
	ID        string          `json:"id"`
	UserID    string          `json:"userId"`
	Flow      qchat.FlowState `json:"flow"`
	ResultID  string          `json:"resultId,omitempty"`
	StartedAt time.Time       `json:"startedAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// StartSessionRequest is the request body for POST /v1/sessions
type StartSessionRequest struct {
	VariantID  string      `json:"variantId"`
	AgeGroupID string      `json:"ageGroupId"`
	Child      qchat.Child `json:"child"`
}

// AnswerRequest selects an option of the current question
type AnswerRequest struct {
	OptionIndex int `json:"optionIndex"`
}

// SessionView is what clients see of a session
type SessionView struct {
	ID             string            `json:"id"`
	Status         qchat.FlowStatus  `json:"status"`
	VariantID      string            `json:"variantId"`
	AgeGroupID     string            `json:"ageGroupId"`
	Child          qchat.Child       `json:"child"`
	CurrentIndex   int               `json:"currentIndex"`
	TotalQuestions int               `json:"totalQuestions"`
	Question       *qchat.Question   `json:"question,omitempty"`
	SelectedOption *int              `json:"selectedOption,omitempty"`
	ResultID       string            `json:"resultId,omitempty"`
	Result         *qchat.Evaluation `json:"result,omitempty"`
}

// SessionProgress is pushed over the websocket after each answer
type SessionProgress struct {
	SessionID    string           `json:"sessionId"`
	Status       qchat.FlowStatus `json:"status"`
	CurrentIndex int              `json:"currentIndex"`
	Total        int              `json:"total"`
}
