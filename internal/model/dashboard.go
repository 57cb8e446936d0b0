package model

import (
	"time"

	"menteazul/internal/qchat"
)

// Dashboard summarises a user's screening history
type Dashboard struct {
	UserID       string                  `json:"userId"`
	TotalResults int                     `json:"totalResults"`
	ByRiskLevel  map[qchat.RiskLevel]int `json:"byRiskLevel"`
	Latest       *ResultSummary          `json:"latest,omitempty"`
	Children     []string                `json:"children"`
	GeneratedAt  time.Time               `json:"generatedAt"`
}
