package model

import "menteazul/internal/qchat"

// VariantSummary lists a questionnaire without its questions
type VariantSummary struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	Version     string            `json:"version"`
	Language    string            `json:"language"`
	AgeGroups   []AgeGroupSummary `json:"ageGroups"`
}

// AgeGroupSummary describes an age group without its questions
type AgeGroupSummary struct {
	ID             string               `json:"id"`
	Name           string               `json:"name"`
	AgeRange       string               `json:"ageRange"`
	MinAgeMonths   int                  `json:"minAgeMonths"`
	MaxAgeMonths   int                  `json:"maxAgeMonths"`
	Description    string               `json:"description,omitempty"`
	CompletionTime string               `json:"completionTime,omitempty"`
	QuestionCount  int                  `json:"questionCount"`
	MaxScore       int                  `json:"maxScore"`
	Thresholds     qchat.RiskThresholds `json:"thresholds"`
}

// NewVariantSummary builds the list view of v
func NewVariantSummary(v *qchat.Variant) VariantSummary {
	s := VariantSummary{
		ID:          v.ID,
		Title:       v.Title,
		Description: v.Description,
		Version:     v.Version,
		Language:    v.Language,
		AgeGroups:   make([]AgeGroupSummary, 0, len(v.AgeGroups)),
	}
	for i := range v.AgeGroups {
		g := &v.AgeGroups[i]
		s.AgeGroups = append(s.AgeGroups, AgeGroupSummary{
			ID:             g.ID,
			Name:           g.Name,
			AgeRange:       g.AgeRange,
			MinAgeMonths:   g.MinAgeMonths,
			MaxAgeMonths:   g.MaxAgeMonths,
			Description:    g.Description,
			CompletionTime: g.CompletionTime,
			QuestionCount:  len(g.Questions),
			MaxScore:       g.MaxScore(),
			Thresholds:     g.Thresholds,
		})
	}
	return s
}
