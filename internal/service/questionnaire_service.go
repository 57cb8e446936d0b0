package service

import (
	"menteazul/internal/model"
	"menteazul/internal/qchat"
)

// QuestionnaireService exposes the read-only questionnaire dataset
type QuestionnaireService struct {
	ds *qchat.Dataset
}

// NewQuestionnaireService creates a new questionnaire service
func NewQuestionnaireService(ds *qchat.Dataset) *QuestionnaireService {
	return &QuestionnaireService{ds: ds}
}

// ListVariants returns every questionnaire without its questions
func (s *QuestionnaireService) ListVariants() []model.VariantSummary {
	variants := s.ds.Variants()
	out := make([]model.VariantSummary, 0, len(variants))
	for _, v := range variants {
		out = append(out, model.NewVariantSummary(v))
	}
	return out
}

// GetAgeGroup returns the questions and thresholds of one age group
func (s *QuestionnaireService) GetAgeGroup(variantID, groupID string) (*qchat.AgeGroup, error) {
	_, g, err := s.ds.AgeGroup(variantID, groupID)
	return g, err
}
