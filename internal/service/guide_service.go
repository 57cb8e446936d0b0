package service

import "menteazul/internal/guides"

// GuideService serves the parent guidance catalogue
type GuideService struct {
	catalog *guides.Catalog
}

// NewGuideService creates a new guide service
func NewGuideService(catalog *guides.Catalog) *GuideService {
	return &GuideService{catalog: catalog}
}

// Catalog returns the full guidance content
func (s *GuideService) Catalog() *guides.Catalog {
	return s.catalog
}

// Resources returns the external resource categories
func (s *GuideService) Resources() []guides.ResourceCategory {
	return s.catalog.Resources
}
