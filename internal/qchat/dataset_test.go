package qchat

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalVariant = `
id: test-variant
title: Test
version: '1'
language: es
recommendations:
  low: [a]
  moderate: [a, b]
  high: [c]
age_groups:
- id: tiny
  name: Tiny
  min_age_months: 1
  max_age_months: 2
  thresholds:
    low: {min: 0, max: 0}
    moderate: {min: 1, max: 1}
    high: {min: 2, max: 2}
  questions:
  - id: 1
    text: one
    category: social
    options:
    - {weight: 0, label: no}
    - {weight: 1, label: yes}
  - id: 2
    text: two
    category: play
    options:
    - {weight: 1, label: no}
    - {weight: 0, label: yes}
`

func TestLoadDataset_Embedded(t *testing.T) {
	ds := loadTestDataset(t)

	variants := ds.Variants()
	require.Len(t, variants, 2)
	assert.Equal(t, VariantAgeAdapted, variants[0].ID)
	assert.Equal(t, VariantParentReport, variants[1].ID)

	v, err := ds.Variant("")
	require.NoError(t, err)
	assert.Equal(t, DefaultVariant, v.ID)

	tests := []struct {
		variant   string
		group     string
		questions int
	}{
		{VariantParentReport, "toddlers", 25},
		{VariantAgeAdapted, "toddlers", 25},
		{VariantAgeAdapted, "children", 30},
		{VariantAgeAdapted, "schoolage", 35},
	}
	for _, tt := range tests {
		_, g := group(t, ds, tt.variant, tt.group)
		assert.Len(t, g.Questions, tt.questions, "%s/%s", tt.variant, tt.group)
	}
}

func TestLoadDataset_VariantsAreIndependent(t *testing.T) {
	ds := loadTestDataset(t)
	_, parent := group(t, ds, VariantParentReport, "toddlers")
	_, adapted := group(t, ds, VariantAgeAdapted, "toddlers")

	assert.NotEqual(t, parent.Thresholds, adapted.Thresholds)
	assert.NotEqual(t, parent.MaxScore(), adapted.MaxScore())
}

func TestDataset_UnknownIdentifiers(t *testing.T) {
	ds := loadTestDataset(t)

	_, _, err := ds.AgeGroup(VariantAgeAdapted, "teens")
	assert.ErrorIs(t, err, ErrInvalidAgeGroup)

	_, _, err = ds.AgeGroup(VariantParentReport, "children")
	assert.ErrorIs(t, err, ErrInvalidAgeGroup)

	_, err = ds.Variant("qchat-unknown")
	assert.ErrorIs(t, err, ErrInvalidVariant)
}

func TestLoadDatasetFS(t *testing.T) {
	fsys := fstest.MapFS{
		"q/test.yaml":  {Data: []byte(minimalVariant)},
		"q/README.txt": {Data: []byte("ignored")},
	}
	ds, err := LoadDatasetFS(fsys, "q")
	require.NoError(t, err)

	_, g, err := ds.AgeGroup("test-variant", "tiny")
	require.NoError(t, err)
	assert.Equal(t, 2, g.MaxScore())
	assert.Equal(t, []Category{CategorySocial, CategoryPlay}, g.CategoriesPresent())
}

func TestVariant_CategoryName(t *testing.T) {
	ds := loadTestDataset(t)
	for _, v := range ds.Variants() {
		for _, c := range Categories {
			assert.NotEqual(t, string(c), v.CategoryName(c), "%s lacks a name for %s", v.ID, c)
		}
		assert.Equal(t, "Habilidades Sociales", v.CategoryName(CategorySocial))
	}

	bare, err := ParseVariant([]byte(minimalVariant))
	require.NoError(t, err)
	assert.Equal(t, "social", bare.CategoryName(CategorySocial))
}

func TestParseVariant_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		replace [2]string
	}{
		{"gap between ranges", [2]string{"moderate: {min: 1, max: 1}", "moderate: {min: 2, max: 2}"}},
		{"low not at zero", [2]string{"low: {min: 0, max: 0}", "low: {min: 1, max: 0}"}},
		{"empty high range", [2]string{"high: {min: 2, max: 2}", "high: {min: 2, max: 1}"}},
		{"high below attainable", [2]string{"{weight: 1, label: yes}", "{weight: 3, label: yes}"}},
		{"unknown category", [2]string{"category: play", "category: cooking"}},
		{"unknown category in table", [2]string{"language: es", "language: es\ncategories:\n  cooking: {name: Cocina}"}},
		{"duplicate question", [2]string{"id: 2", "id: 1"}},
		{"negative weight", [2]string{"{weight: 1, label: no}", "{weight: -1, label: no}"}},
		{"missing recommendations", [2]string{"high: [c]", "high: []"}},
		{"malformed yaml", [2]string{"age_groups:", "age_groups: ["}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := strings.Replace(minimalVariant, tt.replace[0], tt.replace[1], 1)
			require.NotEqual(t, minimalVariant, doc)
			_, err := ParseVariant([]byte(doc))
			assert.ErrorIs(t, err, ErrInvalidDataset)
		})
	}
}

func TestNewDataset_RejectsDuplicates(t *testing.T) {
	a, err := ParseVariant([]byte(minimalVariant))
	require.NoError(t, err)
	b, err := ParseVariant([]byte(minimalVariant))
	require.NoError(t, err)

	_, err = NewDataset(a, b)
	assert.ErrorIs(t, err, ErrInvalidDataset)

	_, err = NewDataset()
	assert.ErrorIs(t, err, ErrInvalidDataset)
}
