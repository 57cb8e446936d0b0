package qchat

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"

	"gopkg.in/yaml.v3"
)

const (
	VariantParentReport = "qchat-parent-report"
	VariantAgeAdapted   = "qchat-age-adapted"

	// DefaultVariant is used when a request does not name one
	DefaultVariant = VariantAgeAdapted
)

//go:embed data/*.yaml
var embedded embed.FS

// Dataset is the read-only questionnaire reference data.
// Built once at startup and shared by pointer; nothing mutates it afterwards.
type Dataset struct {
	variants map[string]*Variant
	order    []string
}

// LoadDataset parses and validates the questionnaires shipped with the binary
func LoadDataset() (*Dataset, error) {
	return LoadDatasetFS(embedded, "data")
}

// LoadDatasetFS parses every *.yaml file under dir in fsys
func LoadDatasetFS(fsys fs.FS, dir string) (*Dataset, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read dataset dir: %w", err)
	}

	var variants []*Variant
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".yaml" {
			continue
		}
		data, err := fs.ReadFile(fsys, path.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", e.Name(), err)
		}
		v, err := ParseVariant(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.Name(), err)
		}
		variants = append(variants, v)
	}
	return NewDataset(variants...)
}

// ParseVariant decodes a single questionnaire document and validates it
func ParseVariant(data []byte) (*Variant, error) {
	var v Variant
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDataset, err)
	}
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return &v, nil
}

// NewDataset indexes already validated variants
func NewDataset(variants ...*Variant) (*Dataset, error) {
	if len(variants) == 0 {
		return nil, fmt.Errorf("%w: no variants", ErrInvalidDataset)
	}
	ds := &Dataset{variants: make(map[string]*Variant, len(variants))}
	for _, v := range variants {
		if _, dup := ds.variants[v.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate variant %q", ErrInvalidDataset, v.ID)
		}
		for i := range v.AgeGroups {
			v.AgeGroups[i].buildIndex()
		}
		ds.variants[v.ID] = v
		ds.order = append(ds.order, v.ID)
	}
	sort.Strings(ds.order)
	return ds, nil
}

// Variant returns the named variant; an empty id selects DefaultVariant
func (d *Dataset) Variant(id string) (*Variant, error) {
	if id == "" {
		id = DefaultVariant
	}
	v, ok := d.variants[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidVariant, id)
	}
	return v, nil
}

// AgeGroup resolves a group within a variant
func (d *Dataset) AgeGroup(variantID, groupID string) (*Variant, *AgeGroup, error) {
	v, err := d.Variant(variantID)
	if err != nil {
		return nil, nil, err
	}
	g, ok := v.AgeGroup(groupID)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %q in %s", ErrInvalidAgeGroup, groupID, v.ID)
	}
	return v, g, nil
}

// Variants returns all variants ordered by id
func (d *Dataset) Variants() []*Variant {
	out := make([]*Variant, 0, len(d.order))
	for _, id := range d.order {
		out = append(out, d.variants[id])
	}
	return out
}

func (g *AgeGroup) buildIndex() {
	g.index = make(map[int]int, len(g.Questions))
	for i, q := range g.Questions {
		g.index[q.ID] = i
	}
}

// Validate checks structural invariants of the variant
func (v *Variant) Validate() error {
	if v.ID == "" {
		return fmt.Errorf("%w: variant id is empty", ErrInvalidDataset)
	}
	if len(v.AgeGroups) == 0 {
		return fmt.Errorf("%w: %s has no age groups", ErrInvalidDataset, v.ID)
	}
	if len(v.Recommendations.Low) == 0 || len(v.Recommendations.Moderate) == 0 || len(v.Recommendations.High) == 0 {
		return fmt.Errorf("%w: %s is missing recommendations", ErrInvalidDataset, v.ID)
	}
	for c := range v.Categories {
		if !c.Valid() {
			return fmt.Errorf("%w: %s: unknown category %q in category table", ErrInvalidDataset, v.ID, c)
		}
	}
	groups := make(map[string]bool)
	for i := range v.AgeGroups {
		g := &v.AgeGroups[i]
		if groups[g.ID] {
			return fmt.Errorf("%w: %s: duplicate age group %q", ErrInvalidDataset, v.ID, g.ID)
		}
		groups[g.ID] = true
		if err := g.Validate(); err != nil {
			return fmt.Errorf("%s: %w", v.ID, err)
		}
	}
	return nil
}

// Validate checks questions and that thresholds partition the score domain
func (g *AgeGroup) Validate() error {
	if g.ID == "" {
		return fmt.Errorf("%w: age group id is empty", ErrInvalidDataset)
	}
	if len(g.Questions) == 0 {
		return fmt.Errorf("%w: %s has no questions", ErrInvalidDataset, g.ID)
	}

	ids := make(map[int]bool, len(g.Questions))
	for _, q := range g.Questions {
		if ids[q.ID] {
			return fmt.Errorf("%w: %s: duplicate question %d", ErrInvalidDataset, g.ID, q.ID)
		}
		ids[q.ID] = true
		if !q.Category.Valid() {
			return fmt.Errorf("%w: %s: question %d has unknown category %q", ErrInvalidDataset, g.ID, q.ID, q.Category)
		}
		if len(q.Options) < 2 || len(q.Options) > 5 {
			return fmt.Errorf("%w: %s: question %d has %d options", ErrInvalidDataset, g.ID, q.ID, len(q.Options))
		}
		for _, o := range q.Options {
			if o.Weight < 0 {
				return fmt.Errorf("%w: %s: question %d has negative weight", ErrInvalidDataset, g.ID, q.ID)
			}
		}
	}

	t := g.Thresholds
	switch {
	case t.Low.Min != 0:
		return fmt.Errorf("%w: %s: low range must start at 0", ErrInvalidDataset, g.ID)
	case t.Low.Min > t.Low.Max || t.Moderate.Min > t.Moderate.Max || t.High.Min > t.High.Max:
		return fmt.Errorf("%w: %s: empty threshold range", ErrInvalidDataset, g.ID)
	case t.Moderate.Min != t.Low.Max+1 || t.High.Min != t.Moderate.Max+1:
		return fmt.Errorf("%w: %s: threshold ranges are not contiguous", ErrInvalidDataset, g.ID)
	case t.High.Max < g.MaxScore():
		return fmt.Errorf("%w: %s: high range ends at %d below attainable %d", ErrInvalidDataset, g.ID, t.High.Max, g.MaxScore())
	}
	return nil
}
