package qchat

import "time"

// Category is the developmental domain a question belongs to
type Category string

const (
	CategorySocial        Category = "social"
	CategoryCommunication Category = "communication"
	CategoryPlay          Category = "play"
	CategoryBehavioral    Category = "behavioral"
	CategorySensory       Category = "sensory"
	CategoryMotor         Category = "motor"
)

// Categories lists every category in report order
var Categories = []Category{
	CategorySocial,
	CategoryCommunication,
	CategoryPlay,
	CategoryBehavioral,
	CategorySensory,
	CategoryMotor,
}

// Valid reports whether c is one of the known categories
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// CategoryInfo is the display metadata of a category
type CategoryInfo struct {
	Name  string `json:"name" yaml:"name"`
	Icon  string `json:"icon,omitempty" yaml:"icon"`
	Color string `json:"color,omitempty" yaml:"color"`
}

// RiskLevel is the ordinal classification of a total score
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
)

// Rank orders risk levels: low < moderate < high
func (r RiskLevel) Rank() int {
	switch r {
	case RiskLow:
		return 0
	case RiskModerate:
		return 1
	case RiskHigh:
		return 2
	default:
		return -1
	}
}

// Option is one selectable answer of a question
type Option struct {
	Weight      int    `json:"weight" yaml:"weight"`
	Label       string `json:"label" yaml:"label"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Question is a single questionnaire item
type Question struct {
	ID          int      `json:"id" yaml:"id"`
	Text        string   `json:"text" yaml:"text"`
	Category    Category `json:"category" yaml:"category"`
	Subcategory string   `json:"subcategory,omitempty" yaml:"subcategory,omitempty"`
	Options     []Option `json:"options" yaml:"options"`
}

// MaxWeight returns the highest weight among the question's options
func (q *Question) MaxWeight() int {
	max := 0
	for _, o := range q.Options {
		if o.Weight > max {
			max = o.Weight
		}
	}
	return max
}

// MinWeight returns the lowest weight among the question's options
func (q *Question) MinWeight() int {
	if len(q.Options) == 0 {
		return 0
	}
	min := q.Options[0].Weight
	for _, o := range q.Options[1:] {
		if o.Weight < min {
			min = o.Weight
		}
	}
	return min
}

// HasWeight reports whether any option of the question carries weight w
func (q *Question) HasWeight(w int) bool {
	for _, o := range q.Options {
		if o.Weight == w {
			return true
		}
	}
	return false
}

// ScoreRange is an inclusive [Min, Max] interval of total scores
type ScoreRange struct {
	Min int `json:"min" yaml:"min"`
	Max int `json:"max" yaml:"max"`
}

// Contains reports whether score lies within the range, bounds included
func (r ScoreRange) Contains(score int) bool {
	return score >= r.Min && score <= r.Max
}

// RiskThresholds partitions the score domain of an age group
type RiskThresholds struct {
	Low      ScoreRange `json:"lowRisk" yaml:"low"`
	Moderate ScoreRange `json:"moderateRisk" yaml:"moderate"`
	High     ScoreRange `json:"highRisk" yaml:"high"`
}

// AgeGroup is a questionnaire scoped to a child age range
type AgeGroup struct {
	ID             string         `json:"id" yaml:"id"`
	Name           string         `json:"name" yaml:"name"`
	AgeRange       string         `json:"ageRange" yaml:"age_range"`
	MinAgeMonths   int            `json:"minAgeMonths" yaml:"min_age_months"`
	MaxAgeMonths   int            `json:"maxAgeMonths" yaml:"max_age_months"`
	Description    string         `json:"description,omitempty" yaml:"description"`
	CompletionTime string         `json:"completionTime,omitempty" yaml:"completion_time"`
	Thresholds     RiskThresholds `json:"thresholds" yaml:"thresholds"`
	Questions      []Question     `json:"questions" yaml:"questions"`

	index map[int]int
}

// Question returns the question with the given id
func (g *AgeGroup) Question(id int) (*Question, bool) {
	if g.index != nil {
		i, ok := g.index[id]
		if !ok {
			return nil, false
		}
		return &g.Questions[i], true
	}
	for i := range g.Questions {
		if g.Questions[i].ID == id {
			return &g.Questions[i], true
		}
	}
	return nil, false
}

// MaxScore is the highest attainable total for the group
func (g *AgeGroup) MaxScore() int {
	total := 0
	for i := range g.Questions {
		total += g.Questions[i].MaxWeight()
	}
	return total
}

// CategoriesPresent returns the categories used by the group's questions, in report order
func (g *AgeGroup) CategoriesPresent() []Category {
	seen := make(map[Category]bool)
	for _, q := range g.Questions {
		seen[q.Category] = true
	}
	var out []Category
	for _, c := range Categories {
		if seen[c] {
			out = append(out, c)
		}
	}
	return out
}

// Recommendations holds the static guidance table of a variant
type Recommendations struct {
	Low      []string `json:"low" yaml:"low"`
	Moderate []string `json:"moderate" yaml:"moderate"`
	High     []string `json:"high" yaml:"high"`
}

// Variant is a complete questionnaire configuration.
// Variants are never merged: each keeps its own weights and thresholds.
type Variant struct {
	ID              string                    `json:"id" yaml:"id"`
	Title           string                    `json:"title" yaml:"title"`
	Description     string                    `json:"description,omitempty" yaml:"description"`
	Version         string                    `json:"version" yaml:"version"`
	Language        string                    `json:"language" yaml:"language"`
	Categories      map[Category]CategoryInfo `json:"categories,omitempty" yaml:"categories"`
	Recommendations Recommendations           `json:"-" yaml:"recommendations"`
	AgeGroups       []AgeGroup                `json:"ageGroups" yaml:"age_groups"`
}

// CategoryName returns the display name of c, or its key when the variant has none
func (v *Variant) CategoryName(c Category) string {
	if info, ok := v.Categories[c]; ok && info.Name != "" {
		return info.Name
	}
	return string(c)
}

// AgeGroup returns the group with the given id
func (v *Variant) AgeGroup(id string) (*AgeGroup, bool) {
	for i := range v.AgeGroups {
		if v.AgeGroups[i].ID == id {
			return &v.AgeGroups[i], true
		}
	}
	return nil, false
}

// AnswerSet maps question id to the selected option weight
type AnswerSet map[int]int

// Clone returns an independent copy
func (a AnswerSet) Clone() AnswerSet {
	out := make(AnswerSet, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// CategoryBreakdown maps category to the summed weight of its answered questions
type CategoryBreakdown map[Category]int

// Total sums all category scores
func (b CategoryBreakdown) Total() int {
	total := 0
	for _, v := range b {
		total += v
	}
	return total
}

// Child identifies the screened child. Opaque to scoring.
type Child struct {
	Name      string `json:"name" bson:"name"`
	AgeMonths int    `json:"ageMonths" bson:"ageMonths"`
}

// ScoreRequest is the input contract of the engine
type ScoreRequest struct {
	VariantID  string    `json:"variantId,omitempty"`
	AgeGroupID string    `json:"ageGroupId"`
	Answers    AnswerSet `json:"answers"`
}

// Evaluation is the computed outcome of a ScoreRequest
type Evaluation struct {
	VariantID         string            `json:"variantId" bson:"variantId"`
	AgeGroupID        string            `json:"ageGroupId" bson:"ageGroupId"`
	Answers           AnswerSet         `json:"answers" bson:"answers"`
	TotalScore        int               `json:"totalScore" bson:"totalScore"`
	MaxScore          int               `json:"maxScore" bson:"maxScore"`
	RiskLevel         RiskLevel         `json:"riskLevel" bson:"riskLevel"`
	CategoryBreakdown CategoryBreakdown `json:"categoryBreakdown" bson:"categoryBreakdown"`
	Recommendations   []string          `json:"recommendations" bson:"recommendations"`
	AnsweredCount     int               `json:"answeredCount" bson:"answeredCount"`
	QuestionCount     int               `json:"questionCount" bson:"questionCount"`
	CompletedAt       time.Time         `json:"completedAt" bson:"completedAt"`
}

// Complete reports whether every question of the group was answered
func (e *Evaluation) Complete() bool {
	return e.AnsweredCount == e.QuestionCount
}
