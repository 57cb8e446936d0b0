package qchat

import "time"

// Engine evaluates score requests against a dataset
type Engine struct {
	ds     *Dataset
	strict bool
	now    func() time.Time
}

// EngineOption configures an Engine
type EngineOption func(*Engine)

// WithStrictAnswers makes Evaluate reject unknown question ids and off-menu weights
func WithStrictAnswers(strict bool) EngineOption {
	return func(e *Engine) { e.strict = strict }
}

// WithClock overrides the completion timestamp source
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) { e.now = now }
}

// NewEngine creates an engine over ds
func NewEngine(ds *Dataset, opts ...EngineOption) *Engine {
	e := &Engine{ds: ds, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Dataset returns the reference data the engine scores against
func (e *Engine) Dataset() *Dataset {
	return e.ds
}

// Strict reports whether answer validation is enabled
func (e *Engine) Strict() bool {
	return e.strict
}

// Evaluate scores req and classifies the total
func (e *Engine) Evaluate(req ScoreRequest) (*Evaluation, error) {
	v, g, err := e.ds.AgeGroup(req.VariantID, req.AgeGroupID)
	if err != nil {
		return nil, err
	}
	if err := CheckNonNegative(req.Answers); err != nil {
		return nil, err
	}
	if e.strict {
		if err := ValidateAnswers(g, req.Answers); err != nil {
			return nil, err
		}
	}

	answers := req.Answers.Clone()
	total := ComputeScore(g, answers)
	level := ClassifyRisk(g, total)

	answered := 0
	for id := range answers {
		if _, ok := g.Question(id); ok {
			answered++
		}
	}

	return &Evaluation{
		VariantID:         v.ID,
		AgeGroupID:        g.ID,
		Answers:           answers,
		TotalScore:        total,
		MaxScore:          g.MaxScore(),
		RiskLevel:         level,
		CategoryBreakdown: BreakdownByCategory(g, answers),
		Recommendations:   v.GenerateRecommendations(level),
		AnsweredCount:     answered,
		QuestionCount:     len(g.Questions),
		CompletedAt:       e.now().UTC(),
	}, nil
}
