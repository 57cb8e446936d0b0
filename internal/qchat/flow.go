package qchat

import (
	"fmt"
	"strings"
)

// FlowStatus is the lifecycle stage of a questionnaire run
type FlowStatus string

const (
	FlowNotStarted FlowStatus = "not_started"
	FlowInProgress FlowStatus = "in_progress"
	FlowCompleted  FlowStatus = "completed"
)

// FlowState is the serializable snapshot of a Flow
type FlowState struct {
	Status     FlowStatus  `json:"status"`
	VariantID  string      `json:"variantId,omitempty"`
	AgeGroupID string      `json:"ageGroupId,omitempty"`
	Child      Child       `json:"child"`
	Index      int         `json:"currentIndex"`
	Selections map[int]int `json:"selections,omitempty"` // question id -> option index
	Result     *Evaluation `json:"result,omitempty"`
}

// Flow walks one respondent through an age group question by question.
// The engine is invoked exactly once, when the last question is answered.
type Flow struct {
	engine  *Engine
	variant *Variant
	group   *AgeGroup
	state   FlowState
}

// NewFlow returns a flow in the not started state
func NewFlow(engine *Engine) *Flow {
	return &Flow{engine: engine, state: FlowState{Status: FlowNotStarted}}
}

// RestoreFlow rebuilds a flow from a stored snapshot
func RestoreFlow(engine *Engine, state FlowState) (*Flow, error) {
	f := &Flow{engine: engine, state: state}
	if state.Status == FlowNotStarted || state.Status == "" {
		f.state = FlowState{Status: FlowNotStarted}
		return f, nil
	}
	v, g, err := engine.Dataset().AgeGroup(state.VariantID, state.AgeGroupID)
	if err != nil {
		return nil, err
	}
	if state.Index < 0 || state.Index > len(g.Questions) {
		return nil, fmt.Errorf("%w: index %d", ErrInvalidTransition, state.Index)
	}
	if f.state.Selections == nil {
		f.state.Selections = make(map[int]int)
	}
	f.variant, f.group = v, g
	return f, nil
}

// Start selects the age group and child; only valid before the run begins
func (f *Flow) Start(variantID, groupID string, child Child) error {
	if f.state.Status != FlowNotStarted {
		return ErrInvalidTransition
	}
	child.Name = strings.TrimSpace(child.Name)
	if child.Name == "" || child.AgeMonths <= 0 {
		return ErrInvalidChildInfo
	}
	v, g, err := f.engine.Dataset().AgeGroup(variantID, groupID)
	if err != nil {
		return err
	}
	f.variant, f.group = v, g
	f.state = FlowState{
		Status:     FlowInProgress,
		VariantID:  v.ID,
		AgeGroupID: g.ID,
		Child:      child,
		Selections: make(map[int]int),
	}
	return nil
}

// Current returns the question awaiting an answer
func (f *Flow) Current() (*Question, bool) {
	if f.state.Status != FlowInProgress || f.state.Index >= len(f.group.Questions) {
		return nil, false
	}
	return &f.group.Questions[f.state.Index], true
}

// Selected returns the option index previously chosen for question id
func (f *Flow) Selected(id int) (int, bool) {
	idx, ok := f.state.Selections[id]
	return idx, ok
}

// Answer records the chosen option of the current question and advances.
// The evaluation is returned once the last question has been answered.
func (f *Flow) Answer(optionIndex int) (*Evaluation, error) {
	q, ok := f.Current()
	if !ok {
		return nil, ErrInvalidTransition
	}
	if optionIndex < 0 || optionIndex >= len(q.Options) {
		return nil, fmt.Errorf("%w: %d for question %d", ErrInvalidOption, optionIndex, q.ID)
	}
	f.state.Selections[q.ID] = optionIndex
	f.state.Index++
	if f.state.Index < len(f.group.Questions) {
		return nil, nil
	}

	eval, err := f.engine.Evaluate(ScoreRequest{
		VariantID:  f.variant.ID,
		AgeGroupID: f.group.ID,
		Answers:    f.Answers(),
	})
	if err != nil {
		f.state.Index--
		return nil, err
	}
	f.state.Status = FlowCompleted
	f.state.Result = eval
	return eval, nil
}

// Previous steps back one question, keeping the stored answer
func (f *Flow) Previous() error {
	if f.state.Status != FlowInProgress || f.state.Index == 0 {
		return ErrInvalidTransition
	}
	f.state.Index--
	return nil
}

// Reset discards the run and returns to the not started state
func (f *Flow) Reset() {
	f.variant, f.group = nil, nil
	f.state = FlowState{Status: FlowNotStarted}
}

// Answers resolves the selected option indexes into weights
func (f *Flow) Answers() AnswerSet {
	out := make(AnswerSet, len(f.state.Selections))
	if f.group == nil {
		return out
	}
	for id, idx := range f.state.Selections {
		q, ok := f.group.Question(id)
		if !ok || idx < 0 || idx >= len(q.Options) {
			continue
		}
		out[id] = q.Options[idx].Weight
	}
	return out
}

// Status returns the lifecycle stage
func (f *Flow) Status() FlowStatus {
	return f.state.Status
}

// Group returns the selected age group, nil before Start
func (f *Flow) Group() *AgeGroup {
	return f.group
}

// Result returns the evaluation of a completed run
func (f *Flow) Result() *Evaluation {
	return f.state.Result
}

// State returns a snapshot suitable for storage
func (f *Flow) State() FlowState {
	s := f.state
	if f.state.Selections != nil {
		s.Selections = make(map[int]int, len(f.state.Selections))
		for k, v := range f.state.Selections {
			s.Selections[k] = v
		}
	}
	return s
}
