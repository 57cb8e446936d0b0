package qchat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testChild = Child{Name: "Lucía", AgeMonths: 20}

func indexOfWeight(q *Question, w int) int {
	for i, o := range q.Options {
		if o.Weight == w {
			return i
		}
	}
	return -1
}

func TestFlow_StartValidation(t *testing.T) {
	e := newTestEngine(t)

	tests := []struct {
		name    string
		variant string
		group   string
		child   Child
		wantErr error
	}{
		{"missing name", VariantAgeAdapted, "toddlers", Child{Name: "  ", AgeMonths: 20}, ErrInvalidChildInfo},
		{"missing age", VariantAgeAdapted, "toddlers", Child{Name: "Ana"}, ErrInvalidChildInfo},
		{"unknown group", VariantAgeAdapted, "teens", testChild, ErrInvalidAgeGroup},
		{"unknown variant", "nope", "toddlers", testChild, ErrInvalidVariant},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFlow(e)
			assert.ErrorIs(t, f.Start(tt.variant, tt.group, tt.child), tt.wantErr)
			assert.Equal(t, FlowNotStarted, f.Status())
		})
	}
}

func TestFlow_CompletesWithSingleEvaluation(t *testing.T) {
	e := newTestEngine(t)
	f := NewFlow(e)
	require.NoError(t, f.Start(VariantParentReport, "toddlers", testChild))
	assert.Equal(t, FlowInProgress, f.Status())

	g := f.Group()
	for i := range g.Questions {
		q, ok := f.Current()
		require.True(t, ok)
		assert.Equal(t, g.Questions[i].ID, q.ID)

		eval, err := f.Answer(indexOfWeight(q, q.MaxWeight()))
		require.NoError(t, err)
		if i < len(g.Questions)-1 {
			assert.Nil(t, eval)
		} else {
			require.NotNil(t, eval)
			assert.Equal(t, 96, eval.TotalScore)
			assert.Equal(t, RiskHigh, eval.RiskLevel)
		}
	}

	assert.Equal(t, FlowCompleted, f.Status())
	assert.NotNil(t, f.Result())

	_, ok := f.Current()
	assert.False(t, ok)
	_, err := f.Answer(0)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.ErrorIs(t, f.Previous(), ErrInvalidTransition)
}

func TestFlow_PreviousKeepsAnswer(t *testing.T) {
	e := newTestEngine(t)
	f := NewFlow(e)
	require.NoError(t, f.Start(VariantAgeAdapted, "toddlers", testChild))

	assert.ErrorIs(t, f.Previous(), ErrInvalidTransition)

	_, err := f.Answer(4)
	require.NoError(t, err)
	_, err = f.Answer(0)
	require.NoError(t, err)

	require.NoError(t, f.Previous())
	q, ok := f.Current()
	require.True(t, ok)
	assert.Equal(t, 2, q.ID)

	idx, ok := f.Selected(2)
	assert.True(t, ok)
	assert.Equal(t, 0, idx)
	assert.Len(t, f.Answers(), 2)

	// answering again overwrites instead of appending
	_, err = f.Answer(3)
	require.NoError(t, err)
	idx, _ = f.Selected(2)
	assert.Equal(t, 3, idx)
	assert.Len(t, f.Answers(), 2)
}

func TestFlow_InvalidOption(t *testing.T) {
	e := newTestEngine(t)
	f := NewFlow(e)
	require.NoError(t, f.Start(VariantAgeAdapted, "toddlers", testChild))

	_, err := f.Answer(5)
	assert.ErrorIs(t, err, ErrInvalidOption)
	_, err = f.Answer(-1)
	assert.ErrorIs(t, err, ErrInvalidOption)

	q, _ := f.Current()
	assert.Equal(t, 1, q.ID)
}

func TestFlow_AnswerBeforeStart(t *testing.T) {
	f := NewFlow(newTestEngine(t))

	_, err := f.Answer(0)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.ErrorIs(t, f.Previous(), ErrInvalidTransition)
}

func TestFlow_ResetAndRestart(t *testing.T) {
	f := NewFlow(newTestEngine(t))
	require.NoError(t, f.Start(VariantAgeAdapted, "children", testChild))
	_, err := f.Answer(1)
	require.NoError(t, err)

	assert.ErrorIs(t, f.Start(VariantAgeAdapted, "children", testChild), ErrInvalidTransition)

	f.Reset()
	assert.Equal(t, FlowNotStarted, f.Status())
	assert.Empty(t, f.Answers())
	require.NoError(t, f.Start(VariantAgeAdapted, "schoolage", testChild))
	assert.Equal(t, "schoolage", f.Group().ID)
}

func TestRestoreFlow(t *testing.T) {
	e := newTestEngine(t)
	f := NewFlow(e)
	require.NoError(t, f.Start(VariantAgeAdapted, "toddlers", testChild))
	for i := 0; i < 3; i++ {
		_, err := f.Answer(0)
		require.NoError(t, err)
	}

	snapshot := f.State()
	restored, err := RestoreFlow(e, snapshot)
	require.NoError(t, err)

	assert.Equal(t, f.Answers(), restored.Answers())
	q, ok := restored.Current()
	require.True(t, ok)
	assert.Equal(t, 4, q.ID)

	// snapshot is detached from the live flow
	_, err = f.Answer(0)
	require.NoError(t, err)
	assert.Len(t, snapshot.Selections, 3)

	_, err = RestoreFlow(e, FlowState{Status: FlowInProgress, VariantID: VariantAgeAdapted, AgeGroupID: "nope"})
	assert.ErrorIs(t, err, ErrInvalidAgeGroup)

	empty, err := RestoreFlow(e, FlowState{})
	require.NoError(t, err)
	assert.Equal(t, FlowNotStarted, empty.Status())
}
