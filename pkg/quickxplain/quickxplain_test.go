package quickxplain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/manleviet/cdiag/pkg/checker"
	"github.com/manleviet/cdiag/pkg/cnf"
	"github.com/manleviet/cdiag/pkg/solver"
)

func newLabeler(t *testing.T, kb cnf.KB, all cnf.LiteralSet) *Labeler {
	t.Helper()
	adapter, err := solver.New("gini", kb)
	assert.NoError(t, err)
	t.Cleanup(adapter.Dispose)
	return New(checker.New(adapter, all))
}

func TestGetLabelFindsMinimalConflict(t *testing.T) {
	// clause (¬1 ∨ ¬2) forbids asserting both 1 and 2; {1,2} is the unique
	// minimal conflict within candidates {1,2,3}.
	kb := cnf.KB{{-1, -2}}
	all := cnf.LiteralSet{1, 2, 3}
	lbl := newLabeler(t, kb, all)

	label, err := lbl.GetLabel(InitialParameters(all, nil))
	assert.NoError(t, err)
	assert.True(t, cnf.LiteralSet{1, 2}.Equal(label), "got %v", label)
}

func TestGetLabelConsistentInstanceReturnsEmpty(t *testing.T) {
	kb := cnf.KB{{1, 2}}
	all := cnf.LiteralSet{1, 2}
	lbl := newLabeler(t, kb, all)

	label, err := lbl.GetLabel(InitialParameters(all, nil))
	assert.NoError(t, err)
	assert.Empty(t, label)
}

func TestGetLabelSingletonConflict(t *testing.T) {
	kb := cnf.KB{{-1}}
	all := cnf.LiteralSet{1}
	lbl := newLabeler(t, kb, all)

	label, err := lbl.GetLabel(InitialParameters(all, nil))
	assert.NoError(t, err)
	assert.Equal(t, cnf.LiteralSet{1}, label)
}

func TestGetLabelRejectsForeignParameters(t *testing.T) {
	lbl := newLabeler(t, cnf.KB{{1}}, cnf.LiteralSet{1})

	_, err := lbl.GetLabel(stubParameters{})
	assert.Error(t, err)
	var invalid *InvalidParameters
	assert.ErrorAs(t, err, &invalid)
}

type stubParameters struct{}

func (stubParameters) Candidates() cnf.LiteralSet { return nil }

func TestGetChildParametersRemovesArcLabel(t *testing.T) {
	p := Parameters{C: cnf.LiteralSet{1, 2, 3}, B: cnf.LiteralSet{9}}
	lbl := &Labeler{}

	child := lbl.GetChildParameters(p, nil, 2)
	qp := child.(Parameters)

	assert.Equal(t, cnf.LiteralSet{1, 3}, qp.C)
	assert.Equal(t, cnf.LiteralSet{9}, qp.B)
}

func TestIdentifyGroupsReturnsSingleGroup(t *testing.T) {
	lbl := &Labeler{}
	groups := lbl.IdentifyGroups(cnf.LiteralSet{1, 2})
	assert.Len(t, groups, 1)
	assert.Equal(t, []cnf.Literal{1, 2}, groups[0])
}
