package hsdag

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/manleviet/cdiag/pkg/cnf"
)

func TestNewRootIsOpenWithNoParents(t *testing.T) {
	root := newRoot(0, cnf.LiteralSet{1, 2})
	assert.True(t, root.IsRoot())
	assert.Equal(t, StatusOpen, root.Status)
	assert.Equal(t, 0, root.Level)
	assert.Empty(t, root.PathLabel)
}

func TestNewChildAccumulatesPathLabel(t *testing.T) {
	root := newRoot(0, cnf.LiteralSet{1, 2})
	root.PathLabel = cnf.LiteralSet{}
	child := newChild(1, root, 1)

	assert.False(t, child.IsRoot())
	assert.Equal(t, cnf.LiteralSet{1}, child.PathLabel)
	assert.Equal(t, 1, child.Level)
	assert.Same(t, root, child.Parents[0])
	assert.Same(t, child, root.Children[1])
}

func TestAddParentAppendsWithoutDeduping(t *testing.T) {
	root := newRoot(0, nil)
	other := newRoot(1, nil)
	child := newChild(2, root, 5)

	child.addParent(other)
	child.addParent(other)

	assert.Len(t, child.Parents, 3) // root (from newChild) + other, twice
}

func TestStatusString(t *testing.T) {
	cases := map[Status]string{
		StatusOpen:    "Open",
		StatusClosed:  "Closed",
		StatusPruned:  "Pruned",
		StatusChecked: "Checked",
		Status(99):    "Unknown",
	}
	for status, want := range cases {
		assert.Equal(t, want, status.String())
	}
}
