package checker

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/manleviet/cdiag/pkg/cnf"
	"github.com/manleviet/cdiag/pkg/solver"
)

func TestIsConsistent(t *testing.T) {
	type tc struct {
		Name    string
		KB      cnf.KB
		All     cnf.LiteralSet
		SetC    cnf.LiteralSet
		WantOK  bool
		WantErr bool
	}

	for _, tt := range []tc{
		{
			Name:   "background alone consistent",
			KB:     cnf.KB{{1, 2}},
			All:    cnf.LiteralSet{1, 2},
			SetC:   cnf.LiteralSet{1},
			WantOK: true,
		},
		{
			Name:   "excluded literal is negated, not ignored",
			KB:     cnf.KB{{1, 2}},
			All:    cnf.LiteralSet{1, 2},
			SetC:   cnf.LiteralSet{},
			WantOK: false,
		},
		{
			Name:   "full set asserted",
			KB:     cnf.KB{{1, 2}},
			All:    cnf.LiteralSet{1, 2},
			SetC:   cnf.LiteralSet{1, 2},
			WantOK: true,
		},
	} {
		t.Run(tt.Name, func(t *testing.T) {
			adapter, err := solver.New("gini", tt.KB)
			assert.NoError(t, err)
			defer adapter.Dispose()

			c := New(adapter, tt.All)
			ok, err := c.IsConsistent(tt.SetC)
			if tt.WantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.WantOK, ok)
		})
	}
}

func TestDisposeReleasesAdapter(t *testing.T) {
	adapter, err := solver.New("gini", cnf.KB{{1}})
	assert.NoError(t, err)

	c := New(adapter, cnf.LiteralSet{1})
	c.Dispose()
}
