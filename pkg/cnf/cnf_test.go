package cnf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLiteralNotAndVar(t *testing.T) {
	type tc struct {
		Name     string
		L        Literal
		WantNot  Literal
		WantVar  int
		WantText string
	}

	for _, tt := range []tc{
		{Name: "positive", L: 3, WantNot: -3, WantVar: 3, WantText: "3"},
		{Name: "negative", L: -3, WantNot: 3, WantVar: 3, WantText: "-3"},
	} {
		t.Run(tt.Name, func(t *testing.T) {
			assert.Equal(t, tt.WantNot, tt.L.Not())
			assert.Equal(t, tt.WantVar, tt.L.Var())
			assert.Equal(t, tt.WantText, tt.L.String())
		})
	}
}

func TestValidate(t *testing.T) {
	type tc struct {
		Name    string
		KB      KB
		WantErr bool
	}

	for _, tt := range []tc{
		{Name: "empty kb", KB: KB{}},
		{Name: "clean clauses", KB: KB{{1, -2, 3}, {-1, 2}}},
		{Name: "zero literal", KB: KB{{1, 0, 2}}, WantErr: true},
		{Name: "duplicate literal in clause", KB: KB{{1, 2, 1}}, WantErr: true},
	} {
		t.Run(tt.Name, func(t *testing.T) {
			err := Validate(tt.KB)
			if tt.WantErr {
				assert.Error(t, err)
				var inputErr InputError
				assert.ErrorAs(t, err, &inputErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestLiteralSetOperations(t *testing.T) {
	s := LiteralSet{1, 2, 3}

	assert.True(t, s.Contains(2))
	assert.False(t, s.Contains(4))

	assert.Equal(t, LiteralSet{1, 3}, s.Without(2))
	assert.Equal(t, LiteralSet{1, 2, 3}, s.Without(4))

	assert.Equal(t, LiteralSet{1, 3}, s.Minus(LiteralSet{2, 4}))

	assert.Equal(t, LiteralSet{1, 2, 3, 4}, s.Union(LiteralSet{3, 4}))

	assert.True(t, s.Disjoint(LiteralSet{4, 5}))
	assert.False(t, s.Disjoint(LiteralSet{3, 5}))

	assert.True(t, LiteralSet{1, 2}.SubsetOf(s))
	assert.False(t, LiteralSet{1, 4}.SubsetOf(s))

	assert.True(t, LiteralSet{3, 2, 1}.Equal(s))
	assert.False(t, LiteralSet{1, 2}.Equal(s))
}

func TestLiteralSetKeyIsOrderIndependent(t *testing.T) {
	a := LiteralSet{1, 2, 3}
	b := LiteralSet{3, 1, 2}
	c := LiteralSet{1, 2}

	assert.Equal(t, a.Key(), b.Key())
	assert.NotEqual(t, a.Key(), c.Key())
}
