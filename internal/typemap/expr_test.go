package typemap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewUnion(t *testing.T) {
	t.Run("flattens nested unions", func(t *testing.T) {
		u := NewUnion(Scalar{Int}, Union{Alts: []Expr{Scalar{String}, Scalar{Float}}})
		assert.Equal(t, "Union[int, str, float]", u.Annotation())
	})

	t.Run("dedupes by annotation", func(t *testing.T) {
		u := NewUnion(Scalar{Int}, Scalar{Int}, Scalar{String})
		assert.Equal(t, "Union[int, str]", u.Annotation())
	})

	t.Run("single survivor collapses", func(t *testing.T) {
		u := NewUnion(Scalar{Bool}, Flag{})
		assert.Equal(t, "bool", u.Annotation())
	})

	t.Run("any swallows everything", func(t *testing.T) {
		u := NewUnion(Scalar{Int}, Any{}, Scalar{String})
		assert.Equal(t, "Any", u.Annotation())
	})

	t.Run("empty is any", func(t *testing.T) {
		assert.Equal(t, "Any", NewUnion().Annotation())
	})

	t.Run("keeps first seen order", func(t *testing.T) {
		u := NewUnion(Scalar{String}, Scalar{Int})
		assert.Equal(t, "Union[str, int]", u.Annotation())
	})
}

func TestPlaceholder(t *testing.T) {
	tests := []struct {
		name string
		expr Expr
		want string
	}{
		{"bool", Scalar{Bool}, "False"},
		{"int", Scalar{Int}, "0"},
		{"float", Scalar{Float}, "0.0"},
		{"string", Scalar{String}, `""`},
		{"object name", Scalar{ObjectName}, `""`},
		{"flag", Flag{}, "False"},
		{"tuple", Tuple{Elems: []Expr{Scalar{Float}}}, "..."},
		{"seq", Seq{Elem: Scalar{Int}}, "..."},
		{"union", Union{Alts: []Expr{Scalar{Int}, Scalar{String}}}, "..."},
		{"any", Any{}, "..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Placeholder(tt.expr))
		})
	}
}

func TestHasFlag(t *testing.T) {
	assert.True(t, HasFlag(Flag{}))
	assert.True(t, HasFlag(Union{Alts: []Expr{Scalar{Int}, Flag{}}}))
	assert.False(t, HasFlag(Scalar{Bool}))
	assert.False(t, HasFlag(Union{Alts: []Expr{Scalar{Int}, Scalar{String}}}))
}
