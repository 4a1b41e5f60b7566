package slugs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategorySlug(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Effects", "effects"},
		{"spaces", "General Commands", "general_commands"},
		{"already lower", "modeling", "modeling"},
		{"digit leading", "3D Paint", "_3d_paint"},
		{"punctuation", "Rendering: Lights, Shading", "rendering_lights_shading"},
		{"empty", "", "uncategorized"},
		{"repeated separators", "a  -  b", "a_b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CategorySlug(tt.in))
		})
	}
}
