package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inkwellcms/inkwell/internal/slug"
)

func TestMake(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"About Us", "about-us"},
		{"  Hello   World  ", "hello-world"},
		{"already-a-slug", "already-a-slug"},
		{"Snake_Case_Title", "snake-case-title"},
		{"Hello, World!", "hello-world"},
		{"Crème Brûlée", "creme-brulee"},
		{"Café", "cafe"},
		{"100% Organic", "100-organic"},
		{"--Trim--Me--", "trim-me"},
		{"MiXeD CaSe", "mixed-case"},
		{"", ""},
		{"!!!", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, slug.Make(tt.in), "input %q", tt.in)
	}
}

func TestMakeIdempotent(t *testing.T) {
	inputs := []string{"About Us", "Crème Brûlée", "my-page"}
	for _, in := range inputs {
		once := slug.Make(in)
		assert.Equal(t, once, slug.Make(once))
	}
}
