package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Business English for Beginners", "business-english-for-beginners"},
		{"  IELTS Prep  ", "ielts-prep"},
		{"C1: Advanced Grammar!", "c1-advanced-grammar"},
		{"already-a-slug", "already-a-slug"},
		{"snake_case_title", "snake-case-title"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, slugify(tc.title), "slugify(%q)", tc.title)
	}
}
