package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnswersWithDoesNotMutate(t *testing.T) {
	orig := Answers{"memory_changes": "none"}
	revised := orig.With("memory_changes", "severe")

	assert.Equal(t, "none", orig.Str("memory_changes"), "Original answers must not change")
	assert.Equal(t, "severe", revised.Str("memory_changes"))
}

func TestAnswersAccessors(t *testing.T) {
	ans := Answers{
		"mobility":        "walker",
		"behaviors":       []any{"wandering", "sundowning"},
		"adl_needs":       []string{"bathing", "dressing"},
		"falls_last_year": 3,
		"med_count":       float64(9),
		"lives_alone":     true,
	}

	assert.Equal(t, "walker", ans.Str("mobility"))
	assert.Equal(t, "walker", ans.StrOr("mobility", "independent"))
	assert.Equal(t, "independent", ans.StrOr("missing", "independent"))
	assert.Equal(t, []string{"wandering", "sundowning"}, ans.Strings("behaviors"))
	assert.Equal(t, []string{"bathing", "dressing"}, ans.Strings("adl_needs"))
	assert.Nil(t, ans.Strings("iadl_needs"))
	assert.Equal(t, 3, ans.IntOr("falls_last_year", 0))
	assert.Equal(t, 9, ans.IntOr("med_count", 0), "JSON numbers decode as float64")
	assert.Equal(t, 0, ans.IntOr("missing", 0))
	assert.True(t, ans.BoolOr("lives_alone", false))
	assert.True(t, ans.Has("mobility"))
	assert.False(t, ans.Has("missing"))
}

func TestAnswersFailFast(t *testing.T) {
	ans := Answers{"mobility": 7}

	assert.Panics(t, func() { ans.Str("missing") }, "Missing required key should panic")
	assert.Panics(t, func() { ans.Str("mobility") }, "Mistyped value should panic")
	assert.Panics(t, func() { ans.Strings("mobility") })
	assert.Panics(t, func() { ans.BoolOr("mobility", false) })
}
