package gallery

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryFor(t *testing.T) {
	cases := map[string]string{
		"gd": "Graphic Design",
		"il": "Illustration",
		"wd": "Web Design",
		"zj": "Painting",
	}
	for code, want := range cases {
		got, ok := CategoryFor(code)
		assert.True(t, ok, code)
		assert.Equal(t, want, got)
	}
}

func TestCategoryForUnknownCode(t *testing.T) {
	_, ok := CategoryFor("nope")
	assert.False(t, ok)

	// codes are exact, no case folding
	_, ok = CategoryFor("GD")
	assert.False(t, ok)
}

func TestCategoryNames(t *testing.T) {
	names := CategoryNames()
	assert.Len(t, names, 4)
	assert.ElementsMatch(t,
		[]string{"Graphic Design", "Illustration", "Web Design", "Painting"},
		names)
}
