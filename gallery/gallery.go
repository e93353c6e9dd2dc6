// Package gallery maps the gallery codes used by the works API to the
// category names seeded into the database.
package gallery

import (
	_ "embed"

	"github.com/pelletier/go-toml/v2"
)

//go:embed galleries.toml
var galleriesToml []byte

type entry struct {
	Code     string `toml:"code"`
	Category string `toml:"category"`
}

type table struct {
	Galleries []entry `toml:"galleries"`
}

var byCode map[string]string

func init() {
	var t table
	if err := toml.Unmarshal(galleriesToml, &t); err != nil {
		panic("gallery: bad galleries.toml: " + err.Error())
	}
	byCode = make(map[string]string, len(t.Galleries))
	for _, g := range t.Galleries {
		byCode[g.Code] = g.Category
	}
}

// CategoryFor returns the category name for a gallery code. The second return
// is false for codes outside the seeded set; works may still carry free-text
// gallery labels, they just stay uncategorized.
func CategoryFor(code string) (string, bool) {
	name, ok := byCode[code]
	return name, ok
}

// CategoryNames returns every seeded category name.
func CategoryNames() []string {
	names := make([]string, 0, len(byCode))
	for _, name := range byCode {
		names = append(names, name)
	}
	return names
}
