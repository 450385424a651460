package dilemmafile

import (
	"embed"
	"fmt"
	"sort"
	"strings"

	"godilemma/domain/dilemma"
)

//go:embed templates/*.yaml
var templateFS embed.FS

// LoadTemplate parses a built-in dilemma template by name.
func LoadTemplate(name string) (*dilemma.Dilemma, error) {
	data, err := templateFS.ReadFile("templates/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("template %q not found (available: %s): %w",
			name, strings.Join(ListTemplates(), ", "), err)
	}
	return Parse(data, FormatYAML)
}

// ListTemplates returns the names of all built-in templates, sorted.
func ListTemplates() []string {
	entries, _ := templateFS.ReadDir("templates")
	var names []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".yaml") {
			names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
		}
	}
	sort.Strings(names)
	return names
}
