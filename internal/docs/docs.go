// Package docs renders the command reference from the registry, for the
// README and for help output.
package docs

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/Jaideep25/Pokedex/internal/command"
)

//go:embed readme.md.tmpl
var defaultTemplate string

// CommandSections renders one markdown section per category, in registry
// order.
func CommandSections(r *command.Registry, prefix string) string {
	var buf bytes.Buffer
	current := ""
	for _, c := range r.All() {
		ct := c.Contract()
		if ct.Category != current {
			if current != "" {
				buf.WriteString("\n")
			}
			current = ct.Category
			fmt.Fprintf(&buf, "### %s\n\n", current)
		}

		fmt.Fprintf(&buf, "- **`%s`** - %s\n", ct.Usage(prefix), ct.Description)
		if aliases := ct.AliasNames(); len(aliases) > 0 {
			fmt.Fprintf(&buf, "  - Aliases: %s\n", strings.Join(aliases, ", "))
		}
		for _, ex := range ct.Examples {
			fmt.Fprintf(&buf, "  - Example: `%s%s %s`\n", prefix, ct.Name, ex)
		}
		if ct.HelpGIF != "" {
			fmt.Fprintf(&buf, "  - [Demo](%s)\n", ct.HelpGIF)
		}
	}
	return buf.String()
}

// Readme executes tmpl with the command sections. An empty tmpl uses the
// built-in template.
func Readme(r *command.Registry, prefix, tmpl string) ([]byte, error) {
	if tmpl == "" {
		tmpl = defaultTemplate
	}
	t, err := template.New("readme").Parse(tmpl)
	if err != nil {
		return nil, fmt.Errorf("parse readme template: %w", err)
	}

	data := struct {
		Prefix          string
		CommandSections string
	}{prefix, CommandSections(r, prefix)}

	var out bytes.Buffer
	if err := t.Execute(&out, data); err != nil {
		return nil, fmt.Errorf("render readme: %w", err)
	}
	return out.Bytes(), nil
}

// UpdateReadme renders the README from tmplPath (or the built-in template
// when empty) and writes it to outPath.
func UpdateReadme(r *command.Registry, prefix, tmplPath, outPath string) error {
	var tmpl string
	if tmplPath != "" {
		data, err := os.ReadFile(tmplPath)
		if err != nil {
			return err
		}
		tmpl = string(data)
	}
	out, err := Readme(r, prefix, tmpl)
	if err != nil {
		return err
	}
	return os.WriteFile(outPath, out, 0o644)
}
