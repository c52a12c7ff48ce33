package lookup

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// ReadSeed parses a YAML seed document:
//
//	pokemon:
//	  - name: Mr. Mime
//	    flex: mr-mime
//	version:
//	  - name: Fire Red
//
// A missing flex form is derived from the name.
func ReadSeed(r io.Reader) ([]Record, error) {
	var doc map[string][]Record
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}

	var out []Record
	for slug, entries := range doc {
		cat, ok := ParseCategory(slug)
		if !ok || cat == CategoryAny {
			return nil, fmt.Errorf("unknown seed category %q", slug)
		}
		for _, e := range entries {
			if e.Display == "" {
				return nil, fmt.Errorf("%s seed entry without a name", slug)
			}
			out = append(out, NewRecord(cat, e.Display, e.FlexForm))
		}
	}
	return out, nil
}
