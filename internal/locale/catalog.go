package locale

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed messages.yaml
var defaultMessages []byte

// Catalog maps (message key, language) to text.
type Catalog struct {
	messages map[string]map[Language]string
}

// LoadDefault parses the embedded message catalog.
func LoadDefault() (*Catalog, error) {
	return ParseCatalog(defaultMessages)
}

// ParseCatalog builds a catalog from YAML of the form key: {lang: text}.
// Every key must carry an English text.
func ParseCatalog(data []byte) (*Catalog, error) {
	var raw map[string]map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	c := &Catalog{messages: make(map[string]map[Language]string, len(raw))}
	for key, texts := range raw {
		if texts[string(English)] == "" {
			return nil, fmt.Errorf("catalog key %q has no english text", key)
		}
		m := make(map[Language]string, len(texts))
		for lang, text := range texts {
			m[ParseLanguage(lang)] = text
		}
		c.messages[key] = m
	}
	return c, nil
}

// Text returns the message for lang, falling back to English and then to the key itself.
func (c *Catalog) Text(key string, lang Language) string {
	texts, ok := c.messages[key]
	if !ok {
		return key
	}
	if t, ok := texts[lang]; ok {
		return t
	}
	return texts[English]
}

// Textf formats the message for lang with args.
func (c *Catalog) Textf(key string, lang Language, args ...any) string {
	return fmt.Sprintf(c.Text(key, lang), args...)
}

// Has reports whether key exists in the catalog.
func (c *Catalog) Has(key string) bool {
	_, ok := c.messages[key]
	return ok
}
