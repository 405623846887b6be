package messages

import (
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Catalog is a Translator backed by a per-language message table, typically
// loaded from YAML. Missing codes fall back to the built-in dictionary.
type Catalog struct {
	lang     string
	messages map[string]map[string]string
}

// LoadYAML reads a catalog of the form
//
//	en:
//	  invalid_object_id: "Bad id"
//	fr:
//	  invalid_object_id: "Identifiant invalide"
//
// and returns a Catalog answering in lang.
func LoadYAML(r io.Reader, lang string) (*Catalog, error) {
	var raw map[string]map[string]string
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil && err != io.EOF {
		return nil, fmt.Errorf("messages: decode catalog: %w", err)
	}
	if raw == nil {
		raw = map[string]map[string]string{}
	}
	return &Catalog{lang: lang, messages: raw}, nil
}

// LoadYAMLFile opens path and loads it with LoadYAML.
func LoadYAMLFile(path, lang string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("messages: open catalog: %w", err)
	}
	defer f.Close()
	return LoadYAML(f, lang)
}

// Languages returns the languages defined by the catalog.
func (c *Catalog) Languages() []string {
	out := make([]string, 0, len(c.messages))
	for l := range c.messages {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

func (c *Catalog) Message(code string, data map[string]string) string {
	if tmpl, ok := c.messages[c.lang][code]; ok {
		return expand(tmpl, data)
	}
	return dictTranslator{lang: c.lang}.Message(code, data)
}
