package i18n

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var localeFS embed.FS

var pluralForms = []string{"zero", "one", "two", "few", "many", "other"}

// Catalog holds the UI strings of every site language
type Catalog struct {
	builder *catalog.Builder
	// plain holds the display form of every key per language, plural
	// messages contribute their "other" form
	plain map[Language]map[string]string
	keys  []string
}

// LoadCatalog reads the embedded locale files
func LoadCatalog() (*Catalog, error) {
	c := &Catalog{
		builder: catalog.NewBuilder(catalog.Fallback(language.English)),
		plain:   make(map[Language]map[string]string),
	}

	seen := make(map[string]struct{})
	for _, lang := range Supported {
		data, err := localeFS.ReadFile(path.Join("locales", string(lang)+".yaml"))
		if err != nil {
			return nil, fmt.Errorf("reading %s locale: %w", lang, err)
		}
		if err := c.add(lang, data); err != nil {
			return nil, fmt.Errorf("loading %s locale: %w", lang, err)
		}
		for k := range c.plain[lang] {
			seen[k] = struct{}{}
		}
	}

	for k := range seen {
		c.keys = append(c.keys, k)
	}
	sort.Strings(c.keys)
	return c, nil
}

func (c *Catalog) add(lang Language, data []byte) error {
	var entries map[string]any
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return err
	}

	tag := lang.Tag()
	plain := make(map[string]string, len(entries))

	for key, value := range entries {
		switch v := value.(type) {
		case string:
			if err := c.builder.SetString(tag, key, v); err != nil {
				return fmt.Errorf("key %q: %w", key, err)
			}
			plain[key] = v
		case map[string]any:
			var selectCases []any
			for _, form := range pluralForms {
				if s, ok := v[form].(string); ok {
					selectCases = append(selectCases, form, s)
				}
			}
			if len(selectCases) == 0 {
				return fmt.Errorf("key %q: no plural forms", key)
			}
			if err := c.builder.Set(tag, key, plural.Selectf(1, "%d", selectCases...)); err != nil {
				return fmt.Errorf("key %q: %w", key, err)
			}
			plain[key] = fmt.Sprint(v["other"])
		default:
			return fmt.Errorf("key %q: unsupported value %T", key, value)
		}
	}

	c.plain[lang] = plain
	return nil
}

// Has reports whether any language defines key
func (c *Catalog) Has(key string) bool {
	for _, lang := range Supported {
		if _, ok := c.plain[lang][key]; ok {
			return true
		}
	}
	return false
}

// T translates key for lang. Keys missing in lang fall back to English, and
// unknown keys are turned into a readable label.
func (c *Catalog) T(lang Language, key string, args ...any) string {
	if !c.Has(key) {
		return humanize(key)
	}
	if _, ok := c.plain[lang][key]; !ok {
		lang = English
	}
	p := message.NewPrinter(lang.Tag(), message.Catalog(c.builder))
	return p.Sprintf(key, args...)
}

// All returns every UI string for lang, falling back to English per key
func (c *Catalog) All(lang Language) map[string]string {
	out := make(map[string]string, len(c.keys))
	for _, key := range c.keys {
		if s, ok := c.plain[lang][key]; ok {
			out[key] = s
			continue
		}
		out[key] = c.plain[English][key]
	}
	return out
}

// Keys returns the sorted union of keys across languages
func (c *Catalog) Keys() []string {
	return append([]string(nil), c.keys...)
}

func humanize(key string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(key, "_", " "))
}
