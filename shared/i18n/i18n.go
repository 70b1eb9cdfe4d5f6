// Package i18n resolves localized UI strings by key.
package i18n

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v2"

	"github.com/itchan-dev/mediameta/shared/logger"
)

const KeyNoDescriptionPlaceholder = "description_post_media_no_description_placeholder"

// Resolver looks up a localized string. Unknown keys resolve to the key itself.
type Resolver interface {
	String(locale, key string) string
}

var builtin = map[string]map[string]string{
	"en": {KeyNoDescriptionPlaceholder: "No description."},
}

// Catalog is immutable after Load and safe for concurrent use.
type Catalog struct {
	fallback string
	strings  map[string]map[string]string
	tags     []language.Tag
	matcher  language.Matcher
}

// New builds a catalog from in-memory tables merged over the builtin English strings.
func New(fallback string, tables map[string]map[string]string) (*Catalog, error) {
	fallbackTag, err := language.Parse(fallback)
	if err != nil {
		return nil, fmt.Errorf("invalid fallback locale %q: %w", fallback, err)
	}

	c := &Catalog{
		fallback: fallbackTag.String(),
		strings:  make(map[string]map[string]string),
	}
	for _, src := range []map[string]map[string]string{builtin, tables} {
		for locale, entries := range src {
			tag, err := language.Parse(locale)
			if err != nil {
				return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
			}
			name := tag.String()
			if c.strings[name] == nil {
				c.strings[name] = make(map[string]string)
			}
			for k, v := range entries {
				c.strings[name][k] = v
			}
		}
	}

	// The fallback goes first so the matcher prefers it when nothing matches
	names := make([]string, 0, len(c.strings))
	for name := range c.strings {
		if name != c.fallback {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	c.tags = append(c.tags, fallbackTag)
	for _, name := range names {
		c.tags = append(c.tags, language.MustParse(name))
	}
	c.matcher = language.NewMatcher(c.tags)
	return c, nil
}

// Load reads every <locale>.yaml file in dir. An empty dir yields the builtin strings only.
func Load(dir, fallback string) (*Catalog, error) {
	tables := make(map[string]map[string]string)
	if dir == "" {
		return New(fallback, tables)
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, err
	}
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			return nil, fmt.Errorf("failed to read locale file %s: %w", f, err)
		}
		entries := make(map[string]string)
		if err := yaml.Unmarshal(data, &entries); err != nil {
			return nil, fmt.Errorf("failed to parse locale file %s: %w", f, err)
		}
		locale := strings.TrimSuffix(filepath.Base(f), filepath.Ext(f))
		tables[locale] = entries
	}

	c, err := New(fallback, tables)
	if err != nil {
		return nil, err
	}
	logger.Log.Info("locales loaded", "dir", dir, "locales", c.Locales())
	return c, nil
}

// Match picks the best supported locale for an Accept-Language header or a bare tag.
func (c *Catalog) Match(preferences ...string) string {
	var tags []language.Tag
	for _, p := range preferences {
		if p == "" {
			continue
		}
		parsed, _, err := language.ParseAcceptLanguage(p)
		if err != nil {
			continue
		}
		tags = append(tags, parsed...)
	}
	if len(tags) == 0 {
		return c.fallback
	}
	_, idx, conf := c.matcher.Match(tags...)
	if conf == language.No {
		return c.fallback
	}
	return c.tags[idx].String()
}

func (c *Catalog) String(locale, key string) string {
	if v, ok := c.strings[c.Match(locale)][key]; ok {
		return v
	}
	if v, ok := c.strings[c.fallback][key]; ok {
		return v
	}
	if v, ok := builtin["en"][key]; ok {
		return v
	}
	return key
}

// Locales lists the supported locales, fallback first.
func (c *Catalog) Locales() []string {
	out := make([]string, len(c.tags))
	for i, t := range c.tags {
		out[i] = t.String()
	}
	return out
}
