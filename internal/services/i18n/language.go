// Package i18n holds the site language setting and its translation tables.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// Language is one of the two site languages
type Language string

const (
	English Language = "en"
	Arabic  Language = "ar"
)

// Supported lists the site languages, default first
var Supported = []Language{English, Arabic}

// Direction is the text direction of a language
type Direction string

const (
	LTR Direction = "ltr"
	RTL Direction = "rtl"
)

// Parse maps a language code such as "ar" or "en-GB" to a site language
func Parse(s string) (Language, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if i := strings.IndexAny(s, "-_"); i > 0 {
		s = s[:i]
	}
	switch Language(s) {
	case English:
		return English, true
	case Arabic:
		return Arabic, true
	default:
		return "", false
	}
}

// Toggle returns the other language
func (l Language) Toggle() Language {
	if l == Arabic {
		return English
	}
	return Arabic
}

// Direction returns rtl for Arabic and ltr otherwise
func (l Language) Direction() Direction {
	if l == Arabic {
		return RTL
	}
	return LTR
}

// Tag returns the BCP 47 tag for the language
func (l Language) Tag() language.Tag {
	if l == Arabic {
		return language.Arabic
	}
	return language.English
}

// Source records where a language preference came from
type Source string

const (
	SourceQuery   Source = "query"
	SourceCookie  Source = "cookie"
	SourceHeader  Source = "header"
	SourceDefault Source = "default"
)

// Preferences is the language setting resolved for one request
type Preferences struct {
	Language Language `json:"language"`
	Source   Source   `json:"source"`
}

// Direction returns the text direction for the preferred language
func (p Preferences) Direction() Direction {
	return p.Language.Direction()
}

// Resolver picks a language from the request inputs
type Resolver struct {
	matcher  language.Matcher
	fallback Language
}

// NewResolver creates a resolver falling back to def
func NewResolver(def Language) *Resolver {
	if _, ok := Parse(string(def)); !ok {
		def = English
	}

	tags := []language.Tag{def.Tag()}
	for _, l := range Supported {
		if l != def {
			tags = append(tags, l.Tag())
		}
	}
	return &Resolver{matcher: language.NewMatcher(tags), fallback: def}
}

// Default returns the fallback language
func (r *Resolver) Default() Language {
	return r.fallback
}

// Resolve applies the order: explicit query parameter, cookie,
// Accept-Language header, default.
func (r *Resolver) Resolve(queryLang, cookieLang, acceptLanguage string) Preferences {
	if l, ok := Parse(queryLang); ok {
		return Preferences{Language: l, Source: SourceQuery}
	}
	if l, ok := Parse(cookieLang); ok {
		return Preferences{Language: l, Source: SourceCookie}
	}
	if strings.TrimSpace(acceptLanguage) != "" {
		tag, _, confidence := r.matcher.Match(parseAccept(acceptLanguage)...)
		if confidence != language.No {
			base, _ := tag.Base()
			if l, ok := Parse(base.String()); ok {
				return Preferences{Language: l, Source: SourceHeader}
			}
		}
	}
	return Preferences{Language: r.fallback, Source: SourceDefault}
}

func parseAccept(header string) []language.Tag {
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil {
		return nil
	}
	return tags
}
