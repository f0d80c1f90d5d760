package i18n

import (
	"golang.org/x/text/language"
)

// DefaultLanguage is used when nothing better can be negotiated.
const DefaultLanguage = "pt-BR"

// maxAcceptLanguageLength caps the header size handed to the parser.
const maxAcceptLanguageLength = 4096

// Matcher negotiates a supported language from client preferences using
// BCP 47 matching, so "pt" resolves to "pt-BR" and "en-GB" to "en".
type Matcher struct {
	langs   []string
	matcher language.Matcher
}

// NewMatcher builds a matcher over supported. fallback is returned when nothing
// matches; it is added to the supported set if missing.
func NewMatcher(supported []string, fallback string) *Matcher {
	langs := make([]string, 0, len(supported)+1)
	if fallback != "" {
		langs = append(langs, fallback)
	}
	for _, l := range supported {
		if l != "" && l != fallback {
			langs = append(langs, l)
		}
	}

	tags := make([]language.Tag, len(langs))
	for i, l := range langs {
		tags[i] = language.Make(l)
	}
	return &Matcher{langs: langs, matcher: language.NewMatcher(tags)}
}

// Languages returns the supported codes, fallback first.
func (m *Matcher) Languages() []string {
	return append([]string(nil), m.langs...)
}

// Match resolves an Accept-Language header, honouring quality values.
func (m *Matcher) Match(header string) string {
	if len(m.langs) == 0 {
		return ""
	}
	if len(header) > maxAcceptLanguageLength {
		header = header[:maxAcceptLanguageLength]
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return m.langs[0]
	}
	_, idx, _ := m.matcher.Match(tags...)
	return m.langs[idx]
}

// Lookup resolves a single language code. It reports false for malformed or
// unsupported codes.
func (m *Matcher) Lookup(code string) (string, bool) {
	if len(m.langs) == 0 || code == "" || len(code) > maxLangCodeLength {
		return "", false
	}
	tag, err := language.Parse(code)
	if err != nil {
		return "", false
	}
	_, idx, conf := m.matcher.Match(tag)
	if conf == language.No {
		return "", false
	}
	return m.langs[idx], true
}
