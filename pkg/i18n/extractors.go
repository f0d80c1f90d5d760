package i18n

import (
	"net/http"
	"strings"
)

// maxLangCodeLength follows the RFC 5646 recommendation.
const maxLangCodeLength = 35

// LangExtractor returns the request language, or "" when undecided.
type LangExtractor func(r *http.Request) string

// ExtractorConfig holds the sources DefaultLangExtractor inspects.
type ExtractorConfig struct {
	CookieName     string
	QueryParamName string
	Matcher        *Matcher
}

// ExtractorOption configures DefaultLangExtractor.
type ExtractorOption func(*ExtractorConfig)

func WithCookieName(name string) ExtractorOption {
	return func(c *ExtractorConfig) {
		if name != "" {
			c.CookieName = name
		}
	}
}

func WithQueryParamName(name string) ExtractorOption {
	return func(c *ExtractorConfig) {
		if name != "" {
			c.QueryParamName = name
		}
	}
}

// WithSupportedLanguages restricts results to langs; the first one is the
// fallback for Accept-Language headers that match nothing.
func WithSupportedLanguages(langs ...string) ExtractorOption {
	return func(c *ExtractorConfig) {
		if len(langs) > 0 {
			c.Matcher = NewMatcher(langs[1:], langs[0])
		}
	}
}

// WithMatcher restricts results to the languages of m, e.g. Translator.Matcher().
func WithMatcher(m *Matcher) ExtractorOption {
	return func(c *ExtractorConfig) {
		if m != nil {
			c.Matcher = m
		}
	}
}

// DefaultLangExtractor checks, in order: the "lang" cookie, the "lang" query
// parameter, the Language header and Accept-Language. Without a matcher the
// raw lowercased code is returned.
func DefaultLangExtractor(opts ...ExtractorOption) LangExtractor {
	cfg := &ExtractorConfig{
		CookieName:     "lang",
		QueryParamName: "lang",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	resolve := func(code string) string {
		code = strings.TrimSpace(code)
		if code == "" || len(code) > maxLangCodeLength {
			return ""
		}
		if cfg.Matcher == nil {
			return strings.ToLower(code)
		}
		lang, _ := cfg.Matcher.Lookup(code)
		return lang
	}

	return func(r *http.Request) string {
		if cookie, err := r.Cookie(cfg.CookieName); err == nil {
			if lang := resolve(cookie.Value); lang != "" {
				return lang
			}
		}
		if lang := resolve(r.URL.Query().Get(cfg.QueryParamName)); lang != "" {
			return lang
		}
		if lang := resolve(r.Header.Get("Language")); lang != "" {
			return lang
		}

		accept := r.Header.Get("Accept-Language")
		if accept == "" {
			return ""
		}
		if cfg.Matcher != nil {
			return cfg.Matcher.Match(accept)
		}
		first, _, _ := strings.Cut(accept, ",")
		first, _, _ = strings.Cut(first, ";")
		return resolve(first)
	}
}
