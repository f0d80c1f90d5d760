package i18n

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/sergiomvj/lifewayrepoclean-sub000/pkg/logger"
)

// Translator resolves dot-separated keys against per-language catalogs and
// substitutes %{name} placeholders. It is safe for concurrent use.
type Translator struct {
	mu             sync.RWMutex
	translations   map[string]map[string]any
	defaultLang    string
	fallbackToKey  bool
	missingLogMode bool
	logger         *slog.Logger
	matcher        *Matcher
}

// NewTranslator loads the catalogs from adapter.
func NewTranslator(ctx context.Context, adapter TranslationAdapter, options ...Option) (*Translator, error) {
	if adapter == nil {
		return nil, ErrNilAdapter
	}

	t := &Translator{
		defaultLang:   DefaultLanguage,
		fallbackToKey: true,
		logger:        logger.Discard(),
	}
	for _, option := range options {
		option(t)
	}
	t.logger = t.logger.With(logger.Component("i18n"))

	translations, err := adapter.Load(ctx)
	if err != nil {
		return nil, err
	}
	for lang, catalog := range translations {
		if lang == "" {
			return nil, fmt.Errorf("%w: empty language code", ErrInvalidCatalog)
		}
		if catalog == nil {
			return nil, fmt.Errorf("%w: nil catalog for %q", ErrInvalidCatalog, lang)
		}
	}

	t.translations = translations
	t.matcher = NewMatcher(t.supportedLanguages(), t.defaultLang)
	t.logger.InfoContext(ctx, "translations loaded", slog.Any("languages", t.supportedLanguages()))
	return t, nil
}

func (t *Translator) supportedLanguages() []string {
	langs := make([]string, 0, len(t.translations))
	for lang := range t.translations {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// SupportedLanguages returns the loaded language codes, sorted.
func (t *Translator) SupportedLanguages() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.supportedLanguages()
}

func (t *Translator) DefaultLanguage() string { return t.defaultLang }

// Matcher negotiates against the loaded languages, falling back to the default.
func (t *Translator) Matcher() *Matcher { return t.matcher }

// HasTranslation reports whether lang itself defines key.
func (t *Translator) HasTranslation(lang, key string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := lookupKey(t.translations[lang], key)
	return ok
}

// lookupKey walks a nested catalog with a dot-separated key.
func lookupKey(m map[string]any, key string) (any, bool) {
	if m == nil {
		return nil, false
	}
	parts := strings.Split(key, ".")
	current := m
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			return nil, false
		}
		current = next
	}
	val, ok := current[parts[len(parts)-1]]
	return val, ok
}

// lookup returns the first of keys with a string value in lang, then repeats
// the search in the default language.
func (t *Translator) lookup(lang string, keys ...string) (string, bool) {
	for _, l := range []string{lang, t.defaultLang} {
		for _, key := range keys {
			val, ok := lookupKey(t.translations[l], key)
			if !ok {
				continue
			}
			if s, ok := val.(string); ok {
				return s, true
			}
		}
	}
	if t.missingLogMode {
		t.logger.Warn("translation not found", slog.String("lang", lang), slog.Any("keys", keys))
	}
	return "", false
}

var paramRegex = regexp.MustCompile(`%\{([^}]+)\}`)

// sprintf substitutes %{name} placeholders from key/value pairs. Unknown
// placeholders are left as they are; an odd trailing argument is ignored.
func sprintf(tmpl string, args []string) string {
	if len(args) < 2 {
		return tmpl
	}
	params := make(map[string]string, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		params[args[i]] = args[i+1]
	}
	return paramRegex.ReplaceAllStringFunc(tmpl, func(match string) string {
		if val, ok := params[match[2:len(match)-1]]; ok {
			return val
		}
		return match
	})
}

// T translates key for lang with named arguments:
//
//	translator.T("en", "validation.required", "field", "email")
//	// "email is required"
//
// Missing keys fall back to the default language, then to the key itself
// (or "" with WithFallbackToKey(false)).
func (t *Translator) T(lang, key string, args ...string) string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if s, ok := t.lookup(lang, key); ok {
		return sprintf(s, args)
	}
	if t.fallbackToKey {
		return sprintf(key, args)
	}
	return ""
}

// Td is T with an explicit default instead of the key.
func (t *Translator) Td(lang, key, defaultValue string, args ...string) string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if s, ok := t.lookup(lang, key); ok {
		return sprintf(s, args)
	}
	return sprintf(defaultValue, args)
}

// N picks a plural form of key: "zero" (falling back to "other") for 0, "one"
// for 1 and "other" otherwise. A %{count} argument is added when absent.
func (t *Translator) N(lang, key string, n int, args ...string) string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	hasCount := false
	for i := 0; i+1 < len(args); i += 2 {
		if args[i] == "count" {
			hasCount = true
			break
		}
	}
	if !hasCount {
		args = append(args[:len(args):len(args)], "count", strconv.Itoa(n))
	}

	var keys []string
	switch n {
	case 0:
		keys = []string{key + ".zero", key + ".other", key}
	case 1:
		keys = []string{key + ".one", key}
	default:
		keys = []string{key + ".other", key}
	}

	if s, ok := t.lookup(lang, keys...); ok {
		return sprintf(s, args)
	}
	if t.fallbackToKey {
		return sprintf(key, args)
	}
	return ""
}

// Tc translates with the language stored in ctx by Middleware.
func (t *Translator) Tc(ctx context.Context, key string, args ...string) string {
	return t.T(GetLocale(ctx), key, args...)
}

// Nc is N with the language stored in ctx.
func (t *Translator) Nc(ctx context.Context, key string, n int, args ...string) string {
	return t.N(GetLocale(ctx), key, n, args...)
}
