// Package i18n translates user-facing messages.
//
// Catalogs are nested maps keyed by language at the top level and loaded
// through a TranslationAdapter: MapAdapter for in-memory data, FSAdapter for
// YAML or JSON files in any fs.FS (embed.FS included).
//
//	adapter := i18n.NewFSAdapter(i18n.YAMLParser{}, validator.Locales, "locales")
//	tr, err := i18n.NewTranslator(ctx, adapter, i18n.WithDefaultLanguage("pt-BR"))
//	if err != nil {
//		return err
//	}
//	tr.T("en", "validation.min_length", "field", "name", "min", "2")
//	// "name must be at least 2 characters"
//
// Keys use dots to reach nested entries and %{name} placeholders for
// arguments. N selects zero/one/other plural forms. Lookups fall back to the
// default language, then to the key (T) or an explicit default (Td).
//
// Middleware negotiates the request language (cookie, query parameter,
// Language and Accept-Language headers) and stores it in the context for Tc
// and Nc. Negotiation uses golang.org/x/text/language matching.
package i18n
