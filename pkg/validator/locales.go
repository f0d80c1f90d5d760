package validator

import "embed"

// Locales holds the message catalogs for validation errors, keyed by
// ValidationError.TranslationKey. Files live under "locales/".
//
//go:embed locales/*.yaml
var Locales embed.FS
