package i18n

import "errors"

var (
	ErrNilAdapter          = errors.New("translation adapter is nil")
	ErrParsingCancelled    = errors.New("translation parsing cancelled")
	ErrFailedToParseJSON   = errors.New("failed to parse JSON content")
	ErrFailedToParseYAML   = errors.New("failed to parse YAML content")
	ErrInvalidCatalog      = errors.New("invalid translation catalog")
	ErrLoadingCancelled    = errors.New("loading translations cancelled")
	ErrFailedToReadDir     = errors.New("failed to read translations directory")
	ErrFailedToReadFile    = errors.New("failed to read translation file")
	ErrNoTranslationsFound = errors.New("no translation files found")
)
