package drafts

import "errors"

var (
	ErrDraftNotFound = errors.New("draft not found")
	ErrEmptyID       = errors.New("draft id is empty")
	ErrEmptyFormID   = errors.New("draft form id is empty")
	ErrUnknownDriver = errors.New("unknown drafts driver")

	ErrFailedToSaveDraft   = errors.New("failed to save draft")
	ErrFailedToLoadDraft   = errors.New("failed to load draft")
	ErrFailedToDeleteDraft = errors.New("failed to delete draft")
	ErrCorruptedDraft      = errors.New("stored draft cannot be decoded")

	ErrFailedToParseRedisURL  = errors.New("failed to parse redis connection string")
	ErrRedisNotReady          = errors.New("redis did not become ready within the given time period")
	ErrFailedToParsePGConfig  = errors.New("failed to parse postgres config")
	ErrFailedToConnectPG      = errors.New("failed to open postgres connection")
	ErrFailedToApplyMigration = errors.New("failed to apply migrations")
	ErrFailedToConnectMongo   = errors.New("failed to connect to mongo")
	ErrHealthcheckFailed      = errors.New("drafts backend healthcheck failed")
)
