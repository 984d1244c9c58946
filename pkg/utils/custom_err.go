package utils

import "errors"

var (
	ErrUnsupportedCity      = errors.New("unsupported city")
	ErrInvalidIngestRequest = errors.New("invalid ingest request")
	ErrProviderUnavailable  = errors.New("provider unavailable")
	ErrDatabaseError        = errors.New("database error")
	ErrAuthNotConfigured    = errors.New("auth not configured")
)
