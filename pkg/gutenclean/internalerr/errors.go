package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrSourceRead          = errors.New("source read failed")
	ErrDestinationWrite    = errors.New("destination write failed")
	ErrTokenEncoding       = errors.New("token not encodable")
	ErrInvalidConfig       = errors.New("invalid configuration")
	ErrUnsupportedLanguage = errors.New("unsupported language")
)
