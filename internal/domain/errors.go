package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies the terminal failures of a run
type ErrorKind string

const (
	ErrorKindInvalidURL  ErrorKind = "invalid_url"  // Input URL did not parse
	ErrorKindProcessInit ErrorKind = "process_init" // External downloader could not be set up
	ErrorKindDownload    ErrorKind = "download"     // External downloader ran and failed
)

// DownloadError is the error returned for every terminal failure of a run
type DownloadError struct {
	Kind ErrorKind
	Err  error
}

// Error implements the error interface
func (e *DownloadError) Error() string {
	var prefix string
	switch e.Kind {
	case ErrorKindInvalidURL:
		prefix = "failed parsing url"
	case ErrorKindProcessInit:
		prefix = "failed initializing download"
	case ErrorKindDownload:
		prefix = "failed download"
	default:
		prefix = string(e.Kind)
	}
	if e.Err == nil {
		return prefix
	}
	return fmt.Sprintf("%s: %v", prefix, e.Err)
}

// Unwrap returns the underlying cause
func (e *DownloadError) Unwrap() error {
	return e.Err
}

// NewInvalidURLError wraps a URL parser failure
func NewInvalidURLError(err error) *DownloadError {
	return &DownloadError{Kind: ErrorKindInvalidURL, Err: err}
}

// NewProcessInitError wraps a failure to set up the external downloader
func NewProcessInitError(err error) *DownloadError {
	return &DownloadError{Kind: ErrorKindProcessInit, Err: err}
}

// NewDownloadFailedError wraps a failure reported by the external downloader
func NewDownloadFailedError(err error) *DownloadError {
	return &DownloadError{Kind: ErrorKindDownload, Err: err}
}

// KindOf returns the ErrorKind carried anywhere in err's chain
func KindOf(err error) (ErrorKind, bool) {
	var dlErr *DownloadError
	if errors.As(err, &dlErr) {
		return dlErr.Kind, true
	}
	return "", false
}
