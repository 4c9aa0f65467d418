package domain

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

const (
	// DefaultFileName is used when no file name is given
	DefaultFileName = "video-lul"

	// VideoExtension is appended to every output file name
	VideoExtension = ".mp4"

	// DefaultBaseDir is the base download directory (the working directory)
	DefaultBaseDir = "."
)

// Schemes whose URLs are meaningless without a host
var hostRequiredSchemes = map[string]bool{
	"http":  true,
	"https": true,
	"ftp":   true,
	"ws":    true,
	"wss":   true,
}

// Request is a validated description of one download job.
// It can only be obtained from NewRequest and is immutable afterwards.
type Request struct {
	url       string
	fileName  string
	directory string
}

// NewRequest validates the raw URL and applies the file name and directory defaults.
// subDir, when set, is joined onto baseDir.
func NewRequest(rawURL, fileName, baseDir, subDir string) (*Request, error) {
	normalized, err := ParseURL(rawURL)
	if err != nil {
		return nil, err
	}

	return &Request{
		url:       normalized,
		fileName:  OutputFileName(fileName),
		directory: TargetDirectory(baseDir, subDir),
	}, nil
}

// URL returns the normalized source URL
func (r *Request) URL() string {
	return r.url
}

// FileName returns the output file name, extension included
func (r *Request) FileName() string {
	return r.fileName
}

// Directory returns the directory the file is written to
func (r *Request) Directory() string {
	return r.directory
}

// ParseURL checks raw against the URL grammar and returns its normalized form.
// Failures are reported as ErrorKindInvalidURL.
func ParseURL(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", NewInvalidURLError(errors.New("empty url"))
	}

	u, err := url.Parse(trimmed)
	if err != nil {
		return "", NewInvalidURLError(err)
	}

	if u.Scheme == "" {
		return "", NewInvalidURLError(fmt.Errorf("relative URL without a base: %q", trimmed))
	}

	if hostRequiredSchemes[strings.ToLower(u.Scheme)] && u.Host == "" {
		return "", NewInvalidURLError(fmt.Errorf("empty host: %q", trimmed))
	}

	return u.String(), nil
}

// OutputFileName appends the video extension to name, falling back to DefaultFileName
func OutputFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultFileName
	}
	return name + VideoExtension
}

// TargetDirectory joins the optional subdirectory onto the base directory
func TargetDirectory(baseDir, subDir string) string {
	if baseDir == "" {
		baseDir = DefaultBaseDir
	}
	if subDir == "" {
		return baseDir
	}
	return filepath.Join(baseDir, subDir)
}
