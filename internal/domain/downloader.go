package domain

import "context"

// Downloader runs the external download tool for one invocation
type Downloader interface {
	// Start runs the invocation to completion and returns the output directory.
	// Errors are *DownloadError of kind ErrorKindProcessInit or ErrorKindDownload.
	Start(ctx context.Context, inv Invocation) (string, error)

	// Name returns the backend name
	Name() string
}
