package infrastructure

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/yourusername/ytdl-go/internal/domain"
)

// NewDownloader creates the downloader selected by config.Backend
func NewDownloader(config *domain.DownloadConfig, output io.Writer, log *zap.Logger) (domain.Downloader, error) {
	switch config.Backend {
	case domain.BackendExec, "":
		return NewExecDownloader(config, output, log), nil
	case domain.BackendGoYTDLP:
		return NewLibraryDownloader(config, log), nil
	default:
		return nil, fmt.Errorf("unknown downloader backend: %s", config.Backend)
	}
}
