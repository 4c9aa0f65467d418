package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/yourusername/ytdl-go/internal/domain"
	"github.com/yourusername/ytdl-go/internal/infrastructure"
)

// Notifier is told about the outcome of every download
type Notifier interface {
	NotifyDownloadCompleted(url, outputPath string)
	NotifyDownloadFailed(url string, err error)
}

// DownloadManager runs one validated Request through the downloader
type DownloadManager struct {
	downloader domain.Downloader
	repo       domain.RunRepository // Optional
	notifier   Notifier             // Optional
	timeout    time.Duration
	logger     *zap.Logger
}

// NewDownloadManager creates a new download manager.
// repo and notifier may be nil; timeout zero means no timeout.
func NewDownloadManager(
	downloader domain.Downloader,
	repo domain.RunRepository,
	notifier Notifier,
	timeout time.Duration,
	logger *zap.Logger,
) *DownloadManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DownloadManager{
		downloader: downloader,
		repo:       repo,
		notifier:   notifier,
		timeout:    timeout,
		logger:     logger,
	}
}

// Download runs req and returns the directory the file was written to.
// Failures are not retried. History and notification problems are logged only.
func (dm *DownloadManager) Download(ctx context.Context, req *domain.Request) (string, error) {
	run := domain.NewRun(req, dm.downloader.Name())

	inv := domain.BuildInvocation(req)
	inv.RunID = run.ID
	run.CommandLine = commandLine(inv)

	dm.record(run, true)

	if dm.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, dm.timeout)
		defer cancel()
	}

	dm.logger.Info("Started download of video",
		zap.String("id", run.ID),
		zap.String("url", req.URL()),
		zap.String("file", req.FileName()),
		zap.String("dir", req.Directory()),
		zap.String("backend", dm.downloader.Name()))

	outputPath, err := dm.downloader.Start(ctx, inv)
	if err != nil {
		run.MarkFailed(err)
		dm.record(run, false)

		kind, _ := domain.KindOf(err)
		dm.logger.Error("Download failed",
			zap.String("id", run.ID),
			zap.String("url", req.URL()),
			zap.String("kind", string(kind)),
			zap.Error(err))

		if dm.notifier != nil {
			dm.notifier.NotifyDownloadFailed(req.URL(), err)
		}
		return "", err
	}

	run.MarkCompleted(outputPath)
	dm.record(run, false)

	dm.logger.Info("Download completed",
		zap.String("id", run.ID),
		zap.String("url", req.URL()),
		zap.String("path", outputPath))

	if dm.notifier != nil {
		dm.notifier.NotifyDownloadCompleted(req.URL(), outputPath)
	}
	return outputPath, nil
}

// record persists run if history is enabled
func (dm *DownloadManager) record(run *domain.Run, create bool) {
	if dm.repo == nil {
		return
	}

	var err error
	if create {
		err = dm.repo.Create(run)
	} else {
		err = dm.repo.Update(run)
	}
	if err != nil {
		dm.logger.Warn("Failed to record run history",
			zap.String("id", run.ID),
			zap.Error(err))
	}
}

// commandLine renders the invocation for display in history
func commandLine(inv domain.Invocation) string {
	return infrastructure.ShellEscapeCommand("yt-dlp", inv.Argv()...)
}
