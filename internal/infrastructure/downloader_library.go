package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/lrstanley/go-ytdlp"
	"go.uber.org/zap"

	"github.com/yourusername/ytdl-go/internal/domain"
)

// LibraryDownloader implements domain.Downloader on top of the go-ytdlp wrapper
type LibraryDownloader struct {
	config *domain.DownloadConfig
	log    *zap.Logger
}

// NewLibraryDownloader creates a new go-ytdlp backed downloader
func NewLibraryDownloader(config *domain.DownloadConfig, log *zap.Logger) *LibraryDownloader {
	if log == nil {
		log = zap.NewNop()
	}
	return &LibraryDownloader{
		config: config,
		log:    log,
	}
}

// Name returns the backend name
func (d *LibraryDownloader) Name() string {
	return domain.BackendGoYTDLP
}

// Start builds the go-ytdlp command from inv and runs it to completion
func (d *LibraryDownloader) Start(ctx context.Context, inv domain.Invocation) (string, error) {
	if err := os.MkdirAll(inv.Directory, 0755); err != nil {
		return "", domain.NewProcessInitError(fmt.Errorf("failed to create output directory: %w", err))
	}

	cmd := ytdlp.New()

	if d.config.AutoInstall {
		if _, err := ytdlp.Install(ctx, nil); err != nil {
			return "", domain.NewProcessInitError(fmt.Errorf("failed to install yt-dlp: %w", err))
		}
	} else {
		binary, err := resolveBinary(d.config.YTDLPBinary)
		if err != nil {
			return "", domain.NewProcessInitError(err)
		}
		cmd = cmd.SetExecutable(binary)
	}

	cmd = cmd.SetWorkDir(inv.Directory)

	cmd, err := applyInvocationArgs(cmd, inv.Args)
	if err != nil {
		return "", domain.NewProcessInitError(err)
	}

	d.log.Debug("Running downloader",
		zap.String("run_id", inv.RunID),
		zap.String("backend", d.Name()),
		zap.Strings("args", inv.Argv()),
		zap.String("dir", inv.Directory))

	if _, err := cmd.Run(ctx, inv.URL); err != nil {
		return "", runError(ctx, err)
	}

	return inv.Directory, nil
}

// runError maps a go-ytdlp failure onto the download error kinds.
// An executable that cannot be resolved never started, so it is a ProcessInit failure.
func runError(ctx context.Context, err error) error {
	if _, ok := ytdlp.IsMisconfigError(err); ok {
		return domain.NewProcessInitError(fmt.Errorf("failed to start yt-dlp: %w", err))
	}
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, exec.ErrDot) {
		return domain.NewProcessInitError(fmt.Errorf("failed to start yt-dlp: %w", err))
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		err = fmt.Errorf("%v: %w", err, ctxErr)
	}
	return domain.NewDownloadFailedError(fmt.Errorf("yt-dlp failed: %w", err))
}

// applyInvocationArgs translates the invocation flags into go-ytdlp builder calls
func applyInvocationArgs(cmd *ytdlp.Command, args domain.InvocationArgs) (*ytdlp.Command, error) {
	for _, arg := range args {
		switch arg.Flag {
		case domain.FlagProgress:
			cmd = cmd.Progress()
		case domain.FlagFormat:
			cmd = cmd.Format(arg.Value)
		case domain.FlagOutput:
			cmd = cmd.Output(arg.Value)
		default:
			return nil, fmt.Errorf("unsupported downloader flag: %s", arg.Flag)
		}
	}
	return cmd, nil
}
