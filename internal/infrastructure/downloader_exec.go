package infrastructure

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yourusername/ytdl-go/internal/domain"
	"github.com/yourusername/ytdl-go/pkg/logger"
)

// ExecDownloader implements domain.Downloader by running the yt-dlp binary directly
type ExecDownloader struct {
	config *domain.DownloadConfig
	output io.Writer // Receives the raw process output
	log    *zap.Logger
}

// NewExecDownloader creates a new exec downloader.
// The process output is streamed to output, normally os.Stderr.
func NewExecDownloader(config *domain.DownloadConfig, output io.Writer, log *zap.Logger) *ExecDownloader {
	if output == nil {
		output = os.Stderr
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &ExecDownloader{
		config: config,
		output: output,
		log:    log,
	}
}

// Name returns the backend name
func (d *ExecDownloader) Name() string {
	return domain.BackendExec
}

// Start runs yt-dlp in inv.Directory and waits for it to exit
func (d *ExecDownloader) Start(ctx context.Context, inv domain.Invocation) (string, error) {
	binary, err := resolveBinary(d.config.YTDLPBinary)
	if err != nil {
		return "", domain.NewProcessInitError(err)
	}

	if err := os.MkdirAll(inv.Directory, 0755); err != nil {
		return "", domain.NewProcessInitError(fmt.Errorf("failed to create output directory: %w", err))
	}

	// exec.Command passes args directly to the process, no shell quoting needed
	args := inv.Argv()
	cmdLine := ShellEscapeCommand(binary, args...)

	runID := inv.RunID
	if runID == "" {
		runID = uuid.New().String()
	}

	out := d.output
	var processLog *os.File
	if d.config.ProcessLog {
		processLog, err = logger.OpenProcessLog(d.config.LogsDir)
		if err != nil {
			return "", domain.NewProcessInitError(fmt.Errorf("failed to open log file: %w", err))
		}
		defer processLog.Close()

		logger.WriteProcessLogHeader(processLog, runID, cmdLine)
		out = io.MultiWriter(d.output, processLog)
	}

	d.log.Debug("Running downloader",
		zap.String("run_id", runID),
		zap.String("command", cmdLine),
		zap.String("dir", inv.Directory))

	// yt-dlp stdout goes to our stderr; stdout is reserved for the result line
	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Dir = inv.Directory
	cmd.Stdout = out
	cmd.Stderr = out

	if err := cmd.Start(); err != nil {
		if processLog != nil {
			logger.WriteProcessLogFooter(processLog, false, fmt.Sprintf("failed to start yt-dlp: %v", err))
		}
		return "", domain.NewProcessInitError(fmt.Errorf("failed to start %s: %w", binary, err))
	}

	if err := cmd.Wait(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = fmt.Errorf("%v: %w", err, ctxErr)
		}
		if processLog != nil {
			logger.WriteProcessLogFooter(processLog, false, fmt.Sprintf("yt-dlp failed: %v", err))
		}
		return "", domain.NewDownloadFailedError(fmt.Errorf("yt-dlp failed: %w", err))
	}

	if processLog != nil {
		logger.WriteProcessLogFooter(processLog, true, fmt.Sprintf("Downloaded to: %s", inv.Directory))
	}

	return inv.Directory, nil
}
