package infrastructure

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/ytdl-go/internal/domain"
	"github.com/yourusername/ytdl-go/pkg/logger"
)

// writeFakeYTDLP writes a shell script standing in for yt-dlp and returns its path
func writeFakeYTDLP(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake yt-dlp is a POSIX shell script")
	}
	path := filepath.Join(t.TempDir(), "yt-dlp")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0755))
	return path
}

func newTestInvocation(t *testing.T, dir string) domain.Invocation {
	t.Helper()
	req, err := domain.NewRequest("https://www.youtube.com/watch?v=abc&t=1", "talk", dir, "clips")
	require.NoError(t, err)
	return domain.BuildInvocation(req)
}

func TestExecDownloader_Success(t *testing.T) {
	binary := writeFakeYTDLP(t, `printf '%s\n' "$@" > args.txt
echo "[download] Destination: $5"
touch "$5"`)
	base := t.TempDir()
	var output bytes.Buffer

	downloader := NewExecDownloader(&domain.DownloadConfig{YTDLPBinary: binary}, &output, nil)
	inv := newTestInvocation(t, base)

	dir, err := downloader.Start(context.Background(), inv)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(base, "clips"), dir)
	assert.FileExists(t, filepath.Join(dir, "talk.mp4"))
	assert.Contains(t, output.String(), "[download] Destination: talk.mp4")

	recorded, err := os.ReadFile(filepath.Join(dir, "args.txt"))
	require.NoError(t, err)
	assert.Equal(t,
		[]string{"--progress", "-f", "best", "-o", "talk.mp4", "https://www.youtube.com/watch?v=abc&t=1"},
		strings.Split(strings.TrimSpace(string(recorded)), "\n"))
}

func TestExecDownloader_MissingBinary(t *testing.T) {
	base := t.TempDir()
	downloader := NewExecDownloader(&domain.DownloadConfig{
		YTDLPBinary: filepath.Join(base, "missing", "yt-dlp"),
	}, &bytes.Buffer{}, nil)
	inv := newTestInvocation(t, base)

	dir, err := downloader.Start(context.Background(), inv)
	require.Error(t, err)
	assert.Empty(t, dir)

	kind, ok := domain.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, domain.ErrorKindProcessInit, kind)
	assert.NoDirExists(t, inv.Directory)
}

func TestExecDownloader_DirectoryNotCreatable(t *testing.T) {
	binary := writeFakeYTDLP(t, "exit 0")
	base := t.TempDir()
	blocker := filepath.Join(base, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	downloader := NewExecDownloader(&domain.DownloadConfig{YTDLPBinary: binary}, &bytes.Buffer{}, nil)
	inv := newTestInvocation(t, blocker)

	_, err := downloader.Start(context.Background(), inv)
	require.Error(t, err)

	kind, _ := domain.KindOf(err)
	assert.Equal(t, domain.ErrorKindProcessInit, kind)
	assert.Contains(t, err.Error(), "failed to create output directory")
}

func TestExecDownloader_ProcessFails(t *testing.T) {
	binary := writeFakeYTDLP(t, `echo "ERROR: Unsupported URL: $6" >&2
exit 2`)
	var output bytes.Buffer

	downloader := NewExecDownloader(&domain.DownloadConfig{YTDLPBinary: binary}, &output, nil)

	_, err := downloader.Start(context.Background(), newTestInvocation(t, t.TempDir()))
	require.Error(t, err)

	kind, _ := domain.KindOf(err)
	assert.Equal(t, domain.ErrorKindDownload, kind)
	assert.Contains(t, err.Error(), "exit status 2")
	assert.Contains(t, output.String(), "ERROR: Unsupported URL")
}

func TestExecDownloader_ContextCancelled(t *testing.T) {
	binary := writeFakeYTDLP(t, "exec sleep 5")

	downloader := NewExecDownloader(&domain.DownloadConfig{YTDLPBinary: binary}, &bytes.Buffer{}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := downloader.Start(ctx, newTestInvocation(t, t.TempDir()))
	require.Error(t, err)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	kind, _ := domain.KindOf(err)
	assert.Equal(t, domain.ErrorKindDownload, kind)
	assert.Less(t, time.Since(start), 4*time.Second)
}

func TestExecDownloader_ProcessLog(t *testing.T) {
	binary := writeFakeYTDLP(t, `echo "[download] 100% of 2.00MiB"`)
	logsDir := filepath.Join(t.TempDir(), "logs")

	downloader := NewExecDownloader(&domain.DownloadConfig{
		YTDLPBinary: binary,
		ProcessLog:  true,
		LogsDir:     logsDir,
	}, &bytes.Buffer{}, nil)

	inv := newTestInvocation(t, t.TempDir())
	inv.RunID = "run-42"

	_, err := downloader.Start(context.Background(), inv)
	require.NoError(t, err)

	section, err := logger.NewLogReader(logsDir).FindSection(time.Now(), "run-42")
	require.NoError(t, err)
	require.NotNil(t, section)
	assert.True(t, section.Complete)
	assert.Contains(t, section.Lines, "[download] 100% of 2.00MiB")
	assert.Contains(t, strings.Join(section.Lines, "\n"), "SUCCESS: Downloaded to:")
	assert.Contains(t, section.Lines[0], "--progress -f best -o talk.mp4")
}

func TestExecDownloader_Name(t *testing.T) {
	downloader := NewExecDownloader(&domain.DownloadConfig{}, nil, nil)
	assert.Equal(t, domain.BackendExec, downloader.Name())
}
