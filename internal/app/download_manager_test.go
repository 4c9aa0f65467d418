package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/ytdl-go/internal/domain"
)

// mockDownloader implements domain.Downloader for testing
type mockDownloader struct {
	mock.Mock
}

func (m *mockDownloader) Start(ctx context.Context, inv domain.Invocation) (string, error) {
	args := m.Called(ctx, inv)
	return args.String(0), args.Error(1)
}

func (m *mockDownloader) Name() string {
	return "mock"
}

// mockRunRepo implements domain.RunRepository for testing
type mockRunRepo struct {
	runs      map[string]*domain.Run
	creates   int
	updates   int
	createErr error
}

func newMockRunRepo() *mockRunRepo {
	return &mockRunRepo{runs: make(map[string]*domain.Run)}
}

func (m *mockRunRepo) Create(run *domain.Run) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.creates++
	copied := *run
	m.runs[run.ID] = &copied
	return nil
}

func (m *mockRunRepo) Update(run *domain.Run) error {
	m.updates++
	copied := *run
	m.runs[run.ID] = &copied
	return nil
}

func (m *mockRunRepo) FindByID(id string) (*domain.Run, error) {
	return m.runs[id], nil
}

func (m *mockRunRepo) FindRecent(filter domain.RunFilter) ([]*domain.Run, error) {
	return nil, nil
}

func (m *mockRunRepo) GetStats() (*domain.RunStats, error) {
	return &domain.RunStats{}, nil
}

func (m *mockRunRepo) only(t *testing.T) *domain.Run {
	t.Helper()
	require.Len(t, m.runs, 1)
	for _, run := range m.runs {
		return run
	}
	return nil
}

// mockNotifier records notifications
type mockNotifier struct {
	completed []string
	failed    []error
}

func (m *mockNotifier) NotifyDownloadCompleted(url, outputPath string) {
	m.completed = append(m.completed, outputPath)
}

func (m *mockNotifier) NotifyDownloadFailed(url string, err error) {
	m.failed = append(m.failed, err)
}

func newRequest(t *testing.T, fileName, subDir string) *domain.Request {
	t.Helper()
	req, err := domain.NewRequest("https://youtu.be/abc", fileName, "/tmp/videos", subDir)
	require.NoError(t, err)
	return req
}

func TestDownload_Success(t *testing.T) {
	downloader := &mockDownloader{}
	repo := newMockRunRepo()
	notifier := &mockNotifier{}
	dm := NewDownloadManager(downloader, repo, notifier, 0, nil)

	req := newRequest(t, "talk", "clips")
	downloader.On("Start", mock.Anything, mock.MatchedBy(func(inv domain.Invocation) bool {
		return inv.Directory == "/tmp/videos/clips" &&
			inv.URL == "https://youtu.be/abc" &&
			inv.RunID != "" &&
			assert.ObjectsAreEqual([]string{"--progress", "-f", "best", "-o", "talk.mp4"}, inv.Args.Strings())
	})).Return("/tmp/videos/clips", nil).Once()

	path, err := dm.Download(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/videos/clips", path)
	downloader.AssertExpectations(t)

	run := repo.only(t)
	assert.Equal(t, 1, repo.creates)
	assert.Equal(t, 1, repo.updates)
	assert.Equal(t, domain.RunStatusCompleted, run.Status)
	assert.Equal(t, "/tmp/videos/clips", run.OutputPath)
	assert.Equal(t, "mock", run.Backend)
	assert.Equal(t, "yt-dlp --progress -f best -o talk.mp4 https://youtu.be/abc", run.CommandLine)

	assert.Equal(t, []string{"/tmp/videos/clips"}, notifier.completed)
	assert.Empty(t, notifier.failed)
}

func TestDownload_ProcessInitFailure(t *testing.T) {
	downloader := &mockDownloader{}
	repo := newMockRunRepo()
	notifier := &mockNotifier{}
	dm := NewDownloadManager(downloader, repo, notifier, 0, nil)

	initErr := domain.NewProcessInitError(errors.New("yt-dlp binary not found in PATH"))
	downloader.On("Start", mock.Anything, mock.Anything).Return("", initErr).Once()

	path, err := dm.Download(context.Background(), newRequest(t, "", ""))
	require.Error(t, err)
	assert.Empty(t, path)
	assert.ErrorIs(t, err, initErr)

	run := repo.only(t)
	assert.Equal(t, domain.RunStatusFailed, run.Status)
	assert.Equal(t, domain.ErrorKindProcessInit, run.ErrorKind)

	require.Len(t, notifier.failed, 1)
	assert.Empty(t, notifier.completed)
}

func TestDownload_NoRetry(t *testing.T) {
	downloader := &mockDownloader{}
	dm := NewDownloadManager(downloader, nil, nil, 0, nil)

	downloader.On("Start", mock.Anything, mock.Anything).
		Return("", domain.NewDownloadFailedError(errors.New("exit status 1"))).Once()

	_, err := dm.Download(context.Background(), newRequest(t, "", ""))
	require.Error(t, err)

	kind, _ := domain.KindOf(err)
	assert.Equal(t, domain.ErrorKindDownload, kind)
	downloader.AssertNumberOfCalls(t, "Start", 1)
}

func TestDownload_HistoryFailureDoesNotFailDownload(t *testing.T) {
	downloader := &mockDownloader{}
	repo := newMockRunRepo()
	repo.createErr = errors.New("database is locked")
	dm := NewDownloadManager(downloader, repo, nil, 0, nil)

	downloader.On("Start", mock.Anything, mock.Anything).Return(".", nil).Once()

	path, err := dm.Download(context.Background(), newRequest(t, "", ""))
	require.NoError(t, err)
	assert.Equal(t, ".", path)
}

func TestDownload_Timeout(t *testing.T) {
	downloader := &mockDownloader{}
	dm := NewDownloadManager(downloader, nil, nil, time.Minute, nil)

	downloader.On("Start", mock.MatchedBy(func(ctx context.Context) bool {
		deadline, ok := ctx.Deadline()
		return ok && time.Until(deadline) <= time.Minute
	}), mock.Anything).Return(".", nil).Once()

	_, err := dm.Download(context.Background(), newRequest(t, "", ""))
	require.NoError(t, err)
	downloader.AssertExpectations(t)
}

func TestDownload_NoTimeoutByDefault(t *testing.T) {
	downloader := &mockDownloader{}
	dm := NewDownloadManager(downloader, nil, nil, 0, nil)

	downloader.On("Start", mock.MatchedBy(func(ctx context.Context) bool {
		_, ok := ctx.Deadline()
		return !ok
	}), mock.Anything).Return(".", nil).Once()

	_, err := dm.Download(context.Background(), newRequest(t, "", ""))
	require.NoError(t, err)
	downloader.AssertExpectations(t)
}
