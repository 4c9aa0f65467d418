package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yourusername/ytdl-go/internal/app"
	"github.com/yourusername/ytdl-go/internal/domain"
	"github.com/yourusername/ytdl-go/internal/infrastructure"
	"github.com/yourusername/ytdl-go/pkg/logger"
)

// downloaderFactory builds the downloader for the configured backend
type downloaderFactory func(config *domain.DownloadConfig, output io.Writer, log *zap.Logger) (domain.Downloader, error)

// cli holds the flag values and wiring for one process run
type cli struct {
	stdout        io.Writer
	stderr        io.Writer
	newDownloader downloaderFactory

	configPath string
	backend    string
	verbose    bool

	url       string
	fileName  string
	directory string
}

// run executes the command line and returns the process exit code
func run(ctx context.Context, args []string, stdout, stderr io.Writer, factory downloaderFactory) int {
	c := &cli{
		stdout:        stdout,
		stderr:        stderr,
		newDownloader: factory,
	}

	rootCmd := c.rootCommand()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func (c *cli) rootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "ytdl",
		Short:         "An easy way to download videos",
		Long:          `Download a single video by handing the URL to yt-dlp with the best available format.`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          c.runDownload,
	}

	rootCmd.PersistentFlags().StringVar(&c.configPath, "config", "", "Config file (default: ./configs, $HOME/.ytdl, /etc/ytdl)")
	rootCmd.PersistentFlags().StringVar(&c.backend, "backend", "", "Downloader backend (exec, go-ytdlp)")
	rootCmd.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.Flags().StringVarP(&c.url, "url", "u", "", "The url of the video to download")
	rootCmd.Flags().StringVarP(&c.fileName, "file-name", "f", domain.DefaultFileName, "File name to store locally, .mp4 is appended")
	rootCmd.Flags().StringVarP(&c.directory, "directory", "d", "", "Subdirectory of the download base directory to save into")
	rootCmd.MarkFlagRequired("url")

	rootCmd.AddCommand(c.historyCommand())
	rootCmd.AddCommand(c.logsCommand())
	rootCmd.AddCommand(c.versionCommand())

	return rootCmd
}

// setup loads configuration, applies flag overrides and builds the logger
func (c *cli) setup() (*domain.Config, *zap.Logger, error) {
	config, err := app.LoadConfig(c.configPath)
	if err != nil {
		return nil, nil, err
	}

	if c.backend != "" {
		if !domain.ValidateBackend(c.backend) {
			return nil, nil, fmt.Errorf("unknown downloader backend: %q", c.backend)
		}
		config.Download.Backend = c.backend
	}
	if c.verbose {
		config.Logging.Level = "debug"
	}

	logConfig := logger.Config{
		Level:      config.Logging.Level,
		Format:     config.Logging.Format,
		OutputPath: config.Logging.OutputPath,
	}
	if config.Logging.OutputPath == "stderr" || config.Logging.OutputPath == "" {
		logConfig.Writer = c.stderr
	}

	log, err := logger.New(logConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return config, log, nil
}

func (c *cli) runDownload(cmd *cobra.Command, args []string) error {
	config, log, err := c.setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	// The URL is validated before any downloader is built
	req, err := domain.NewRequest(c.url, c.fileName, config.Download.BaseDir, c.directory)
	if err != nil {
		return err
	}

	downloader, err := c.newDownloader(&config.Download, c.stderr, log)
	if err != nil {
		return domain.NewProcessInitError(err)
	}

	var repo domain.RunRepository
	if config.History.Enabled {
		sqliteRepo, err := infrastructure.NewSQLiteRunRepository(config.History.DatabasePath)
		if err != nil {
			log.Warn("Run history unavailable", zap.Error(err))
		} else {
			defer sqliteRepo.Close()
			repo = sqliteRepo
		}
	}

	var notifier app.Notifier
	if config.Notification.Enabled {
		notifier = infrastructure.NewNotificationService(&config.Notification, log)
	}

	manager := app.NewDownloadManager(downloader, repo, notifier, config.Download.Timeout, log)

	outputPath, err := manager.Download(cmd.Context(), req)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.stdout, "File downloaded at: %s\n", outputPath)
	return nil
}

func (c *cli) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(c.stdout, "ytdl version %s\n", version)
		},
	}
}
