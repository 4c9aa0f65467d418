package domain

import "time"

// Downloader backends
const (
	BackendExec    = "exec"     // yt-dlp run through os/exec
	BackendGoYTDLP = "go-ytdlp" // yt-dlp run through github.com/lrstanley/go-ytdlp
)

// Config represents the application configuration
type Config struct {
	Download     DownloadConfig     `mapstructure:"download"`
	History      HistoryConfig      `mapstructure:"history"`
	Notification NotificationConfig `mapstructure:"notification"`
	Logging      LoggingConfig      `mapstructure:"logging"`
}

// DownloadConfig contains download-related configuration
type DownloadConfig struct {
	BaseDir     string        `mapstructure:"base_dir"`
	Backend     string        `mapstructure:"backend"`
	YTDLPBinary string        `mapstructure:"ytdlp_binary"`
	AutoInstall bool          `mapstructure:"auto_install"` // go-ytdlp backend only
	Timeout     time.Duration `mapstructure:"timeout"`      // 0 disables the timeout
	LogsDir     string        `mapstructure:"logs_dir"`
	ProcessLog  bool          `mapstructure:"process_log"` // Tee yt-dlp output into LogsDir
}

// HistoryConfig contains run history configuration
type HistoryConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	DatabasePath string `mapstructure:"database_path"`
}

// NotificationConfig contains notification-related configuration
type NotificationConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Method  string `mapstructure:"method"` // auto, osascript, notify-send
}

// LoggingConfig contains logging-related configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`       // debug, info, warn, error
	Format     string `mapstructure:"format"`      // json, console
	OutputPath string `mapstructure:"output_path"` // stderr, stdout, or file path
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Download: DownloadConfig{
			BaseDir:     DefaultBaseDir,
			Backend:     BackendExec,
			YTDLPBinary: "yt-dlp",
			AutoInstall: false,
			Timeout:     0,
			LogsDir:     "$HOME/.ytdl/logs",
			ProcessLog:  false,
		},
		History: HistoryConfig{
			Enabled:      false,
			DatabasePath: "$HOME/.ytdl/history.db",
		},
		Notification: NotificationConfig{
			Enabled: false,
			Method:  "auto",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			OutputPath: "stderr",
		},
	}
}

// ValidateBackend checks if a backend name is known
func ValidateBackend(backend string) bool {
	return backend == BackendExec || backend == BackendGoYTDLP
}
