package infrastructure

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// resolveBinary locates the downloader executable.
// An explicit path must exist; a bare name is looked up on PATH and then
// in the usual install locations.
func resolveBinary(name string) (string, error) {
	if name == "" {
		name = "yt-dlp"
	}

	// 1. Explicit path
	if strings.ContainsRune(name, filepath.Separator) || strings.ContainsRune(name, '/') {
		info, err := os.Stat(name)
		if err != nil {
			return "", fmt.Errorf("%s binary not found: %w", name, err)
		}
		if info.IsDir() {
			return "", fmt.Errorf("%s is a directory", name)
		}
		return name, nil
	}

	// 2. PATH
	if path, err := exec.LookPath(name); err == nil {
		return path, nil
	}

	// 3. Common locations
	for _, p := range commonBinaryPaths(name) {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, nil
		}
	}

	return "", fmt.Errorf("%s binary not found in PATH", name)
}

func commonBinaryPaths(name string) []string {
	if runtime.GOOS == "windows" {
		return nil
	}
	paths := []string{
		filepath.Join("/usr/local/bin", name),
		filepath.Join("/usr/bin", name),
		filepath.Join("/opt/homebrew/bin", name),
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".local/bin", name),
			filepath.Join(home, "go/bin", name),
		)
	}
	return paths
}
