package logger

import (
	"bufio"
	"os"
	"regexp"
	"strings"
	"time"
)

var sectionHeader = regexp.MustCompile(`^=== \[([^\]]+)\] Download: (\S+) ===$`)

// ProcessLogSection is the output of one run inside a download log
type ProcessLogSection struct {
	RunID     string
	StartedAt string
	Lines     []string // Everything after the header, footer included
	Complete  bool     // The END marker was seen
}

// LogReader reads download logs written by the downloaders
type LogReader struct {
	logsDir string
}

// NewLogReader creates a new log reader
func NewLogReader(logsDir string) *LogReader {
	return &LogReader{
		logsDir: logsDir,
	}
}

// GetLogPath returns the download log path for a date
func (lr *LogReader) GetLogPath(date time.Time) string {
	return ProcessLogPath(lr.logsDir, date)
}

// ReadLines returns the last limit lines of a day's download log.
// A missing file yields no lines.
func (lr *LogReader) ReadLines(date time.Time, limit int) ([]string, error) {
	lines, err := lr.readAll(date)
	if err != nil {
		return nil, err
	}

	if limit > 0 && len(lines) > limit {
		lines = lines[len(lines)-limit:]
	}
	return lines, nil
}

// Sections splits a day's download log into per-run sections
func (lr *LogReader) Sections(date time.Time) ([]ProcessLogSection, error) {
	lines, err := lr.readAll(date)
	if err != nil {
		return nil, err
	}

	var sections []ProcessLogSection
	var current *ProcessLogSection
	for _, line := range lines {
		if m := sectionHeader.FindStringSubmatch(line); m != nil {
			if current != nil {
				sections = append(sections, *current)
			}
			current = &ProcessLogSection{StartedAt: m[1], RunID: m[2]}
			continue
		}
		if current == nil {
			continue
		}
		current.Lines = append(current.Lines, line)
		if line == sectionEnd {
			current.Complete = true
			sections = append(sections, *current)
			current = nil
		}
	}
	if current != nil {
		sections = append(sections, *current)
	}

	return sections, nil
}

// FindSection returns the section written for runID, or nil
func (lr *LogReader) FindSection(date time.Time, runID string) (*ProcessLogSection, error) {
	sections, err := lr.Sections(date)
	if err != nil {
		return nil, err
	}
	for i := range sections {
		if sections[i].RunID == runID {
			return &sections[i], nil
		}
	}
	return nil, nil
}

func (lr *LogReader) readAll(date time.Time) ([]string, error) {
	file, err := os.Open(lr.GetLogPath(date))
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	// yt-dlp progress lines are carriage-return separated and can get long
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
