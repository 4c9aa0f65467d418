package domain

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseURL_Valid(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "youtube watch url",
			input:    "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			expected: "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		},
		{
			name:     "short url",
			input:    "https://youtu.be/dQw4w9WgXcQ",
			expected: "https://youtu.be/dQw4w9WgXcQ",
		},
		{
			name:     "surrounding whitespace",
			input:    "  https://vimeo.com/123  ",
			expected: "https://vimeo.com/123",
		},
		{
			name:     "plain http with port",
			input:    "http://localhost:8080/video.mp4",
			expected: "http://localhost:8080/video.mp4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseURL(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseURL_Invalid(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"not a url",
		"www.youtube.com/watch?v=abc",
		"://missing-scheme",
		"https://",
		"http://exa mple.com/video",
		"https://example.com/%zz",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := ParseURL(input)
			require.Error(t, err)

			kind, ok := KindOf(err)
			assert.True(t, ok)
			assert.Equal(t, ErrorKindInvalidURL, kind)
			assert.Contains(t, err.Error(), "failed parsing url")
		})
	}
}

func TestNewRequest_Defaults(t *testing.T) {
	req, err := NewRequest("https://youtu.be/abc", "", "", "")
	require.NoError(t, err)

	assert.Equal(t, "https://youtu.be/abc", req.URL())
	assert.Equal(t, "video-lul.mp4", req.FileName())
	assert.Equal(t, ".", req.Directory())
}

func TestNewRequest_CustomNameAndDirectory(t *testing.T) {
	req, err := NewRequest("https://youtu.be/abc", "talk", "/data/videos", "clips")
	require.NoError(t, err)

	assert.Equal(t, "talk.mp4", req.FileName())
	assert.Equal(t, filepath.Join("/data/videos", "clips"), req.Directory())
}

func TestNewRequest_SubdirectoryUnderDefaultBase(t *testing.T) {
	req, err := NewRequest("https://youtu.be/abc", "", ".", "clips")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(".", "clips"), req.Directory())
}

func TestNewRequest_InvalidURL(t *testing.T) {
	req, err := NewRequest("definitely not a url", "x", ".", "")
	assert.Nil(t, req)
	require.Error(t, err)

	kind, ok := KindOf(err)
	assert.True(t, ok)
	assert.Equal(t, ErrorKindInvalidURL, kind)
}

func TestOutputFileName(t *testing.T) {
	assert.Equal(t, "video-lul.mp4", OutputFileName(""))
	assert.Equal(t, "video-lul.mp4", OutputFileName("  "))
	assert.Equal(t, "lecture.mp4", OutputFileName("lecture"))
	assert.Equal(t, "clip.mp4.mp4", OutputFileName("clip.mp4"))
}

func TestTargetDirectory(t *testing.T) {
	assert.Equal(t, ".", TargetDirectory("", ""))
	assert.Equal(t, "/srv/dl", TargetDirectory("/srv/dl", ""))
	assert.Equal(t, filepath.Join("/srv/dl", "a", "b"), TargetDirectory("/srv/dl", "a/b"))
}
