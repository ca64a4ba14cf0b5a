package session

import (
	"bytes"
	"errors"
	"io"
	"regexp"
	"testing"
	"time"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("no entropy") }

func TestNewID(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 14, 22, 5, 9, 123456000, time.UTC)

	tests := []struct {
		name   string
		reader io.Reader
		want   string
	}{
		{
			name:   "random suffix",
			reader: bytes.NewReader([]byte{0xa1, 0xb2, 0xc3}),
			want:   "20260314-220509-a1b2c3",
		},
		{
			name:   "falls back to fractional seconds",
			reader: failingReader{},
			want:   "20260314-220509-123456",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := newID(now, tt.reader); got != tt.want {
				t.Errorf("newID() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewIDFormat(t *testing.T) {
	t.Parallel()

	pattern := regexp.MustCompile(`^\d{8}-\d{6}-[0-9a-f]{6}$`)
	if id := NewID(); !pattern.MatchString(id) {
		t.Errorf("NewID() = %q, does not match %s", id, pattern)
	}
}
