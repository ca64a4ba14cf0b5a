// Package session names a single process run so its log lines can be told
// apart in the shared log file.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"io"
	"time"
)

const layout = "20060102-150405"

// NewID returns an identifier of the form 20060102-150405-a1b2c3.
func NewID() string {
	return newID(time.Now(), rand.Reader)
}

func newID(now time.Time, r io.Reader) string {
	suffix := make([]byte, 3)
	if _, err := io.ReadFull(r, suffix); err != nil {
		return now.Format(layout) + "-" + now.Format("000000")
	}
	return now.Format(layout) + "-" + hex.EncodeToString(suffix)
}
