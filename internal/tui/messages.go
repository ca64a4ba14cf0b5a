package tui

import (
	"time"

	"github.com/sleepdoctor/sleepdoc/internal/health"
)

const splashDuration = 1200 * time.Millisecond

type SplashTickMsg struct{}

type PermissionStatusMsg struct {
	Granted bool
	Err     error
}

type SleepDataMsg struct {
	Segments []health.SleepSegment
	Err      error
}

type BodyDataMsg struct {
	Measurements []health.Measurement
	Err          error
}
