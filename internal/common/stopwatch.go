package common

import (
	"time"
)

// This stopwatch keeps track of time. You can set a timeout for it,
// make it start counting time, and ask it if the timeout has been reached
type Stopwatch struct {
	Timeout   time.Duration
	startTime time.Time
	Running   bool
}

func NewStopwatch(timeout time.Duration) Stopwatch {
	return Stopwatch{Timeout: timeout}
}

func (s *Stopwatch) Start() {
	s.Running = true
	s.startTime = time.Now()
}

func (s *Stopwatch) Stop() {
	s.Running = false
}

// Stopped reports whether the timeout has been reached since Start.
// A stopwatch that was never started counts as stopped.
func (s *Stopwatch) Stopped() bool {
	if !s.Running {
		return true
	}
	if time.Since(s.startTime) >= s.Timeout {
		s.Running = false
		return true
	}
	return false
}

// Remaining returns how long until the timeout is reached.
// Zero or negative means the timeout has passed already.
func (s *Stopwatch) Remaining() time.Duration {
	if !s.Running {
		return 0
	}
	return s.Timeout - time.Since(s.startTime)
}
