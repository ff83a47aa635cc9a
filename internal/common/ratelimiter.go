package common

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type Analysis struct {
	Allowed bool          // If the request is allowed
	Wait    time.Duration // The minimal time to wait before the request is allowed
}

type RateLimiter struct {
	mu                   sync.Mutex
	restrictions         []Restriction          // Restrictions to consider
	history              []time.Time            // History of requests
	duration             time.Duration          // Min duration to wait for all restrictions to be lifted
	pendingVitalRequests map[uuid.UUID]struct{} // Set of pending vital requests
	stopwatch            Stopwatch
}

func NewRateLimiter(restrictions []Restriction) *RateLimiter {
	rl := &RateLimiter{
		restrictions:         append([]Restriction{}, restrictions...),
		pendingVitalRequests: map[uuid.UUID]struct{}{},
	}
	for _, restriction := range restrictions {
		if restriction.Duration > rl.duration {
			rl.duration = restriction.Duration
		}
	}
	rl.stopwatch = NewStopwatch(rl.duration)
	return rl
}

// Decide if request is allowed.
// If the request is not allowed but vital, execution
// will block here until it is allowed
func (rl *RateLimiter) Allowed(vital bool) bool {

	// A limiter with no restrictions allows everything
	if len(rl.restrictions) == 0 {
		return true
	}

	// Give this request a unique identifier
	thisuuid := uuid.New()
	for {
		rl.mu.Lock()

		// If the remote complained recently, hold everything off
		// until the cooldown window has passed
		if !rl.stopwatch.Stopped() {
			remaining := rl.stopwatch.Remaining()
			rl.mu.Unlock()
			if !vital {
				log.Warn().Msg("Rejecting non vital request during rate limit cooldown")
				return false
			}
			time.Sleep(remaining)
			continue
		}

		// Trim history first
		rl.trim()
		// Check if the restrictions allow this request
		analysis := rl.analyse()
		switch {
		case analysis.Allowed && (vital || len(rl.pendingVitalRequests) == 0):
			log.Debug().Msg("Allowing request")
			delete(rl.pendingVitalRequests, thisuuid)
			// Include this request in the history as it is allowed
			rl.history = append(rl.history, time.Now())
			rl.mu.Unlock()
			return true
		case analysis.Allowed:
			// Request is not vital and the vital queue is not empty,
			// so we have to reject the request
			rl.mu.Unlock()
			log.Warn().Msg("Rejecting non vital request because vital queue is not empty")
			return false
		case !vital:
			rl.mu.Unlock()
			log.Warn().Msg("Rejecting a non vital request because restrictions do not allow it")
			return false
		default:
			// Request is vital and not allowed, so we need
			// to queue it and sleep until the restriction lifts
			rl.pendingVitalRequests[thisuuid] = struct{}{}
			rl.mu.Unlock()
			log.Warn().Str("uuid", thisuuid.String()).Dur("wait", analysis.Wait).Msg("Vital request delayed")
			time.Sleep(analysis.Wait)
		}
	}
}

// ReceivedRateLimit tells the limiter the remote returned 429,
// starting a cooldown as long as the longest restriction window
func (rl *RateLimiter) ReceivedRateLimit() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.stopwatch.Start()
}

// Trim the current history, leaving only the requests
// that are young enough to be affected by at least one restriction
func (rl *RateLimiter) trim() {
	currentTime := time.Now()
	// Find the index from which we need to keep the history.
	// Start searching at the end of the slice.
	// Times are stored in chronological order
	index := 0
	for i := len(rl.history) - 1; i >= 0; i-- {
		if currentTime.Sub(rl.history[i]) > rl.duration {
			index = i + 1
			break
		}
	}
	rl.history = rl.history[index:]
}

func (rl *RateLimiter) analyse() Analysis {

	// Merge the analyses of all the restrictions
	merged := Analysis{Allowed: true}
	for i := range rl.restrictions {
		analysis := rl.restrictions[i].Analyse(rl.history)
		merged.Allowed = merged.Allowed && analysis.Allowed
		if analysis.Wait > merged.Wait {
			merged.Wait = analysis.Wait
		}
	}
	return merged
}
