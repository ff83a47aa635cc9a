package common

import (
	"testing"
	"time"
)

func TestRestrictionAnalyse(t *testing.T) {

	restriction := Restriction{Requests: 2, Duration: time.Minute}
	now := time.Now()

	// Empty history always allows
	if analysis := restriction.Analyse(nil); !analysis.Allowed {
		t.Error("Expected an empty history to be allowed")
	}

	// One recent request, room for one more
	history := []time.Time{now.Add(-time.Second)}
	if analysis := restriction.Analyse(history); !analysis.Allowed {
		t.Error("Expected one recent request to be allowed")
	}

	// Two recent requests fill the window
	history = []time.Time{now.Add(-2 * time.Second), now.Add(-time.Second)}
	analysis := restriction.Analyse(history)
	if analysis.Allowed {
		t.Error("Expected a full window to be rejected")
	}
	if analysis.Wait <= 0 || analysis.Wait > time.Minute {
		t.Errorf("Expected a wait inside the window, got %v", analysis.Wait)
	}

	// Old requests fall out of the window
	history = []time.Time{now.Add(-2 * time.Minute), now.Add(-90 * time.Second)}
	if analysis := restriction.Analyse(history); !analysis.Allowed {
		t.Error("Expected old requests to be ignored")
	}
}

func TestRateLimiterWithoutRestrictions(t *testing.T) {

	rl := NewRateLimiter(nil)
	for i := 0; i < 100; i++ {
		if !rl.Allowed(false) {
			t.Fatal("A limiter without restrictions should allow everything")
		}
	}
}

func TestRateLimiterRejectsNonVital(t *testing.T) {

	rl := NewRateLimiter([]Restriction{{Requests: 2, Duration: time.Minute}})
	if !rl.Allowed(false) {
		t.Fatal("First request should be allowed")
	}
	if !rl.Allowed(false) {
		t.Fatal("Second request should be allowed")
	}
	if rl.Allowed(false) {
		t.Error("Third non vital request should be rejected")
	}
}

func TestRateLimiterVitalWaits(t *testing.T) {

	rl := NewRateLimiter([]Restriction{{Requests: 1, Duration: 50 * time.Millisecond}})
	if !rl.Allowed(true) {
		t.Fatal("First request should be allowed")
	}
	start := time.Now()
	if !rl.Allowed(true) {
		t.Fatal("Vital request should eventually be allowed")
	}
	if elapsed := time.Since(start); elapsed < 30*time.Millisecond {
		t.Errorf("Expected the vital request to wait for the window, waited %v", elapsed)
	}
}

func TestStopwatch(t *testing.T) {

	s := NewStopwatch(time.Hour)
	if !s.Stopped() {
		t.Error("A stopwatch that never started counts as stopped")
	}
	s.Start()
	if s.Stopped() {
		t.Error("A freshly started stopwatch is running")
	}
	if s.Remaining() <= 0 {
		t.Error("A running stopwatch has time remaining")
	}
	s.Stop()
	if !s.Stopped() {
		t.Error("An explicitly stopped stopwatch is stopped")
	}
}
