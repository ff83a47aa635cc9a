package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleConfig = `{
    // comments are allowed in here
    "DISCORD_TOKEN": "token",
    "CHANNEL_ID": "123",
    "API_BASE_URL": "http://localhost:8010",
    "API_BEARER_TOKEN": "bearer",
    "TIMEZONE": "Europe/Madrid",
    "SCHEDULED_JOB_1_TIME": "0610",
    "SCHEDULED_JOB_1_PING": 450,
}
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.jsonc")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadJsonc(t *testing.T) {

	path := writeConfig(t, sampleConfig)
	cfg, err := load([]string{path})
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.DiscordToken != "token" {
		t.Errorf("Expected token, but got %q", cfg.DiscordToken)
	}
	if cfg.Timezone != "Europe/Madrid" {
		t.Errorf("Expected Europe/Madrid, but got %q", cfg.Timezone)
	}
	if cfg.Job1Time != "0610" || cfg.Job1Ping != 450 {
		t.Errorf("Job 1 not loaded: %q %d", cfg.Job1Time, cfg.Job1Ping)
	}
	// Values absent from the file keep their defaults
	if cfg.Job2Time != "1500" || cfg.Job2Ping != 320 {
		t.Errorf("Job 2 defaults lost: %q %d", cfg.Job2Time, cfg.Job2Ping)
	}
	if cfg.LogDir != defaultLogDir {
		t.Errorf("Log dir default lost: %q", cfg.LogDir)
	}
}

func TestLoadMissingEssentials(t *testing.T) {

	path := writeConfig(t, `{"DISCORD_TOKEN": "token"}`)
	if _, err := load([]string{path}); err == nil {
		t.Error("Expected an error for a config without essentials")
	}
}

func TestLoadFallsThroughMissingPaths(t *testing.T) {

	path := writeConfig(t, sampleConfig)
	cfg, err := load([]string{filepath.Join(t.TempDir(), "nope.jsonc"), path})
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.DiscordToken != "token" {
		t.Errorf("Expected config from the second path, got token %q", cfg.DiscordToken)
	}
}

func TestEnvOverrides(t *testing.T) {

	t.Setenv("CRCONBOT_API_BASE_URL", "http://other:9000")
	t.Setenv("CRCONBOT_RATE_LIMIT_REQUESTS", "10")
	path := writeConfig(t, sampleConfig)

	cfg, err := load([]string{path})
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.APIBaseURL != "http://other:9000" {
		t.Errorf("Environment override ignored, got %q", cfg.APIBaseURL)
	}
	if cfg.RateLimitRequests != 10 {
		t.Errorf("Numeric environment override ignored, got %d", cfg.RateLimitRequests)
	}
}

func TestSetJobPersists(t *testing.T) {

	path := writeConfig(t, sampleConfig)
	cfg, err := load([]string{path})
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if err := cfg.SetJob(2, "2130", 280); err != nil {
		t.Fatalf("SetJob failed: %v", err)
	}

	reloaded, err := load([]string{path})
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	dayTime, ping := reloaded.Job(2)
	if dayTime != "2130" || ping != 280 {
		t.Errorf("Expected 2130/280 after reload, but got %s/%d", dayTime, ping)
	}

	if err := cfg.SetJob(3, "0000", 100); err == nil {
		t.Error("Expected an error for job 3")
	}
}

func TestParseDayTime(t *testing.T) {

	tests := []struct {
		input        string
		hour, minute int
		ok           bool
	}{
		{"0009", 0, 9, true},
		{"1500", 15, 0, true},
		{"2359", 23, 59, true},
		{"2400", 0, 0, false},
		{"1260", 0, 0, false},
		{"900", 0, 0, false},
		{"09:00", 0, 0, false},
		{"abcd", 0, 0, false},
		{"", 0, 0, false},
	}
	for _, test := range tests {
		hour, minute, err := ParseDayTime(test.input)
		if test.ok != (err == nil) {
			t.Errorf("ParseDayTime(%q) error = %v, expected ok = %v", test.input, err, test.ok)
			continue
		}
		if test.ok && (hour != test.hour || minute != test.minute) {
			t.Errorf("ParseDayTime(%q) = %d:%d, expected %d:%d", test.input, hour, minute, test.hour, test.minute)
		}
	}
}

func TestLocationFallback(t *testing.T) {

	cfg := Defaults()
	cfg.Timezone = "Not/AZone"
	loc := cfg.Location()
	if !strings.Contains(loc.String(), "Australia") {
		t.Errorf("Expected fallback to the default timezone, got %s", loc)
	}
}
