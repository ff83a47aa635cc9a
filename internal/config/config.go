package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/tailscale/hujson"
)

// Paths probed for the config file, in order
var candidatePaths = []string{
	"/opt/crconbot/config.jsonc",
	"config.jsonc",
}

const (
	defaultTimezone = "Australia/Sydney"
	defaultLogDir   = "/opt/crconbot/logs"
)

type Config struct {
	DiscordToken   string `json:"DISCORD_TOKEN"`
	ChannelID      string `json:"CHANNEL_ID"`
	StatsChannelID string `json:"CHANNEL_ID_STATS"`
	VipsChannelID  string `json:"CHANNEL_ID_VIPS"`

	APIBaseURL     string `json:"API_BASE_URL"`
	APIBearerToken string `json:"API_BEARER_TOKEN"`

	// Postgres DSN for the stats lookups. Empty disables /playerstats
	DatabaseURL string `json:"DB_URL"`

	Timezone string `json:"TIMEZONE"`

	Job1Time string `json:"SCHEDULED_JOB_1_TIME"`
	Job1Ping int    `json:"SCHEDULED_JOB_1_PING"`
	Job2Time string `json:"SCHEDULED_JOB_2_TIME"`
	Job2Ping int    `json:"SCHEDULED_JOB_2_PING"`

	LogDir string `json:"LOG_DIR"`

	RateLimitRequests      int `json:"RATE_LIMIT_REQUESTS"`
	RateLimitWindowSeconds int `json:"RATE_LIMIT_WINDOW_SECONDS"`

	// Path the config was loaded from, so Save knows where to write back
	path string
	mu   sync.Mutex
}

func Defaults() Config {
	return Config{
		Timezone: defaultTimezone,
		Job1Time: "0009",
		Job1Ping: 500,
		Job2Time: "1500",
		Job2Ping: 320,
		LogDir:   defaultLogDir,
	}
}

// Load reads the first config.jsonc found among the candidate paths,
// then applies .env and environment overrides on top of it.
func Load() (*Config, error) {
	return load(candidatePaths)
}

func load(paths []string) (*Config, error) {

	cfg := Defaults()

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Debug().Str("path", path).Msg("Config not found")
			continue
		}
		std, err := hujson.Standardize(data)
		if err != nil {
			return nil, fmt.Errorf("config %s is not valid JSONC: %w", path, err)
		}
		if err := json.Unmarshal(std, &cfg); err != nil {
			return nil, fmt.Errorf("config %s has unexpected content: %w", path, err)
		}
		cfg.path = path
		log.Info().Str("path", path).Msg("Loaded config")
		break
	}
	if cfg.path == "" {
		log.Warn().Msg("No config file found in any of the expected paths, using defaults")
	}

	// .env is optional; environment variables always win
	godotenv.Load()
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (cfg *Config) applyEnv() {
	setString := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setInt := func(dst *int, key string) {
		v := os.Getenv(key)
		if v == "" {
			return
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			log.Warn().Str("key", key).Str("value", v).Msg("Ignoring non-numeric environment override")
			return
		}
		*dst = n
	}
	setString(&cfg.DiscordToken, "CRCONBOT_DISCORD_TOKEN")
	setString(&cfg.ChannelID, "CRCONBOT_CHANNEL_ID")
	setString(&cfg.StatsChannelID, "CRCONBOT_CHANNEL_ID_STATS")
	setString(&cfg.VipsChannelID, "CRCONBOT_CHANNEL_ID_VIPS")
	setString(&cfg.APIBaseURL, "CRCONBOT_API_BASE_URL")
	setString(&cfg.APIBearerToken, "CRCONBOT_API_BEARER_TOKEN")
	setString(&cfg.DatabaseURL, "CRCONBOT_DB_URL")
	setString(&cfg.Timezone, "CRCONBOT_TIMEZONE")
	setString(&cfg.LogDir, "CRCONBOT_LOG_DIR")
	setInt(&cfg.RateLimitRequests, "CRCONBOT_RATE_LIMIT_REQUESTS")
	setInt(&cfg.RateLimitWindowSeconds, "CRCONBOT_RATE_LIMIT_WINDOW_SECONDS")
}

func (cfg *Config) Validate() error {
	switch {
	case cfg.DiscordToken == "":
		return fmt.Errorf("DISCORD_TOKEN is missing")
	case cfg.ChannelID == "":
		return fmt.Errorf("CHANNEL_ID is missing")
	case cfg.APIBaseURL == "":
		return fmt.Errorf("API_BASE_URL is missing")
	case cfg.APIBearerToken == "":
		return fmt.Errorf("API_BEARER_TOKEN is missing")
	}
	if _, _, err := ParseDayTime(cfg.Job1Time); err != nil {
		return fmt.Errorf("SCHEDULED_JOB_1_TIME: %w", err)
	}
	if _, _, err := ParseDayTime(cfg.Job2Time); err != nil {
		return fmt.Errorf("SCHEDULED_JOB_2_TIME: %w", err)
	}
	return nil
}

// Location resolves the configured timezone, falling back to the default
// when the name is not in the tz database.
func (cfg *Config) Location() *time.Location {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Warn().Str("timezone", cfg.Timezone).Msg("Invalid timezone, falling back to default")
		loc, _ = time.LoadLocation(defaultTimezone)
	}
	return loc
}

// SetJob updates the schedule pair for job 1 or 2 and writes the config
// back to disk, so the new pair survives a restart.
func (cfg *Config) SetJob(job int, dayTime string, ping int) error {
	cfg.mu.Lock()
	defer cfg.mu.Unlock()

	switch job {
	case 1:
		cfg.Job1Time, cfg.Job1Ping = dayTime, ping
	case 2:
		cfg.Job2Time, cfg.Job2Ping = dayTime, ping
	default:
		return fmt.Errorf("job %d is not one of the configured jobs", job)
	}
	return cfg.save()
}

// Job returns the time/ping pair for job 1 or 2.
func (cfg *Config) Job(job int) (string, int) {
	cfg.mu.Lock()
	defer cfg.mu.Unlock()
	if job == 1 {
		return cfg.Job1Time, cfg.Job1Ping
	}
	return cfg.Job2Time, cfg.Job2Ping
}

func (cfg *Config) save() error {
	if cfg.path == "" {
		log.Warn().Msg("No config file was loaded, schedule change not persisted")
		return nil
	}
	data, err := json.MarshalIndent(cfg, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(cfg.path, append(data, '\n'), 0o644)
}

// ParseDayTime validates an "HHMM" string and returns hour and minute.
func ParseDayTime(dayTime string) (hour, minute int, err error) {
	if len(dayTime) != 4 {
		return 0, 0, fmt.Errorf("time %q is not in HHMM format", dayTime)
	}
	for _, r := range dayTime {
		if r < '0' || r > '9' {
			return 0, 0, fmt.Errorf("time %q is not in HHMM format", dayTime)
		}
	}
	hour, _ = strconv.Atoi(dayTime[:2])
	minute, _ = strconv.Atoi(dayTime[2:])
	if hour > 23 || minute > 59 {
		return 0, 0, fmt.Errorf("time %q is not a valid time of day", dayTime)
	}
	return hour, minute, nil
}
