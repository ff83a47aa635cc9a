package schedule

import (
	"fmt"
	"sync"
	"time"

	"crconbot/internal/config"
	"crconbot/internal/crcon"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

var jobNames = map[int]string{
	1: "set_ping_job_1",
	2: "set_ping_job_2",
}

// Scheduler owns the two daily jobs that PATCH the max ping autokick
// setting. Jobs are re-registered from configuration values, and a
// reschedule persists the new time/ping pair back to the config file
type Scheduler struct {
	cron     *cron.Cron
	client   *crcon.Client
	cfg      *config.Config
	announce func(string)

	mu      sync.Mutex
	entries map[int]cron.EntryID
}

// New builds a scheduler in the provided location. The announce function
// is called with a public message whenever a job fires successfully
func New(cfg *config.Config, client *crcon.Client, loc *time.Location, announce func(string)) *Scheduler {
	return &Scheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		client:   client,
		cfg:      cfg,
		announce: announce,
		entries:  map[int]cron.EntryID{},
	}
}

// Start registers both jobs from the config and starts the cron loop
func (s *Scheduler) Start() error {

	s.mu.Lock()
	defer s.mu.Unlock()

	for job := 1; job <= 2; job++ {
		dayTime, ping := s.cfg.Job(job)
		if err := s.register(job, dayTime, ping); err != nil {
			return err
		}
	}
	s.cron.Start()
	log.Info().Msg("Scheduler started and jobs scheduled")
	return nil
}

// Stop halts the cron loop, waiting for a running job to finish
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// Reschedule replaces the trigger of one job and persists the new pair.
// Safe to call concurrently from two interactions
func (s *Scheduler) Reschedule(job int, dayTime string, ping int) error {

	s.mu.Lock()
	defer s.mu.Unlock()

	name, ok := jobNames[job]
	if !ok {
		return fmt.Errorf("job %d is not one of the scheduled jobs", job)
	}
	if err := s.register(job, dayTime, ping); err != nil {
		return err
	}
	if err := s.cfg.SetJob(job, dayTime, ping); err != nil {
		log.Error().Err(err).Str("job", name).Msg("Failed to persist schedule change")
		return err
	}
	log.Info().Str("job", name).Str("time", dayTime).Int("ping", ping).Msg("Rescheduled")
	return nil
}

// register adds or replaces the cron entry of a job. Caller holds the lock
func (s *Scheduler) register(job int, dayTime string, ping int) error {

	hour, minute, err := config.ParseDayTime(dayTime)
	if err != nil {
		return err
	}
	if entry, ok := s.entries[job]; ok {
		s.cron.Remove(entry)
	}
	entry, err := s.cron.AddFunc(CronSpec(hour, minute), func() { s.run(job) })
	if err != nil {
		return err
	}
	s.entries[job] = entry
	return nil
}

func (s *Scheduler) run(job int) {

	name := jobNames[job]
	dayTime, ping := s.cfg.Job(job)
	hour, minute, err := config.ParseDayTime(dayTime)
	if err != nil {
		log.Error().Err(err).Str("job", name).Msg("Configured time is no longer valid")
		return
	}

	if err := s.client.SetMaxPingAutokick(ping); err != nil {
		log.Warn().Err(err).Str("job", name).Int("ping", ping).Msg("Failed to set max ping")
		return
	}
	log.Info().Str("job", name).Int("ping", ping).Msg(fmt.Sprintf("Set max ping at %02d:%02d", hour, minute))
	if s.announce != nil {
		s.announce(fmt.Sprintf("🔄 [%s] Max ping autokick set to `%d` ms (Scheduled %02d:%02d)", name, ping, hour, minute))
	}
}

// CronSpec renders the standard 5-field spec for a daily trigger
func CronSpec(hour, minute int) string {
	return fmt.Sprintf("%d %d * * *", minute, hour)
}
