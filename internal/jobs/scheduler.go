package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"brightpath/site/internal/repository"
)

type Scheduler struct {
	cron     *cron.Cron
	sessions *repository.SessionRepository
	postings *repository.PostingRepository
	log      zerolog.Logger
}

func NewScheduler(sessions *repository.SessionRepository, postings *repository.PostingRepository, log zerolog.Logger) *Scheduler {
	c := cron.New(cron.WithSeconds())
	return &Scheduler{
		cron:     c,
		sessions: sessions,
		postings: postings,
		log:      log,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("0 0 3 * * *", s.purgeSessions); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc("0 0 * * * *", s.closePostings); err != nil { // hourly
		return err
	}

	s.cron.Start()
	return nil
}

// Stop halts scheduling and waits for any running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) purgeSessions() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	purged, err := s.sessions.PurgeExpired(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("session purge failed")
		return
	}
	if purged > 0 {
		s.log.Info().Int64("purged", purged).Msg("expired sessions purged")
	}
}

func (s *Scheduler) closePostings() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	closed, err := s.postings.CloseExpired(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("posting auto-close failed")
		return
	}
	if closed > 0 {
		s.log.Info().Int64("closed", closed).Msg("postings past closing date deactivated")
	}
}
