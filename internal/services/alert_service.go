package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"choretracker/internal/chore"
	"choretracker/internal/clock"
)

type alertServiceImpl struct {
	logger   zerolog.Logger
	tasks    TaskService
	notifier Notifier
	clk      *clock.Clock
	hour     int
}

func NewAlertService(
	logger zerolog.Logger,
	taskService TaskService,
	notifier Notifier,
	clk *clock.Clock,
	alertHour int,
) AlertService {
	return &alertServiceImpl{
		logger:   logger,
		tasks:    taskService,
		notifier: notifier,
		clk:      clk,
		hour:     alertHour,
	}
}

func (s *alertServiceImpl) Run(ctx context.Context) {
	s.logger.Info().
		Str("zone", s.clk.Location().String()).
		Int("hour", s.hour).
		Msg("alert loop started")

	for {
		fireAt := s.nextFireTime(s.clk.Now())
		s.logger.Debug().
			Time("fire_at", fireAt).
			Msg("sleeping until next alert pass")

		timer := time.NewTimer(time.Until(fireAt))
		select {
		case <-ctx.Done():
			timer.Stop()
			s.logger.Info().Msg("alert loop stopped")
			return
		case <-timer.C:
		}

		err := s.RunAlertPassNow(ctx)
		if err != nil {
			// Next scheduled firing will retry from scratch.
			s.logger.Error().
				Err(err).
				Msg("alert pass failed")
		}
	}
}

func (s *alertServiceImpl) RunAlertPassNow(ctx context.Context) error {
	today := s.clk.Today()
	s.logger.Debug().
		Str("today", today.String()).
		Msg("running alert pass")

	tasks, err := s.tasks.ListAllTasks(ctx)
	if err != nil {
		return err
	}

	digests := chore.BuildDigests(tasks, today, s.logger)
	for ownerID, message := range digests {
		s.logger.Info().
			Int64("owner_id", ownerID).
			Msg("sending alert")

		err = s.notifier.SendDirectMessage(ctx, ownerID, message)
		if err != nil {
			// One owner's delivery failure must not starve the rest.
			s.logger.Error().
				Err(err).
				Int64("owner_id", ownerID).
				Msg("failed to send alert")
		}
	}

	s.logger.Info().
		Int("alerted", len(digests)).
		Int("tasks", len(tasks)).
		Msg("alert pass finished")
	return nil
}

// nextFireTime returns the next instant the pass should fire: today at the
// configured hour in the clock's zone, or the same hour tomorrow when that
// has already passed. Going through time.Date keeps it correct across DST
// transitions.
func (s *alertServiceImpl) nextFireTime(now time.Time) time.Time {
	loc := s.clk.Location()
	fireAt := time.Date(now.Year(), now.Month(), now.Day(), s.hour, 0, 0, 0, loc)
	if !fireAt.After(now) {
		fireAt = fireAt.AddDate(0, 0, 1)
	}
	return fireAt
}
