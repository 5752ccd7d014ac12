package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/air-quality-aggregation/internal/airquality"
)

// Refresher is the part of the service the scheduler drives.
type Refresher interface {
	Refresh(ctx context.Context, station string, window airquality.Window) error
	RefreshLatest(ctx context.Context) error
}

// Scheduler periodically refreshes the network snapshot and the cached preset
// windows of configured stations.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   Refresher
	stations  []string
	windows   []airquality.Window
	interval  time.Duration
	logger    *slog.Logger
}

// New creates a new Scheduler.
func New(stations []string, interval time.Duration, service Refresher, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		service:   service,
		stations:  stations,
		windows:   []airquality.Window{airquality.Daily, airquality.Monthly},
		interval:  interval,
		logger:    logger,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if len(s.stations) == 0 {
		s.logger.Info("scheduler: no stations configured; refreshing the snapshot only")
	}

	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 30
	}

	_, err := s.scheduler.Every(minutes).Minutes().Do(s.RunOnce)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// RunOnce refreshes the snapshot and every station and preset window concurrently.
func (s *Scheduler) RunOnce() {
	s.logger.Info("scheduler: running cache refresh job", "stations", len(s.stations))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := s.service.RefreshLatest(ctx); err != nil {
			s.logger.Warn("scheduler: snapshot refresh failed", "error", err)
		}
	}()
	for _, st := range s.stations {
		for _, w := range s.windows {
			wg.Add(1)
			go func(st string, w airquality.Window) {
				defer wg.Done()

				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				if err := s.service.Refresh(ctx, st, w); err != nil {
					s.logger.Warn("scheduler: refresh failed", "station", st, "window", w.Key(), "error", err)
				}
			}(st, w)
		}
	}
	wg.Wait()
	s.logger.Info("scheduler: completed cache refresh job")
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
