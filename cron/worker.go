package cron

import (
	"context"
	"fmt"
	"strings"
	"time"

	appointmentRepo "clipprmobile/database/repository/appointment"
	"clipprmobile/services/geocoding"
	"clipprmobile/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// GeocodeWarmer geocodes upcoming appointment addresses through the cached
// geocoder so availability requests find them in Redis.
type GeocodeWarmer struct {
	Appointments appointmentRepo.AppointmentRepository
	Geocoder     geocoding.Geocoder
	Logger       *zap.Logger
	Now          func() time.Time
}

// Warm resolves every distinct address of appointments starting within
// window and reports how many resolved.
func (w *GeocodeWarmer) Warm(ctx context.Context, window time.Duration) (int, error) {
	now := time.Now()
	if w.Now != nil {
		now = w.Now()
	}
	appointments, err := w.Appointments.GetInRange(ctx, now, now.Add(window))
	if err != nil {
		return 0, fmt.Errorf("load upcoming appointments: %w", err)
	}

	seen := make(map[string]bool, len(appointments))
	resolved := 0
	for _, apt := range appointments {
		address := strings.TrimSpace(apt.Address)
		key := geocoding.NormalizeAddress(address)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		if err := ctx.Err(); err != nil {
			return resolved, err
		}
		if _, ok := w.Geocoder.Geocode(ctx, address); ok {
			resolved++
		}
	}
	w.logger().Info("GeocodeWarmer: warm-up finished",
		zap.Int("appointments", len(appointments)),
		zap.Int("addresses", len(seen)),
		zap.Int("resolved", resolved))
	return resolved, nil
}

// HandleWarmTask is the asynq handler for tasks.TypeWarmGeocodes.
func (w *GeocodeWarmer) HandleWarmTask(ctx context.Context, task *asynq.Task) error {
	p, err := tasks.ParseWarmGeocodesPayload(task)
	if err != nil {
		w.logger().Error("GeocodeWarmer: dropping task", zap.Error(err))
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}
	_, err = w.Warm(ctx, time.Duration(p.WindowHours)*time.Hour)
	return err
}

func (w *GeocodeWarmer) logger() *zap.Logger {
	if w.Logger != nil {
		return w.Logger
	}
	return zap.NewNop()
}

// WorkerConfig configures the warm-up worker and its schedule.
type WorkerConfig struct {
	Redis       asynq.RedisClientOpt
	CronSpec    string // e.g. "@every 6h"
	Window      time.Duration
	Concurrency int
}

// StartGeocodeWorker starts the asynq server and the scheduler that enqueues
// the warm-up task. The returned func stops both.
func StartGeocodeWorker(cfg WorkerConfig, warmer *GeocodeWarmer, logger *zap.Logger) (func(), error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}

	srv := asynq.NewServer(cfg.Redis, asynq.Config{
		Concurrency: cfg.Concurrency,
		Queues:      map[string]int{"default": 1},
	})
	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeWarmGeocodes, warmer.HandleWarmTask)
	if err := srv.Start(mux); err != nil {
		return nil, fmt.Errorf("start geocode worker: %w", err)
	}

	task, opts, err := tasks.NewWarmGeocodesTask(cfg.Window)
	if err != nil {
		srv.Shutdown()
		return nil, err
	}
	scheduler := asynq.NewScheduler(cfg.Redis, nil)
	if _, err := scheduler.Register(cfg.CronSpec, task, opts...); err != nil {
		srv.Shutdown()
		return nil, fmt.Errorf("register warm-up schedule %q: %w", cfg.CronSpec, err)
	}
	if err := scheduler.Start(); err != nil {
		srv.Shutdown()
		return nil, fmt.Errorf("start scheduler: %w", err)
	}

	logger.Info("GeocodeWorker: started", zap.String("schedule", cfg.CronSpec), zap.Duration("window", cfg.Window))
	return func() {
		scheduler.Shutdown()
		srv.Shutdown()
	}, nil
}
