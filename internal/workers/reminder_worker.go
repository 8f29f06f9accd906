package workers

import (
	"context"
	"time"

	"reliefhub_backend/internal/logger"
	"reliefhub_backend/internal/repositories"
	"reliefhub_backend/internal/services"
)

// ReminderWorker periodically re-notifies program members about resource
// requests that sat pending past the staleness threshold. The sweep is
// stateless and re-entrant: each request is claimed by a guarded
// last_notified_at update before its reminder goes out, so overlapping
// sweeps cannot fan out more than one extra batch per window.
type ReminderWorker struct {
	resourceRepo repositories.ResourceRequestRepository
	dispatch     services.DispatchService

	sweepInterval time.Duration
	staleness     time.Duration
}

func NewReminderWorker(
	resourceRepo repositories.ResourceRequestRepository,
	dispatch services.DispatchService,
	sweepInterval, staleness time.Duration,
) *ReminderWorker {
	return &ReminderWorker{
		resourceRepo:  resourceRepo,
		dispatch:      dispatch,
		sweepInterval: sweepInterval,
		staleness:     staleness,
	}
}

// Start launches the sweep loop. It stops when ctx is cancelled.
func (w *ReminderWorker) Start(ctx context.Context) {
	go w.run(ctx)
}

func (w *ReminderWorker) run(ctx context.Context) {
	ticker := time.NewTicker(w.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("reminder worker stopped")
			return
		case <-ticker.C:
			w.Sweep(ctx)
		}
	}
}

// Sweep runs one pass. Exported so tests (and an admin trigger, if one is
// ever added) can invoke it without the ticker.
func (w *ReminderWorker) Sweep(ctx context.Context) {
	now := time.Now()
	cutoff := now.Add(-w.staleness)

	stale, err := w.resourceRepo.FindStale(cutoff)
	if err != nil {
		logger.WithError(err).Error("reminder sweep: stale scan failed")
		return
	}
	if len(stale) == 0 {
		return
	}

	reminded := 0
	for i := range stale {
		request := &stale[i]

		// Claim before sending: a concurrent sweep that lost the update sees
		// the request as no longer stale and skips it.
		claimed, err := w.resourceRepo.ClaimForReminder(request.ID, cutoff, now)
		if err != nil {
			logger.WithError(err).Error("reminder sweep: claim failed", "request_id", request.ID)
			continue
		}
		if !claimed {
			continue
		}

		if err := w.dispatch.ReminderDue(ctx, request); err != nil {
			logger.WithError(err).Error("reminder sweep: dispatch failed", "request_id", request.ID)
			continue
		}
		reminded++
	}

	if reminded > 0 {
		logger.Info("reminder sweep completed", "stale", len(stale), "reminded", reminded)
	}
}
