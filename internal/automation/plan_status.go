// AngelaMos | 2026
// plan_status.go

package automation

import (
	"context"
	"log/slog"
	"time"
)

// PlanStatusJob runs the daily subscription plan review at midnight.
// The review body is a placeholder until the billing integration lands.
type PlanStatusJob struct {
	logger *slog.Logger
	now    func() time.Time
}

func NewPlanStatusJob(logger *slog.Logger) *PlanStatusJob {
	return &PlanStatusJob{
		logger: logger,
		now:    time.Now,
	}
}

// Start blocks until ctx is cancelled, firing once per day at local
// midnight. Run it on its own goroutine.
func (j *PlanStatusJob) Start(ctx context.Context) {
	for {
		wait := j.untilNextMidnight()
		timer := time.NewTimer(wait)

		select {
		case <-ctx.Done():
			timer.Stop()
			j.logger.Info("plan status job stopped")
			return
		case <-timer.C:
			j.run(ctx)
		}
	}
}

func (j *PlanStatusJob) run(ctx context.Context) {
	// TODO: deactivate accounts whose subscription period has lapsed
	// once plan periods are tracked on the user record.
	j.logger.Info("account plan status check activated but not implemented yet")
}

func (j *PlanStatusJob) untilNextMidnight() time.Duration {
	now := j.now()
	next := time.Date(
		now.Year(), now.Month(), now.Day()+1,
		0, 0, 0, 0,
		now.Location(),
	)
	return next.Sub(now)
}
