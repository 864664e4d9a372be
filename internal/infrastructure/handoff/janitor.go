package handoff

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	"assetdesk/pkg/logger"
)

// Janitor sweeps expired payloads on a cron schedule.
type Janitor struct {
	cron *cron.Cron
}

// StartJanitor schedules store.Sweep, e.g. with "@every 1m".
func StartJanitor(store *Store, schedule string, log *logger.Logger) (*Janitor, error) {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		if n := store.Sweep(); n > 0 {
			log.Debugw("expired handoff payloads removed", "count", n)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("schedule handoff sweep %q: %w", schedule, err)
	}
	c.Start()
	return &Janitor{cron: c}, nil
}

// Stop halts the schedule. The returned context is done once a running sweep finishes.
func (j *Janitor) Stop() context.Context {
	return j.cron.Stop()
}
