package app

import (
	"context"
	"time"

	"github.com/cybaemtech/site-core/internal/pkg/cron"
)

// registerCronJobs wires the background jobs. Runs after registerRoutes so
// the shared services exist.
func (a *App) registerCronJobs() {
	a.sched.Register(cron.Job{
		Name:        "spreadsheet-auto-sync",
		Description: "Import leads from active auto-sync spreadsheet configs",
		Interval:    5 * time.Minute,
		Fn: func(ctx context.Context) error {
			_, err := a.spreadsheets.RunAutoSync(ctx)
			return err
		},
	})

	a.sched.Register(cron.Job{
		Name:        "static-regenerate",
		Description: "Re-render published blog HTML and route regions",
		Interval:    24 * time.Hour,
		Fn: func(ctx context.Context) error {
			_, err := a.publisher.GenerateAll()
			return err
		},
	})
}
