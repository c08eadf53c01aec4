package workers

import (
	"context"
	"log"
	"time"

	"github.com/sirdesai22/hackhub/internal/services"
	"gorm.io/gorm"
)

// ReconcileWorker periodically recomputes the denormalized counters from
// their source rows and reindexes anything that drifted.
type ReconcileWorker struct {
	DB       *gorm.DB
	Interval time.Duration
}

func (w *ReconcileWorker) Run(ctx context.Context) {
	interval := w.Interval
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			report, err := services.ReconcileCounts(ctx, w.DB)
			if err != nil {
				log.Printf("reconcile error: %v", err)
				continue
			}
			if report.ProjectsRepaired == 0 && report.ProfilesRepaired == 0 {
				continue
			}
			log.Printf("🔧 reconcile: %d projects, %d profiles repaired",
				report.ProjectsRepaired, report.ProfilesRepaired)
		}
	}
}
