package cleanup

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

// MatchPruner deletes persisted matches older than a cutoff.
type MatchPruner interface {
	DeleteMatchesBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// Worker prunes old matches from the store on a cron schedule.
type Worker struct {
	cron      *cron.Cron
	pruner    MatchPruner
	retention time.Duration
	timeout   time.Duration
	now       func() time.Time
}

func NewWorker(pruner MatchPruner, retentionDays int) *Worker {
	return &Worker{
		cron:      cron.New(cron.WithSeconds()),
		pruner:    pruner,
		retention: time.Duration(retentionDays) * 24 * time.Hour,
		timeout:   30 * time.Second,
		now:       time.Now,
	}
}

// Start schedules the cleanup with a six-field cron spec ("0 0 * * * *" is hourly)
// and runs it once straight away.
func (w *Worker) Start(spec string) error {
	if _, err := w.cron.AddFunc(spec, w.runCleanup); err != nil {
		return err
	}
	go w.runCleanup()

	w.cron.Start()
	log.WithField("schedule", spec).Info("[CLEANUP] Background worker started")
	return nil
}

// Stop waits for a running cleanup to finish.
func (w *Worker) Stop() {
	<-w.cron.Stop().Done()
	log.Info("[CLEANUP] Background worker stopped")
}

func (w *Worker) runCleanup() {
	if _, err := w.RunOnce(context.Background()); err != nil {
		log.Errorf("[CLEANUP] Error pruning matches: %v", err)
	}
}

// RunOnce deletes every match older than the retention window.
func (w *Worker) RunOnce(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	cutoff := w.now().Add(-w.retention)
	deleted, err := w.pruner.DeleteMatchesBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if deleted > 0 {
		log.Infof("[CLEANUP] Removed %d matches played before %s", deleted, cutoff.Format(time.RFC3339))
	}
	return deleted, nil
}
