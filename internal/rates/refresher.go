package rates

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"gstrecon/internal/port"
)

// Refresher periodically reloads the HSN master into a TableLookup.
type Refresher struct {
	repo    port.HSNRepository
	table   *TableLookup
	cron    *cron.Cron
	timeout time.Duration
}

// NewRefresher creates a Refresher that reloads on the given cron schedule
// (standard five-field syntax or descriptors such as "@daily").
func NewRefresher(repo port.HSNRepository, table *TableLookup, schedule string, timeout time.Duration) (*Refresher, error) {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	r := &Refresher{
		repo:    repo,
		table:   table,
		cron:    cron.New(cron.WithLocation(time.UTC)),
		timeout: timeout,
	}
	if _, err := r.cron.AddFunc(schedule, r.run); err != nil {
		return nil, fmt.Errorf("rates.NewRefresher: invalid schedule %q: %w", schedule, err)
	}
	return r, nil
}

// Refresh loads the master once and swaps it in. On error the current
// table is kept.
func (r *Refresher) Refresh(ctx context.Context) error {
	entries, err := r.repo.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("rates.Refresher.Refresh: %w", err)
	}
	r.table.ReplaceHSN(entries)
	log.Printf("rates.Refresher: loaded %d HSN entries (%d codes)", len(entries), r.table.Size())
	return nil
}

func (r *Refresher) run() {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()
	if err := r.Refresh(ctx); err != nil {
		log.Printf("rates.Refresher: %v", err)
	}
}

// Start begins the schedule in the background.
func (r *Refresher) Start() {
	r.cron.Start()
}

// Stop halts the schedule and waits for a running refresh to finish.
func (r *Refresher) Stop() {
	<-r.cron.Stop().Done()
}
