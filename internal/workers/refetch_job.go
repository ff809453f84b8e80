package workers

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/MKhiriev/go-net-storage/internal/logger"
)

const defaultRefetchInterval = 5 * time.Minute

// RefetchJob periodically refetches every registered record. It covers
// updates a record missed while it was not in a match with their writer.
type RefetchJob struct {
	interval time.Duration

	recordsMu sync.Mutex
	nextID    uint64
	records   map[uint64]Refetcher

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup

	logger *logger.Logger
}

// NewRefetchJob creates an idle job. If interval is zero or negative it
// defaults to 5 minutes.
func NewRefetchJob(interval time.Duration, logger *logger.Logger) *RefetchJob {
	if interval <= 0 {
		interval = defaultRefetchInterval
	}

	return &RefetchJob{
		interval: interval,
		records:  make(map[uint64]Refetcher),
		logger:   logger.WithComponent("refetch_job"),
	}
}

// Add registers r with the job. The returned function removes it.
func (j *RefetchJob) Add(r Refetcher) (remove func()) {
	j.recordsMu.Lock()
	defer j.recordsMu.Unlock()

	id := j.nextID
	j.nextID++
	j.records[id] = r

	return func() {
		j.recordsMu.Lock()
		defer j.recordsMu.Unlock()
		delete(j.records, id)
	}
}

// RunOnce refetches every registered record once. Failures are logged and
// returned joined; one failing record does not stop the others.
func (j *RefetchJob) RunOnce(ctx context.Context) error {
	j.recordsMu.Lock()
	records := make([]Refetcher, 0, len(j.records))
	for _, r := range j.records {
		records = append(records, r)
	}
	j.recordsMu.Unlock()

	var errs []error
	for _, r := range records {
		if err := r.Refetch(ctx); err != nil {
			j.logger.Warn().Err(err).Msg("refetch failed")
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// Start implements [Worker]. It stops any previously running loop, then
// launches a goroutine that calls RunOnce every interval. The goroutine exits
// when ctx is cancelled or Stop is called.
func (j *RefetchJob) Start(ctx context.Context) {
	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(j.interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				_ = j.RunOnce(jobCtx)
			}
		}
	}()
}

// Stop implements [Worker]. It cancels the loop and blocks until it has
// exited. Safe to call when the job is not running.
func (j *RefetchJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
