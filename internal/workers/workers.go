package workers

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-health-share/internal/config"
	"github.com/MKhiriev/go-health-share/internal/logger"
	"github.com/MKhiriev/go-health-share/internal/store"
)

type Workers struct {
	workers []Worker
}

// NewWorkers builds the workers the storages need. The OTP janitor is only
// started when challenges are kept in process memory; Redis expires them on
// its own.
func NewWorkers(storages *store.Storages, cfg config.Workers, log *logger.Logger) *Workers {
	w := &Workers{}

	if mem := storages.MemoryOTPStore(); mem != nil {
		w.workers = append(w.workers, NewOTPJanitor(mem, cfg.OTPJanitorInterval, log))
	}

	return w
}

// Run starts every worker and blocks until all of them returned.
func (w *Workers) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for _, worker := range w.workers {
		wg.Go(func() {
			worker.Run(ctx)
		})
	}
	wg.Wait()
}

// Len returns the number of registered workers.
func (w *Workers) Len() int {
	return len(w.workers)
}
