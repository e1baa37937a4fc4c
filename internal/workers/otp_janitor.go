// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-health-share/internal/logger"
)

// OTPJanitor periodically purges expired one-time-code challenges.
type OTPJanitor struct {
	store    Purger
	interval time.Duration
	now      func() time.Time

	logger *logger.Logger
}

func NewOTPJanitor(store Purger, interval time.Duration, log *logger.Logger) *OTPJanitor {
	return &OTPJanitor{
		store:    store,
		interval: interval,
		now:      time.Now,
		logger:   log,
	}
}

// Run purges once per interval until ctx is done.
func (j *OTPJanitor) Run(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	j.logger.Info().Dur("interval", j.interval).Msg("otp janitor started")

	for {
		select {
		case <-ctx.Done():
			j.logger.Info().Msg("otp janitor stopped")
			return
		case <-ticker.C:
			j.purge()
		}
	}
}

func (j *OTPJanitor) purge() {
	if n := j.store.Purge(j.now()); n > 0 {
		j.logger.Debug().Int("purged", n).Msg("expired otp challenges removed")
	}
}
