// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"

	"github.com/MKhiriev/go-health-share/models"
)

// Client defines the minimal lifecycle contract for runnable client
// applications.
type Client interface {
	// Run starts the client application and blocks until exit or until ctx
	// is cancelled.
	Run(ctx context.Context) error
}

// UI is the set of terminal flows the client drives.
type UI interface {
	LoginFlow(ctx context.Context) (models.OwnerSession, error)
	OwnerLoop(ctx context.Context, session models.OwnerSession) (logout bool, err error)
	ShareFlow(ctx context.Context, handle string) error
	EmergencyFlow(ctx context.Context, handle, token string) error
}
