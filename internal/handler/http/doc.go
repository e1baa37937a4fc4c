// Package http implements the REST transport of the reference backend.
//
// It exposes the visitor endpoints under /api/public, the owner endpoints
// under /api/auth, /api/profile and /api/emergency, the version endpoint and
// the Prometheus scrape endpoint. Every JSON answer is a [models.Envelope];
// a profile that needs a challenge answers 401 with requiresAuth set.
// Tracing, access logging, metrics, compression and authentication are
// applied as middleware before requests reach the service layer.
package http
