// Package server runs the transports of the share backend.
//
// It starts the HTTP and gRPC listeners together with the background
// workers and shuts all of them down when the process receives a stop
// signal.
package server
