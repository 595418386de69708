// Package control
// Author: momentics <momentics@gmail.com>
//
// Runtime configuration and metrics layer for ring deployments.
//
// Provides concurrent-safe state handling primitives including:
//   - Immutable snapshot config reads and atomic updates
//   - Runtime observers for hot-reload
//   - Ring counter publication into a metrics registry
package control
