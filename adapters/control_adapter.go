// Package adapters
// Author: momentics <momentics@gmail.com>
//
// Control adapter implementing api.Control using control package primitives,
// publishing ring counters into the metrics registry.

package adapters

import (
	"github.com/momentics/hioload-ring/api"
	"github.com/momentics/hioload-ring/control"
	"github.com/momentics/hioload-ring/core/ring"
)

type ControlAdapter struct {
	config  *control.ConfigStore
	metrics *control.MetricsRegistry

	rings map[string]*ring.Stats
}

// NewControlAdapter creates an adapter with empty config and metrics.
func NewControlAdapter() *ControlAdapter {
	return &ControlAdapter{
		config:  control.NewConfigStore(),
		metrics: control.NewMetricsRegistry(),
		rings:   make(map[string]*ring.Stats),
	}
}

// Ensure compile-time interface compliance.
var _ api.Control = (*ControlAdapter)(nil)

// TrackRing registers a ring's counters for publication under prefix.
func (c *ControlAdapter) TrackRing(prefix string, s *ring.Stats) {
	c.rings[prefix] = s
}

func (c *ControlAdapter) GetConfig() map[string]any {
	return c.config.GetSnapshot()
}

func (c *ControlAdapter) SetConfig(cfg map[string]any) error {
	c.config.SetConfig(cfg)
	return nil
}

// Stats refreshes tracked ring counters and returns the combined snapshot.
func (c *ControlAdapter) Stats() map[string]any {
	for prefix, s := range c.rings {
		c.metrics.SetRingStats(prefix, s)
	}
	return c.metrics.GetSnapshot()
}

func (c *ControlAdapter) OnReload(fn func()) {
	c.config.OnReload(fn)
}

// SetMetric sets an arbitrary metric key.
func (c *ControlAdapter) SetMetric(key string, value any) {
	c.metrics.Set(key, value)
}
