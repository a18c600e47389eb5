package grouper

import (
	"context"
	"log/slog"
	"sort"

	"git.home.luguber.info/inful/sitegrouper/internal/config"
	"git.home.luguber.info/inful/sitegrouper/internal/logfields"
	"git.home.luguber.info/inful/sitegrouper/internal/metrics"
	"git.home.luguber.info/inful/sitegrouper/internal/plugin"
)

// Hook is the grouper lifecycle plugin. On begin-site it constructs one root
// group per configured grouping and publishes them in the grouper registry.
type Hook struct {
	registry *Registry
	caps     *Capabilities
	recorder metrics.Recorder
}

// NewHook creates the hook wired to the process-wide registries.
func NewHook() *Hook {
	return &Hook{
		registry: DefaultRegistry(),
		caps:     DefaultCapabilities(),
		recorder: metrics.NoopRecorder{},
	}
}

// WithRegistry overrides the target grouper registry (fluent helper).
func (h *Hook) WithRegistry(r *Registry) *Hook { h.registry = r; return h }

// WithCapabilities overrides the target capability table (fluent helper).
func (h *Hook) WithCapabilities(c *Capabilities) *Hook { h.caps = c; return h }

// WithRecorder overrides the metrics recorder (fluent helper).
func (h *Hook) WithRecorder(rec metrics.Recorder) *Hook { h.recorder = rec; return h }

// Registry returns the registry this hook publishes to.
func (h *Hook) Registry() *Registry { return h.registry }

// Capabilities returns the capability table this hook registers into.
func (h *Hook) Capabilities() *Capabilities { return h.caps }

func (h *Hook) Metadata() plugin.Metadata {
	return plugin.Metadata{
		Name:        "grouper",
		Version:     "v1.0.0",
		Description: "Groups site resources into arbitrary configured hierarchies",
	}
}

// BeginSite constructs the configured grouping trees.
//
// A configuration without a grouper section leaves the plugin inactive.
// Existing registry entries are overwritten per key; keys removed from the
// configuration are left in place.
func (h *Hook) BeginSite(_ context.Context, pctx *plugin.Context) error {
	if pctx == nil || pctx.Config == nil || len(pctx.Config.Grouper) == 0 {
		slog.Debug("No grouper configuration, plugin inactive")
		return nil
	}

	// Deterministic construction order so capability overwrites are stable.
	names := make([]string, 0, len(pctx.Config.Grouper))
	for name := range pctx.Config.Grouper {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		spec := pctx.Config.Grouper[name]
		if spec == nil {
			spec = &config.GroupingSpec{}
		}
		spec.Name = name

		root := NewGroupWith(h.caps, spec)
		h.registry.Set(name, root)

		count := 0
		for range root.WalkGroups() {
			count++
		}
		h.recorder.GroupingBuilt(name, count)
		slog.Info("Constructed grouping", logfields.Grouping(name), logfields.Count(count))
	}
	return nil
}
