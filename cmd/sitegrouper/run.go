package main

import (
	"context"
	"fmt"
	"os"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/sitegrouper/internal/config"
	"git.home.luguber.info/inful/sitegrouper/internal/grouper"
	"git.home.luguber.info/inful/sitegrouper/internal/metrics"
	"git.home.luguber.info/inful/sitegrouper/internal/plugin"
	"git.home.luguber.info/inful/sitegrouper/internal/site"
	"git.home.luguber.info/inful/sitegrouper/internal/source"
)

// build loads configuration and content, then runs the begin-site hooks so
// the grouper registry and capability table are populated.
func build(ctx context.Context, buildID string, rec metrics.Recorder) (*site.Site, *grouper.Hook, func(), error) {
	cfg, err := config.Load(CLI.Config)
	if err != nil {
		return nil, nil, nil, err
	}

	dir, cleanup, err := source.Fetch(ctx, cfg.Content)
	if err != nil {
		return nil, nil, nil, err
	}

	s, err := site.Load(dir)
	if err != nil {
		cleanup()
		return nil, nil, nil, err
	}

	hook := grouper.NewHook().
		WithRegistry(grouper.NewRegistry()).
		WithCapabilities(grouper.NewCapabilities()).
		WithRecorder(rec)

	registry := plugin.NewRegistry()
	if err := registry.Register(hook); err != nil {
		cleanup()
		return nil, nil, nil, err
	}
	pctx := &plugin.Context{Config: cfg, Site: s, BuildID: buildID}
	if err := registry.RunBeginSite(ctx, pctx); err != nil {
		cleanup()
		return nil, nil, nil, err
	}
	return s, hook, cleanup, nil
}

func resolveNode(s *site.Site, relPath string) (*site.Node, error) {
	node := s.NodeAt(relPath)
	if node == nil {
		return nil, fmt.Errorf("no such node in content tree: %s", relPath)
	}
	return node, nil
}

func runGroups(ctx context.Context, buildID, nodePath string, printMetrics bool) error {
	promReg := prom.NewRegistry()
	rec := metrics.NewPrometheusRecorder(promReg)

	s, hook, cleanup, err := build(ctx, buildID, rec)
	if err != nil {
		return err
	}
	defer cleanup()

	node, err := resolveNode(s, nodePath)
	if err != nil {
		return err
	}
	gnode := grouper.NodeOf(node)

	for _, grouping := range hook.Registry().Names() {
		fmt.Printf("%s:\n", grouping)
		groups, err := hook.Capabilities().WalkGroups(grouping, gnode)
		if err != nil {
			return err
		}
		for g := range groups {
			count := 0
			for range g.ListResources(gnode) {
				count++
			}
			rec.ResourcesMatched(grouping, g.Name, count)
			if g.Description != "" {
				fmt.Printf("  %s (%d) - %s\n", g.Name, count, g.Description)
			} else {
				fmt.Printf("  %s (%d)\n", g.Name, count)
			}
		}
	}

	if printMetrics {
		return dumpMetrics(promReg)
	}
	return nil
}

func runResources(ctx context.Context, buildID, grouping, nodePath string) error {
	s, hook, cleanup, err := build(ctx, buildID, metrics.NoopRecorder{})
	if err != nil {
		return err
	}
	defer cleanup()

	node, err := resolveNode(s, nodePath)
	if err != nil {
		return err
	}

	resources, err := hook.Capabilities().WalkResourcesGroupedBy(grouping, grouper.NodeOf(node))
	if err != nil {
		return err
	}
	for r := range resources {
		res := r.(*site.Resource)
		fmt.Printf("%s\t%s\n", res.RelPath, res.Title)
	}
	return nil
}

// dumpMetrics prints gathered counter values, one per line.
func dumpMetrics(g prom.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := ""
			for _, lp := range m.GetLabel() {
				labels += fmt.Sprintf(" %s=%s", lp.GetName(), lp.GetValue())
			}
			fmt.Fprintf(os.Stderr, "%s%s %v\n", mf.GetName(), labels, m.GetCounter().GetValue())
		}
	}
	return nil
}
