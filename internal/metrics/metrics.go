// Package metrics provides build observability for grouping construction.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so metrics collection is zero-cost until a real recorder is
// wired in (see PrometheusRecorder).
package metrics

// Recorder defines the grouping build metrics operations.
type Recorder interface {
	// GroupingBuilt records one constructed grouping tree and its group count.
	GroupingBuilt(grouping string, groups int)

	// ResourcesMatched records the number of resources matched for a group
	// during a traversal query.
	ResourcesMatched(grouping, group string, n int)
}

// NoopRecorder is the default Recorder; every method is a no-op.
type NoopRecorder struct{}

func (NoopRecorder) GroupingBuilt(string, int) {}

func (NoopRecorder) ResourcesMatched(string, string, int) {}
