package metrics

import (
	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder on a prometheus Registerer.
type PrometheusRecorder struct {
	groupingsBuilt   *prom.CounterVec
	groupsCreated    *prom.CounterVec
	resourcesMatched *prom.CounterVec
}

// NewPrometheusRecorder creates and registers the grouping build metrics.
func NewPrometheusRecorder(reg prom.Registerer) *PrometheusRecorder {
	r := &PrometheusRecorder{
		groupingsBuilt: prom.NewCounterVec(prom.CounterOpts{
			Name: "sitegrouper_groupings_built_total",
			Help: "Number of grouping trees constructed, by grouping name.",
		}, []string{"grouping"}),
		groupsCreated: prom.NewCounterVec(prom.CounterOpts{
			Name: "sitegrouper_groups_created_total",
			Help: "Number of groups created across grouping constructions.",
		}, []string{"grouping"}),
		resourcesMatched: prom.NewCounterVec(prom.CounterOpts{
			Name: "sitegrouper_resources_matched_total",
			Help: "Number of resources matched to groups during traversal queries.",
		}, []string{"grouping", "group"}),
	}
	reg.MustRegister(r.groupingsBuilt, r.groupsCreated, r.resourcesMatched)
	return r
}

func (r *PrometheusRecorder) GroupingBuilt(grouping string, groups int) {
	r.groupingsBuilt.WithLabelValues(grouping).Inc()
	r.groupsCreated.WithLabelValues(grouping).Add(float64(groups))
}

func (r *PrometheusRecorder) ResourcesMatched(grouping, group string, n int) {
	r.resourcesMatched.WithLabelValues(grouping, group).Add(float64(n))
}
