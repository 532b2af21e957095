package models

import "time"

// UsageMetric names one counter of the usage report. The metric list is
// fixed: exports always carry exactly these nine rows.
type UsageMetric string

const (
	MetricActiveProviders     UsageMetric = "active_providers"
	MetricOAuthClients        UsageMetric = "oauth_clients"
	MetricSources             UsageMetric = "sources"
	MetricWorkflows           UsageMetric = "workflows"
	MetricExecutionsTotal     UsageMetric = "executions_total"
	MetricExecutionsCompleted UsageMetric = "executions_completed"
	MetricExecutionsFailed    UsageMetric = "executions_failed"
	MetricSkills              UsageMetric = "skills"
	MetricShortLinks          UsageMetric = "short_links"
)

// UsageMetrics returns the fixed metric list in report order.
func UsageMetrics() []UsageMetric {
	return []UsageMetric{
		MetricActiveProviders,
		MetricOAuthClients,
		MetricSources,
		MetricWorkflows,
		MetricExecutionsTotal,
		MetricExecutionsCompleted,
		MetricExecutionsFailed,
		MetricSkills,
		MetricShortLinks,
	}
}

// UsageReport is a point-in-time snapshot of the platform counters.
type UsageReport struct {
	GeneratedAt time.Time             `json:"generated_at"`
	Counters    map[UsageMetric]int64 `json:"counters"`
}
