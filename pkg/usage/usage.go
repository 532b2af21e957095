// Package usage aggregates platform counters into point-in-time reports.
package usage

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/aihub/hubadmin/pkg/models"
	"github.com/aihub/hubadmin/pkg/persistence"
)

// Reporter builds usage reports by counting the stored entities.
type Reporter struct {
	persistence persistence.Persistence
}

func NewReporter(persistence persistence.Persistence) *Reporter {
	return &Reporter{persistence: persistence}
}

// Report counts every metric and returns the snapshot. The counter map
// always holds all nine metrics, zero-valued when empty.
func (r *Reporter) Report(ctx context.Context) (*models.UsageReport, error) {
	counters := make(map[models.UsageMetric]int64, len(models.UsageMetrics()))

	providers, err := r.persistence.Providers().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count providers: %w", err)
	}

	for _, provider := range providers {
		if provider.Enabled {
			counters[models.MetricActiveProviders]++
		}
	}

	clients, err := r.persistence.OAuthClients().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count oauth clients: %w", err)
	}

	counters[models.MetricOAuthClients] = int64(len(clients))

	sources, err := r.persistence.Sources().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count sources: %w", err)
	}

	counters[models.MetricSources] = int64(len(sources))

	workflows, err := r.persistence.Workflows().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count workflows: %w", err)
	}

	counters[models.MetricWorkflows] = int64(len(workflows))

	total, err := r.countExecutions(ctx, nil)
	if err != nil {
		return nil, err
	}

	counters[models.MetricExecutionsTotal] = total

	completed := models.ExecutionStatusCompleted

	counters[models.MetricExecutionsCompleted], err = r.countExecutions(ctx, &completed)
	if err != nil {
		return nil, err
	}

	failed := models.ExecutionStatusFailed

	counters[models.MetricExecutionsFailed], err = r.countExecutions(ctx, &failed)
	if err != nil {
		return nil, err
	}

	skills, err := r.persistence.Skills().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count skills: %w", err)
	}

	counters[models.MetricSkills] = int64(len(skills))

	links, err := r.persistence.ShortLinks().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count short links: %w", err)
	}

	counters[models.MetricShortLinks] = int64(len(links))

	for _, metric := range models.UsageMetrics() {
		if _, ok := counters[metric]; !ok {
			counters[metric] = 0
		}
	}

	return &models.UsageReport{
		GeneratedAt: time.Now().UTC(),
		Counters:    counters,
	}, nil
}

func (r *Reporter) countExecutions(ctx context.Context, status *models.ExecutionStatus) (int64, error) {
	result, err := r.persistence.Executions().List(ctx, persistence.ListExecutionsOptions{
		Status: status,
		Limit:  1,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count executions: %w", err)
	}

	return result.TotalCount, nil
}

// WriteCSV renders a report as CSV: a header line followed by one line per
// metric, in the fixed metric order.
func WriteCSV(w io.Writer, report *models.UsageReport) error {
	writer := csv.NewWriter(w)

	if err := writer.Write([]string{"metric", "value"}); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, metric := range models.UsageMetrics() {
		record := []string{string(metric), strconv.FormatInt(report.Counters[metric], 10)}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	writer.Flush()

	return writer.Error()
}

// WriteJSON renders a report as indented JSON.
func WriteJSON(w io.Writer, report *models.UsageReport) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	return encoder.Encode(report)
}
