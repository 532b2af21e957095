package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/aihub/hubadmin/pkg/models"
)

// ExecutionsPage is one page of the execution projection listing.
type ExecutionsPage struct {
	Executions  []*models.WorkflowExecution `json:"executions"`
	TotalCount  int64                       `json:"total_count"`
	HasNextPage bool                        `json:"has_next_page"`
}

// ListExecutionsOptions filters and pages ListExecutions.
type ListExecutionsOptions struct {
	WorkflowID string
	Status     string
	Limit      int
	Offset     int
}

func (c *Client) ListExecutions(ctx context.Context, opts ListExecutionsOptions) (*ExecutionsPage, error) {
	query := url.Values{}

	if opts.WorkflowID != "" {
		query.Set("workflow_id", opts.WorkflowID)
	}

	if opts.Status != "" {
		query.Set("status", opts.Status)
	}

	if opts.Limit > 0 {
		query.Set("limit", strconv.Itoa(opts.Limit))
	}

	if opts.Offset > 0 {
		query.Set("offset", strconv.Itoa(opts.Offset))
	}

	path := "/admin/executions"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var page ExecutionsPage
	if err := c.do(ctx, http.MethodGet, path, nil, &page); err != nil {
		return nil, err
	}

	return &page, nil
}

func (c *Client) GetExecution(ctx context.Context, id string) (*models.WorkflowExecution, error) {
	var execution models.WorkflowExecution
	if err := c.do(ctx, http.MethodGet, "/admin/executions/"+id, nil, &execution); err != nil {
		return nil, err
	}

	return &execution, nil
}

func (c *Client) CancelExecution(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/admin/executions/"+id+"/cancel", nil, nil)
}

func (c *Client) GetConfig(ctx context.Context) (*models.PlatformConfig, error) {
	var config models.PlatformConfig
	if err := c.do(ctx, http.MethodGet, "/admin/config", nil, &config); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Client) SetLogLevel(ctx context.Context, level string) (*models.PlatformConfig, error) {
	var config models.PlatformConfig

	body := map[string]string{"level": level}
	if err := c.do(ctx, http.MethodPut, "/admin/config/logging", body, &config); err != nil {
		return nil, err
	}

	return &config, nil
}

// DebugLog fetches the buffered debug entries, newest first.
func (c *Client) DebugLog(ctx context.Context, provider string) ([]models.DebugLogEntry, error) {
	path := "/admin/auth/debug"
	if provider != "" {
		path += "?provider=" + url.QueryEscape(provider)
	}

	var entries []models.DebugLogEntry
	if err := c.do(ctx, http.MethodGet, path, nil, &entries); err != nil {
		return nil, err
	}

	return entries, nil
}

func (c *Client) ClearDebugLog(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/admin/auth/debug", nil, nil)
}

// DebugStreamURL is the SSE endpoint the stream consumer connects to.
func (c *Client) DebugStreamURL(provider string) string {
	streamURL := c.baseURL + "/admin/auth/debug/stream"
	if provider != "" {
		streamURL += "?provider=" + url.QueryEscape(provider)
	}

	return streamURL
}

// ExportBackup downloads the backup archive into w.
func (c *Client) ExportBackup(ctx context.Context, w io.Writer) error {
	resp, err := c.doRaw(ctx, http.MethodGet, "/admin/system/backup", "", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if _, err := io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("failed to download backup: %w", err)
	}

	return nil
}

// ImportBackup uploads a backup archive for restore.
func (c *Client) ImportBackup(ctx context.Context, archive io.Reader) error {
	resp, err := c.doRaw(ctx, http.MethodPost, "/admin/system/backup", "application/zip", archive)
	if err != nil {
		return err
	}

	return resp.Body.Close()
}

func (c *Client) UsageReport(ctx context.Context) (*models.UsageReport, error) {
	var report models.UsageReport
	if err := c.do(ctx, http.MethodGet, "/admin/usage", nil, &report); err != nil {
		return nil, err
	}

	return &report, nil
}
