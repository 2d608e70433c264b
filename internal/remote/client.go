package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/jackdzi/informs/internal/metrics"
	"github.com/jackdzi/informs/internal/models"
	"github.com/jackdzi/informs/pkg/config"
	appErrors "github.com/jackdzi/informs/pkg/errors"
)

// Client is a typed HTTP client for the upstream scheduling API. The
// upstream owns conflict detection, capacity analysis and persistence; this
// client only moves payloads.
type Client struct {
	base    string
	http    *http.Client
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// NewClient constructs a Client against the configured upstream.
func NewClient(cfg config.UpstreamConfig, logger *zap.Logger, m *metrics.Metrics) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		base:    cfg.BaseURL,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
		metrics: m,
	}
}

// DetailedSchedules lists every assignment of one version with exam, room
// and timeslot populated or null.
func (c *Client) DetailedSchedules(ctx context.Context, versionID int) ([]models.Assignment, error) {
	var out []models.Assignment
	if err := c.get(ctx, "detailed_schedules", "/schedules/detailed", versionQuery(versionID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Timeslots lists the version-independent timeslot grid.
func (c *Client) Timeslots(ctx context.Context) ([]models.TimeSlot, error) {
	var out []models.TimeSlot
	if err := c.get(ctx, "timeslots", "/schedules/timeslots", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Conflicts lists the upstream-computed conflicts of one version.
func (c *Client) Conflicts(ctx context.Context, versionID int) ([]models.Conflict, error) {
	var out struct {
		Conflicts []models.Conflict `json:"conflicts"`
	}
	if err := c.get(ctx, "conflicts", "/schedules/conflicts", versionQuery(versionID), &out); err != nil {
		return nil, err
	}
	return out.Conflicts, nil
}

// AnalyticsSnapshot fetches the analytics summary of one version.
func (c *Client) AnalyticsSnapshot(ctx context.Context, versionID int) (*models.Analytics, error) {
	var out models.Analytics
	if err := c.get(ctx, "analytics", "/schedules/analytics", versionQuery(versionID), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Students lists the version-independent student roster.
func (c *Client) Students(ctx context.Context) ([]models.StudentInfo, error) {
	var out []models.StudentInfo
	if err := c.get(ctx, "students", "/schedules/students", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// StudentSchedule fetches one student's personal assignments for a version.
func (c *Client) StudentSchedule(ctx context.Context, studentID, versionID int) ([]models.Assignment, error) {
	var out struct {
		Schedules []models.Assignment `json:"schedules"`
	}
	path := fmt.Sprintf("/schedules/students/%d/schedule", studentID)
	if err := c.get(ctx, "student_schedule", path, versionQuery(versionID), &out); err != nil {
		return nil, err
	}
	return out.Schedules, nil
}

// Reschedule writes the full target state of one assignment.
func (c *Client) Reschedule(ctx context.Context, assignmentID int, w models.ScheduleWrite) error {
	path := fmt.Sprintf("/schedules/%d", assignmentID)
	return c.send(ctx, "reschedule", http.MethodPut, path, w, nil)
}

// BulkSave commits the whole board in one write.
func (c *Client) BulkSave(ctx context.Context, writes []models.ScheduleWrite) error {
	return c.send(ctx, "bulk_save", http.MethodPut, "/schedules/bulk", writes, nil)
}

// Versions lists all schedule versions.
func (c *Client) Versions(ctx context.Context) ([]models.ScheduleVersion, error) {
	var out []models.ScheduleVersion
	if err := c.get(ctx, "versions", "/schedules/versions", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateVersion creates an empty named version.
func (c *Client) CreateVersion(ctx context.Context, name string) (*models.ScheduleVersion, error) {
	var out models.ScheduleVersion
	body := map[string]string{"name": name}
	if err := c.send(ctx, "create_version", http.MethodPost, "/schedules/versions", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DuplicateVersion copies an existing version under a new name.
func (c *Client) DuplicateVersion(ctx context.Context, id int, name string) (*models.ScheduleVersion, error) {
	var out models.ScheduleVersion
	path := fmt.Sprintf("/schedules/versions/%d/duplicate", id)
	body := map[string]string{"name": name}
	if err := c.send(ctx, "duplicate_version", http.MethodPost, path, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteVersion removes a version. The upstream rejects deleting the last
// remaining one.
func (c *Client) DeleteVersion(ctx context.Context, id int) error {
	path := fmt.Sprintf("/schedules/versions/%d", id)
	return c.send(ctx, "delete_version", http.MethodDelete, path, nil, nil)
}

func (c *Client) get(ctx context.Context, operation, path string, query url.Values, dest interface{}) error {
	target := c.base + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "build upstream request")
	}
	return c.do(operation, req, dest)
}

func (c *Client) send(ctx context.Context, operation, method, path string, body, dest interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "encode upstream payload")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "build upstream request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(operation, req, dest)
}

func (c *Client) do(operation string, req *http.Request, dest interface{}) error {
	start := time.Now()
	resp, err := c.http.Do(req)
	c.metrics.ObserveUpstream(operation, time.Since(start))

	if err != nil {
		c.logger.Warn("upstream request failed",
			zap.String("operation", operation),
			zap.String("url", req.URL.String()),
			zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "upstream request failed")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Drain so the transport can reuse the connection.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		c.logger.Warn("upstream returned failure status",
			zap.String("operation", operation),
			zap.Int("status", resp.StatusCode))
		if resp.StatusCode == http.StatusNotFound {
			return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("upstream %s: not found", operation))
		}
		return appErrors.Clone(appErrors.ErrUpstream, fmt.Sprintf("upstream %s: status %d", operation, resp.StatusCode))
	}

	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "decode upstream response")
	}
	return nil
}

func versionQuery(versionID int) url.Values {
	q := url.Values{}
	q.Set("version_id", strconv.Itoa(versionID))
	return q
}
