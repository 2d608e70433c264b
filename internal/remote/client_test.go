package remote

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jackdzi/informs/internal/models"
	"github.com/jackdzi/informs/pkg/config"
	appErrors "github.com/jackdzi/informs/pkg/errors"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(config.UpstreamConfig{BaseURL: srv.URL, Timeout: 2 * time.Second}, nil, nil)
}

func TestClientDetailedSchedules(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/schedules/detailed", r.URL.Path)
		assert.Equal(t, "3", r.URL.Query().Get("version_id"))
		_ = json.NewEncoder(w).Encode([]models.Assignment{
			{ID: 10, Exam: &models.Exam{ID: 100, CourseName: "MATH 101"}},
		})
	})

	assignments, err := client.DetailedSchedules(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, assignments, 1)
	assert.Equal(t, 10, assignments[0].ID)
	assert.Equal(t, "MATH 101", assignments[0].Exam.CourseName)
}

func TestClientConflictsUnwrapsEnvelope(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/schedules/conflicts", r.URL.Path)
		_, _ = w.Write([]byte(`{"conflicts":[{"student":{"id":1},"timeslot":{"id":2},"exams":[]}]}`))
	})

	conflicts, err := client.Conflicts(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, conflicts, 1)
	assert.Equal(t, 1, conflicts[0].Student.ID)
	assert.Equal(t, 2, conflicts[0].Timeslot.ID)
}

func TestClientStudentScheduleUnwrapsEnvelope(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/schedules/students/7/schedule", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("version_id"))
		_, _ = w.Write([]byte(`{"schedules":[{"id":10}]}`))
	})

	schedules, err := client.StudentSchedule(context.Background(), 7, 2)
	require.NoError(t, err)
	require.Len(t, schedules, 1)
	assert.Equal(t, 10, schedules[0].ID)
}

func TestClientReschedulePayload(t *testing.T) {
	var got models.ScheduleWrite
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/schedules/10", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	})

	err := client.Reschedule(context.Background(), 10, models.ScheduleWrite{ExamID: 100, RoomID: 200, TimeslotID: 2})
	require.NoError(t, err)
	assert.Equal(t, models.ScheduleWrite{ExamID: 100, RoomID: 200, TimeslotID: 2}, got)
}

func TestClientBulkSave(t *testing.T) {
	var got []models.ScheduleWrite
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/schedules/bulk", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
	})

	writes := []models.ScheduleWrite{
		{ExamID: 100, RoomID: 200, TimeslotID: 1},
		{ExamID: 101, RoomID: 201, TimeslotID: 2},
	}
	require.NoError(t, client.BulkSave(context.Background(), writes))
	assert.Equal(t, writes, got)
}

func TestClientVersionLifecycle(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/schedules/versions":
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "what-if", body["name"])
			_ = json.NewEncoder(w).Encode(models.ScheduleVersion{ID: 5, Name: "what-if"})
		case r.Method == http.MethodPost && r.URL.Path == "/schedules/versions/5/duplicate":
			_ = json.NewEncoder(w).Encode(models.ScheduleVersion{ID: 6, Name: "copy"})
		case r.Method == http.MethodDelete && r.URL.Path == "/schedules/versions/6":
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	})

	created, err := client.CreateVersion(context.Background(), "what-if")
	require.NoError(t, err)
	assert.Equal(t, 5, created.ID)

	copied, err := client.DuplicateVersion(context.Background(), 5, "copy")
	require.NoError(t, err)
	assert.Equal(t, 6, copied.ID)

	require.NoError(t, client.DeleteVersion(context.Background(), 6))
}

func TestClientNotFound(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.AnalyticsSnapshot(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))
}

func TestClientUpstreamFailureStatus(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.Versions(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrUpstream))
}

func TestClientMalformedResponse(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	})

	_, err := client.Timeslots(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrUpstream))
}

func TestClientConnectionRefused(t *testing.T) {
	client := NewClient(config.UpstreamConfig{BaseURL: "http://127.0.0.1:1", Timeout: 200 * time.Millisecond}, nil, nil)

	_, err := client.Students(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrUpstream))
}
