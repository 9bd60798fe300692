package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/matchday-sync/internal/domain/snapshot"
	"github.com/riskibarqy/matchday-sync/internal/platform/logging"
	"github.com/riskibarqy/matchday-sync/internal/usecase"
)

type stubSyncReader struct {
	snapshots map[snapshot.DaySlot]snapshot.DaySnapshot
	status    usecase.SyncStatus
	err       error
}

func (s stubSyncReader) Snapshot(_ context.Context, slot snapshot.DaySlot) (snapshot.DaySnapshot, error) {
	if s.err != nil {
		return snapshot.DaySnapshot{}, s.err
	}
	snap, ok := s.snapshots[slot]
	if !ok {
		return snapshot.DaySnapshot{}, fmt.Errorf("%w: snapshot %s", usecase.ErrNotFound, slot)
	}
	return snap, nil
}

func (s stubSyncReader) Status(context.Context) (usecase.SyncStatus, error) {
	return s.status, s.err
}

type recordingJobRunner struct {
	inputs []usecase.JobSyncInput
	result usecase.JobSyncResult
	err    error
}

func (r *recordingJobRunner) RunSync(_ context.Context, input usecase.JobSyncInput) (usecase.JobSyncResult, error) {
	r.inputs = append(r.inputs, input)
	return r.result, r.err
}

func newTestRouter(reader SyncReader, jobs JobRunner) http.Handler {
	handler := NewHandler(reader, jobs, logging.NewNop())
	return NewRouter(handler, logging.NewNop(), "matchday-sync-test", []string{"*"}, "secret")
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	return body
}

func TestGetMatchesBySlot(t *testing.T) {
	t.Parallel()

	reader := stubSyncReader{snapshots: map[snapshot.DaySlot]snapshot.DaySnapshot{
		snapshot.SlotToday: {Slot: snapshot.SlotToday, Date: "2026-10-17"},
	}}
	router := newTestRouter(reader, &recordingJobRunner{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/matches/Today", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	data, _ := decodeEnvelope(t, rec)["data"].(map[string]any)
	if data["date"] != "2026-10-17" || data["slot"] != "today" {
		t.Fatalf("unexpected snapshot payload: %v", data)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/matches/tomorrow", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing snapshot: expected 404, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/matches/next-week", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown slot: expected 400, got %d", rec.Code)
	}
}

func TestGetSyncStatus_StoreFailure(t *testing.T) {
	t.Parallel()

	router := newTestRouter(stubSyncReader{err: errors.New("connection reset")}, &recordingJobRunner{})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/sync/status", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestRunSyncJob_RequiresToken(t *testing.T) {
	t.Parallel()

	jobs := &recordingJobRunner{}
	router := newTestRouter(stubSyncReader{}, jobs)

	req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/sync", nil)
	req.Header.Set(internalJobTokenHeader, "wrong")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if len(jobs.inputs) != 0 {
		t.Fatalf("job must not run without a valid token")
	}
}

func TestRunSyncJob_PassesPayload(t *testing.T) {
	t.Parallel()

	jobs := &recordingJobRunner{result: usecase.JobSyncResult{Enqueued: true, NextDelay: "2m0s"}}
	router := newTestRouter(stubSyncReader{}, jobs)

	req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/sync", strings.NewReader(`{"reason":"cron","dispatch_id":"sync-1","no_enqueue":true}`))
	req.Header.Set(internalJobTokenHeader, "secret")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if len(jobs.inputs) != 1 {
		t.Fatalf("expected one run, got %d", len(jobs.inputs))
	}
	got := jobs.inputs[0]
	if got.Reason != "cron" || got.DispatchID != "sync-1" || !got.NoEnqueue {
		t.Fatalf("unexpected job input %+v", got)
	}
}

func TestRunSyncJob_EmptyBodyGetsDispatchID(t *testing.T) {
	t.Parallel()

	jobs := &recordingJobRunner{}
	router := newTestRouter(stubSyncReader{}, jobs)

	req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/sync", http.NoBody)
	req.Header.Set(internalJobTokenHeader, "secret")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(jobs.inputs) != 1 || !strings.HasPrefix(jobs.inputs[0].DispatchID, "manual-sync-") {
		t.Fatalf("expected generated dispatch id, got %+v", jobs.inputs)
	}
}

func TestRunSyncJob_RejectsBadPayload(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"unknown field": `{"league_id":"39"}`,
		"too long":      `{"reason":"` + strings.Repeat("x", 65) + `"}`,
		"long dispatch": `{"dispatch_id":"` + strings.Repeat("d", 129) + `"}`,
		"not json":      `{`,
	}
	for name, body := range cases {
		jobs := &recordingJobRunner{}
		router := newTestRouter(stubSyncReader{}, jobs)

		req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/sync", strings.NewReader(body))
		req.Header.Set(internalJobTokenHeader, "secret")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", name, rec.Code)
		}
		if len(jobs.inputs) != 0 {
			t.Fatalf("%s: job must not run", name)
		}
	}
}

func TestRunSyncJob_RunFailureMapsError(t *testing.T) {
	t.Parallel()

	jobs := &recordingJobRunner{err: fmt.Errorf("fetch fixtures: %w", usecase.ErrDependencyUnavailable)}
	router := newTestRouter(stubSyncReader{}, jobs)

	req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/sync", http.NoBody)
	req.Header.Set(internalJobTokenHeader, "secret")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestResolveClientIP(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	if got := resolveClientIP(req); got != "203.0.113.9" {
		t.Fatalf("unexpected client ip %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.RemoteAddr = "192.0.2.4:5555"
	if got := resolveClientIP(req); got != "192.0.2.4" {
		t.Fatalf("unexpected client ip %q", got)
	}
}
