package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/matchday-sync/internal/usecase"
)

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	if got, _ := body["apiVersion"].(string); got != "2.0" {
		t.Fatalf("expected apiVersion=2.0, got %v", body["apiVersion"])
	}
	return body
}

func TestWriteSuccess_Envelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSuccess(context.Background(), rec, http.StatusOK, map[string]string{"status": "ok"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if _, ok := body["data"]; !ok {
		t.Fatalf("expected data key in success response")
	}
	if _, ok := body["error"]; ok {
		t.Fatalf("did not expect error key in success response")
	}
}

func TestWriteError_MappedStatuses(t *testing.T) {
	cases := []struct {
		err        error
		wantCode   int
		wantStatus string
	}{
		{fmt.Errorf("%w: bad payload", usecase.ErrInvalidInput), http.StatusBadRequest, "INVALID_ARGUMENT"},
		{fmt.Errorf("%w: snapshot today", usecase.ErrNotFound), http.StatusNotFound, "NOT_FOUND"},
		{fmt.Errorf("%w: invalid internal job token", usecase.ErrUnauthorized), http.StatusUnauthorized, "UNAUTHENTICATED"},
		{fmt.Errorf("%w: circuit open", usecase.ErrDependencyUnavailable), http.StatusServiceUnavailable, "UNAVAILABLE"},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		writeError(context.Background(), rec, tc.err)

		if rec.Code != tc.wantCode {
			t.Fatalf("%v: expected status %d, got %d", tc.err, tc.wantCode, rec.Code)
		}
		errorObj, ok := decodeBody(t, rec)["error"].(map[string]any)
		if !ok {
			t.Fatalf("expected error object in response")
		}
		if errorObj["status"] != tc.wantStatus || errorObj["message"] != tc.err.Error() {
			t.Fatalf("unexpected error body %v", errorObj)
		}
	}
}

func TestWriteError_DependencyUnavailableSetsRetryAfter(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, usecase.ErrDependencyUnavailable)
	if got := rec.Header().Get("Retry-After"); got != "30" {
		t.Fatalf("unexpected Retry-After %q", got)
	}
}

func TestWriteError_HidesUnmappedMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, errors.New("pq: password authentication failed"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
	errorObj, _ := decodeBody(t, rec)["error"].(map[string]any)
	if errorObj["message"] != internalErrorMessage {
		t.Fatalf("internal error text leaked: %v", errorObj["message"])
	}
}
