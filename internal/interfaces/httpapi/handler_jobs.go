package httpapi

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/matchday-sync/internal/usecase"
)

var internalJobDispatchUnsafeRegex = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

type internalJobSyncRequest struct {
	Reason     string `json:"reason" validate:"omitempty,max=64"`
	DispatchID string `json:"dispatch_id" validate:"omitempty,max=128"`
	NoEnqueue  bool   `json:"no_enqueue"`
}

func (h *Handler) RunSyncJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSyncJob")
	defer span.End()

	if h.jobs == nil {
		writeError(ctx, w, fmt.Errorf("%w: job orchestrator is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	req, err := decodeInternalJobSyncRequest(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if strings.TrimSpace(req.DispatchID) == "" {
		req.DispatchID = buildManualDispatchID("sync", time.Now())
	}

	result, err := h.jobs.RunSync(ctx, usecase.JobSyncInput{
		Reason:     req.Reason,
		DispatchID: req.DispatchID,
		NoEnqueue:  req.NoEnqueue,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "run sync job failed",
			"dispatch_id", req.DispatchID,
			"reason", req.Reason,
			"enqueued", result.Enqueued,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "run sync job completed",
		"dispatch_id", req.DispatchID,
		"mode", result.Run.Mode,
		"verdict", result.Run.Decision.Verdict,
		"next_delay", result.NextDelay,
	)
	writeSuccess(ctx, w, http.StatusOK, result)
}

const maxJobPayloadBytes = 64 << 10

var strictJSON = sonic.Config{DisallowUnknownFields: true}.Froze()

// decodeInternalJobSyncRequest treats an empty body as a zero request.
func decodeInternalJobSyncRequest(r *http.Request) (internalJobSyncRequest, error) {
	if r.Body == nil {
		return internalJobSyncRequest{}, nil
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, maxJobPayloadBytes))
	if err != nil {
		return internalJobSyncRequest{}, fmt.Errorf("%w: read payload: %v", usecase.ErrInvalidInput, err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return internalJobSyncRequest{}, nil
	}

	var req internalJobSyncRequest
	if err := strictJSON.Unmarshal(body, &req); err != nil {
		return internalJobSyncRequest{}, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	return req, nil
}

func buildManualDispatchID(jobName string, now time.Time) string {
	ts := now.UTC().Format("20060102T150405.000000000Z")
	return "manual-" + sanitizeDispatchPart(jobName) + "-" + ts
}

func sanitizeDispatchPart(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "unknown"
	}
	return internalJobDispatchUnsafeRegex.ReplaceAllString(value, "-")
}
