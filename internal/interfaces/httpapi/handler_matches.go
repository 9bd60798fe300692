package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/riskibarqy/matchday-sync/internal/domain/snapshot"
	"github.com/riskibarqy/matchday-sync/internal/usecase"
)

func (h *Handler) GetMatchesBySlot(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatchesBySlot")
	defer span.End()

	if h.sync == nil {
		writeError(ctx, w, fmt.Errorf("%w: sync reader is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	slot, err := snapshot.ParseSlot(strings.ToLower(strings.TrimSpace(r.PathValue("slot"))))
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
		return
	}

	snap, err := h.sync.Snapshot(ctx, slot)
	if err != nil {
		h.logger.WarnContext(ctx, "get matches failed", "slot", slot, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, snap)
}

func (h *Handler) GetSyncStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSyncStatus")
	defer span.End()

	if h.sync == nil {
		writeError(ctx, w, fmt.Errorf("%w: sync reader is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	status, err := h.sync.Status(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "get sync status failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, status)
}
