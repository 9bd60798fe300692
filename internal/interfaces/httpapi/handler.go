package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/matchday-sync/internal/domain/snapshot"
	"github.com/riskibarqy/matchday-sync/internal/platform/logging"
	"github.com/riskibarqy/matchday-sync/internal/usecase"
)

// SyncReader is the read side of the sync orchestrator.
type SyncReader interface {
	Snapshot(ctx context.Context, slot snapshot.DaySlot) (snapshot.DaySnapshot, error)
	Status(ctx context.Context) (usecase.SyncStatus, error)
}

// JobRunner runs one triggered sync and chains the next trigger.
type JobRunner interface {
	RunSync(ctx context.Context, input usecase.JobSyncInput) (usecase.JobSyncResult, error)
}

type Handler struct {
	sync      SyncReader
	jobs      JobRunner
	logger    *logging.Logger
	validator *validator.Validate
}

func NewHandler(sync SyncReader, jobs JobRunner, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		sync:      sync,
		jobs:      jobs,
		logger:    logger.Named("httpapi"),
		validator: validator.New(),
	}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}
