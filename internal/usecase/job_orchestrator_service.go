package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/riskibarqy/matchday-sync/internal/platform/logging"
)

const SyncJobPath = "/v1/internal/jobs/sync"

type JobQueue interface {
	Enqueue(ctx context.Context, path string, payload any, delay time.Duration, deduplicationID string) error
}

type noopJobQueue struct{}

func (noopJobQueue) Enqueue(_ context.Context, _ string, _ any, _ time.Duration, _ string) error {
	return nil
}

func NewNoopJobQueue() JobQueue {
	return noopJobQueue{}
}

// SyncRunner is satisfied by *SyncOrchestrator.
type SyncRunner interface {
	Run(ctx context.Context) (RunResult, error)
}

type JobOrchestratorConfig struct {
	// LiveInterval is the polling cadence inside the active window and while the queue drains.
	LiveInterval time.Duration
	// IdleInterval caps the delay when nothing is expected before the next day.
	IdleInterval time.Duration
	// SelfSchedule enqueues the next run after every triggered run.
	SelfSchedule bool
	Location     *time.Location
}

type JobSyncInput struct {
	Reason     string `json:"reason"`
	DispatchID string `json:"dispatch_id"`
	NoEnqueue  bool   `json:"no_enqueue"`
}

type JobSyncResult struct {
	Run        RunResult `json:"run"`
	NextDelay  string    `json:"next_delay,omitempty"`
	NextJobID  string    `json:"next_job_id,omitempty"`
	Enqueued   bool      `json:"enqueued"`
	DispatchID string    `json:"dispatch_id,omitempty"`
}

// JobOrchestratorService runs a sync from a scheduler trigger and chains the next trigger.
type JobOrchestratorService struct {
	runner SyncRunner
	queue  JobQueue
	cfg    JobOrchestratorConfig
	logger *logging.Logger
	now    func() time.Time
}

var dedupUnsafeCharRegex = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

func NewJobOrchestratorService(runner SyncRunner, queue JobQueue, cfg JobOrchestratorConfig, logger *logging.Logger) *JobOrchestratorService {
	if queue == nil {
		queue = NewNoopJobQueue()
	}
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.LiveInterval <= 0 {
		cfg.LiveInterval = 2 * time.Minute
	}
	if cfg.IdleInterval <= 0 {
		cfg.IdleInterval = 6 * time.Hour
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}

	return &JobOrchestratorService{
		runner: runner,
		queue:  queue,
		cfg:    cfg,
		logger: logger.Named("jobs"),
		now:    time.Now,
	}
}

// RunSync always tries to enqueue the follow-up, even when the run failed, so the chain survives.
func (s *JobOrchestratorService) RunSync(ctx context.Context, input JobSyncInput) (JobSyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.JobOrchestratorService.RunSync")
	defer span.End()

	result := JobSyncResult{DispatchID: strings.TrimSpace(input.DispatchID)}
	run, runErr := s.runner.Run(ctx)
	result.Run = run
	if runErr != nil {
		recordSpanError(span, runErr)
		s.logger.ErrorContext(ctx, "sync run failed", "reason", input.Reason, "error", runErr)
	}

	if !s.cfg.SelfSchedule || input.NoEnqueue {
		return result, runErr
	}

	now := s.now()
	delay := s.cfg.LiveInterval
	if runErr == nil {
		delay = s.nextDelay(run, now)
	}
	dedupID := dedupKey("sync", run.Date, now.Add(delay), s.cfg.LiveInterval)
	payload := JobSyncInput{Reason: "self-schedule", DispatchID: dedupID}
	if err := s.queue.Enqueue(ctx, SyncJobPath, payload, delay, dedupID); err != nil {
		s.logger.WarnContext(ctx, "enqueue next sync failed", "dispatch_id", dedupID, "delay", delay, "error", err)
		if runErr != nil {
			return result, runErr
		}
		return result, fmt.Errorf("enqueue next sync: %w", err)
	}

	result.Enqueued = true
	result.NextDelay = delay.String()
	result.NextJobID = dedupID
	return result, runErr
}

// nextDelay picks when the next run is worth doing from the run's gate decision.
// Open matches from yesterday and a draining queue both keep the live cadence.
func (s *JobOrchestratorService) nextDelay(run RunResult, now time.Time) time.Duration {
	minDelay := time.Minute
	if run.Enrichment.Remaining > 0 || run.YesterdayOpen {
		return maxDuration(s.cfg.LiveInterval, minDelay)
	}

	switch run.Decision.Verdict {
	case VerdictActiveWindow, VerdictNoMeta:
		return maxDuration(s.cfg.LiveInterval, minDelay)
	case VerdictTooEarly:
		delay := run.Decision.OpensAt.Sub(now)
		if delay <= 0 {
			return maxDuration(s.cfg.LiveInterval, minDelay)
		}
		return maxDuration(min(delay, s.cfg.IdleInterval), minDelay)
	default:
		// Closed or empty day: next useful run is the date rollover.
		local := now.In(s.cfg.Location)
		midnight := time.Date(local.Year(), local.Month(), local.Day()+1, 0, 1, 0, 0, s.cfg.Location)
		return maxDuration(min(midnight.Sub(now), s.cfg.IdleInterval), minDelay)
	}
}

func dedupKey(prefix, day string, at time.Time, bucket time.Duration) string {
	if bucket <= 0 {
		bucket = time.Minute
	}
	slot := at.UTC().Truncate(bucket).Format("20060102T150405Z")
	return sanitizeDedupSegment(prefix) + "-" + sanitizeDedupSegment(day) + "-" + slot
}

func sanitizeDedupSegment(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "unknown"
	}
	return dedupUnsafeCharRegex.ReplaceAllString(value, "-")
}

func maxDuration(left, right time.Duration) time.Duration {
	if left > right {
		return left
	}
	return right
}
