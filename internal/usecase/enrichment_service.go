package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/matchday-sync/internal/domain/team"
	"github.com/riskibarqy/matchday-sync/internal/domain/translation"
	"github.com/riskibarqy/matchday-sync/internal/platform/logging"
)

const defaultEnrichmentBatchSize = 10

// BatchResult summarizes one ProcessBatch call.
type BatchResult struct {
	Day string `json:"day"`
	// Skipped is true when the queue was not built or already done.
	Skipped bool `json:"skipped"`
	// Aborted is true when the lookup refused the batch; the queue is untouched.
	Aborted      bool `json:"aborted"`
	Popped       int  `json:"popped"`
	Looked       int  `json:"looked_up"`
	Added        int  `json:"added"`
	Failed       int  `json:"failed"`
	Dropped      int  `json:"dropped"`
	AlreadyNamed int  `json:"already_named"`
	// Deferred counts entries left queued because the lookup never reached them.
	Deferred  int  `json:"deferred"`
	Remaining int  `json:"remaining"`
	Done      bool `json:"done"`
}

// DidWork reports whether the batch removed entries from the queue.
func (r BatchResult) DidWork() bool {
	return r.Popped > 0 && !r.Aborted
}

// EnrichmentService owns the per-day translation queue.
type EnrichmentService struct {
	queue     translation.Repository
	index     team.IndexRepository
	names     team.NameRepository
	lookup    NameLookup
	batchSize int
	logger    *logging.Logger
	now       func() time.Time
}

func NewEnrichmentService(
	queue translation.Repository,
	index team.IndexRepository,
	names team.NameRepository,
	lookup NameLookup,
	batchSize int,
	logger *logging.Logger,
) *EnrichmentService {
	if logger == nil {
		logger = logging.Default()
	}
	if batchSize <= 0 {
		batchSize = defaultEnrichmentBatchSize
	}
	return &EnrichmentService{
		queue:     queue,
		index:     index,
		names:     names,
		lookup:    lookup,
		batchSize: batchSize,
		logger:    logger.Named("enrichment"),
		now:       time.Now,
	}
}

// Build queues every team without a name or failure marker. It runs once per day;
// created is false when the queue already existed.
func (s *EnrichmentService) Build(ctx context.Context, day string, teamIDs []int64) (translation.State, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EnrichmentService.Build", attribute.String("queue.day", day))
	defer span.End()

	day = strings.TrimSpace(day)
	if day == "" {
		return translation.State{}, false, fmt.Errorf("%w: queue day is required", ErrInvalidInput)
	}

	state, exists, err := s.queue.GetState(ctx, day)
	if err != nil {
		return translation.State{}, false, fmt.Errorf("get queue state day=%s: %w", day, err)
	}
	if exists && state.Built {
		return state, false, nil
	}

	named, err := s.names.ListNames(ctx)
	if err != nil {
		return translation.State{}, false, fmt.Errorf("list team names: %w", err)
	}
	failed, err := s.names.ListFailures(ctx)
	if err != nil {
		return translation.State{}, false, fmt.Errorf("list team name failures: %w", err)
	}

	missing := make([]int64, 0, len(teamIDs))
	seen := make(map[int64]struct{}, len(teamIDs))
	for _, id := range teamIDs {
		if id <= 0 {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if _, ok := named[id]; ok {
			continue
		}
		if _, ok := failed[id]; ok {
			continue
		}
		missing = append(missing, id)
	}

	state, created, err := s.queue.Build(ctx, day, missing, s.now().UTC())
	if err != nil {
		recordSpanError(span, err)
		return translation.State{}, false, fmt.Errorf("build queue day=%s: %w", day, err)
	}
	if created {
		s.logger.InfoContext(ctx, "translation queue built", "day", day, "teams", len(teamIDs), "queued", state.Remaining)
	}
	return state, created, nil
}

// ProcessBatch resolves up to batchSize queued teams with one lookup call. Every
// popped entry ends as a name record, a failure marker or a drop, and is removed.
// Entries the lookup never reached stay queued for the next batch.
func (s *EnrichmentService) ProcessBatch(ctx context.Context, day string) (BatchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EnrichmentService.ProcessBatch", attribute.String("queue.day", day))
	defer span.End()

	result := BatchResult{Day: day}
	state, exists, err := s.queue.GetState(ctx, day)
	if err != nil {
		return result, fmt.Errorf("get queue state day=%s: %w", day, err)
	}
	if !exists || !state.Built || state.Done {
		result.Skipped = true
		result.Remaining = state.Remaining
		result.Done = state.Done
		return result, nil
	}

	ids, err := s.queue.ListEntries(ctx, day, s.batchSize)
	if err != nil {
		return result, fmt.Errorf("list queue entries day=%s: %w", day, err)
	}
	if len(ids) == 0 {
		// Header drifted from the entries; recompute it.
		state, err = s.queue.RemoveEntries(ctx, day, nil, s.now().UTC())
		if err != nil {
			return result, fmt.Errorf("refresh queue state day=%s: %w", day, err)
		}
		result.Remaining, result.Done = state.Remaining, state.Done
		return result, nil
	}

	named, err := s.names.ListNames(ctx)
	if err != nil {
		return result, fmt.Errorf("list team names: %w", err)
	}
	pending := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := named[id]; ok {
			result.AlreadyNamed++
			continue
		}
		pending = append(pending, id)
	}

	index, err := s.index.GetIndex(ctx, pending)
	if err != nil {
		return result, fmt.Errorf("get team index: %w", err)
	}
	toLookup := make([]team.IndexEntry, 0, len(pending))
	refNames := make([]string, 0, len(pending))
	seenRef := make(map[string]struct{}, len(pending))
	for _, id := range pending {
		entry, ok := index[id]
		if !ok || strings.TrimSpace(entry.ReferenceName) == "" {
			result.Dropped++
			continue
		}
		entry.ReferenceName = strings.TrimSpace(entry.ReferenceName)
		toLookup = append(toLookup, entry)
		if _, dup := seenRef[entry.ReferenceName]; !dup {
			seenRef[entry.ReferenceName] = struct{}{}
			refNames = append(refNames, entry.ReferenceName)
		}
	}

	var (
		found    map[string]string
		deferred map[string]struct{}
	)
	if len(refNames) > 0 {
		found, err = s.lookup.LookupLocalizedNames(ctx, refNames)
		var incomplete *IncompleteLookupError
		switch {
		case errors.As(err, &incomplete):
			deferred = make(map[string]struct{}, len(incomplete.Unattempted))
			for _, name := range incomplete.Unattempted {
				deferred[strings.TrimSpace(name)] = struct{}{}
			}
			s.logger.WarnContext(ctx, "name lookup stopped partway, unattempted teams stay queued", "day", day, "unattempted", len(deferred))
		case err != nil:
			s.logger.WarnContext(ctx, "name lookup refused batch, queue left untouched", "day", day, "batch", len(ids), "error", err)
			return BatchResult{Day: day, Aborted: true, Remaining: state.Remaining}, nil
		}
	}

	now := s.now().UTC()
	newNames := make([]team.Name, 0, len(toLookup))
	failures := make([]team.Failure, 0, len(toLookup))
	kept := make(map[int64]struct{})
	for _, entry := range toLookup {
		if _, ok := deferred[entry.ReferenceName]; ok {
			kept[entry.TeamID] = struct{}{}
			continue
		}
		localized := strings.TrimSpace(found[entry.ReferenceName])
		if localized == "" {
			failures = append(failures, team.Failure{TeamID: entry.TeamID, ReferenceName: entry.ReferenceName, FailedAt: now})
			continue
		}
		newNames = append(newNames, team.Name{
			TeamID:        entry.TeamID,
			LocalizedName: localized,
			ReferenceName: entry.ReferenceName,
			Source:        team.SourceWikidata,
			ResolvedAt:    now,
		})
	}

	if len(newNames) > 0 {
		if err := s.names.InsertNames(ctx, newNames); err != nil {
			recordSpanError(span, err)
			return result, fmt.Errorf("insert team names: %w", err)
		}
	}
	if len(failures) > 0 {
		if err := s.names.InsertFailures(ctx, failures); err != nil {
			recordSpanError(span, err)
			return result, fmt.Errorf("insert team name failures: %w", err)
		}
	}

	removed := ids
	if len(kept) > 0 {
		removed = make([]int64, 0, len(ids))
		for _, id := range ids {
			if _, ok := kept[id]; !ok {
				removed = append(removed, id)
			}
		}
	}
	state, err = s.queue.RemoveEntries(ctx, day, removed, now)
	if err != nil {
		recordSpanError(span, err)
		return result, fmt.Errorf("remove queue entries day=%s: %w", day, err)
	}

	result.Popped = len(removed)
	result.Looked = len(toLookup) - len(kept)
	result.Added = len(newNames)
	result.Failed = len(failures)
	result.Deferred = len(kept)
	result.Remaining = state.Remaining
	result.Done = state.Done

	s.logger.InfoContext(ctx, "translation batch processed",
		"day", day,
		"popped", result.Popped,
		"added", result.Added,
		"failed", result.Failed,
		"dropped", result.Dropped,
		"already_named", result.AlreadyNamed,
		"deferred", result.Deferred,
		"remaining", result.Remaining,
	)
	return result, nil
}
