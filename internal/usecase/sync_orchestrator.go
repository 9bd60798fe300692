package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/matchday-sync/internal/domain/snapshot"
	"github.com/riskibarqy/matchday-sync/internal/domain/syncmeta"
	"github.com/riskibarqy/matchday-sync/internal/domain/team"
	"github.com/riskibarqy/matchday-sync/internal/domain/translation"
	"github.com/riskibarqy/matchday-sync/internal/platform/logging"
)

const dateLayout = "2006-01-02"

type RunMode string

const (
	RunModeFullRefresh RunMode = "full_refresh"
	RunModeIncremental RunMode = "incremental"
	RunModeNoop        RunMode = "noop"
)

// SyncConfig is fixed for the lifetime of the orchestrator.
type SyncConfig struct {
	Location     *time.Location
	PreRoll      time.Duration
	PostRoll     time.Duration
	FetchWorkers int
}

// RunResult describes what one Run did.
type RunResult struct {
	Mode       RunMode            `json:"mode"`
	Date       string             `json:"date"`
	Decision   Decision           `json:"decision"`
	Ingested   []snapshot.DaySlot `json:"ingested"`
	Enrichment BatchResult        `json:"enrichment"`
	Rewritten  []snapshot.DaySlot `json:"rewritten"`
	MetaReset  bool               `json:"meta_reset,omitempty"`
	// YesterdayOpen is set when yesterday was re-ingested and still has matches that can change.
	YesterdayOpen bool `json:"yesterday_open,omitempty"`
}

// SyncStatus is the read model behind the status endpoint.
type SyncStatus struct {
	Date     string             `json:"date"`
	Meta     *syncmeta.Meta     `json:"meta"`
	Decision Decision           `json:"decision"`
	Queue    *translation.State `json:"queue"`
}

// SyncOrchestrator drives one synchronization run from persisted state.
type SyncOrchestrator struct {
	ingester   *IngestionService
	enrichment *EnrichmentService
	snapshots  snapshot.Repository
	meta       syncmeta.Repository
	index      team.IndexRepository
	names      team.NameRepository
	queue      translation.Repository
	gate       FetchGate
	cfg        SyncConfig
	logger     *logging.Logger
	now        func() time.Time
}

func NewSyncOrchestrator(
	ingester *IngestionService,
	enrichment *EnrichmentService,
	snapshots snapshot.Repository,
	meta syncmeta.Repository,
	index team.IndexRepository,
	names team.NameRepository,
	queue translation.Repository,
	cfg SyncConfig,
	logger *logging.Logger,
) *SyncOrchestrator {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.FetchWorkers <= 0 {
		cfg.FetchWorkers = len(snapshot.AllSlots)
	}
	return &SyncOrchestrator{
		ingester:   ingester,
		enrichment: enrichment,
		snapshots:  snapshots,
		meta:       meta,
		index:      index,
		names:      names,
		queue:      queue,
		gate:       NewFetchGate(cfg.PreRoll, cfg.PostRoll),
		cfg:        cfg,
		logger:     logger.Named("sync"),
		now:        time.Now,
	}
}

type syncDays struct {
	now   time.Time
	dates map[snapshot.DaySlot]string
}

func (o *SyncOrchestrator) days() syncDays {
	now := o.now()
	local := now.In(o.cfg.Location)
	dates := make(map[snapshot.DaySlot]string, len(snapshot.AllSlots))
	for _, slot := range snapshot.AllSlots {
		dates[slot] = local.AddDate(0, 0, slot.DayOffset()).Format(dateLayout)
	}
	return syncDays{now: now, dates: dates}
}

func (d syncDays) today() string {
	return d.dates[snapshot.SlotToday]
}

func (o *SyncOrchestrator) Run(ctx context.Context) (RunResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncOrchestrator.Run")
	defer span.End()

	days := o.days()
	meta, exists, err := o.meta.Get(ctx)
	malformed := errors.Is(err, syncmeta.ErrMalformed)
	if err != nil && !malformed {
		recordSpanError(span, err)
		return RunResult{Date: days.today()}, fmt.Errorf("get sync meta: %w", err)
	}
	if malformed {
		o.logger.WarnContext(ctx, "sync meta is malformed, running full refresh", "error", err)
	}

	var result RunResult
	if malformed || !exists || meta.Date != days.today() {
		result, err = o.fullRefresh(ctx, days)
		result.MetaReset = malformed
	} else {
		result, err = o.incremental(ctx, days, meta)
	}
	span.SetAttributes(attribute.String("sync.mode", string(result.Mode)))
	if err != nil {
		recordSpanError(span, err)
		return result, err
	}

	o.logger.InfoContext(ctx, "sync run finished",
		"mode", result.Mode,
		"date", result.Date,
		"verdict", result.Decision.Verdict,
		"ingested", result.Ingested,
		"rewritten", result.Rewritten,
		"queue_remaining", result.Enrichment.Remaining,
		"yesterday_open", result.YesterdayOpen,
	)
	return result, nil
}

func (o *SyncOrchestrator) fullRefresh(ctx context.Context, days syncDays) (RunResult, error) {
	result := RunResult{Mode: RunModeFullRefresh, Date: days.today()}

	names, err := o.names.ListNames(ctx)
	if err != nil {
		return result, fmt.Errorf("list team names: %w", err)
	}
	idx := NewNameIndex(names)

	ingested, err := o.ingestDays(ctx, days, snapshot.AllSlots, idx)
	if err != nil {
		return result, err
	}
	result.Ingested = append(result.Ingested, snapshot.AllSlots...)
	result.YesterdayOpen = ingested[snapshot.SlotYesterday].Snapshot.HasNonTerminal()

	entries := make([]team.IndexEntry, 0)
	seen := make(map[int64]struct{})
	teamIDs := make([]int64, 0)
	for _, slot := range snapshot.AllSlots {
		for _, ref := range ingested[slot].Snapshot.TeamRefs() {
			if _, dup := seen[ref.ID]; dup {
				continue
			}
			seen[ref.ID] = struct{}{}
			entries = append(entries, team.IndexEntry{TeamID: ref.ID, ReferenceName: ref.ReferenceName, LastSeenAt: days.now.UTC()})
			teamIDs = append(teamIDs, ref.ID)
		}
	}
	if len(entries) > 0 {
		if err := o.index.UpsertIndex(ctx, entries); err != nil {
			return result, fmt.Errorf("upsert team index: %w", err)
		}
	}

	meta := o.metaFrom(days, ingested[snapshot.SlotToday].Snapshot)
	if _, _, err := o.enrichment.Build(ctx, days.today(), teamIDs); err != nil {
		return result, err
	}
	if err := o.meta.Save(ctx, meta); err != nil {
		return result, fmt.Errorf("save sync meta: %w", err)
	}
	result.Decision = o.gate.Decide(meta, true, days.now)

	batch, err := o.enrichment.ProcessBatch(ctx, days.today())
	if err != nil {
		return result, err
	}
	result.Enrichment = batch

	rewritten, err := o.rewriteSnapshots(ctx)
	if err != nil {
		return result, err
	}
	result.Rewritten = rewritten
	return result, nil
}

func (o *SyncOrchestrator) incremental(ctx context.Context, days syncDays, meta syncmeta.Meta) (RunResult, error) {
	result := RunResult{Mode: RunModeIncremental, Date: days.today()}
	result.Decision = o.gate.Decide(meta, true, days.now)

	slots := make([]snapshot.DaySlot, 0, len(snapshot.AllSlots))
	if result.Decision.Fetch {
		slots = append(slots, snapshot.SlotToday)
	}

	yesterday, ok, err := o.snapshots.Get(ctx, snapshot.SlotYesterday)
	if err != nil {
		return result, fmt.Errorf("get yesterday snapshot: %w", err)
	}
	if ok && yesterday.HasNonTerminal() {
		o.logger.InfoContext(ctx, "yesterday still has open matches, re-ingesting", "date", yesterday.Date)
		slots = append(slots, snapshot.SlotYesterday)
	}

	tomorrow, ok, err := o.snapshots.Get(ctx, snapshot.SlotTomorrow)
	if err != nil {
		return result, fmt.Errorf("get tomorrow snapshot: %w", err)
	}
	if !ok || tomorrow.Date != days.dates[snapshot.SlotTomorrow] {
		slots = append(slots, snapshot.SlotTomorrow)
	}

	if len(slots) > 0 {
		names, err := o.names.ListNames(ctx)
		if err != nil {
			return result, fmt.Errorf("list team names: %w", err)
		}
		ingested, err := o.ingestDays(ctx, days, slots, NewNameIndex(names))
		if err != nil {
			return result, err
		}
		result.Ingested = slots
		if y, ok := ingested[snapshot.SlotYesterday]; ok {
			result.YesterdayOpen = y.Snapshot.HasNonTerminal()
		}

		if today, ok := ingested[snapshot.SlotToday]; ok {
			next := o.metaFrom(days, today.Snapshot)
			if err := o.meta.Save(ctx, next); err != nil {
				return result, fmt.Errorf("save sync meta: %w", err)
			}
			refreshed := o.gate.Decide(next, true, days.now)
			result.Decision.OpensAt, result.Decision.ClosesAt = refreshed.OpensAt, refreshed.ClosesAt
		}
	}

	batch, err := o.enrichment.ProcessBatch(ctx, days.today())
	if err != nil {
		return result, err
	}
	result.Enrichment = batch
	if batch.DidWork() {
		rewritten, err := o.rewriteSnapshots(ctx)
		if err != nil {
			return result, err
		}
		result.Rewritten = rewritten
	}

	if len(result.Ingested) == 0 && !batch.DidWork() {
		result.Mode = RunModeNoop
	}
	return result, nil
}

// ingestDays fetches the requested slots on a bounded pool. Each slot is an
// independent overwrite, so any failure fails the whole call.
func (o *SyncOrchestrator) ingestDays(ctx context.Context, days syncDays, slots []snapshot.DaySlot, idx NameIndex) (map[snapshot.DaySlot]IngestResult, error) {
	out := make(map[snapshot.DaySlot]IngestResult, len(slots))
	if len(slots) == 1 {
		res, err := o.ingester.Ingest(ctx, days.dates[slots[0]], slots[0], idx)
		if err != nil {
			return nil, err
		}
		out[slots[0]] = res
		return out, nil
	}

	pool, err := ants.NewPool(min(o.cfg.FetchWorkers, len(slots)))
	if err != nil {
		return nil, fmt.Errorf("create fetch pool: %w", err)
	}
	defer pool.Release()

	var (
		mu       sync.Mutex
		firstErr error
		workers  sync.WaitGroup
	)
	for _, slot := range slots {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			res, err := o.ingester.Ingest(ctx, days.dates[slot], slot, idx)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				return
			}
			out[slot] = res
		}); err != nil {
			workers.Done()
			workers.Wait()
			return nil, fmt.Errorf("submit %s ingest: %w", slot, err)
		}
	}
	workers.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}

func (o *SyncOrchestrator) metaFrom(days syncDays, today snapshot.DaySnapshot) syncmeta.Meta {
	meta := syncmeta.Meta{
		Date:       days.today(),
		MatchCount: today.MatchCount(),
		UpdatedAt:  days.now.UTC(),
	}
	if first, last, ok := today.KickoffBounds(); ok {
		meta.FirstMatchAt = &first
		meta.LastMatchAt = &last
	}
	return meta
}

// rewriteSnapshots re-renders team labels in all stored snapshots and writes back
// only the ones that changed.
func (o *SyncOrchestrator) rewriteSnapshots(ctx context.Context) ([]snapshot.DaySlot, error) {
	names, err := o.names.ListNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("list team names: %w", err)
	}
	idx := NewNameIndex(names)

	rewritten := make([]snapshot.DaySlot, 0, len(snapshot.AllSlots))
	for _, slot := range snapshot.AllSlots {
		current, ok, err := o.snapshots.Get(ctx, slot)
		if err != nil {
			return rewritten, fmt.Errorf("get %s snapshot: %w", slot, err)
		}
		if !ok {
			continue
		}
		next, changed := RewriteSnapshot(current, idx)
		if !changed {
			continue
		}
		if err := o.snapshots.Replace(ctx, next); err != nil {
			return rewritten, fmt.Errorf("rewrite %s snapshot: %w", slot, err)
		}
		rewritten = append(rewritten, slot)
	}
	return rewritten, nil
}

// Status reports the persisted meta, the gate verdict for now and today's queue.
func (o *SyncOrchestrator) Status(ctx context.Context) (SyncStatus, error) {
	days := o.days()
	status := SyncStatus{Date: days.today()}

	meta, exists, err := o.meta.Get(ctx)
	if err != nil && !errors.Is(err, syncmeta.ErrMalformed) {
		return status, fmt.Errorf("get sync meta: %w", err)
	}
	current := err == nil && exists && meta.Date == days.today()
	if err == nil && exists {
		status.Meta = &meta
	}
	status.Decision = o.gate.Decide(meta, current, days.now)

	state, ok, err := o.queue.GetState(ctx, days.today())
	if err != nil {
		return status, fmt.Errorf("get queue state: %w", err)
	}
	if ok {
		status.Queue = &state
	}
	return status, nil
}

// Snapshot returns the stored snapshot for slot or ErrNotFound.
func (o *SyncOrchestrator) Snapshot(ctx context.Context, slot snapshot.DaySlot) (snapshot.DaySnapshot, error) {
	snap, ok, err := o.snapshots.Get(ctx, slot)
	if err != nil {
		return snapshot.DaySnapshot{}, fmt.Errorf("get %s snapshot: %w", slot, err)
	}
	if !ok {
		return snapshot.DaySnapshot{}, fmt.Errorf("%w: snapshot %s", ErrNotFound, slot)
	}
	return snap, nil
}
