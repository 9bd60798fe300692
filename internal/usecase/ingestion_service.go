package usecase

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/matchday-sync/internal/domain/league"
	"github.com/riskibarqy/matchday-sync/internal/domain/snapshot"
	"github.com/riskibarqy/matchday-sync/internal/platform/logging"
)

// IngestResult carries the provider response and the snapshot that was written from it.
type IngestResult struct {
	Raw      []ExternalFixture
	Snapshot snapshot.DaySnapshot
	Dropped  int
}

// IngestionService fetches one day, builds its ordered snapshot and replaces the stored one.
type IngestionService struct {
	provider   FixtureProvider
	snapshots  snapshot.Repository
	catalog    league.Catalog
	normalizer Normalizer
	logger     *logging.Logger
}

func NewIngestionService(
	provider FixtureProvider,
	snapshots snapshot.Repository,
	normalizer Normalizer,
	catalog league.Catalog,
	logger *logging.Logger,
) *IngestionService {
	if logger == nil {
		logger = logging.Default()
	}
	return &IngestionService{
		provider:   provider,
		snapshots:  snapshots,
		catalog:    catalog,
		normalizer: normalizer,
		logger:     logger.Named("ingestion"),
	}
}

// Ingest writes nothing unless the provider call and normalization both complete.
func (s *IngestionService) Ingest(ctx context.Context, date string, slot snapshot.DaySlot, names NameIndex) (IngestResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.Ingest",
		attribute.String("sync.date", date),
		attribute.String("sync.slot", string(slot)),
	)
	defer span.End()

	date = strings.TrimSpace(date)
	if date == "" {
		return IngestResult{}, fmt.Errorf("%w: ingest date is required", ErrInvalidInput)
	}

	raw, err := s.provider.FetchFixturesByDate(ctx, date)
	if err != nil {
		recordSpanError(span, err)
		return IngestResult{}, fmt.Errorf("fetch fixtures date=%s: %w", date, err)
	}

	snap, dropped := s.BuildSnapshot(date, slot, raw, names)
	if err := s.snapshots.Replace(ctx, snap); err != nil {
		recordSpanError(span, err)
		return IngestResult{}, fmt.Errorf("replace %s snapshot: %w", slot, err)
	}

	s.report(ctx, snap, len(raw), dropped)
	return IngestResult{Raw: raw, Snapshot: snap, Dropped: dropped}, nil
}

// BuildSnapshot is the pure part of Ingest: normalize, group, order and render names.
func (s *IngestionService) BuildSnapshot(date string, slot snapshot.DaySlot, raw []ExternalFixture, names NameIndex) (snapshot.DaySnapshot, int) {
	entries := make([]snapshot.LeagueEntry, 0)
	position := make(map[int64]int)
	dropped := 0

	for _, item := range raw {
		match, lg, ok := s.normalizer.Normalize(item)
		if !ok {
			dropped++
			continue
		}
		match.HomeTeam = names.Display(match.HomeTeamID, match.HomeTeamRef)
		match.AwayTeam = names.Display(match.AwayTeamID, match.AwayTeamRef)

		idx, exists := position[lg.ID]
		if !exists {
			idx = len(entries)
			position[lg.ID] = idx
			entries = append(entries, snapshot.LeagueEntry{League: lg})
		}
		entries[idx].Matches = append(entries[idx].Matches, match)
	}

	for i := range entries {
		OrderMatches(entries[i].Matches)
	}
	OrderLeagues(s.catalog, entries)

	return snapshot.DaySnapshot{Slot: slot, Date: date, Leagues: entries}, dropped
}

func (s *IngestionService) report(ctx context.Context, snap snapshot.DaySnapshot, fetched, dropped int) {
	for _, entry := range snap.Leagues {
		s.logger.DebugContext(ctx, "league ingested",
			"slot", snap.Slot,
			"league_id", entry.League.ID,
			"league", entry.League.ReferenceName,
			"matches", len(entry.Matches),
		)
	}
	s.logger.InfoContext(ctx, "day ingested",
		"slot", snap.Slot,
		"date", snap.Date,
		"fetched", fetched,
		"dropped", dropped,
		"leagues", len(snap.Leagues),
		"matches", snap.MatchCount(),
	)
}
