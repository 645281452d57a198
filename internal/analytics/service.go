package analytics

import (
	"context"
	"encoding/json"

	"backend-vitalhub/internal/records"
	"backend-vitalhub/internal/stream"
)

// RecordSource serves the per-day record lookups the summarizer needs.
// *records.Service is the production implementation.
type RecordSource interface {
	SleepForDay(ctx context.Context, userID, date string) (*records.SleepRecord, error)
	RecoveryForDay(ctx context.Context, userID, date string) (*records.RecoveryRecord, error)
	CycleForDay(ctx context.Context, userID, date string) (*records.CycleRecord, error)
	PhysiologicalForDay(ctx context.Context, userID, date string) ([]records.PhysiologicalSample, error)
}

type Service struct {
	source RecordSource
	store  SummaryStore
	hub    *stream.Hub
}

func NewService(source RecordSource, store SummaryStore, hub *stream.Hub) *Service {
	return &Service{source: source, store: store, hub: hub}
}

// ComputeForDay gathers the day's records, computes the summary, persists
// it and pushes it to the user's live feed.
func (s *Service) ComputeForDay(ctx context.Context, userID, date string) (DailySummary, error) {
	sleep, err := s.source.SleepForDay(ctx, userID, date)
	if err != nil {
		return DailySummary{}, err
	}
	recovery, err := s.source.RecoveryForDay(ctx, userID, date)
	if err != nil {
		return DailySummary{}, err
	}
	cycle, err := s.source.CycleForDay(ctx, userID, date)
	if err != nil {
		return DailySummary{}, err
	}
	physio, err := s.source.PhysiologicalForDay(ctx, userID, date)
	if err != nil {
		return DailySummary{}, err
	}

	summary, err := ComputeDailySummary(userID, date, sleep, recovery, cycle, physio)
	if err != nil {
		return DailySummary{}, err
	}

	if err := s.store.Put(ctx, summary); err != nil {
		return DailySummary{}, err
	}

	if s.hub != nil {
		payload, _ := json.Marshal(summary)
		s.hub.Broadcast(userID, payload)
	}
	return summary, nil
}

func (s *Service) Summaries(ctx context.Context, userID string, q Query) ([]DailySummary, error) {
	return s.store.QueryRange(ctx, userID, q)
}
