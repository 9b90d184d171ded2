package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"schedule-comparison-service/internal/domain"
	"schedule-comparison-service/internal/platform/metrics"
	"schedule-comparison-service/internal/ports"
	"sync"
	"time"
)

// Reloader feeds the Engine from its configured collaborators and fans the
// result out to the run archive and the snapshot publisher.
//
// Either both Original and Optimized sources are set (file/URL mode), or
// Visits is set (database mode). Recorder and Publisher are optional.
type Reloader struct {
	Engine    *Engine
	Original  ports.ScheduleSource
	Optimized ports.ScheduleSource
	Visits    ports.VisitRepository
	Recorder  ports.RunRecorder
	Publisher ports.SnapshotPublisher

	// Serializes reloads; queries never wait on it.
	mu sync.Mutex
}

type fetchResult struct {
	variant domain.Variant
	rows    domain.RowSet
	err     error
}

// Reload fetches both schedules, rebuilds the snapshot and, on success,
// archives and publishes it. Archive and publish failures are logged and do
// not undo the swap.
func (r *Reloader) Reload(ctx context.Context) (domain.LoadRun, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	start := time.Now()
	snap, origLabel, optLabel, err := r.load(ctx)
	metrics.RecordLoad(err, time.Since(start))
	if err != nil {
		return domain.LoadRun{}, fmt.Errorf("reload schedules: %w", err)
	}

	for _, v := range domain.Variants() {
		vo := snap.Overview.Original
		if v == domain.VariantOptimized {
			vo = snap.Overview.Optimized
		}
		metrics.RecordVariant(string(v), vo.Visits, vo.SkippedRows, vo.TotalTravelMinutes)
	}

	log.Printf(
		"snapshot published: run_id=%s original_visits=%d optimized_visits=%d original_travel=%.1f optimized_travel=%.1f improvement=%.1f%%",
		snap.RunID, snap.Overview.Original.Visits, snap.Overview.Optimized.Visits,
		snap.Overview.Original.TotalTravelMinutes, snap.Overview.Optimized.TotalTravelMinutes,
		snap.Overview.TravelImprovementPct,
	)

	run := domain.NewLoadRun(snap, origLabel, optLabel)
	if r.Recorder != nil {
		if err := r.Recorder.RecordRun(ctx, run); err != nil {
			log.Printf("record load run failed: run_id=%s err=%v", snap.RunID, err)
		}
	}

	if r.Publisher != nil {
		digest, err := Digest(snap)
		if err == nil {
			err = r.Publisher.Publish(ctx, digest)
		}
		if err != nil {
			log.Printf("publish snapshot failed: run_id=%s err=%v", snap.RunID, err)
		}
	}

	return run, nil
}

func (r *Reloader) load(ctx context.Context) (*domain.AnalyticsSnapshot, string, string, error) {
	if r.Engine == nil {
		return nil, "", "", errors.New("engine is nil")
	}

	if r.Original != nil && r.Optimized != nil {
		orig, opt, err := fetchBoth(ctx, r.Original, r.Optimized)
		if err != nil {
			return nil, "", "", err
		}
		snap, err := r.Engine.Load(ctx, orig, opt)
		return snap, r.Original.Describe(), r.Optimized.Describe(), err
	}

	if r.Visits != nil {
		orig, err := r.Visits.ListVisits(ctx, domain.VariantOriginal)
		if err != nil {
			return nil, "", "", fmt.Errorf("list %s visits: %w", domain.VariantOriginal, err)
		}
		opt, err := r.Visits.ListVisits(ctx, domain.VariantOptimized)
		if err != nil {
			return nil, "", "", fmt.Errorf("list %s visits: %w", domain.VariantOptimized, err)
		}
		snap, err := r.Engine.LoadVisits(ctx, orig, opt)
		return snap, "db:" + string(domain.VariantOriginal), "db:" + string(domain.VariantOptimized), err
	}

	return nil, "", "", errors.New("no schedule source configured")
}

// fetchBoth reads the two exports concurrently; the first failure cancels
// the other fetch.
func fetchBoth(ctx context.Context, original, optimized ports.ScheduleSource) (domain.RowSet, domain.RowSet, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	resultsCh := make(chan fetchResult, 2)
	var wg sync.WaitGroup

	sources := map[domain.Variant]ports.ScheduleSource{
		domain.VariantOriginal:  original,
		domain.VariantOptimized: optimized,
	}
	for variant, src := range sources {
		wg.Add(1)
		go func(v domain.Variant, s ports.ScheduleSource) {
			defer wg.Done()

			rs, err := s.Fetch(ctx)
			if err != nil {
				resultsCh <- fetchResult{variant: v, err: fmt.Errorf("fetch %s schedule from %s: %w", v, s.Describe(), err)}
				cancel()
				return
			}
			rs.Variant = v
			if rs.Label == "" {
				rs.Label = s.Describe()
			}
			resultsCh <- fetchResult{variant: v, rows: rs}
		}(variant, src)
	}

	wg.Wait()
	close(resultsCh)

	var (
		orig, opt domain.RowSet
		fetchErr  error
	)
	for res := range resultsCh {
		if res.err != nil {
			if fetchErr == nil {
				fetchErr = res.err
			}
			continue
		}
		if res.variant == domain.VariantOriginal {
			orig = res.rows
		} else {
			opt = res.rows
		}
	}
	if fetchErr != nil {
		return domain.RowSet{}, domain.RowSet{}, fetchErr
	}

	return orig, opt, nil
}

// Digest extracts every comparison table of a snapshot, keyed "metric/view"
// for travel tables and by view for slot tables.
func Digest(snap *domain.AnalyticsSnapshot) (domain.SnapshotDigest, error) {
	d := domain.SnapshotDigest{
		RunID:     snap.RunID,
		LoadedAt:  snap.LoadedAt,
		Overview:  snap.Overview,
		Tables:    make(map[string][]domain.ComparisonRow),
		Slots:     make(map[string][]domain.ComparisonRow),
		TimeShift: snap.TimeShift,
	}

	for _, view := range []domain.View{domain.ViewDay, domain.ViewTeam} {
		for _, metric := range []domain.Metric{domain.MetricTotal, domain.MetricAverage, domain.MetricMedian} {
			rows, err := Resolve(string(metric), string(view), snap)
			if err != nil {
				return domain.SnapshotDigest{}, fmt.Errorf("digest snapshot: %w", err)
			}
			d.Tables[string(metric)+"/"+string(view)] = rows
		}

		slots, err := ResolveSlots(string(view), snap)
		if err != nil {
			return domain.SnapshotDigest{}, fmt.Errorf("digest snapshot: %w", err)
		}
		d.Slots[string(view)] = slots
	}

	return d, nil
}
