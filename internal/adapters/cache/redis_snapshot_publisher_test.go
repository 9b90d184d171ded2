package cache

import (
	"context"
	"schedule-comparison-service/internal/domain"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

func newTestPublisher(t *testing.T) (*RedisSnapshotPublisher, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisSnapshotPublisher(client), client
}

func TestRedisSnapshotPublisherPublish(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pub, client := newTestPublisher(t)

	sub := client.Subscribe(ctx, DefaultSnapshotChannel)
	defer sub.Close()
	if _, err := sub.Receive(ctx); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	digest := domain.SnapshotDigest{
		RunID:    uuid.New(),
		LoadedAt: time.Date(2025, 7, 7, 8, 0, 0, 0, time.UTC),
		Overview: domain.Overview{
			Original:             domain.VariantOverview{Visits: 2, TotalTravelMinutes: 55},
			Optimized:            domain.VariantOverview{Visits: 2, TotalTravelMinutes: 15},
			TravelImprovementPct: domain.ImprovementPct(55, 15),
		},
		Tables: map[string][]domain.ComparisonRow{
			"total/team": {domain.NewComparisonRow("Team 3", 55, 15)},
		},
		TimeShift: []domain.TimeShiftBucket{{OffsetDays: 0, CustomerCount: 2}},
	}

	if err := pub.Publish(ctx, digest); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	msg, err := sub.ReceiveMessage(ctx)
	if err != nil {
		t.Fatalf("ReceiveMessage: %v", err)
	}
	if msg.Payload != digest.RunID.String() {
		t.Fatalf("payload = %q, want %q", msg.Payload, digest.RunID)
	}

	got, ok, err := pub.latest(ctx)
	if err != nil || !ok {
		t.Fatalf("latest: ok=%v err=%v", ok, err)
	}
	if got.RunID != digest.RunID.String() {
		t.Fatalf("run_id = %q, want %q", got.RunID, digest.RunID)
	}
	rows := got.Tables["total/team"]
	if len(rows) != 1 || rows[0].Label != "Team 3" || rows[0].OriginalValue != 55 || rows[0].OptimizedValue != 15 {
		t.Fatalf("total/team = %+v, want one Team 3 row 55 -> 15", rows)
	}
	if len(got.TimeShift) != 1 || got.TimeShift[0].CustomerCount != 2 {
		t.Fatalf("time_shift = %+v, want one bucket of 2", got.TimeShift)
	}
}

func TestRedisSnapshotPublisherNothingPublished(t *testing.T) {
	pub, _ := newTestPublisher(t)

	_, ok, err := pub.latest(context.Background())
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if ok {
		t.Fatalf("ok = true before any publish")
	}
}
