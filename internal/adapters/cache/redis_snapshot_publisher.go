package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"schedule-comparison-service/internal/domain"
	"schedule-comparison-service/internal/platform/obs"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	DefaultSnapshotKey     = "schedule:snapshot:latest"
	DefaultSnapshotChannel = "schedule:snapshot:updates"
)

// RedisSnapshotPublisher stores the latest snapshot digest under a key and
// announces the new run id on a pub/sub channel.
type RedisSnapshotPublisher struct {
	Client  *redis.Client
	Key     string
	Channel string
}

func NewRedisSnapshotPublisher(client *redis.Client) *RedisSnapshotPublisher {
	return &RedisSnapshotPublisher{
		Client:  client,
		Key:     DefaultSnapshotKey,
		Channel: DefaultSnapshotChannel,
	}
}

type RowMessage struct {
	Label          string  `json:"label"`
	OriginalValue  float64 `json:"original_value"`
	OptimizedValue float64 `json:"optimized_value"`
	ImprovementPct float64 `json:"improvement_pct"`
}

type BucketMessage struct {
	OffsetDays    int `json:"offset_days"`
	CustomerCount int `json:"customer_count"`
}

type VariantMessage struct {
	Visits             int     `json:"visits"`
	Customers          int     `json:"customers"`
	Teams              int     `json:"teams"`
	TotalTravelMinutes float64 `json:"total_travel_minutes"`
	SkippedRows        int     `json:"skipped_rows"`
}

// SnapshotMessage is the JSON document stored under the snapshot key.
type SnapshotMessage struct {
	RunID                string                  `json:"run_id"`
	LoadedAt             time.Time               `json:"loaded_at"`
	Original             VariantMessage          `json:"original"`
	Optimized            VariantMessage          `json:"optimized"`
	CoveragePct          float64                 `json:"coverage_pct"`
	TravelImprovementPct float64                 `json:"travel_improvement_pct"`
	Tables               map[string][]RowMessage `json:"tables"`
	Slots                map[string][]RowMessage `json:"slots"`
	TimeShift            []BucketMessage         `json:"time_shift"`
}

func newSnapshotMessage(d domain.SnapshotDigest) SnapshotMessage {
	msg := SnapshotMessage{
		RunID:                d.RunID.String(),
		LoadedAt:             d.LoadedAt,
		Original:             newVariantMessage(d.Overview.Original),
		Optimized:            newVariantMessage(d.Overview.Optimized),
		CoveragePct:          d.Overview.CoveragePct,
		TravelImprovementPct: d.Overview.TravelImprovementPct,
		Tables:               make(map[string][]RowMessage, len(d.Tables)),
		Slots:                make(map[string][]RowMessage, len(d.Slots)),
		TimeShift:            make([]BucketMessage, 0, len(d.TimeShift)),
	}
	for k, rows := range d.Tables {
		msg.Tables[k] = newRowMessages(rows)
	}
	for k, rows := range d.Slots {
		msg.Slots[k] = newRowMessages(rows)
	}
	for _, b := range d.TimeShift {
		msg.TimeShift = append(msg.TimeShift, BucketMessage{OffsetDays: b.OffsetDays, CustomerCount: b.CustomerCount})
	}
	return msg
}

func newVariantMessage(v domain.VariantOverview) VariantMessage {
	return VariantMessage{
		Visits:             v.Visits,
		Customers:          v.Customers,
		Teams:              v.Teams,
		TotalTravelMinutes: v.TotalTravelMinutes,
		SkippedRows:        v.SkippedRows,
	}
}

func newRowMessages(rows []domain.ComparisonRow) []RowMessage {
	out := make([]RowMessage, 0, len(rows))
	for _, r := range rows {
		out = append(out, RowMessage(r))
	}
	return out
}

// Publish overwrites the latest digest and notifies subscribers. SET and
// PUBLISH go out in one MULTI/EXEC.
func (p *RedisSnapshotPublisher) Publish(ctx context.Context, digest domain.SnapshotDigest) (err error) {
	defer obs.Time(ctx, "snapshot.redis.Publish")(&err)

	if p.Client == nil {
		return errors.New("redis snapshot publisher: client is nil")
	}

	payload, err := json.Marshal(newSnapshotMessage(digest))
	if err != nil {
		return fmt.Errorf("publish snapshot: marshal digest: %w", err)
	}

	_, err = p.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, p.Key, payload, 0)
		pipe.Publish(ctx, p.Channel, digest.RunID.String())
		return nil
	})
	if err != nil {
		return fmt.Errorf("publish snapshot: run_id=%s: %w", digest.RunID, err)
	}

	return nil
}

// latest reads the stored digest back. ok is false when nothing was published.
func (p *RedisSnapshotPublisher) latest(ctx context.Context) (_ SnapshotMessage, ok bool, err error) {
	defer obs.Time(ctx, "snapshot.redis.latest")(&err)

	if p.Client == nil {
		return SnapshotMessage{}, false, errors.New("redis snapshot publisher: client is nil")
	}

	raw, err := p.Client.Get(ctx, p.Key).Bytes()
	if errors.Is(err, redis.Nil) {
		return SnapshotMessage{}, false, nil
	}
	if err != nil {
		return SnapshotMessage{}, false, fmt.Errorf("latest snapshot: get %s: %w", p.Key, err)
	}

	var msg SnapshotMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		return SnapshotMessage{}, false, fmt.Errorf("latest snapshot: decode: %w", err)
	}
	return msg, true, nil
}
