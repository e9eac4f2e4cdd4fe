package analytics

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// DefaultCap bounds the event ring; LTRIM after each push keeps only the
// most recent events.
const DefaultCap = 10000

const eventsKey = "analytics:events"

// Event is one page/interaction event. Stored in Redis so the log survives
// restarts and is shared across instances behind a load balancer.
type Event struct {
	Type      string    `json:"type"`
	Path      string    `json:"path,omitempty"`
	SessionID string    `json:"sessionId,omitempty"`
	Referrer  string    `json:"referrer,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type Recorder struct {
	rdb    *redis.Client
	cap    int64
	logger *zap.Logger
}

func NewRecorder(rdb *redis.Client, capacity int64, logger *zap.Logger) *Recorder {
	if capacity <= 0 {
		capacity = DefaultCap
	}
	return &Recorder{rdb: rdb, cap: capacity, logger: logger}
}

// Record pushes an event onto the ring and trims it to capacity.
func (r *Recorder) Record(ctx context.Context, ev Event) error {
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now().UTC()
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	pipe := r.rdb.TxPipeline()
	pipe.LPush(ctx, eventsKey, payload)
	pipe.LTrim(ctx, eventsKey, 0, r.cap-1)
	_, err = pipe.Exec(ctx)
	return err
}

// Recent returns the n most recent events, newest first.
func (r *Recorder) Recent(ctx context.Context, n int64) ([]Event, error) {
	if n <= 0 || n > r.cap {
		n = r.cap
	}
	raw, err := r.rdb.LRange(ctx, eventsKey, 0, n-1).Result()
	if err != nil {
		return nil, err
	}

	events := make([]Event, 0, len(raw))
	for _, item := range raw {
		var ev Event
		if err := json.Unmarshal([]byte(item), &ev); err != nil {
			r.logger.Warn("skipping malformed analytics event", zap.Error(err))
			continue
		}
		events = append(events, ev)
	}
	return events, nil
}
