package notifications

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// StreamEvent is the event name written for every notification.
const StreamEvent = "support.notification"

// Stream publishes notifications to a Redis stream for downstream consumers.
type Stream struct {
	rdb    redis.Cmdable
	stream string
	newID  func() string
	now    func() time.Time
}

func NewStream(rdb redis.Cmdable, stream string) *Stream {
	return &Stream{
		rdb:    rdb,
		stream: stream,
		newID:  uuid.NewString,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *Stream) Notify(ctx context.Context, userID uint, title, body, kind string) error {
	err := s.rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: s.stream,
		Values: streamValues(s.newID(), userID, title, body, kind, s.now()),
	}).Err()
	if err != nil {
		return fmt.Errorf("publish to %s: %w", s.stream, err)
	}
	return nil
}

func streamValues(id string, userID uint, title, body, kind string, at time.Time) []interface{} {
	return []interface{}{
		"event_id", id,
		"event", StreamEvent,
		"user_id", userID,
		"title", title,
		"body", body,
		"kind", kind,
		"created_at", at.Format(time.RFC3339),
	}
}
