//go:generate go run go.uber.org/mock/mockgen -source=service.go -destination=mock/service.go
package socket

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/totegamma/purse/core"
)

// Service is the interface for the character event feed
type Service interface {
	Subscribe(ctx context.Context, events chan<- core.CharacterEvent) error
}

type service struct {
	rdb *redis.Client
}

// NewService creates a new socket service
func NewService(rdb *redis.Client) Service {
	return &service{rdb}
}

// Subscribe forwards every published character event until ctx is done
func (s *service) Subscribe(ctx context.Context, events chan<- core.CharacterEvent) error {
	ctx, span := tracer.Start(ctx, "Socket.Service.Subscribe")
	defer span.End()

	pubsub := s.rdb.Subscribe(ctx, core.CharacterEventChannel)
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		span.RecordError(err)
		return err
	}

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			var event core.CharacterEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				slog.WarnContext(
					ctx, "dropping malformed character event",
					slog.String("error", err.Error()),
				)
				continue
			}
			select {
			case events <- event:
			case <-ctx.Done():
				return nil
			}
		}
	}
}
