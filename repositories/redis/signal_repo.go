package redis

import (
	// Go Internal Packages
	"context"

	// External Packages
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// SignalRepo is the cross-view refresh channel: a zero-payload pub/sub
// broadcast that tells every active consumer to re-fetch its view.
type SignalRepo struct {
	client  *redis.Client
	logger  *zap.Logger
	channel string
}

func NewSignalRepo(client *redis.Client, logger *zap.Logger, channel string) *SignalRepo {
	return &SignalRepo{client: client, logger: logger, channel: channel}
}

// Broadcast publishes one refresh signal. The payload carries no meaning;
// receipt alone triggers a full re-fetch.
func (r *SignalRepo) Broadcast(ctx context.Context) error {
	return r.client.Publish(ctx, r.channel, "").Err()
}

// Subscribe returns a channel that receives one value per broadcast, plus a
// release func that must be called when the consuming view goes away.
// Signals are coalesced: a slow consumer sees at most one pending signal.
func (r *SignalRepo) Subscribe(ctx context.Context) (<-chan struct{}, func(), error) {
	sub := r.client.Subscribe(ctx, r.channel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, nil, err
	}

	out := make(chan struct{}, 1)
	go func() {
		defer close(out)
		for range sub.Channel() {
			select {
			case out <- struct{}{}:
			default:
			}
		}
	}()

	release := func() {
		if err := sub.Close(); err != nil {
			r.logger.Warn("failed to close signal subscription", zap.Error(err))
		}
	}
	return out, release, nil
}
