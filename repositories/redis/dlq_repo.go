package redis

import (
	// Go Internal Packages
	"context"

	// Local Packages
	models "momo-ledger/models"

	// External Packages
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// DeadLetterQueue parks change-topic records that could not be decoded so
// they can be inspected and replayed later.
type DeadLetterQueue struct {
	client   *redis.Client
	logger   *zap.Logger
	listName string
}

func NewDeadLetterQueue(client *redis.Client, logger *zap.Logger) *DeadLetterQueue {
	return &DeadLetterQueue{client: client, logger: logger, listName: "failed-tx-changes"}
}

// Send appends the raw record payloads to the DLQ list. Individual failures
// are logged and skipped; the batch is never aborted halfway.
func (r *DeadLetterQueue) Send(ctx context.Context, records []models.Record) error {
	if len(records) == 0 {
		return nil
	}

	successCount := 0
	for _, record := range records {
		err := r.client.RPush(ctx, r.listName, record.Value).Err()
		if err != nil {
			r.logger.Error("failed to park record",
				zap.String("list", r.listName), zap.Error(err))
			continue
		}
		successCount++
	}

	if successCount > 0 {
		r.logger.Info("parked undecodable change records", zap.Int("count", successCount))
	}

	return nil
}
