package changes

import (
	// Go Internal Packages
	"context"
	"encoding/json"

	// Local Packages
	models "momo-ledger/models"

	// External Packages
	"go.uber.org/zap"
)

// Notifier receives one nudge per processed batch. The view re-fetches in
// full; change payloads are never applied incrementally.
type Notifier interface {
	Notify()
}

// DeadLetterQueue parks records that could not be decoded.
type DeadLetterQueue interface {
	Send(ctx context.Context, records []models.Record) error
}

// ChangeProcessor decodes row-change batches from the change topic and
// nudges the ledger to re-fetch.
type ChangeProcessor struct {
	Logger   *zap.Logger
	Notifier Notifier
	DLQ      DeadLetterQueue
}

func NewChangeProcessor(logger *zap.Logger, notifier Notifier, dlq DeadLetterQueue) *ChangeProcessor {
	return &ChangeProcessor{Logger: logger, Notifier: notifier, DLQ: dlq}
}

// ProcessRecords validates each record as a change event, parks undecodable
// ones in the DLQ and notifies once for the batch. An empty or fully
// undecodable batch triggers no refresh.
func (p *ChangeProcessor) ProcessRecords(ctx context.Context, records []models.Record) error {
	if len(records) == 0 {
		return nil
	}

	var failed []models.Record
	decoded := 0
	for _, record := range records {
		var event models.ChangeEvent
		if err := json.Unmarshal(record.Value, &event); err != nil {
			p.Logger.Error("failed to unmarshal change event", zap.Error(err))
			failed = append(failed, record)
			continue
		}
		switch event.Op {
		case "insert", "update", "delete":
			decoded++
		default:
			p.Logger.Error("unknown change op", zap.String("op", event.Op))
			failed = append(failed, record)
		}
	}

	if len(failed) > 0 {
		if err := p.DLQ.Send(ctx, failed); err != nil {
			p.Logger.Error("failed to park records in DLQ", zap.Error(err))
		}
	}

	if decoded > 0 {
		p.Notifier.Notify()
	}
	return nil
}
