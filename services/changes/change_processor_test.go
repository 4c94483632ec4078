package changes

import (
	// Go Internal Packages
	"context"
	"testing"

	// Local Packages
	models "momo-ledger/models"

	// External Packages
	"go.uber.org/zap"
)

type fakeNotifier struct {
	count int
}

func (f *fakeNotifier) Notify() { f.count++ }

type fakeDLQ struct {
	parked []models.Record
}

func (f *fakeDLQ) Send(_ context.Context, records []models.Record) error {
	f.parked = append(f.parked, records...)
	return nil
}

func TestProcessRecordsNotifiesOncePerBatch(t *testing.T) {
	notifier := &fakeNotifier{}
	dlq := &fakeDLQ{}
	p := NewChangeProcessor(zap.NewNop(), notifier, dlq)

	records := []models.Record{
		{Value: []byte(`{"op":"insert","row":{"id":"1"}}`)},
		{Value: []byte(`{"op":"update","row":{"id":"2"}}`)},
		{Value: []byte(`{"op":"delete","row":{"id":"3"}}`)},
	}

	if err := p.ProcessRecords(context.Background(), records); err != nil {
		t.Fatalf("process failed: %v", err)
	}
	if notifier.count != 1 {
		t.Fatalf("notify count = %d; want one nudge per batch", notifier.count)
	}
	if len(dlq.parked) != 0 {
		t.Fatalf("valid records must not be parked")
	}
}

func TestProcessRecordsParksBadRecords(t *testing.T) {
	notifier := &fakeNotifier{}
	dlq := &fakeDLQ{}
	p := NewChangeProcessor(zap.NewNop(), notifier, dlq)

	records := []models.Record{
		{Value: []byte(`not json`)},
		{Value: []byte(`{"op":"upsert","row":{}}`)},
		{Value: []byte(`{"op":"insert","row":{"id":"1"}}`)},
	}

	if err := p.ProcessRecords(context.Background(), records); err != nil {
		t.Fatalf("process failed: %v", err)
	}
	if len(dlq.parked) != 2 {
		t.Fatalf("parked = %d; want undecodable and unknown-op records", len(dlq.parked))
	}
	if notifier.count != 1 {
		t.Fatalf("the one valid record should still trigger a refresh")
	}
}

func TestProcessRecordsEmptyBatch(t *testing.T) {
	notifier := &fakeNotifier{}
	p := NewChangeProcessor(zap.NewNop(), notifier, &fakeDLQ{})

	if err := p.ProcessRecords(context.Background(), nil); err != nil {
		t.Fatalf("empty batch failed: %v", err)
	}
	if notifier.count != 0 {
		t.Fatalf("empty batch must not trigger a refresh")
	}
}

func TestProcessRecordsAllBadNoNotify(t *testing.T) {
	notifier := &fakeNotifier{}
	dlq := &fakeDLQ{}
	p := NewChangeProcessor(zap.NewNop(), notifier, dlq)

	records := []models.Record{{Value: []byte(`garbage`)}}
	if err := p.ProcessRecords(context.Background(), records); err != nil {
		t.Fatalf("process failed: %v", err)
	}
	if notifier.count != 0 {
		t.Fatalf("a fully undecodable batch must not trigger a refresh")
	}
	if len(dlq.parked) != 1 {
		t.Fatalf("bad record should be parked")
	}
}
