package normalizer

import (
	// Go Internal Packages
	"testing"
	"time"

	// Local Packages
	models "momo-ledger/models"
)

// fixedNow pins "now" so day labels are deterministic.
var fixedNow = time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

func newTestNormalizer(fallback string) *Normalizer {
	return New(Labeler{Fallback: fallback, Now: func() time.Time { return fixedNow }})
}

func TestFromRemoteSendRoundTrip(t *testing.T) {
	n := newTestNormalizer("Today")
	row := models.RemoteRow{
		ID:              "tx-1",
		UserID:          "user-1",
		Amount:          500,
		TransactionType: "send",
		Recipient:       "0781234567",
		CreatedAt:       fixedNow.Format(time.RFC3339),
	}

	tx := n.FromRemote(row)
	if tx.Type != models.TxSend {
		t.Fatalf("type = %q; want send", tx.Type)
	}
	if tx.To != "0781234567" {
		t.Fatalf("to = %q; want recipient", tx.To)
	}
	if tx.Amount != "RWF 500" {
		t.Fatalf("amount = %q; want RWF 500", tx.Amount)
	}
	if tx.Date != "Today" {
		t.Fatalf("date = %q; want Today", tx.Date)
	}
	if tx.IsMomoPay {
		t.Fatalf("remote rows never carry a momo-pay flag")
	}
	if tx.Timestamp != fixedNow.UnixMilli() {
		t.Fatalf("timestamp = %d; want %d", tx.Timestamp, fixedNow.UnixMilli())
	}
}

func TestFromRemoteDataDefaultsPackage(t *testing.T) {
	n := newTestNormalizer("Today")
	row := models.RemoteRow{
		TransactionType: "data",
		Recipient:       "0788123456",
		Amount:          1000,
		CreatedAt:       fixedNow.Format(time.RFC3339),
	}

	tx := n.FromRemote(row)
	if tx.Type != models.TxData {
		t.Fatalf("type = %q; want data", tx.Type)
	}
	if tx.PhoneNumber != "0788123456" {
		t.Fatalf("phoneNumber = %q; want recipient", tx.PhoneNumber)
	}
	if tx.DataPackage != models.DefaultDataPackage {
		t.Fatalf("dataPackage = %q; want default", tx.DataPackage)
	}

	row.Description = "Weekly Bundle"
	if tx := n.FromRemote(row); tx.DataPackage != "Weekly Bundle" {
		t.Fatalf("dataPackage = %q; want description", tx.DataPackage)
	}
}

func TestFromRemoteUnknownType(t *testing.T) {
	n := newTestNormalizer("Today")

	tx := n.FromRemote(models.RemoteRow{TransactionType: "loan", Recipient: "0781111111"})
	if tx.Type != models.TxSend || tx.To != "0781111111" {
		t.Fatalf("unknown type should collapse to send with recipient, got %+v", tx)
	}

	tx = n.FromRemote(models.RemoteRow{TransactionType: ""})
	if tx.Type != models.TxSend || tx.To != "Unknown" {
		t.Fatalf("missing type and recipient should yield send/Unknown, got %+v", tx)
	}
}

func TestFromRemoteBadCreatedAt(t *testing.T) {
	n := newTestNormalizer("Today")
	tx := n.FromRemote(models.RemoteRow{TransactionType: "send", Recipient: "x", CreatedAt: "not-a-date"})
	if tx.Timestamp != 0 {
		t.Fatalf("unparseable created_at should leave timestamp zero, got %d", tx.Timestamp)
	}
}

func TestLabel(t *testing.T) {
	l := Labeler{Fallback: "Earlier", Now: func() time.Time { return fixedNow }}

	cases := []struct {
		name string
		t    time.Time
		want string
	}{
		{"same day", fixedNow.Add(-2 * time.Hour), "Today"},
		{"late yesterday vs early today", time.Date(2026, 8, 27, 23, 59, 0, 0, time.UTC), "Yesterday"},
		{"two days ago", fixedNow.AddDate(0, 0, -2), "Earlier"},
		{"last year", fixedNow.AddDate(-1, 0, 0), "Earlier"},
	}

	for _, tc := range cases {
		if got := l.Label(tc.t); got != tc.want {
			t.Fatalf("%s: label = %q; want %q", tc.name, got, tc.want)
		}
	}

	// default fallback preserves the historical "Today" labelling
	d := Labeler{Now: func() time.Time { return fixedNow }}
	if got := d.Label(fixedNow.AddDate(0, 0, -10)); got != "Today" {
		t.Fatalf("default fallback = %q; want Today", got)
	}
}

func TestToRemote(t *testing.T) {
	n := newTestNormalizer("Today")
	tx := models.Transaction{
		Type:       models.TxData,
		PhoneNumber: "0788123456",
		DataPackage: "Weekly Bundle",
		Amount:     "RWF 1,000",
		Timestamp:  fixedNow.UnixMilli(),
		UserID:     "user-1",
		IsFavorite: true,
	}

	row := n.ToRemote(tx)
	if row.Amount != 1000 {
		t.Fatalf("amount = %v; want 1000", row.Amount)
	}
	if row.TransactionType != "data" {
		t.Fatalf("transaction_type = %q; want data", row.TransactionType)
	}
	if row.Recipient != "0788123456" {
		t.Fatalf("recipient = %q; want phone number", row.Recipient)
	}
	if row.Description != "Weekly Bundle" {
		t.Fatalf("description = %q; want package label", row.Description)
	}
	if row.CreatedAt != fixedNow.Format(time.RFC3339) {
		t.Fatalf("created_at = %q; want %q", row.CreatedAt, fixedNow.Format(time.RFC3339))
	}
}
