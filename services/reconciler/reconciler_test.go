package reconciler

import (
	// Go Internal Packages
	"testing"
	"time"

	// Local Packages
	models "momo-ledger/models"
)

func send(to, amount string, ts int64) models.Transaction {
	return models.Transaction{Type: models.TxSend, To: to, Amount: amount, Timestamp: ts}
}

func TestMergeDisjoint(t *testing.T) {
	local := []models.Transaction{
		send("0781111111", "RWF 100", 300),
		send("0782222222", "RWF 200", 100),
	}
	remote := []models.Transaction{
		send("0783333333", "RWF 300", 200),
		send("0784444444", "RWF 400", 400),
	}

	merged := Merge(local, remote)
	if len(merged) != len(local)+len(remote) {
		t.Fatalf("merged length = %d; want %d", len(merged), len(local)+len(remote))
	}
	for i := 1; i < len(merged); i++ {
		if merged[i-1].Timestamp < merged[i].Timestamp {
			t.Fatalf("merged not sorted descending at %d: %d < %d", i, merged[i-1].Timestamp, merged[i].Timestamp)
		}
	}
}

func TestMergeLocalWins(t *testing.T) {
	local := send("0781234567", "RWF 500", 1000)
	local.IsFavorite = true

	remote := send("0781234567", "RWF 500", 1000)
	remote.ID = "remote-id"

	merged := Merge([]models.Transaction{local}, []models.Transaction{remote})
	if len(merged) != 1 {
		t.Fatalf("merged length = %d; want 1 copy of the duplicate", len(merged))
	}
	if !merged[0].IsFavorite {
		t.Fatalf("local copy with favorite annotation should win")
	}
	if merged[0].ID == "remote-id" {
		t.Fatalf("remote copy should be dropped, never overwrite")
	}
}

func TestMergeMissingTimestampSortsLast(t *testing.T) {
	local := []models.Transaction{send("a", "RWF 1", 0)}
	remote := []models.Transaction{send("b", "RWF 2", 500)}

	merged := Merge(local, remote)
	if merged[len(merged)-1].To != "a" {
		t.Fatalf("record without timestamp should sort last, got %+v", merged)
	}
}

func TestMergeStableTies(t *testing.T) {
	local := []models.Transaction{
		send("first", "RWF 1", 100),
		send("second", "RWF 2", 100),
	}

	merged := Merge(local, nil)
	if merged[0].To != "first" || merged[1].To != "second" {
		t.Fatalf("equal timestamps should keep relative order, got %+v", merged)
	}
}

func TestFilter(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	dayMs := int64(86400000)

	oneDayAgo := send("recent", "RWF 1", now.UnixMilli()-dayMs)
	tenDaysAgo := send("old", "RWF 2", now.UnixMilli()-10*dayMs)
	tenDaysAgo.UserID = "user-2"
	oneDayAgo.UserID = "user-1"
	airtime := models.Transaction{Type: models.TxAirtime, PhoneNumber: "0788", Amount: "RWF 3", Timestamp: now.UnixMilli(), UserID: "user-1"}

	list := []models.Transaction{oneDayAgo, tenDaysAgo, airtime}

	got := Filter(list, models.Query{RecentDays: 7}, now)
	if len(got) != 2 {
		t.Fatalf("recentDays=7 should keep 2 records, got %d", len(got))
	}
	for _, tx := range got {
		if tx.Recipient() == "old" {
			t.Fatalf("record 10 days old should be excluded")
		}
	}

	got = Filter(list, models.Query{UserID: "user-1"}, now)
	if len(got) != 2 {
		t.Fatalf("user filter should keep 2 records, got %d", len(got))
	}

	got = Filter(list, models.Query{Type: models.TxAirtime}, now)
	if len(got) != 1 || got[0].Type != models.TxAirtime {
		t.Fatalf("type filter should keep only airtime, got %+v", got)
	}

	got = Filter(list, models.Query{}, now)
	if len(got) != 3 {
		t.Fatalf("empty query should pass everything, got %d", len(got))
	}
}
