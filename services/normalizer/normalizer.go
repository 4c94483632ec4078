package normalizer

import (
	// Go Internal Packages
	"time"

	// Local Packages
	helpers "momo-ledger/helpers"
	models "momo-ledger/models"
	utils "momo-ledger/utils"
)

// Labeler turns an absolute time into the display label consumers show next
// to a transaction. Fallback applies to anything older than yesterday; it
// defaults to "Today", which is what existing consumers were shipped with.
type Labeler struct {
	Fallback string
	Now      func() time.Time
}

func (l Labeler) now() time.Time {
	if l.Now != nil {
		return l.Now()
	}
	return time.Now()
}

// Label compares calendar days, not 24h windows: 23:59 vs 00:01 is still
// "Yesterday".
func (l Labeler) Label(t time.Time) string {
	now := l.now()
	ty, tm, td := t.Date()
	ny, nm, nd := now.Date()
	if ty == ny && tm == nm && td == nd {
		return "Today"
	}
	yesterday := now.AddDate(0, 0, -1)
	yy, ym, yd := yesterday.Date()
	if ty == yy && tm == ym && td == yd {
		return "Yesterday"
	}
	if l.Fallback != "" {
		return l.Fallback
	}
	return "Today"
}

// Normalizer converts remote row shapes into the canonical transaction
// variant set. Conversion is total: any row, however degenerate, yields a
// usable record.
type Normalizer struct {
	labeler Labeler
}

func New(labeler Labeler) *Normalizer {
	return &Normalizer{labeler: labeler}
}

// FromRemote maps one remote row to a canonical transaction. An unparseable
// created_at leaves the timestamp at zero, which sorts the record last.
// Unknown transaction types collapse into the send variant.
func (n *Normalizer) FromRemote(row models.RemoteRow) models.Transaction {
	tx := models.Transaction{
		ID:     row.ID,
		Amount: utils.FormatAmount(int64(row.Amount)),
		UserID: row.UserID,
	}

	created := row.CreatedAtTime()
	if !created.IsZero() {
		tx.Timestamp = helpers.MillisFromTime(created)
		tx.Date = n.labeler.Label(created)
	} else {
		tx.Date = n.labeler.Label(n.labeler.now())
	}

	switch models.TxType(row.TransactionType) {
	case models.TxAirtime:
		tx.Type = models.TxAirtime
		tx.PhoneNumber = row.Recipient
	case models.TxData:
		tx.Type = models.TxData
		tx.PhoneNumber = row.Recipient
		tx.DataPackage = row.Description
		if tx.DataPackage == "" {
			tx.DataPackage = models.DefaultDataPackage
		}
	case models.TxSend:
		tx.Type = models.TxSend
		tx.To = row.Recipient
		// the remote schema does not track merchant codes
		tx.IsMomoPay = false
	default:
		tx.Type = models.TxSend
		tx.To = row.Recipient
		if tx.To == "" {
			tx.To = "Unknown"
		}
	}

	return tx
}

// Label stamps the display label for a time, for callers creating records
// locally.
func (n *Normalizer) Label(t time.Time) string {
	return n.labeler.Label(t)
}

// FromAdminRemote maps a profile-joined admin row.
func (n *Normalizer) FromAdminRemote(row models.AdminRow) models.AdminTransaction {
	return models.AdminTransaction{
		Transaction: n.FromRemote(row.RemoteRow),
		Profile:     row.Profile,
		Status:      row.Status,
	}
}

// ToRemote is the inverse used on insert: the canonical record back into the
// remote row shape. Local-only annotations (favorite, momo-pay flag, date
// label) do not survive the trip.
func (n *Normalizer) ToRemote(tx models.Transaction) models.RemoteRow {
	amount, _ := utils.ParseAmount(tx.Amount)
	row := models.RemoteRow{
		ID:              tx.ID,
		UserID:          tx.UserID,
		Amount:          float64(amount),
		TransactionType: string(tx.Type),
		Recipient:       tx.Recipient(),
		Status:          "completed",
		CreatedAt:       helpers.TimeFromMillis(tx.Timestamp).UTC().Format(time.RFC3339),
	}
	if tx.Type == models.TxData {
		row.Description = tx.DataPackage
	}
	return row
}
