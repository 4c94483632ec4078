package models

import (
	// Go Internal Packages
	"time"
)

// RemoteRow is the remote store's row shape for a transaction. CreatedAt is
// kept as the ISO8601 string the store serves; RFC3339 in UTC sorts and
// range-filters lexicographically.
type RemoteRow struct {
	ID              string  `json:"id" bson:"_id,omitempty"`
	UserID          string  `json:"user_id" bson:"user_id"`
	Amount          float64 `json:"amount" bson:"amount"`
	TransactionType string  `json:"transaction_type" bson:"transaction_type"`
	Recipient       string  `json:"recipient" bson:"recipient"`
	Description     string  `json:"description,omitempty" bson:"description,omitempty"`
	Status          string  `json:"status" bson:"status"`
	CreatedAt       string  `json:"created_at" bson:"created_at"`
}

// CreatedAtTime parses CreatedAt; the zero time signals an unparseable date.
func (r *RemoteRow) CreatedAtTime() time.Time {
	t, err := time.Parse(time.RFC3339, r.CreatedAt)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Profile is the user metadata joined onto admin reads.
type Profile struct {
	DisplayName string `json:"display_name" bson:"display_name"`
	Email       string `json:"email" bson:"email"`
	PhoneNumber string `json:"phone_number" bson:"phone_number"`
}

// AdminRow is a transaction row joined with its owner's profile, served
// only to admin sessions.
type AdminRow struct {
	RemoteRow `bson:",inline"`
	Profile   Profile `json:"profile" bson:"profile"`
}

// AdminTransaction is the normalized admin read model: the canonical record
// plus the owner's profile metadata.
type AdminTransaction struct {
	Transaction
	Profile Profile `json:"profile"`
	Status  string  `json:"status"`
}

// TxPatch carries the admin-editable fields of a remote row. Nil fields are
// left untouched.
type TxPatch struct {
	Amount      *float64 `json:"amount,omitempty" bson:"amount,omitempty"`
	Recipient   *string  `json:"recipient,omitempty" bson:"recipient,omitempty"`
	Description *string  `json:"description,omitempty" bson:"description,omitempty"`
	Status      *string  `json:"status,omitempty" bson:"status,omitempty"`
}

// IsEmpty reports whether the patch would change nothing.
func (p *TxPatch) IsEmpty() bool {
	return p.Amount == nil && p.Recipient == nil && p.Description == nil && p.Status == nil
}

// ChangeEvent is one row-level change published on the change topic.
type ChangeEvent struct {
	Op  string    `json:"op"` // insert, update or delete
	Row RemoteRow `json:"row"`
}
