package models

import (
	// Local Packages
	errors "momo-ledger/errors"
	utils "momo-ledger/utils"
)

type TxType string

const (
	TxSend    TxType = "send"
	TxAirtime TxType = "airtime"
	TxData    TxType = "data"
)

// DemoUserID is the sentinel owner for records created without a session.
const DemoUserID = "demo-user"

// DefaultDataPackage labels data transactions that carry no package name.
const DefaultDataPackage = "Standard Data"

// Transaction is the canonical record served to consumers. The variant is
// discriminated solely by Type; never by which optional fields happen to be
// set.
//
//	send:    To, IsMomoPay
//	airtime: PhoneNumber
//	data:    PhoneNumber, DataPackage
type Transaction struct {
	ID        string `json:"id,omitempty"`
	Type      TxType `json:"type"`
	Amount    string `json:"amount"`
	Date      string `json:"date"`
	Timestamp int64  `json:"timestamp"`
	UserID    string `json:"userId"`

	To        string `json:"to,omitempty"`
	IsMomoPay bool   `json:"isMomoPay,omitempty"`

	PhoneNumber string `json:"phoneNumber,omitempty"`
	DataPackage string `json:"dataPackage,omitempty"`

	// IsFavorite only ever lives in the local cache; remote rows never
	// carry it until round-tripped through a cached copy.
	IsFavorite bool `json:"isFavorite,omitempty"`
}

// Recipient returns the counterparty field for the variant: To for send,
// PhoneNumber otherwise.
func (t *Transaction) Recipient() string {
	if t.Type == TxSend {
		return t.To
	}
	return t.PhoneNumber
}

// DedupKey identifies a logical transaction across sources. Two records
// with equal keys are the same transaction regardless of where they came
// from.
type DedupKey struct {
	Recipient string
	Amount    string
	Timestamp int64
}

func (t *Transaction) Key() DedupKey {
	return DedupKey{Recipient: t.Recipient(), Amount: t.Amount, Timestamp: t.Timestamp}
}

// Validate checks the record before any write is attempted.
func (t *Transaction) Validate() error {
	ve := errors.ValidationErrs()

	switch t.Type {
	case TxSend:
		if t.To == "" {
			ve.Add("to", "cannot be empty")
		}
	case TxAirtime, TxData:
		if t.PhoneNumber == "" {
			ve.Add("phoneNumber", "cannot be empty")
		}
	default:
		ve.Add("type", "must be one of send, airtime, data")
	}

	if t.Amount == "" {
		ve.Add("amount", "cannot be empty")
	} else if _, err := utils.ParseAmount(t.Amount); err != nil {
		ve.Add("amount", err.Error())
	}

	if err := ve.Err(); err != nil {
		return errors.ValidationFailedErr(err)
	}
	return nil
}
