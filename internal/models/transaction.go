package models

import "github.com/shopspring/decimal"

// TransactionKind represents the direction of a ledger entry
type TransactionKind string

const (
	TransactionKindBorrowed TransactionKind = "borrowed"
	TransactionKindPaid     TransactionKind = "paid"
)

// Transaction is a single ledger entry for a person. Amount is always
// positive; the direction is carried by Kind, not by the sign of the amount.
type Transaction struct {
	Base
	PersonID string          `gorm:"type:uuid;not null;index" json:"person_id"`
	Kind     TransactionKind `gorm:"not null" json:"kind"`
	Amount   decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"amount"`
	Note     string          `json:"note,omitempty"`

	Person *Person `gorm:"foreignKey:PersonID" json:"person,omitempty"`
}
