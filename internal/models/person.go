package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Person represents a customer whose borrow/pay ledger is tracked.
//
// LastPaidDate and LastPaidAmount are a denormalized cache of the most recent
// "paid" transaction. They are recomputed on every transaction mutation and
// must never be treated as the source of truth; the ledger is.
type Person struct {
	Base
	UserID  string     `gorm:"type:uuid;not null;index" json:"user_id"`
	Name    string     `gorm:"not null" json:"name"`
	DOB     *time.Time `json:"dob,omitempty"`
	Address string     `json:"address,omitempty"`
	Photo   string     `json:"photo,omitempty"`
	GroupID *string    `gorm:"type:uuid;index" json:"group_id,omitempty"`

	LastPaidDate   *time.Time          `json:"last_paid_date,omitempty"`
	LastPaidAmount decimal.NullDecimal `gorm:"type:decimal(14,2)" json:"last_paid_amount,omitempty"`

	// Relationships
	Group        *Group        `gorm:"foreignKey:GroupID" json:"group,omitempty"`
	Contacts     []Contact     `gorm:"foreignKey:PersonID" json:"contacts,omitempty"`
	Transactions []Transaction `gorm:"foreignKey:PersonID" json:"transactions,omitempty"`
	Documents    []Document    `gorm:"foreignKey:PersonID" json:"documents,omitempty"`
}
