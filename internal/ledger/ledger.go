// Package ledger folds a person's transaction history into a signed balance
// and a last-payment summary. It is pure: it never mutates its input and is
// deterministic for a given transaction set regardless of input order.
package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"borrowtrack/internal/models"
)

// Summary is the derived state of one person's ledger.
//
// Balance is positive when the person owes money and negative when they have
// overpaid. LastPaidAt and LastPaidAmount describe the most recent "paid"
// transaction and are nil when the person has never paid.
type Summary struct {
	Balance        decimal.Decimal
	TotalBorrowed  decimal.Decimal
	TotalPaid      decimal.Decimal
	LastPaidAt     *time.Time
	LastPaidAmount *decimal.Decimal
}

// Summarize reduces a transaction list to its Summary.
//
// Balance = sum(borrowed) - sum(paid). The last payment is the "paid"
// transaction with the greatest CreatedAt; when two payments share a
// timestamp the greater ID wins, which is deterministic and, with
// time-ordered UUIDv7 keys, favors the later insert.
func Summarize(txns []models.Transaction) Summary {
	sum := Summary{
		Balance:       decimal.Zero,
		TotalBorrowed: decimal.Zero,
		TotalPaid:     decimal.Zero,
	}

	var last *models.Transaction
	for i := range txns {
		t := &txns[i]
		switch t.Kind {
		case models.TransactionKindBorrowed:
			sum.TotalBorrowed = sum.TotalBorrowed.Add(t.Amount)
		case models.TransactionKindPaid:
			sum.TotalPaid = sum.TotalPaid.Add(t.Amount)
			if last == nil || laterPayment(t, last) {
				last = t
			}
		}
	}

	sum.Balance = sum.TotalBorrowed.Sub(sum.TotalPaid)

	if last != nil {
		at := last.CreatedAt
		amount := last.Amount
		sum.LastPaidAt = &at
		sum.LastPaidAmount = &amount
	}
	return sum
}

// laterPayment reports whether a supersedes b as the most recent payment.
func laterPayment(a, b *models.Transaction) bool {
	if a.CreatedAt.Equal(b.CreatedAt) {
		return a.ID > b.ID
	}
	return a.CreatedAt.After(b.CreatedAt)
}
