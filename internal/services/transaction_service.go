package services

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "borrowtrack/internal/errors"
	"borrowtrack/internal/models"
	"borrowtrack/internal/pagination"
)

// transactionService handles ledger entries. Every mutation runs inside a
// database transaction together with the refresh of the person's cached
// last-payment fields, so the cache can never be observed stale.
type transactionService struct {
	db *gorm.DB
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB) TransactionServicer {
	return &transactionService{db: db}
}

// CreateTransaction records a borrowed or paid entry for a person.
func (s *transactionService) CreateTransaction(userID, personID string, kind models.TransactionKind, amount decimal.Decimal, note string) (*models.Transaction, error) {
	if kind != models.TransactionKindBorrowed && kind != models.TransactionKindPaid {
		return nil, apperrors.ErrInvalidTransactionKind
	}
	if !amount.IsPositive() {
		return nil, apperrors.ErrInvalidAmount
	}

	if _, err := findOwnedPerson(s.db, userID, personID); err != nil {
		return nil, err
	}

	transaction := &models.Transaction{
		PersonID: personID,
		Kind:     kind,
		Amount:   amount,
		Note:     note,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(transaction).Error; err != nil {
			return err
		}
		return refreshPaymentCache(tx, personID)
	})
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, storeError(err)
	}
	return transaction, nil
}

// GetPersonTransactions retrieves a person's ledger, newest entries first.
func (s *transactionService) GetPersonTransactions(userID, personID string, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error) {
	if _, err := findOwnedPerson(s.db, userID, personID); err != nil {
		return nil, err
	}

	page.Defaults()

	var totalItems int64
	base := s.db.Model(&models.Transaction{}).Where("person_id = ?", personID)
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, storeError(err)
	}

	var transactions []models.Transaction
	if err := base.Order("created_at DESC, id DESC").
		Scopes(pagination.Paginate(page)).
		Find(&transactions).Error; err != nil {
		return nil, storeError(err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetTransactionByID retrieves a single ledger entry owned by the user.
func (s *transactionService) GetTransactionByID(userID, transactionID string) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.Where("id = ?", transactionID).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, storeError(err)
	}
	if _, err := findOwnedPerson(s.db, userID, transaction.PersonID); err != nil {
		return nil, apperrors.ErrTransactionNotFound
	}
	return &transaction, nil
}

// UpdateTransaction applies a partial update to a ledger entry and refreshes
// the person's payment cache. Changing a paid entry's amount, or flipping an
// entry between borrowed and paid, both invalidate the cache.
func (s *transactionService) UpdateTransaction(userID, transactionID string, patch TransactionPatch) (*models.Transaction, error) {
	transaction, err := s.GetTransactionByID(userID, transactionID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if patch.Kind != nil {
		if *patch.Kind != models.TransactionKindBorrowed && *patch.Kind != models.TransactionKindPaid {
			return nil, apperrors.ErrInvalidTransactionKind
		}
		updates["kind"] = *patch.Kind
	}
	if patch.Amount != nil {
		if !patch.Amount.IsPositive() {
			return nil, apperrors.ErrInvalidAmount
		}
		updates["amount"] = *patch.Amount
	}
	if patch.Note != nil {
		updates["note"] = *patch.Note
	}
	if len(updates) == 0 {
		return transaction, nil
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(transaction).Updates(updates).Error; err != nil {
			return err
		}
		return refreshPaymentCache(tx, transaction.PersonID)
	})
	if err != nil {
		return nil, storeError(err)
	}
	return transaction, nil
}

// DeleteTransaction removes a ledger entry. When the deleted entry was the
// most recent payment, the cache falls back to the next-most-recent payment,
// or is cleared when none remain.
func (s *transactionService) DeleteTransaction(userID, transactionID string) error {
	transaction, err := s.GetTransactionByID(userID, transactionID)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(transaction).Error; err != nil {
			return err
		}
		return refreshPaymentCache(tx, transaction.PersonID)
	})
	if err != nil {
		return storeError(err)
	}
	return nil
}

// refreshPaymentCache recomputes a person's cached last_paid_date and
// last_paid_amount from their surviving paid transactions. The most recent
// payment wins; a timestamp tie goes to the greater ID, matching the ledger
// package's rule.
func refreshPaymentCache(tx *gorm.DB, personID string) error {
	var latest models.Transaction
	err := tx.Where("person_id = ? AND kind = ?", personID, models.TransactionKindPaid).
		Order("created_at DESC, id DESC").
		First(&latest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return tx.Model(&models.Person{}).Where("id = ?", personID).
			Updates(map[string]interface{}{"last_paid_date": nil, "last_paid_amount": nil}).Error
	}
	if err != nil {
		return err
	}
	return tx.Model(&models.Person{}).Where("id = ?", personID).
		Updates(map[string]interface{}{
			"last_paid_date":   latest.CreatedAt,
			"last_paid_amount": latest.Amount,
		}).Error
}
