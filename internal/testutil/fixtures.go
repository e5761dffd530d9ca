package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"borrowtrack/internal/models"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestGroup creates a group for the given user.
func CreateTestGroup(t *testing.T, db *gorm.DB, userID string) *models.Group {
	t.Helper()

	group := &models.Group{
		UserID: userID,
		Name:   fmt.Sprintf("Test Group %d", nextID()),
	}
	if err := db.Create(group).Error; err != nil {
		t.Fatalf("failed to create test group: %v", err)
	}
	return group
}

// CreateTestPerson creates a person for the given user.
func CreateTestPerson(t *testing.T, db *gorm.DB, userID string) *models.Person {
	t.Helper()
	return CreateTestPersonWithName(t, db, userID, fmt.Sprintf("Test Person %d", nextID()))
}

// CreateTestPersonWithName creates a person with the given name.
func CreateTestPersonWithName(t *testing.T, db *gorm.DB, userID, name string) *models.Person {
	t.Helper()

	person := &models.Person{
		UserID: userID,
		Name:   name,
	}
	if err := db.Create(person).Error; err != nil {
		t.Fatalf("failed to create test person: %v", err)
	}
	return person
}

// CreateTestContact attaches a contact number to a person.
func CreateTestContact(t *testing.T, db *gorm.DB, personID, number string) *models.Contact {
	t.Helper()

	contact := &models.Contact{
		PersonID: personID,
		Number:   number,
		Tag:      "mobile",
	}
	if err := db.Create(contact).Error; err != nil {
		t.Fatalf("failed to create test contact: %v", err)
	}
	return contact
}

// CreateTestTransaction creates a ledger entry of the given kind and amount.
func CreateTestTransaction(t *testing.T, db *gorm.DB, personID string, kind models.TransactionKind, amount float64) *models.Transaction {
	t.Helper()
	return CreateTestTransactionAt(t, db, personID, kind, amount, time.Time{})
}

// CreateTestTransactionAt creates a ledger entry with an explicit creation
// timestamp, used to exercise last-payment ordering.
func CreateTestTransactionAt(t *testing.T, db *gorm.DB, personID string, kind models.TransactionKind, amount float64, createdAt time.Time) *models.Transaction {
	t.Helper()

	txn := &models.Transaction{
		PersonID: personID,
		Kind:     kind,
		Amount:   decimal.NewFromFloat(amount),
	}
	if !createdAt.IsZero() {
		txn.CreatedAt = createdAt
	}
	if err := db.Create(txn).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return txn
}

// CreateTestDocument attaches a small inline document to a person.
func CreateTestDocument(t *testing.T, db *gorm.DB, personID string) *models.Document {
	t.Helper()

	doc := &models.Document{
		PersonID:    personID,
		Name:        fmt.Sprintf("Test Document %d", nextID()),
		FileType:    "Image",
		FileSize:    64,
		FileData:    "data:image/png;base64,aGVsbG8=",
		Description: "png",
	}
	if err := db.Create(doc).Error; err != nil {
		t.Fatalf("failed to create test document: %v", err)
	}
	return doc
}
