package services

import (
	"time"

	"github.com/shopspring/decimal"

	"borrowtrack/internal/listing"
	"borrowtrack/internal/models"
	"borrowtrack/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	AttemptLogin(email, password string) (*models.User, error)
	ChangePassword(userID, currentPassword, newPassword string) error
	StoreRefreshTokenHash(userID, tokenHash string) error
	GetRefreshTokenHash(userID string) (string, error)
	ClearRefreshTokenHash(userID string) error
}

// GroupServicer defines the contract for group-related business logic.
type GroupServicer interface {
	CreateGroup(userID, name string) (*models.Group, error)
	GetUserGroups(userID string) ([]models.Group, error)
	GetGroupByID(userID, groupID string) (*models.Group, error)
}

// NewContact holds the fields for creating a contact inline with a person.
type NewContact struct {
	Number string
	Tag    string
}

// NewPerson holds the fields for creating a person.
type NewPerson struct {
	Name     string
	DOB      *time.Time
	Address  string
	Photo    string
	GroupID  *string
	Contacts []NewContact
}

// PersonPatch is an explicit partial update: only non-nil fields are applied.
// GroupID set to an empty string detaches the person from their group.
type PersonPatch struct {
	Name    *string
	DOB     *time.Time
	Address *string
	Photo   *string
	GroupID *string
}

// PersonSummary is a person together with the state derived from their ledger.
type PersonSummary struct {
	models.Person
	Balance       decimal.Decimal `json:"balance"`
	TotalBorrowed decimal.Decimal `json:"total_borrowed"`
	TotalPaid     decimal.Decimal `json:"total_paid"`
}

// RosterTotals aggregates the whole customer base, independent of any
// filter applied to the listing.
type RosterTotals struct {
	Customers  int             `json:"customers"`
	TotalOwed  decimal.Decimal `json:"total_owed"`
	NetBalance decimal.Decimal `json:"net_balance"`
}

// Roster is the ordered people listing plus base-wide totals.
type Roster struct {
	People []PersonSummary `json:"people"`
	Totals RosterTotals    `json:"totals"`
}

// PersonServicer defines the contract for person-related business logic.
type PersonServicer interface {
	CreatePerson(userID string, input NewPerson) (*models.Person, error)
	ListPeople(userID string, opts listing.Options) (*Roster, error)
	GetPersonByID(userID, personID string) (*PersonSummary, error)
	UpdatePerson(userID, personID string, patch PersonPatch) (*models.Person, error)
}

// ContactServicer defines the contract for contact-related business logic.
type ContactServicer interface {
	AddContact(userID, personID, number, tag string) (*models.Contact, error)
	UpdateContact(userID, contactID, number, tag string) (*models.Contact, error)
	DeleteContact(userID, contactID string) error
}

// TransactionPatch is an explicit partial update for a ledger entry.
type TransactionPatch struct {
	Kind   *models.TransactionKind
	Amount *decimal.Decimal
	Note   *string
}

// TransactionServicer defines the contract for ledger entries. Every mutation
// also refreshes the owning person's cached last-payment fields.
type TransactionServicer interface {
	CreateTransaction(userID, personID string, kind models.TransactionKind, amount decimal.Decimal, note string) (*models.Transaction, error)
	GetPersonTransactions(userID, personID string, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error)
	GetTransactionByID(userID, transactionID string) (*models.Transaction, error)
	UpdateTransaction(userID, transactionID string, patch TransactionPatch) (*models.Transaction, error)
	DeleteTransaction(userID, transactionID string) error
}

// NewDocument holds the fields for attaching a document to a person.
type NewDocument struct {
	Name        string
	FileType    string
	FileSize    int64
	FileData    string
	Description string
}

// DocumentServicer defines the contract for identity documents.
type DocumentServicer interface {
	CreateDocument(userID, personID string, input NewDocument) (*models.Document, error)
	GetPersonDocuments(userID, personID string) ([]models.Document, error)
	GetDocumentByID(userID, documentID string) (*models.Document, error)
	DeleteDocument(userID, documentID string) error
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}
