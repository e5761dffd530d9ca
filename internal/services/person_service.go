package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "borrowtrack/internal/errors"
	"borrowtrack/internal/ledger"
	"borrowtrack/internal/listing"
	"borrowtrack/internal/models"
)

// personService handles person-related business logic. All queries are
// filtered by the authenticated owner; a person belonging to another user is
// indistinguishable from a missing one.
type personService struct {
	db           *gorm.DB
	groupService GroupServicer
}

// NewPersonService creates a new PersonServicer.
func NewPersonService(db *gorm.DB, groupService GroupServicer) PersonServicer {
	return &personService{db: db, groupService: groupService}
}

// CreatePerson creates a person, optionally with inline contacts.
func (s *personService) CreatePerson(userID string, input NewPerson) (*models.Person, error) {
	if input.Name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "person name is required")
	}

	// A group reference must exist and belong to the same owner.
	if input.GroupID != nil && *input.GroupID != "" {
		if _, err := s.groupService.GetGroupByID(userID, *input.GroupID); err != nil {
			return nil, err
		}
	} else {
		input.GroupID = nil
	}

	person := &models.Person{
		UserID:  userID,
		Name:    input.Name,
		DOB:     input.DOB,
		Address: input.Address,
		Photo:   input.Photo,
		GroupID: input.GroupID,
	}
	for _, c := range input.Contacts {
		person.Contacts = append(person.Contacts, models.Contact{
			Number: c.Number,
			Tag:    c.Tag,
		})
	}

	if err := s.db.Create(person).Error; err != nil {
		return nil, storeError(err)
	}
	return person, nil
}

// ListPeople loads the user's full customer base with contacts and
// transactions, runs the filter/sort pipeline, and derives each remaining
// person's ledger summary. Totals are computed over the unfiltered base.
func (s *personService) ListPeople(userID string, opts listing.Options) (*Roster, error) {
	var people []models.Person
	if err := s.db.Where("user_id = ?", userID).
		Preload("Contacts").
		Preload("Transactions").
		Preload("Group").
		Order("name").
		Find(&people).Error; err != nil {
		return nil, storeError(err)
	}

	roster := &Roster{Totals: RosterTotals{Customers: len(people)}}
	for _, p := range people {
		balance := ledger.Summarize(p.Transactions).Balance
		roster.Totals.NetBalance = roster.Totals.NetBalance.Add(balance)
		if balance.IsPositive() {
			roster.Totals.TotalOwed = roster.Totals.TotalOwed.Add(balance)
		}
	}

	selected := listing.Apply(people, opts)
	roster.People = make([]PersonSummary, 0, len(selected))
	for _, p := range selected {
		roster.People = append(roster.People, summarize(p))
	}
	return roster, nil
}

// GetPersonByID retrieves a person with contacts, documents, and their full
// ledger, newest entries first.
func (s *personService) GetPersonByID(userID, personID string) (*PersonSummary, error) {
	var person models.Person
	err := s.db.Where("id = ? AND user_id = ?", personID, userID).
		Preload("Contacts").
		Preload("Documents", func(db *gorm.DB) *gorm.DB {
			// Listing documents omits the payload; fetch a single document to download it.
			return db.Select("id", "person_id", "name", "file_type", "file_size", "description", "created_at", "updated_at").
				Order("created_at DESC")
		}).
		Preload("Transactions", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Preload("Group").
		First(&person).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPersonNotFound
		}
		return nil, storeError(err)
	}

	summary := summarize(person)
	return &summary, nil
}

// UpdatePerson applies an explicit partial update; only provided fields are
// touched. An empty GroupID detaches the person from their group.
func (s *personService) UpdatePerson(userID, personID string, patch PersonPatch) (*models.Person, error) {
	var person models.Person
	if err := s.db.Where("id = ? AND user_id = ?", personID, userID).First(&person).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPersonNotFound
		}
		return nil, storeError(err)
	}

	updates := make(map[string]interface{})
	if patch.Name != nil {
		if *patch.Name == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "person name cannot be empty")
		}
		updates["name"] = *patch.Name
	}
	if patch.DOB != nil {
		updates["dob"] = *patch.DOB
	}
	if patch.Address != nil {
		updates["address"] = *patch.Address
	}
	if patch.Photo != nil {
		updates["photo"] = *patch.Photo
	}
	if patch.GroupID != nil {
		if *patch.GroupID == "" {
			updates["group_id"] = nil
		} else {
			if _, err := s.groupService.GetGroupByID(userID, *patch.GroupID); err != nil {
				return nil, err
			}
			updates["group_id"] = *patch.GroupID
		}
	}

	if len(updates) > 0 {
		if err := s.db.Model(&person).Updates(updates).Error; err != nil {
			return nil, storeError(err)
		}
	}
	return &person, nil
}

// findOwnedPerson checks that a person exists and belongs to the user.
// Shared by the contact, transaction, and document services.
func findOwnedPerson(db *gorm.DB, userID, personID string) (*models.Person, error) {
	var person models.Person
	if err := db.Where("id = ? AND user_id = ?", personID, userID).First(&person).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPersonNotFound
		}
		return nil, storeError(err)
	}
	return &person, nil
}

// summarize attaches the derived ledger state to a person.
func summarize(p models.Person) PersonSummary {
	sum := ledger.Summarize(p.Transactions)
	return PersonSummary{
		Person:        p,
		Balance:       sum.Balance,
		TotalBorrowed: sum.TotalBorrowed,
		TotalPaid:     sum.TotalPaid,
	}
}
