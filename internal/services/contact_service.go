package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "borrowtrack/internal/errors"
	"borrowtrack/internal/models"
)

// contactService handles contact-related business logic.
type contactService struct {
	db *gorm.DB
}

// NewContactService creates a new ContactServicer.
func NewContactService(db *gorm.DB) ContactServicer {
	return &contactService{db: db}
}

// AddContact attaches a phone number to one of the user's people.
func (s *contactService) AddContact(userID, personID, number, tag string) (*models.Contact, error) {
	if number == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "contact number is required")
	}

	if _, err := findOwnedPerson(s.db, userID, personID); err != nil {
		return nil, err
	}

	contact := &models.Contact{
		PersonID: personID,
		Number:   number,
		Tag:      tag,
	}
	if err := s.db.Create(contact).Error; err != nil {
		return nil, storeError(err)
	}
	return contact, nil
}

// UpdateContact replaces a contact's number and tag.
func (s *contactService) UpdateContact(userID, contactID, number, tag string) (*models.Contact, error) {
	if number == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "contact number is required")
	}

	contact, err := s.findOwnedContact(userID, contactID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{"number": number, "tag": tag}
	if err := s.db.Model(contact).Updates(updates).Error; err != nil {
		return nil, storeError(err)
	}
	return contact, nil
}

// DeleteContact removes a contact.
func (s *contactService) DeleteContact(userID, contactID string) error {
	contact, err := s.findOwnedContact(userID, contactID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(contact).Error; err != nil {
		return storeError(err)
	}
	return nil
}

// findOwnedContact loads a contact and verifies the owning person belongs to
// the user. Cross-owner access reports not-found, never forbidden, so record
// existence is not leaked.
func (s *contactService) findOwnedContact(userID, contactID string) (*models.Contact, error) {
	var contact models.Contact
	if err := s.db.Where("id = ?", contactID).First(&contact).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrContactNotFound
		}
		return nil, storeError(err)
	}
	if _, err := findOwnedPerson(s.db, userID, contact.PersonID); err != nil {
		return nil, apperrors.ErrContactNotFound
	}
	return &contact, nil
}
