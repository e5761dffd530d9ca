package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "borrowtrack/internal/errors"
	"borrowtrack/internal/models"
)

// documentService handles identity documents attached to people.
type documentService struct {
	db *gorm.DB
}

// NewDocumentService creates a new DocumentServicer.
func NewDocumentService(db *gorm.DB) DocumentServicer {
	return &documentService{db: db}
}

// CreateDocument stores a document with its inline base64 payload.
func (s *documentService) CreateDocument(userID, personID string, input NewDocument) (*models.Document, error) {
	if input.Name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "document name is required")
	}
	if input.FileData == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "document payload is required")
	}

	if _, err := findOwnedPerson(s.db, userID, personID); err != nil {
		return nil, err
	}

	document := &models.Document{
		PersonID:    personID,
		Name:        input.Name,
		FileType:    input.FileType,
		FileSize:    input.FileSize,
		FileData:    input.FileData,
		Description: input.Description,
	}
	if err := s.db.Create(document).Error; err != nil {
		return nil, storeError(err)
	}
	return document, nil
}

// GetPersonDocuments lists a person's documents without payloads, newest
// first. The payload comes from GetDocumentByID to keep listings light.
func (s *documentService) GetPersonDocuments(userID, personID string) ([]models.Document, error) {
	if _, err := findOwnedPerson(s.db, userID, personID); err != nil {
		return nil, err
	}

	var documents []models.Document
	if err := s.db.Where("person_id = ?", personID).
		Select("id", "person_id", "name", "file_type", "file_size", "description", "created_at", "updated_at").
		Order("created_at DESC").
		Find(&documents).Error; err != nil {
		return nil, storeError(err)
	}
	return documents, nil
}

// GetDocumentByID retrieves a document with its payload.
func (s *documentService) GetDocumentByID(userID, documentID string) (*models.Document, error) {
	document, err := s.findOwnedDocument(userID, documentID)
	if err != nil {
		return nil, err
	}
	return document, nil
}

// DeleteDocument removes a document.
func (s *documentService) DeleteDocument(userID, documentID string) error {
	document, err := s.findOwnedDocument(userID, documentID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(document).Error; err != nil {
		return storeError(err)
	}
	return nil
}

// findOwnedDocument loads a document and verifies ownership through the
// owning person. Cross-owner access reports not-found.
func (s *documentService) findOwnedDocument(userID, documentID string) (*models.Document, error) {
	var document models.Document
	if err := s.db.Where("id = ?", documentID).First(&document).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrDocumentNotFound
		}
		return nil, storeError(err)
	}
	if _, err := findOwnedPerson(s.db, userID, document.PersonID); err != nil {
		return nil, apperrors.ErrDocumentNotFound
	}
	return &document, nil
}
