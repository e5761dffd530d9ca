package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "borrowtrack/internal/errors"
	"borrowtrack/internal/models"
)

// groupService handles group-related business logic.
type groupService struct {
	db *gorm.DB
}

// NewGroupService creates a new GroupServicer.
func NewGroupService(db *gorm.DB) GroupServicer {
	return &groupService{db: db}
}

// CreateGroup creates a new group tag for the user.
func (s *groupService) CreateGroup(userID, name string) (*models.Group, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "group name is required")
	}

	var count int64
	if err := s.db.Model(&models.Group{}).
		Where("user_id = ? AND name = ?", userID, name).
		Count(&count).Error; err != nil {
		return nil, storeError(err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateGroup
	}

	group := &models.Group{
		UserID: userID,
		Name:   name,
	}
	if err := s.db.Create(group).Error; err != nil {
		return nil, storeError(err)
	}
	return group, nil
}

// GetUserGroups retrieves all of the user's groups ordered by name.
func (s *groupService) GetUserGroups(userID string) ([]models.Group, error) {
	var groups []models.Group
	if err := s.db.Where("user_id = ?", userID).Order("name").Find(&groups).Error; err != nil {
		return nil, storeError(err)
	}
	return groups, nil
}

// GetGroupByID retrieves a group by ID for a specific user.
func (s *groupService) GetGroupByID(userID, groupID string) (*models.Group, error) {
	var group models.Group
	if err := s.db.Where("id = ? AND user_id = ?", groupID, userID).First(&group).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGroupNotFound
		}
		return nil, storeError(err)
	}
	return &group, nil
}
