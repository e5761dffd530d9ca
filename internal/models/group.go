package models

// Group is a plain tag used to partition a user's customers. Groups have no
// hierarchy and are never deleted.
type Group struct {
	Base
	UserID string `gorm:"type:uuid;not null;index" json:"user_id"`
	Name   string `gorm:"not null" json:"name"`

	People []Person `gorm:"foreignKey:GroupID" json:"people,omitempty"`
}
