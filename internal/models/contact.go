package models

// Contact is a phone number attached to a person. A person can have any
// number of contacts, each labelled with a free-form tag ("home", "work").
type Contact struct {
	Base
	PersonID string `gorm:"type:uuid;not null;index" json:"person_id"`
	Number   string `gorm:"not null" json:"number"`
	Tag      string `json:"tag"`
}
