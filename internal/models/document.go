package models

// Document is an identity document attached to a person. The payload is
// stored inline as a base64 data URL rather than in object storage, matching
// how small shops actually use the app (a handful of ID scans per customer).
// Description holds the original file extension for download naming.
type Document struct {
	Base
	PersonID    string `gorm:"type:uuid;not null;index" json:"person_id"`
	Name        string `gorm:"not null" json:"name"`
	FileType    string `gorm:"not null" json:"file_type"`
	FileSize    int64  `json:"file_size"`
	FileData    string `gorm:"type:text" json:"file_data,omitempty"`
	Description string `json:"description,omitempty"`
}
