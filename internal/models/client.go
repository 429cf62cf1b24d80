package models

// Client is an address-book entry. Sales reference clients by name only,
// so edits here never rewrite past sales.
type Client struct {
	ID    uint    `gorm:"primaryKey" json:"id"`
	Name  string  `gorm:"size:255;not null;index" json:"name"`
	Phone *string `gorm:"size:50" json:"phone,omitempty"`
	Notes *string `gorm:"type:text" json:"notes,omitempty"`
}
