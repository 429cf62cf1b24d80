package models

// StoreProfile holds the shop identity printed on exported documents. The
// latest row by id is the current one; the schema does not enforce a
// single row. LogoRef is an opaque reference resolved by an external
// image collaborator, never interpreted here.
type StoreProfile struct {
	ID      uint    `gorm:"primaryKey" json:"id"`
	Name    string  `gorm:"size:255;not null" json:"name"`
	Contact string  `gorm:"size:255;not null" json:"contact"`
	Notes   string  `gorm:"type:text;not null" json:"notes"`
	LogoRef *string `gorm:"size:1024" json:"logo_ref,omitempty"`
}
