package models

import "github.com/shopspring/decimal"

type PurchaseCategory string

const (
	CategorySupplies PurchaseCategory = "SUPPLIES"
	CategoryFreight  PurchaseCategory = "FREIGHT"
	CategoryFixed    PurchaseCategory = "FIXED"
	CategoryOther    PurchaseCategory = "OTHER"
)

func (c PurchaseCategory) Valid() bool {
	switch c {
	case CategorySupplies, CategoryFreight, CategoryFixed, CategoryOther:
		return true
	}
	return false
}

// Purchase is an expense entry: supplies, freight or fixed costs.
type Purchase struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	Date        string           `gorm:"size:10;not null" json:"date"`
	Description string           `gorm:"size:500;not null" json:"description"`
	Category    PurchaseCategory `gorm:"size:20;not null" json:"category"`
	Supplier    *string          `gorm:"size:255" json:"supplier,omitempty"`
	Value       decimal.Decimal  `gorm:"type:decimal(12,2);not null" json:"value"`
	Notes       *string          `gorm:"type:text" json:"notes,omitempty"`
}
