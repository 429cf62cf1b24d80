package models

import "github.com/shopspring/decimal"

// SaleType classifies the kind of work sold.
type SaleType string

const (
	SaleTypeLaser SaleType = "LASER"
	SaleType3D    SaleType = "3D"
	SaleTypeOther SaleType = "OTHER"
	// SaleTypeMixed only appears as the summary type of a sale with more
	// than one item; items never carry it.
	SaleTypeMixed SaleType = "MIXED"
)

// ValidForItem reports whether t is an acceptable item-level type.
func (t SaleType) ValidForItem() bool {
	switch t {
	case SaleTypeLaser, SaleType3D, SaleTypeOther:
		return true
	}
	return false
}

// SaleStatus is the lifecycle state of a sale. The stored tokens keep the
// values written by earlier releases so upgraded databases read back
// unchanged.
type SaleStatus string

const (
	StatusCreated   SaleStatus = "feita"
	StatusReady     SaleStatus = "pronta"
	StatusPaid      SaleStatus = "paga"
	StatusDelivered SaleStatus = "entregue"
)

var statusRank = map[SaleStatus]int{
	StatusCreated:   0,
	StatusReady:     1,
	StatusPaid:      2,
	StatusDelivered: 3,
}

func (s SaleStatus) Valid() bool {
	_, ok := statusRank[s]
	return ok
}

// Rank orders statuses along the forward sequence
// feita → pronta → paga → entregue.
func (s SaleStatus) Rank() int { return statusRank[s] }

// Terminal reports whether no further transition is permitted.
func (s SaleStatus) Terminal() bool { return s == StatusDelivered }

// Sale is a recorded transaction with one or more line items and a
// financial summary. Date is kept as text: upgraded databases hold both
// ISO and DD/MM/YYYY encodings, and dateutil.ParseAny is the only way to
// interpret it. Client is a free-form name rather than a foreign key;
// renaming or deleting a Client never touches historical sales.
type Sale struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Date        string          `gorm:"size:10;not null" json:"date"`
	Description string          `gorm:"size:500;not null" json:"description"`
	Type        SaleType        `gorm:"size:20;not null" json:"type"`
	GrossValue  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"gross_value"`
	Cost        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"cost"`
	Profit      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"profit"`
	Status      SaleStatus      `gorm:"size:20;not null;default:'feita'" json:"status"`
	Client      *string         `gorm:"size:255" json:"client,omitempty"`

	Items []SaleItem `gorm:"constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// SaleItem is one priced line within a sale. Items are created atomically
// with their parent and removed only by cascade.
type SaleItem struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	SaleID      uint            `gorm:"index;not null" json:"sale_id"`
	Description string          `gorm:"size:500;not null" json:"description"`
	Type        SaleType        `gorm:"size:20;not null" json:"type"`
	Value       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"value"`
	Cost        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"cost"`
}
