package models

import "github.com/shopspring/decimal"

// Goal is the revenue/profit target for one calendar month, unique per
// (year, month).
type Goal struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	Year          int             `gorm:"not null;uniqueIndex:idx_goals_period" json:"year"`
	Month         int             `gorm:"not null;uniqueIndex:idx_goals_period" json:"month"`
	RevenueTarget decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"revenue_target"`
	ProfitTarget  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"profit_target"`
}
