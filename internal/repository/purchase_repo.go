package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"atelierledger/internal/apperr"
	"atelierledger/internal/dateutil"
	"atelierledger/internal/models"
	"atelierledger/internal/validation"
)

type PurchaseRepository interface {
	List(ctx context.Context) ([]models.Purchase, error)
	Create(ctx context.Context, p *models.Purchase) error
	Update(ctx context.Context, p *models.Purchase) error
	Delete(ctx context.Context, id uint) error
}

type purchaseRepo struct{ db *gorm.DB }

func NewPurchaseRepository(db *gorm.DB) PurchaseRepository { return &purchaseRepo{db: db} }

// List returns purchases in reverse insertion order.
func (r *purchaseRepo) List(ctx context.Context) ([]models.Purchase, error) {
	var purchases []models.Purchase
	err := r.db.WithContext(ctx).Order("id DESC").Find(&purchases).Error
	return purchases, err
}

func (r *purchaseRepo) Create(ctx context.Context, p *models.Purchase) error {
	if err := normalizePurchase(p); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *purchaseRepo) Update(ctx context.Context, p *models.Purchase) error {
	if err := normalizePurchase(p); err != nil {
		return err
	}
	var existing models.Purchase
	if err := r.db.WithContext(ctx).First(&existing, p.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrNotFound
		}
		return err
	}
	existing.Date = p.Date
	existing.Description = p.Description
	existing.Category = p.Category
	existing.Supplier = p.Supplier
	existing.Value = p.Value
	existing.Notes = p.Notes
	if err := r.db.WithContext(ctx).Save(&existing).Error; err != nil {
		return err
	}
	*p = existing
	return nil
}

func (r *purchaseRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Purchase{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func normalizePurchase(p *models.Purchase) error {
	p.Description = strings.TrimSpace(p.Description)
	p.Supplier = trimPtr(p.Supplier)
	p.Notes = trimPtr(p.Notes)

	v := make(validation.Violations)
	validation.Required("description", p.Description, v)
	validation.PositiveDecimal("value", p.Value, v)
	if !p.Category.Valid() {
		v["category"] = "invalid"
	}
	if day, ok := dateutil.ParseAny(strings.TrimSpace(p.Date)); ok {
		p.Date = dateutil.FormatISO(day)
	} else {
		v["date"] = "invalid"
	}
	if !v.Empty() {
		return apperr.NewValidation(v)
	}
	return nil
}
