package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"atelierledger/internal/apperr"
	"atelierledger/internal/models"
)

// SaleRepository persists the sale aggregate. Create and CreateItems take
// the transaction handle so the service layer can make the parent row and
// its items a single atomic unit.
type SaleRepository interface {
	Create(ctx context.Context, tx *gorm.DB, s *models.Sale) error
	CreateItems(ctx context.Context, tx *gorm.DB, items []models.SaleItem) error
	FindByID(ctx context.Context, id uint) (*models.Sale, error)
	All(ctx context.Context) ([]models.Sale, error)
	UpdateStatus(ctx context.Context, id uint, status models.SaleStatus) error
	Delete(ctx context.Context, id uint) error
	DB() *gorm.DB // exposes the DB for transaction creation in the service layer
}

type saleRepo struct{ db *gorm.DB }

func NewSaleRepository(db *gorm.DB) SaleRepository { return &saleRepo{db: db} }

func (r *saleRepo) DB() *gorm.DB { return r.db }

func (r *saleRepo) Create(ctx context.Context, tx *gorm.DB, s *models.Sale) error {
	return tx.WithContext(ctx).Create(s).Error
}

func (r *saleRepo) CreateItems(ctx context.Context, tx *gorm.DB, items []models.SaleItem) error {
	return tx.WithContext(ctx).Create(&items).Error
}

func (r *saleRepo) FindByID(ctx context.Context, id uint) (*models.Sale, error) {
	var sale models.Sale
	err := r.db.WithContext(ctx).Preload("Items").First(&sale, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

// All returns every sale in reverse insertion order, without items.
func (r *saleRepo) All(ctx context.Context) ([]models.Sale, error) {
	var sales []models.Sale
	err := r.db.WithContext(ctx).Order("id DESC").Find(&sales).Error
	return sales, err
}

func (r *saleRepo) UpdateStatus(ctx context.Context, id uint, status models.SaleStatus) error {
	res := r.db.WithContext(ctx).
		Model(&models.Sale{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// Delete removes a sale and its items in one transaction. The schema also
// declares the cascade; deleting the items here keeps databases created
// before the constraint existed consistent as well.
func (r *saleRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Sale{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.ErrNotFound
		}
		return tx.Where("sale_id = ?", id).Delete(&models.SaleItem{}).Error
	})
}
