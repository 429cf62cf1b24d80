package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"atelierledger/internal/apperr"
	"atelierledger/internal/models"
	"atelierledger/internal/validation"
)

type ClientRepository interface {
	List(ctx context.Context, query string) ([]models.Client, error)
	Create(ctx context.Context, c *models.Client) error
	Update(ctx context.Context, c *models.Client) error
	Delete(ctx context.Context, id uint) error
}

type clientRepo struct{ db *gorm.DB }

func NewClientRepository(db *gorm.DB) ClientRepository { return &clientRepo{db: db} }

// List returns clients ordered by name, optionally narrowed by a
// case-insensitive substring match.
func (r *clientRepo) List(ctx context.Context, query string) ([]models.Client, error) {
	var clients []models.Client
	q := r.db.WithContext(ctx).Order("name")
	if query = strings.TrimSpace(query); query != "" {
		q = q.Where("name LIKE ?", "%"+query+"%")
	}
	err := q.Find(&clients).Error
	return clients, err
}

func (r *clientRepo) Create(ctx context.Context, c *models.Client) error {
	if err := normalizeClient(c); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *clientRepo) Update(ctx context.Context, c *models.Client) error {
	if err := normalizeClient(c); err != nil {
		return err
	}
	var existing models.Client
	if err := r.db.WithContext(ctx).First(&existing, c.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrNotFound
		}
		return err
	}
	existing.Name = c.Name
	existing.Phone = c.Phone
	existing.Notes = c.Notes
	if err := r.db.WithContext(ctx).Save(&existing).Error; err != nil {
		return err
	}
	*c = existing
	return nil
}

func (r *clientRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Client{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func normalizeClient(c *models.Client) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Phone = trimPtr(c.Phone)
	c.Notes = trimPtr(c.Notes)

	v := make(validation.Violations)
	validation.Required("name", c.Name, v)
	if !v.Empty() {
		return apperr.NewValidation(v)
	}
	return nil
}
