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

type ProfileRepository interface {
	// Current returns the latest profile row by id, or ErrNotFound when
	// the store has never been configured.
	Current(ctx context.Context) (*models.StoreProfile, error)
	// Save updates the current profile or inserts the first one.
	Save(ctx context.Context, p *models.StoreProfile) error
}

type profileRepo struct{ db *gorm.DB }

func NewProfileRepository(db *gorm.DB) ProfileRepository { return &profileRepo{db: db} }

func (r *profileRepo) Current(ctx context.Context) (*models.StoreProfile, error) {
	var profile models.StoreProfile
	err := r.db.WithContext(ctx).Order("id DESC").First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepo) Save(ctx context.Context, p *models.StoreProfile) error {
	p.Name = strings.TrimSpace(p.Name)
	p.Contact = strings.TrimSpace(p.Contact)
	p.Notes = strings.TrimSpace(p.Notes)
	p.LogoRef = trimPtr(p.LogoRef)

	v := make(validation.Violations)
	validation.Required("name", p.Name, v)
	validation.Required("contact", p.Contact, v)
	if !v.Empty() {
		return apperr.NewValidation(v)
	}

	current, err := r.Current(ctx)
	switch {
	case err == nil:
		current.Name = p.Name
		current.Contact = p.Contact
		current.Notes = p.Notes
		current.LogoRef = p.LogoRef
		if err := r.db.WithContext(ctx).Save(current).Error; err != nil {
			return err
		}
		*p = *current
		return nil
	case errors.Is(err, apperr.ErrNotFound):
		return r.db.WithContext(ctx).Create(p).Error
	default:
		return err
	}
}
