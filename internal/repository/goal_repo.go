package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"atelierledger/internal/apperr"
	"atelierledger/internal/models"
	"atelierledger/internal/validation"
)

type GoalRepository interface {
	List(ctx context.Context) ([]models.Goal, error)
	GetByPeriod(ctx context.Context, year, month int) (*models.Goal, error)
	// Upsert inserts the period's targets or updates them when the
	// (year, month) row already exists.
	Upsert(ctx context.Context, g *models.Goal) error
}

type goalRepo struct{ db *gorm.DB }

func NewGoalRepository(db *gorm.DB) GoalRepository { return &goalRepo{db: db} }

func (r *goalRepo) List(ctx context.Context) ([]models.Goal, error) {
	var goals []models.Goal
	err := r.db.WithContext(ctx).Order("year DESC, month DESC").Find(&goals).Error
	return goals, err
}

func (r *goalRepo) GetByPeriod(ctx context.Context, year, month int) (*models.Goal, error) {
	var goal models.Goal
	err := r.db.WithContext(ctx).
		Where("year = ? AND month = ?", year, month).
		First(&goal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

func (r *goalRepo) Upsert(ctx context.Context, g *models.Goal) error {
	v := make(validation.Violations)
	validation.IntRange("month", g.Month, 1, 12, v)
	validation.PositiveDecimal("revenue_target", g.RevenueTarget, v)
	validation.PositiveDecimal("profit_target", g.ProfitTarget, v)
	if !v.Empty() {
		return apperr.NewValidation(v)
	}

	var existing models.Goal
	err := r.db.WithContext(ctx).
		Where("year = ? AND month = ?", g.Year, g.Month).
		First(&existing).Error
	switch {
	case err == nil:
		existing.RevenueTarget = g.RevenueTarget
		existing.ProfitTarget = g.ProfitTarget
		if err := r.db.WithContext(ctx).Save(&existing).Error; err != nil {
			return err
		}
		*g = existing
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return r.db.WithContext(ctx).Create(g).Error
	default:
		return err
	}
}
