package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"atelierledger/internal/apperr"
	"atelierledger/internal/dateutil"
	"atelierledger/internal/models"
	"atelierledger/internal/repository"
	"atelierledger/internal/validation"
)

// SaleItemInput is one priced line of a sale being registered.
type SaleItemInput struct {
	Description string          `json:"description"`
	Type        models.SaleType `json:"type"`
	Value       decimal.Decimal `json:"value"`
	Cost        decimal.Decimal `json:"cost"`
}

type CreateSaleInput struct {
	Date   string          `json:"date"`
	Client string          `json:"client"`
	Items  []SaleItemInput `json:"items"`
}

// SaleService owns the sale aggregate: transactional creation of a sale
// with its items, and every status read and write. Nothing else in the
// system touches sales.status.
type SaleService struct {
	repo repository.SaleRepository
}

func NewSaleService(repo repository.SaleRepository) *SaleService {
	return &SaleService{repo: repo}
}

// CreateSale validates the input, derives the summary row and persists the
// sale and all its items as a single atomic unit. A failure after the sale
// insert rolls the whole operation back; no orphaned sale, no partial item
// set. Returns the generated sale id.
func (s *SaleService) CreateSale(ctx context.Context, in CreateSaleInput) (uint, error) {
	v := make(validation.Violations)

	day, ok := dateutil.ParseAny(strings.TrimSpace(in.Date))
	if !ok {
		v["date"] = "invalid"
	}
	if len(in.Items) == 0 {
		v["items"] = "required"
	}
	hasRevenue := false
	for i, it := range in.Items {
		field := fmt.Sprintf("items[%d]", i)
		validation.Required(field+".description", it.Description, v)
		if !it.Type.ValidForItem() {
			v[field+".type"] = "invalid"
		}
		validation.NonNegativeDecimal(field+".value", it.Value, v)
		validation.NonNegativeDecimal(field+".cost", it.Cost, v)
		if it.Value.Sign() > 0 {
			hasRevenue = true
		}
	}
	// a sale with zero total revenue is rejected
	if len(in.Items) > 0 && !hasRevenue {
		v["items"] = "no_revenue"
	}
	if !v.Empty() {
		return 0, apperr.NewValidation(v)
	}

	gross, cost := decimal.Zero, decimal.Zero
	for _, it := range in.Items {
		gross = gross.Add(it.Value)
		cost = cost.Add(it.Cost)
	}

	sale := &models.Sale{
		Date:        dateutil.FormatISO(day),
		Description: summaryDescription(in.Items),
		Type:        summaryType(in.Items),
		GrossValue:  gross,
		Cost:        cost,
		Profit:      gross.Sub(cost),
		Status:      models.StatusCreated,
	}
	if name := strings.TrimSpace(in.Client); name != "" {
		sale.Client = &name
	}

	err := s.repo.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Create(ctx, tx, sale); err != nil {
			return err
		}
		items := make([]models.SaleItem, 0, len(in.Items))
		for _, it := range in.Items {
			items = append(items, models.SaleItem{
				SaleID:      sale.ID,
				Description: strings.TrimSpace(it.Description),
				Type:        it.Type,
				Value:       it.Value,
				Cost:        it.Cost,
			})
		}
		return s.repo.CreateItems(ctx, tx, items)
	})
	if err != nil {
		return 0, &apperr.PersistenceError{Op: "create sale", Err: err}
	}
	return sale.ID, nil
}

// ChangeStatus moves a sale along feita → pronta → paga → entregue.
// Forward jumps are allowed; a backward or same-state target succeeds
// without effect; a sale already entregue rejects every request before
// any write. Re-requesting the current status is a harmless no-op, so the
// operation is idempotent.
func (s *SaleService) ChangeStatus(ctx context.Context, id uint, target models.SaleStatus) error {
	if !target.Valid() {
		return apperr.NewValidation(validation.Violations{"status": "invalid"})
	}
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	current := effectiveStatus(sale.Status)
	if current.Terminal() {
		return apperr.ErrTerminalState
	}
	if target.Rank() <= current.Rank() {
		return nil
	}
	if err := s.repo.UpdateStatus(ctx, id, target); err != nil {
		return &apperr.PersistenceError{Op: "update status", Err: err}
	}
	return nil
}

func (s *SaleService) GetSale(ctx context.Context, id uint) (*models.Sale, error) {
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	sale.Status = effectiveStatus(sale.Status)
	return sale, nil
}

// ListSales returns every sale, newest first.
func (s *SaleService) ListSales(ctx context.Context) ([]models.Sale, error) {
	sales, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}
	for i := range sales {
		sales[i].Status = effectiveStatus(sales[i].Status)
	}
	return sales, nil
}

// DeleteSale removes a sale and, by cascade, all its items.
func (s *SaleService) DeleteSale(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

// effectiveStatus maps the empty status of a row read through a not yet
// migrated column onto the initial state.
func effectiveStatus(st models.SaleStatus) models.SaleStatus {
	if st == "" {
		return models.StatusCreated
	}
	return st
}

func summaryDescription(items []SaleItemInput) string {
	first := strings.TrimSpace(items[0].Description)
	if len(items) == 1 {
		return first
	}
	return fmt.Sprintf("%d items (e.g., %s)", len(items), first)
}

func summaryType(items []SaleItemInput) models.SaleType {
	if len(items) == 1 {
		return items[0].Type
	}
	return models.SaleTypeMixed
}
