package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"atelierledger/internal/apperr"
	appdb "atelierledger/internal/db"
	"atelierledger/internal/models"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, appdb.EnsureSchema(conn))
	return conn
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func ptr(s string) *string { return &s }

// --- Clients ---

func TestClientCreateTrimsAndStoresBlankAsAbsent(t *testing.T) {
	repo := NewClientRepository(setupDB(t))
	ctx := context.Background()

	c := models.Client{Name: "  Maria Souza  ", Phone: ptr("  "), Notes: ptr(" vip ")}
	require.NoError(t, repo.Create(ctx, &c))
	assert.Equal(t, "Maria Souza", c.Name)
	assert.Nil(t, c.Phone, "blank optional field stored as absent, not empty string")
	require.NotNil(t, c.Notes)
	assert.Equal(t, "vip", *c.Notes)
	assert.NotZero(t, c.ID)
}

func TestClientCreateRequiresName(t *testing.T) {
	repo := NewClientRepository(setupDB(t))

	err := repo.Create(context.Background(), &models.Client{Name: "   "})
	var ve *apperr.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "required", ve.Violations["name"])
}

func TestClientListOrderedByName(t *testing.T) {
	conn := setupDB(t)
	repo := NewClientRepository(conn)
	ctx := context.Background()

	for _, name := range []string{"Zeca", "Ana", "Marcos"} {
		require.NoError(t, repo.Create(ctx, &models.Client{Name: name}))
	}
	clients, err := repo.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, clients, 3)
	assert.Equal(t, "Ana", clients[0].Name)
	assert.Equal(t, "Marcos", clients[1].Name)
	assert.Equal(t, "Zeca", clients[2].Name)

	filtered, err := repo.List(ctx, "arc")
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "Marcos", filtered[0].Name)
}

func TestClientUpdateAndDeleteNotFound(t *testing.T) {
	repo := NewClientRepository(setupDB(t))
	ctx := context.Background()

	err := repo.Update(ctx, &models.Client{ID: 99, Name: "Ghost"})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, 99), apperr.ErrNotFound)
}

func TestClientRenameDoesNotTouchSales(t *testing.T) {
	conn := setupDB(t)
	repo := NewClientRepository(conn)
	ctx := context.Background()

	c := models.Client{Name: "Joana"}
	require.NoError(t, repo.Create(ctx, &c))

	// sale references the client by name only
	name := "Joana"
	sale := models.Sale{
		Date: "2025-01-15", Description: "caneca", Type: models.SaleTypeLaser,
		GrossValue: dec("80"), Cost: dec("30"), Profit: dec("50"),
		Status: models.StatusCreated, Client: &name,
	}
	require.NoError(t, conn.Create(&sale).Error)

	c.Name = "Joana Lima"
	require.NoError(t, repo.Update(ctx, &c))

	var got models.Sale
	require.NoError(t, conn.First(&got, sale.ID).Error)
	require.NotNil(t, got.Client)
	assert.Equal(t, "Joana", *got.Client, "historical sale keeps the name it was recorded with")
}

// --- Purchases ---

func TestPurchaseCreateValidations(t *testing.T) {
	repo := NewPurchaseRepository(setupDB(t))
	ctx := context.Background()

	cases := []struct {
		name  string
		p     models.Purchase
		field string
	}{
		{"zero value", models.Purchase{Date: "2025-02-01", Description: "mdf", Category: models.CategorySupplies, Value: dec("0")}, "value"},
		{"negative value", models.Purchase{Date: "2025-02-01", Description: "mdf", Category: models.CategorySupplies, Value: dec("-3")}, "value"},
		{"empty description", models.Purchase{Date: "2025-02-01", Description: "  ", Category: models.CategorySupplies, Value: dec("10")}, "description"},
		{"bad category", models.Purchase{Date: "2025-02-01", Description: "mdf", Category: "FOOD", Value: dec("10")}, "category"},
		{"bad date", models.Purchase{Date: "February 1st", Description: "mdf", Category: models.CategorySupplies, Value: dec("10")}, "date"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := repo.Create(ctx, &tc.p)
			var ve *apperr.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Contains(t, ve.Violations, tc.field)
		})
	}
}

func TestPurchaseCreateNormalizesDateAndListsNewestFirst(t *testing.T) {
	repo := NewPurchaseRepository(setupDB(t))
	ctx := context.Background()

	first := models.Purchase{Date: "15/03/2025", Description: "filamento", Category: models.CategorySupplies, Value: dec("120.50")}
	require.NoError(t, repo.Create(ctx, &first))
	assert.Equal(t, "2025-03-15", first.Date, "localized input stored in ISO form")

	second := models.Purchase{Date: "2025-03-16", Description: "frete", Category: models.CategoryFreight, Value: dec("30")}
	require.NoError(t, repo.Create(ctx, &second))

	purchases, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, purchases, 2)
	assert.Equal(t, second.ID, purchases[0].ID, "reverse insertion order")
}

// --- Goals ---

func TestGoalUpsertKeepsOneRowPerPeriod(t *testing.T) {
	conn := setupDB(t)
	repo := NewGoalRepository(conn)
	ctx := context.Background()

	g := models.Goal{Year: 2025, Month: 3, RevenueTarget: dec("1000"), ProfitTarget: dec("500")}
	require.NoError(t, repo.Upsert(ctx, &g))

	g2 := models.Goal{Year: 2025, Month: 3, RevenueTarget: dec("1500"), ProfitTarget: dec("700")}
	require.NoError(t, repo.Upsert(ctx, &g2))

	var count int64
	require.NoError(t, conn.Model(&models.Goal{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	got, err := repo.GetByPeriod(ctx, 2025, 3)
	require.NoError(t, err)
	assert.True(t, got.RevenueTarget.Equal(dec("1500")))
	assert.True(t, got.ProfitTarget.Equal(dec("700")))
	assert.Equal(t, g.ID, got.ID, "update reused the existing row")
}

func TestGoalUpsertValidations(t *testing.T) {
	repo := NewGoalRepository(setupDB(t))
	ctx := context.Background()

	var ve *apperr.ValidationError
	err := repo.Upsert(ctx, &models.Goal{Year: 2025, Month: 13, RevenueTarget: dec("1"), ProfitTarget: dec("1")})
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Violations, "month")

	err = repo.Upsert(ctx, &models.Goal{Year: 2025, Month: 3, RevenueTarget: dec("0"), ProfitTarget: dec("1")})
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Violations, "revenue_target")
}

func TestGoalGetByPeriodNotFound(t *testing.T) {
	repo := NewGoalRepository(setupDB(t))
	_, err := repo.GetByPeriod(context.Background(), 2030, 1)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

// --- Store profile ---

func TestProfileSaveAndCurrent(t *testing.T) {
	repo := NewProfileRepository(setupDB(t))
	ctx := context.Background()

	_, err := repo.Current(ctx)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	p := models.StoreProfile{Name: " Ateliê da Lu ", Contact: "11 99999-0000", Notes: "", LogoRef: ptr("")}
	require.NoError(t, repo.Save(ctx, &p))
	assert.Equal(t, "Ateliê da Lu", p.Name)
	assert.Nil(t, p.LogoRef)

	p2 := models.StoreProfile{Name: "Ateliê da Lu", Contact: "11 98888-0000", Notes: "novo contato"}
	require.NoError(t, repo.Save(ctx, &p2))
	assert.Equal(t, p.ID, p2.ID, "save updates the current row instead of stacking new ones")

	current, err := repo.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, "11 98888-0000", current.Contact)
}

func TestProfileSaveRequiresNameAndContact(t *testing.T) {
	repo := NewProfileRepository(setupDB(t))

	err := repo.Save(context.Background(), &models.StoreProfile{Name: " ", Contact: ""})
	var ve *apperr.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Violations, "name")
	assert.Contains(t, ve.Violations, "contact")
}

// --- Sales ---

func TestSaleDeleteRemovesItems(t *testing.T) {
	conn := setupDB(t)
	repo := NewSaleRepository(conn)
	ctx := context.Background()

	sale := models.Sale{
		Date: "2025-03-10", Description: "2 items (e.g., caneca)", Type: models.SaleTypeMixed,
		GrossValue: dec("150"), Cost: dec("60"), Profit: dec("90"), Status: models.StatusCreated,
		Items: []models.SaleItem{
			{Description: "caneca", Type: models.SaleTypeLaser, Value: dec("80"), Cost: dec("30")},
			{Description: "topo de bolo", Type: models.SaleType3D, Value: dec("70"), Cost: dec("30")},
		},
	}
	require.NoError(t, conn.Create(&sale).Error)

	require.NoError(t, repo.Delete(ctx, sale.ID))

	var saleCount, itemCount int64
	require.NoError(t, conn.Model(&models.Sale{}).Count(&saleCount).Error)
	require.NoError(t, conn.Model(&models.SaleItem{}).Count(&itemCount).Error)
	assert.Zero(t, saleCount)
	assert.Zero(t, itemCount, "items never outlive their sale")

	assert.ErrorIs(t, repo.Delete(ctx, sale.ID), apperr.ErrNotFound)
}
