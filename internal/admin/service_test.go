package admin

import (
	"context"
	"testing"

	"restoran-inventory/internal/apperr"
	"restoran-inventory/internal/database/dbtest"
	"restoran-inventory/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newServices(t *testing.T) (*gorm.DB, *BranchService, *ItemService) {
	t.Helper()
	db := dbtest.Open(t)
	return db, NewBranchService(db, nil), NewItemService(db, nil)
}

func ptr[T any](v T) *T { return &v }

func TestBranchCreateGeneratesSequentialIDs(t *testing.T) {
	ctx := context.Background()
	_, branches, _ := newServices(t)

	for _, id := range []string{"B0001", "B0005", "B0003"} {
		_, err := branches.Create(ctx, BranchInput{BranchID: id, BranchName: "Branch " + id})
		require.NoError(t, err)
	}

	b, err := branches.Create(ctx, BranchInput{BranchName: "  Soho  ", Postcode: "W1D"})
	require.NoError(t, err)
	assert.Equal(t, "B0006", b.ID)
	assert.Equal(t, "Soho", b.BranchName)

	got, err := branches.Get(ctx, "B0006")
	require.NoError(t, err)
	assert.Equal(t, "W1D", got.Postcode)
}

func TestBranchCreateFirstAndInvalid(t *testing.T) {
	ctx := context.Background()
	_, branches, _ := newServices(t)

	b, err := branches.Create(ctx, BranchInput{BranchName: "Soho"})
	require.NoError(t, err)
	assert.Equal(t, "B0001", b.ID)

	_, err = branches.Create(ctx, BranchInput{BranchName: "   "})
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)

	_, err = branches.Create(ctx, BranchInput{BranchID: "B0001", BranchName: "Again"})
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)
}

func TestBranchGetMissing(t *testing.T) {
	_, branches, _ := newServices(t)
	_, err := branches.Get(context.Background(), "B0404")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestBranchUpdate(t *testing.T) {
	ctx := context.Background()
	_, branches, _ := newServices(t)
	_, err := branches.Create(ctx, BranchInput{BranchName: "Soho", Phone: "020"})
	require.NoError(t, err)

	b, err := branches.Update(ctx, "B0001", BranchPatch{BranchName: ptr("Soho Square")})
	require.NoError(t, err)
	require.NotNil(t, b)
	assert.Equal(t, "Soho Square", b.BranchName)
	assert.Equal(t, "020", b.Phone)

	_, err = branches.Update(ctx, "B0001", BranchPatch{BranchName: ptr("")})
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)

	missing, err := branches.Update(ctx, "B0999", BranchPatch{BranchName: ptr("Ghost")})
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestBranchDelete(t *testing.T) {
	ctx := context.Background()
	db, branches, _ := newServices(t)
	_, err := branches.Create(ctx, BranchInput{BranchName: "Soho"})
	require.NoError(t, err)
	_, err = branches.Create(ctx, BranchInput{BranchName: "Camden"})
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.Item{ID: "I0001", ItemName: "Salmon"}).Error)
	require.NoError(t, db.Create(&models.Stock{StockID: "s1", ItemID: "I0001", BranchID: "B0001", Quantity: 1}).Error)

	err = branches.Delete(ctx, "B0001")
	assert.ErrorIs(t, err, apperr.ErrInUse)

	require.NoError(t, branches.Delete(ctx, "B0002"))
	_, err = branches.Get(ctx, "B0002")
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	assert.NoError(t, branches.Delete(ctx, "B0999"), "deleting a missing branch is a no-op")
}

func TestBranchValidate(t *testing.T) {
	ctx := context.Background()
	_, branches, _ := newServices(t)
	_, err := branches.Create(ctx, BranchInput{BranchName: "Soho"})
	require.NoError(t, err)

	ok, err := branches.Validate(ctx, "B0001")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = branches.Validate(ctx, "B0002")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = branches.Validate(ctx, "X0001")
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)
	_, err = branches.Validate(ctx, "")
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)
}

func seedItems(t *testing.T, items *ItemService) {
	t.Helper()
	for _, in := range []ItemInput{
		{ItemName: "Salmon", Category: "Fish", Unit: "kg", CostPerUnit: decimal.RequireFromString("12.50"), MinStock: 10, MaxStock: 50},
		{ItemName: "Tuna", Category: "Fish", Unit: "kg", CostPerUnit: decimal.RequireFromString("20.00"), MinStock: 5, MaxStock: 30},
		{ItemName: "Rice", Category: "Dry Goods", Unit: "kg", CostPerUnit: decimal.RequireFromString("2.00"), MinStock: 20, MaxStock: 100},
		{ItemName: "Wagyu", Category: "Meat", Unit: "kg", CostPerUnit: decimal.RequireFromString("85.00"), MinStock: 1, MaxStock: 5},
	} {
		_, err := items.Create(context.Background(), in)
		require.NoError(t, err)
	}
}

func TestItemCreate(t *testing.T) {
	ctx := context.Background()
	_, _, items := newServices(t)
	seedItems(t, items)

	list, err := items.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 4)
	assert.Equal(t, "I0001", list[0].ID)
	assert.Equal(t, "I0004", list[3].ID)

	it, err := items.Create(ctx, ItemInput{ItemID: "I0100", ItemName: "Nori", MinStock: 1, MaxStock: 2})
	require.NoError(t, err)
	assert.Equal(t, "I0100", it.ID)

	it, err = items.Create(ctx, ItemInput{ItemName: "Miso"})
	require.NoError(t, err)
	assert.Equal(t, "I0101", it.ID)
}

func TestItemValidation(t *testing.T) {
	ctx := context.Background()
	_, _, items := newServices(t)

	cases := map[string]ItemInput{
		"no name":       {CostPerUnit: decimal.NewFromInt(1)},
		"negative cost": {ItemName: "x", CostPerUnit: decimal.NewFromInt(-1)},
		"negative min":  {ItemName: "x", MinStock: -1, MaxStock: 3},
		"min above max": {ItemName: "x", MinStock: 10, MaxStock: 5},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := items.Create(ctx, in)
			assert.ErrorIs(t, err, apperr.ErrInvalidArgument)
		})
	}
}

func TestItemUpdate(t *testing.T) {
	ctx := context.Background()
	_, _, items := newServices(t)
	seedItems(t, items)

	cost := decimal.RequireFromString("14.00")
	it, err := items.Update(ctx, "I0001", ItemPatch{CostPerUnit: &cost, MaxStock: ptr(60)})
	require.NoError(t, err)
	require.NotNil(t, it)
	assert.True(t, cost.Equal(it.CostPerUnit))
	assert.Equal(t, 60, it.MaxStock)

	_, err = items.Update(ctx, "I0001", ItemPatch{MinStock: ptr(70)})
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)

	missing, err := items.Update(ctx, "I0999", ItemPatch{ItemName: ptr("Ghost")})
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestItemDelete(t *testing.T) {
	ctx := context.Background()
	db, _, items := newServices(t)
	seedItems(t, items)
	require.NoError(t, db.Create(&models.Branch{ID: "B0001", BranchName: "Soho"}).Error)
	require.NoError(t, db.Create(&models.Stock{StockID: "s1", ItemID: "I0001", BranchID: "B0001"}).Error)

	assert.ErrorIs(t, items.Delete(ctx, "I0001"), apperr.ErrInUse)
	require.NoError(t, items.Delete(ctx, "I0002"))
	_, err := items.Get(ctx, "I0002")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.NoError(t, items.Delete(ctx, "I0999"))
}

func TestItemSearch(t *testing.T) {
	ctx := context.Background()
	_, _, items := newServices(t)
	seedItems(t, items)

	got, err := items.Search(ctx, "FISH")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Salmon", got[0].ItemName)

	got, err = items.Search(ctx, "ric")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Rice", got[0].ItemName)

	got, err = items.Search(ctx, "caviar")
	require.NoError(t, err)
	assert.Empty(t, got)

	// wildcard characters match literally
	for _, kw := range []string{"_", "%", `\`, "s_lmon", "%fish"} {
		got, err = items.Search(ctx, kw)
		require.NoError(t, err, kw)
		assert.Empty(t, got, kw)
	}

	_, err = items.Create(ctx, ItemInput{ItemName: "Rice 100%", Category: "Dry_Goods", MinStock: 1, MaxStock: 2})
	require.NoError(t, err)
	got, err = items.Search(ctx, "100%")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Rice 100%", got[0].ItemName)
	got, err = items.Search(ctx, "y_g")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Dry_Goods", got[0].Category)

	_, err = items.Search(ctx, "  ")
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)
}

func TestItemExpensiveAndAverageCost(t *testing.T) {
	ctx := context.Background()
	_, _, items := newServices(t)
	seedItems(t, items)

	got, err := items.Expensive(ctx, decimal.RequireFromString("20"))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Wagyu", got[0].ItemName)
	assert.Equal(t, "Tuna", got[1].ItemName)

	avg, err := items.AverageCostByCategory(ctx)
	require.NoError(t, err)
	require.Len(t, avg, 3)
	assert.Equal(t, "Dry Goods", avg[0].Category)
	assert.Equal(t, "Fish", avg[1].Category)
	assert.True(t, decimal.RequireFromString("16.25").Equal(avg[1].AverageCost))
}
