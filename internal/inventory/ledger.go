package inventory

import (
	"context"
	"errors"

	"restoran-inventory/internal/apperr"
	"restoran-inventory/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StockMover is the single-row part of the engine. Both calls run on the
// transaction handed in by the caller and never commit it themselves.
type StockMover interface {
	StockIn(ctx context.Context, tx *gorm.DB, itemID, branchID string, quantity int) error
	StockOut(ctx context.Context, tx *gorm.DB, itemID, branchID string, quantity int) error
}

// Ledger increments and decrements Stock rows, keeping quantity >= 0.
type Ledger struct {
	newStockID func() string
}

func NewLedger() *Ledger {
	return &Ledger{newStockID: uuid.NewString}
}

// StockIn adds quantity to (item, branch), creating the row on first stock-in.
func (l *Ledger) StockIn(ctx context.Context, tx *gorm.DB, itemID, branchID string, quantity int) error {
	if quantity <= 0 {
		return apperr.Invalid("quantity must be greater than 0, got %d", quantity)
	}

	res := tx.WithContext(ctx).
		Model(&models.Stock{}).
		Where("item_id = ? AND branch_id = ?", itemID, branchID).
		Update("quantity", gorm.Expr("quantity + ?", quantity))
	if res.Error != nil {
		return apperr.Storage("stock in", res.Error)
	}
	if res.RowsAffected > 0 {
		return nil
	}

	// No row yet: the item and branch must exist before one is created
	if err := mustExist(ctx, tx, &models.Item{}, "item_id", itemID, "item"); err != nil {
		return err
	}
	if err := mustExist(ctx, tx, &models.Branch{}, "branch_id", branchID, "branch"); err != nil {
		return err
	}

	stock := models.Stock{
		StockID:  l.newStockID(),
		ItemID:   itemID,
		BranchID: branchID,
		Quantity: quantity,
	}
	if err := tx.WithContext(ctx).Create(&stock).Error; err != nil {
		return apperr.Storage("stock in", err)
	}
	return nil
}

// StockOut removes quantity from (item, branch). The decrement is conditional
// on quantity >= requested, so a concurrent writer can never drive it negative.
func (l *Ledger) StockOut(ctx context.Context, tx *gorm.DB, itemID, branchID string, quantity int) error {
	if quantity <= 0 {
		return apperr.Invalid("quantity must be greater than 0, got %d", quantity)
	}

	res := tx.WithContext(ctx).
		Model(&models.Stock{}).
		Where("item_id = ? AND branch_id = ? AND quantity >= ?", itemID, branchID, quantity).
		Update("quantity", gorm.Expr("quantity - ?", quantity))
	if res.Error != nil {
		return apperr.Storage("stock out", res.Error)
	}
	if res.RowsAffected > 0 {
		return nil
	}

	available, _, err := quantityAt(ctx, tx, itemID, branchID)
	if err != nil {
		return err
	}
	return &apperr.InsufficientStockError{
		ItemID:    itemID,
		BranchID:  branchID,
		Available: available,
		Requested: quantity,
	}
}

// quantityAt returns the quantity held for (item, branch) and whether a row exists.
func quantityAt(ctx context.Context, tx *gorm.DB, itemID, branchID string) (int, bool, error) {
	var stock models.Stock
	err := tx.WithContext(ctx).
		Where("item_id = ? AND branch_id = ?", itemID, branchID).
		Take(&stock).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, apperr.Storage("read stock", err)
	}
	return stock.Quantity, true, nil
}

func mustExist(ctx context.Context, tx *gorm.DB, model any, column, id, kind string) error {
	var count int64
	if err := tx.WithContext(ctx).Model(model).Where(column+" = ?", id).Count(&count).Error; err != nil {
		return apperr.Storage("lookup "+kind, err)
	}
	if count == 0 {
		return apperr.NotFound("%s %s", kind, id)
	}
	return nil
}
