package report

import (
	"context"

	"restoran-inventory/internal/apperr"
	"restoran-inventory/internal/models"

	"gorm.io/gorm"
)

// Snapshot is everything the reports need, read once.
type Snapshot struct {
	Rows     []StockRow
	Items    []models.Item
	Branches []models.Branch
}

// LoadSnapshot fetches stocks, items and branches in three queries and joins
// them in memory. Stocks referencing a missing item or branch keep a nil pointer.
func LoadSnapshot(ctx context.Context, db *gorm.DB) (*Snapshot, error) {
	var (
		stocks   []models.Stock
		items    []models.Item
		branches []models.Branch
	)
	tx := db.WithContext(ctx)
	if err := tx.Order("branch_id, item_id").Find(&stocks).Error; err != nil {
		return nil, apperr.Storage("load stocks", err)
	}
	if err := tx.Order("item_id").Find(&items).Error; err != nil {
		return nil, apperr.Storage("load items", err)
	}
	if err := tx.Order("branch_id").Find(&branches).Error; err != nil {
		return nil, apperr.Storage("load branches", err)
	}

	itemByID := make(map[string]*models.Item, len(items))
	for i := range items {
		itemByID[items[i].ID] = &items[i]
	}
	branchByID := make(map[string]*models.Branch, len(branches))
	for i := range branches {
		branchByID[branches[i].ID] = &branches[i]
	}

	rows := make([]StockRow, 0, len(stocks))
	for _, st := range stocks {
		rows = append(rows, StockRow{
			Stock:  st,
			Item:   itemByID[st.ItemID],
			Branch: branchByID[st.BranchID],
		})
	}

	return &Snapshot{Rows: rows, Items: items, Branches: branches}, nil
}
