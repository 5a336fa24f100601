package models

import "time"

// Stock: quantity of one item held at one branch.
// At most one row per (item_id, branch_id). Belongs to Item and Branch;
// the parents key on ID so the FKs land on this table.
type Stock struct {
	StockID   string    `gorm:"primaryKey;size:64" json:"stock_id"`
	ItemID    string    `gorm:"size:10;not null;uniqueIndex:idx_stock_item_branch" json:"item_id"`
	Item      *Item     `gorm:"foreignKey:ItemID;references:ID;constraint:OnDelete:RESTRICT" json:"-"`
	BranchID  string    `gorm:"size:10;not null;uniqueIndex:idx_stock_item_branch;index" json:"branch_id"`
	Branch    *Branch   `gorm:"foreignKey:BranchID;references:ID;constraint:OnDelete:RESTRICT" json:"-"`
	Quantity  int       `gorm:"not null;default:0" json:"quantity"` // never negative
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
