package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item: catalog entry for a trackable good
type Item struct {
	ID          string          `gorm:"column:item_id;primaryKey;size:10" json:"item_id"` // I0001
	ItemName    string          `gorm:"size:100;not null" json:"item_name"`
	Category    string          `gorm:"size:100;index" json:"category"`
	Unit        string          `gorm:"size:20" json:"unit"` // kg, pack, box ...
	Supplier    string          `gorm:"size:200" json:"supplier"`
	CostPerUnit decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"cost_per_unit"`
	MinStock    int             `gorm:"not null;default:0" json:"min_stock"`
	MaxStock    int             `gorm:"not null;default:0" json:"max_stock"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
