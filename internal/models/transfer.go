package models

import "time"

// Transfer: append-only record of stock moved between two branches
type Transfer struct {
	TransferID   string    `gorm:"primaryKey;size:10" json:"transfer_id"` // T0001
	ItemID       string    `gorm:"size:10;not null;index" json:"item_id"`
	Item         *Item     `gorm:"foreignKey:ItemID;references:ID;constraint:OnDelete:RESTRICT" json:"-"`
	Quantity     int       `gorm:"not null" json:"quantity"`
	Unit         string    `gorm:"size:20" json:"unit"`
	FromBranch   string    `gorm:"size:10;not null;index" json:"from_branch"`
	From         *Branch   `gorm:"foreignKey:FromBranch;references:ID;constraint:OnDelete:RESTRICT" json:"-"`
	ToBranch     string    `gorm:"size:10;not null;index" json:"to_branch"`
	To           *Branch   `gorm:"foreignKey:ToBranch;references:ID;constraint:OnDelete:RESTRICT" json:"-"`
	TransferDate time.Time `gorm:"index;not null" json:"transfer_date"`
	CreatedAt    time.Time `json:"created_at"`
}
