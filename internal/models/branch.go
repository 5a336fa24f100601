package models

import "time"

type Branch struct {
	ID         string    `gorm:"column:branch_id;primaryKey;size:10" json:"branch_id"` // B0001
	BranchName string    `gorm:"size:100;not null" json:"branch_name"`
	Address    string    `gorm:"size:255" json:"address"`
	Postcode   string    `gorm:"size:20" json:"postcode"`
	Phone      string    `gorm:"size:50" json:"phone"` // Optional
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
