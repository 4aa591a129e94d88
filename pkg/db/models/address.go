package models

import (
	"time"

	"github.com/google/uuid"
)

// Address persists a saved destination for the owning user. Commune, province
// and region always hold the Spanish display names; CountyCode carries the
// carrier coverage code when the commune maps onto one.
type Address struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	UserID     string    `gorm:"column:user_id;not null;index"`
	Street     string    `gorm:"column:street;not null"`
	Number     string    `gorm:"column:number;not null"`
	Commune    string    `gorm:"column:comune;not null"`
	Province   string    `gorm:"column:province;not null"`
	Region     string    `gorm:"column:region;not null"`
	CountyCode string    `gorm:"column:county_code"`
	PostalCode string    `gorm:"column:postal_code"`
	References string    `gorm:"column:references_text;size:128"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName keeps the legacy table naming.
func (Address) TableName() string {
	return "addresses"
}
