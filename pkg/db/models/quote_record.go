package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// QuoteRecord persists the raw quote echo posted by the frontend for later
// diagnostics. The payload is stored verbatim.
type QuoteRecord struct {
	ID        uuid.UUID      `gorm:"column:id;type:uuid;primaryKey"`
	UserID    string         `gorm:"column:user_id;index"`
	Payload   datatypes.JSON `gorm:"column:payload;type:jsonb"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
}

// TableName keeps the legacy table naming.
func (QuoteRecord) TableName() string {
	return "quote_records"
}
