package models

import (
	"time"

	"github.com/pulgashop/envios-backend/pkg/enums"
	"github.com/pulgashop/envios-backend/pkg/types"
)

// Delivery is the optimistic local shipment record. The primary key is either
// the core-API id or a locally generated "local_<unix-ms>" id when the remote
// write failed; SyncStatus distinguishes the two.
type Delivery struct {
	ID             string               `gorm:"column:id;primaryKey"`
	TrackingNumber string               `gorm:"column:tracking_number;not null;index"`
	UserID         string               `gorm:"column:user_id;not null;index"`
	Status         enums.DeliveryStatus `gorm:"column:status;not null"`
	SyncStatus     enums.SyncStatus     `gorm:"column:sync_status;not null"`

	ServiceCode   string `gorm:"column:service_code"`
	ServiceName   string `gorm:"column:service_name"`
	EstimatedCost int64  `gorm:"column:estimated_cost"`
	Currency      string `gorm:"column:currency"`
	PaymentID     string `gorm:"column:payment_id"`

	OriginCountyCode      string `gorm:"column:origin_county_code"`
	DestinationCountyCode string `gorm:"column:destination_county_code"`

	Items           []types.DeliveryItem       `gorm:"column:items;type:jsonb;serializer:json"`
	Package         types.PackageSnapshot      `gorm:"column:package;type:jsonb;serializer:json"`
	QuoteSnapshot   *types.QuoteOptionSnapshot `gorm:"column:quote_snapshot;type:jsonb;serializer:json"`
	AddressSnapshot *types.AddressSnapshot     `gorm:"column:address_snapshot;type:jsonb;serializer:json"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName keeps the legacy table naming.
func (Delivery) TableName() string {
	return "deliveries"
}
