package mapping

import (
	"strings"

	"github.com/pulgashop/envios-backend/pkg/coreapi"
	"github.com/pulgashop/envios-backend/pkg/db/models"
	"github.com/pulgashop/envios-backend/pkg/enums"
	"github.com/pulgashop/envios-backend/pkg/types"
	"github.com/shopspring/decimal"
)

// DeliveryDraft is the frontend's camelCase delivery shape before mapping.
// Optional numeric fields are pointers so "absent" and "zero" stay distinct
// until coercion.
type DeliveryDraft struct {
	TrackingNumber string
	Status         string
	UserID         string
	PaymentID      string

	Items []DraftItem

	WeightKg      *decimal.Decimal
	LengthCm      *decimal.Decimal
	WidthCm       *decimal.Decimal
	HeightCm      *decimal.Decimal
	DeclaredWorth *decimal.Decimal

	EstimatedCost         *int64
	ServiceCode           string
	ServiceName           string
	Currency              string
	OriginCountyCode      string
	DestinationCountyCode string
	DestinationAddressID  string
}

// DraftItem is one cart line in a draft.
type DraftItem struct {
	ProductID string
	Name      string
	Quantity  *int64
	UnitPrice *int64
}

// DeliveryToCore renders the draft into the core API's snake_case Spanish
// shape. The mapping is total: numeric fields default to 0, text fields to
// "", and a missing payment id becomes the literal "pendiente". No field is
// ever left absent.
func DeliveryToCore(draft DeliveryDraft) coreapi.DeliveryPayload {
	payment := strings.TrimSpace(draft.PaymentID)
	if payment == "" {
		payment = "pendiente"
	}

	status := strings.TrimSpace(draft.Status)
	if status == "" {
		status = enums.DeliveryStatusPreparing.String()
	}

	items := make([]coreapi.Item, 0, len(draft.Items))
	for _, item := range draft.Items {
		items = append(items, coreapi.Item{
			ProductID: strings.TrimSpace(item.ProductID),
			Name:      strings.TrimSpace(item.Name),
			Quantity:  orZero(item.Quantity),
			UnitPrice: orZero(item.UnitPrice),
		})
	}

	return coreapi.DeliveryPayload{
		TrackingNumber: strings.TrimSpace(draft.TrackingNumber),
		Status:         status,
		UserID:         strings.TrimSpace(draft.UserID),
		PaymentID:      payment,
		Items:          items,
		Package: coreapi.Package{
			WeightKg:      decimalFloat(draft.WeightKg),
			LengthCm:      decimalFloat(draft.LengthCm),
			WidthCm:       decimalFloat(draft.WidthCm),
			HeightCm:      decimalFloat(draft.HeightCm),
			DeclaredWorth: decimalInt(draft.DeclaredWorth),
		},
		ShippingInfo: coreapi.Info{
			EstimatedCost:         orZero(draft.EstimatedCost),
			ServiceCode:           strings.TrimSpace(draft.ServiceCode),
			ServiceName:           strings.TrimSpace(draft.ServiceName),
			Currency:              strings.TrimSpace(draft.Currency),
			OriginCountyCode:      strings.TrimSpace(draft.OriginCountyCode),
			DestinationCountyCode: strings.TrimSpace(draft.DestinationCountyCode),
			DestinationAddressID:  strings.TrimSpace(draft.DestinationAddressID),
		},
	}
}

// DeliveryFromCore lifts a remote delivery row into the local record shape
// for the merge path. Remote rows are always marked synced; the core API is
// their system of record.
func DeliveryFromCore(payload coreapi.DeliveryPayload) models.Delivery {
	items := make([]types.DeliveryItem, 0, len(payload.Items))
	for _, item := range payload.Items {
		items = append(items, types.DeliveryItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  int(item.Quantity),
			UnitPrice: item.UnitPrice,
		})
	}

	return models.Delivery{
		ID:             payload.ID,
		TrackingNumber: payload.TrackingNumber,
		UserID:         payload.UserID,
		Status:         enums.NormalizeDeliveryStatus(payload.Status),
		SyncStatus:     enums.SyncStatusSynced,
		ServiceCode:    payload.ShippingInfo.ServiceCode,
		ServiceName:    payload.ShippingInfo.ServiceName,
		EstimatedCost:  payload.ShippingInfo.EstimatedCost,
		Currency:       payload.ShippingInfo.Currency,
		PaymentID:      payload.PaymentID,

		OriginCountyCode:      payload.ShippingInfo.OriginCountyCode,
		DestinationCountyCode: payload.ShippingInfo.DestinationCountyCode,

		Items: items,
		Package: types.PackageSnapshot{
			WeightKg:      decimal.NewFromFloat(payload.Package.WeightKg).String(),
			LengthCm:      decimal.NewFromFloat(payload.Package.LengthCm).String(),
			WidthCm:       decimal.NewFromFloat(payload.Package.WidthCm).String(),
			HeightCm:      decimal.NewFromFloat(payload.Package.HeightCm).String(),
			DeclaredWorth: decimal.NewFromInt(payload.Package.DeclaredWorth).String(),
		},
	}
}

func orZero(value *int64) int64 {
	if value == nil {
		return 0
	}
	return *value
}

func decimalFloat(value *decimal.Decimal) float64 {
	if value == nil {
		return 0
	}
	f, _ := value.Float64()
	return f
}

func decimalInt(value *decimal.Decimal) int64 {
	if value == nil {
		return 0
	}
	return value.IntPart()
}
