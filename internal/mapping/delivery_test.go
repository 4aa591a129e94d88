package mapping

import (
	"testing"

	"github.com/pulgashop/envios-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

func decPtr(value float64) *decimal.Decimal {
	d := decimal.NewFromFloat(value)
	return &d
}

func intPtr(value int64) *int64 {
	return &value
}

func TestDeliveryToCoreIsTotal(t *testing.T) {
	t.Parallel()

	// A nearly empty draft must still produce a payload with every field set.
	payload := DeliveryToCore(DeliveryDraft{
		TrackingNumber: "ENV-1-ABCDEF",
		UserID:         "1",
		Items:          []DraftItem{{ProductID: "p1"}},
	})

	if payload.PaymentID != "pendiente" {
		t.Fatalf("missing payment id must default to pendiente, got %q", payload.PaymentID)
	}
	if payload.Status != enums.DeliveryStatusPreparing.String() {
		t.Fatalf("missing status must default to Preparando, got %q", payload.Status)
	}
	if payload.Items[0].Quantity != 0 || payload.Items[0].UnitPrice != 0 {
		t.Fatalf("missing numerics must default to 0, got %+v", payload.Items[0])
	}
	if payload.Package.WeightKg != 0 || payload.Package.DeclaredWorth != 0 {
		t.Fatalf("missing package numerics must default to 0, got %+v", payload.Package)
	}
	if payload.ShippingInfo.ServiceCode != "" || payload.ShippingInfo.EstimatedCost != 0 {
		t.Fatalf("missing shipping info must default, got %+v", payload.ShippingInfo)
	}
}

func TestDeliveryToCorePreservesValues(t *testing.T) {
	t.Parallel()

	draft := DeliveryDraft{
		TrackingNumber:        "ENV-1756382400000-A1B2C3",
		Status:                "Preparando",
		UserID:                "1",
		PaymentID:             "tx_778",
		WeightKg:              decPtr(4),
		LengthCm:              decPtr(10),
		WidthCm:               decPtr(20),
		HeightCm:              decPtr(5),
		DeclaredWorth:         decPtr(3500),
		EstimatedCost:         intPtr(5210),
		ServiceCode:           "3",
		ServiceName:           "EXPRESS",
		Currency:              "CLP",
		OriginCountyCode:      "STGO",
		DestinationCountyCode: "PROV",
		DestinationAddressID:  "addr-9",
		Items: []DraftItem{
			{ProductID: "p1", Name: "Polera", Quantity: intPtr(2), UnitPrice: intPtr(1000)},
			{ProductID: "p2", Name: "Gorro", Quantity: intPtr(3), UnitPrice: intPtr(500)},
		},
	}

	payload := DeliveryToCore(draft)

	if payload.TrackingNumber != draft.TrackingNumber {
		t.Fatalf("tracking number changed: %q", payload.TrackingNumber)
	}
	if payload.PaymentID != "tx_778" {
		t.Fatalf("payment id changed: %q", payload.PaymentID)
	}
	if payload.Package.WeightKg != 4 || payload.Package.LengthCm != 10 || payload.Package.WidthCm != 20 || payload.Package.HeightCm != 5 {
		t.Fatalf("package numerics not preserved: %+v", payload.Package)
	}
	if payload.Package.DeclaredWorth != 3500 {
		t.Fatalf("declared worth not preserved: %d", payload.Package.DeclaredWorth)
	}
	if payload.ShippingInfo.EstimatedCost != 5210 || payload.ShippingInfo.DestinationCountyCode != "PROV" {
		t.Fatalf("shipping info not preserved: %+v", payload.ShippingInfo)
	}
	if len(payload.Items) != 2 || payload.Items[1].Quantity != 3 || payload.Items[1].UnitPrice != 500 {
		t.Fatalf("items not preserved: %+v", payload.Items)
	}
}

func TestDeliveryRoundTripThroughCoreShape(t *testing.T) {
	t.Parallel()

	draft := DeliveryDraft{
		TrackingNumber:        "CLX-990011",
		Status:                "En tránsito",
		UserID:                "1",
		PaymentID:             "tx_1",
		WeightKg:              decPtr(2.5),
		LengthCm:              decPtr(30),
		WidthCm:               decPtr(20),
		HeightCm:              decPtr(15),
		DeclaredWorth:         decPtr(9990),
		EstimatedCost:         intPtr(4200),
		ServiceCode:           "4",
		ServiceName:           "PRIORITARIO",
		Currency:              "CLP",
		OriginCountyCode:      "STGO",
		DestinationCountyCode: "QNOR",
		Items: []DraftItem{
			{ProductID: "p9", Name: "Zapatilla", Quantity: intPtr(1), UnitPrice: intPtr(9990)},
		},
	}

	record := DeliveryFromCore(DeliveryToCore(draft))

	if record.TrackingNumber != "CLX-990011" || record.Status != enums.DeliveryStatusInTransit {
		t.Fatalf("identity fields lost: %+v", record)
	}
	if record.EstimatedCost != 4200 || record.ServiceCode != "4" || record.ServiceName != "PRIORITARIO" {
		t.Fatalf("shipping info lost: %+v", record)
	}
	if record.Package.WeightKg != "2.5" || record.Package.DeclaredWorth != "9990" {
		t.Fatalf("package values lost: %+v", record.Package)
	}
	if len(record.Items) != 1 || record.Items[0].Quantity != 1 || record.Items[0].UnitPrice != 9990 {
		t.Fatalf("items lost: %+v", record.Items)
	}
	if record.SyncStatus != enums.SyncStatusSynced {
		t.Fatalf("remote rows must be marked synced, got %q", record.SyncStatus)
	}
}

func TestDeliveryFromCoreNormalizesUnknownStatus(t *testing.T) {
	t.Parallel()

	record := DeliveryFromCore(DeliveryToCore(DeliveryDraft{Status: "lost in a wormhole"}))
	if record.Status != enums.DeliveryStatusUnknown {
		t.Fatalf("unknown status should normalize, got %q", record.Status)
	}
}
