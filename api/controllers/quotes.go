package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/pulgashop/envios-backend/api/responses"
	"github.com/pulgashop/envios-backend/api/validators"
	"github.com/pulgashop/envios-backend/internal/cart"
	"github.com/pulgashop/envios-backend/internal/mapping"
	"github.com/pulgashop/envios-backend/internal/quotes"
	"github.com/pulgashop/envios-backend/pkg/config"
	pkgerrors "github.com/pulgashop/envios-backend/pkg/errors"
	"github.com/pulgashop/envios-backend/pkg/logger"
	"github.com/shopspring/decimal"
)

type quoteItemPayload struct {
	ProductID string   `json:"productId" validate:"required"`
	Name      string   `json:"name"`
	Quantity  int      `json:"quantity" validate:"required,min=1"`
	UnitPrice int64    `json:"unitPrice" validate:"min=0"`
	WeightKg  *float64 `json:"weightKg,omitempty"`
	LengthCm  *float64 `json:"lengthCm,omitempty"`
	WidthCm   *float64 `json:"widthCm,omitempty"`
	HeightCm  *float64 `json:"heightCm,omitempty"`
}

type quoteRequestPayload struct {
	DestinationCountyCode string             `json:"destinationCountyCode" validate:"required"`
	Items                 []quoteItemPayload `json:"items" validate:"required,min=1,dive"`
	ProductType           *int               `json:"productType,omitempty"`
	ContentType           *int               `json:"contentType,omitempty"`
	DeliveryTime          *int               `json:"deliveryTime,omitempty"`
}

type quoteSelectPayload struct {
	ServiceCode string `json:"serviceCode" validate:"required"`
}

// QuoteRequest runs the quoting workflow for the user's cart.
func QuoteRequest(manager *quotes.Manager, cfg *config.Config, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var payload quoteRequestPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		input := quotes.Input{
			DestinationCountyCode: payload.DestinationCountyCode,
			Items:                 cartItems(payload.Items),
			Overrides: mapping.QuoteOverrides{
				ProductType:  payload.ProductType,
				ContentType:  payload.ContentType,
				DeliveryTime: payload.DeliveryTime,
			},
		}

		wf := manager.For(requestUserID(r, cfg))
		snap, err := wf.Request(ctx, input)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, snapshotPayload(snap))
	}
}

// QuoteSnapshot returns the current workflow state without re-quoting.
func QuoteSnapshot(manager *quotes.Manager, cfg *config.Config, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		wf := manager.For(requestUserID(r, cfg))
		responses.WriteSuccess(w, snapshotPayload(wf.Snapshot()))
	}
}

// QuoteSelect records the chosen shipping service.
func QuoteSelect(manager *quotes.Manager, cfg *config.Config, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var payload quoteSelectPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		wf := manager.For(requestUserID(r, cfg))
		snap := wf.Select(payload.ServiceCode)
		if snap.SelectedCode == "" {
			responses.WriteError(ctx, logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "service code does not match a quoted option").
					WithDetails(map[string]any{"serviceCode": payload.ServiceCode}))
			return
		}
		responses.WriteSuccess(w, snapshotPayload(snap))
	}
}

// QuoteRecord stores the raw quote echo for diagnostics.
func QuoteRecord(recorder *quotes.Recorder, cfg *config.Config, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var payload json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid request body"))
			return
		}

		record, err := recorder.Record(ctx, requestUserID(r, cfg), payload)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]any{"id": record.ID})
	}
}

func cartItems(payloads []quoteItemPayload) []cart.Item {
	items := make([]cart.Item, 0, len(payloads))
	for _, p := range payloads {
		items = append(items, cart.Item{
			ProductID: p.ProductID,
			Name:      p.Name,
			Quantity:  p.Quantity,
			UnitPrice: p.UnitPrice,
			WeightKg:  optionalDecimal(p.WeightKg),
			LengthCm:  optionalDecimal(p.LengthCm),
			WidthCm:   optionalDecimal(p.WidthCm),
			HeightCm:  optionalDecimal(p.HeightCm),
		})
	}
	return items
}

func optionalDecimal(value *float64) *decimal.Decimal {
	if value == nil {
		return nil
	}
	d := decimal.NewFromFloat(*value)
	return &d
}

func snapshotPayload(snap quotes.Snapshot) map[string]any {
	payload := map[string]any{
		"state":        string(snap.State),
		"options":      snap.Options,
		"selectedCode": snap.SelectedCode,
	}
	if snap.FailureMessage != "" {
		payload["failure"] = snap.FailureMessage
	}
	return payload
}
