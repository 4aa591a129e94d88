package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pulgashop/envios-backend/api/responses"
	"github.com/pulgashop/envios-backend/api/validators"
	"github.com/pulgashop/envios-backend/internal/address"
	"github.com/pulgashop/envios-backend/internal/deliveries"
	"github.com/pulgashop/envios-backend/internal/quotes"
	"github.com/pulgashop/envios-backend/pkg/config"
	pkgerrors "github.com/pulgashop/envios-backend/pkg/errors"
	"github.com/pulgashop/envios-backend/pkg/logger"
)

type deliveryConfirmPayload struct {
	AddressID string             `json:"addressId" validate:"required,uuid"`
	PaymentID string             `json:"paymentId"`
	Items     []quoteItemPayload `json:"items" validate:"required,min=1,dive"`
}

// DeliveryConfirm turns the current checkout into a delivery record. The
// selected quote option must still be held by the user's quote workflow.
func DeliveryConfirm(svc deliveries.Service, addresses address.Service, manager *quotes.Manager, cfg *config.Config, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var payload deliveryConfirmPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		userID := requestUserID(r, cfg)

		addressID, err := uuid.Parse(payload.AddressID)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid address id"))
			return
		}

		destination, err := addresses.Get(ctx, userID, addressID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		option, ok := manager.For(userID).Selected()
		if !ok {
			responses.WriteError(ctx, logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "a shipping option must be selected before confirming"))
			return
		}

		row, err := svc.Confirm(ctx, deliveries.ConfirmInput{
			UserID:    userID,
			PaymentID: payload.PaymentID,
			Items:     cartItems(payload.Items),
			Address:   destination,
			Option:    &option,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		manager.Drop(userID)
		responses.WriteSuccessStatus(w, http.StatusCreated, row)
	}
}

// DeliveryList returns the merged local and remote delivery view.
func DeliveryList(svc deliveries.Service, cfg *config.Config, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		rows, err := svc.List(ctx, requestUserID(r, cfg))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"deliveries": rows})
	}
}

// DeliveryDelete removes the local record only.
func DeliveryDelete(svc deliveries.Service, cfg *config.Config, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id := chi.URLParam(r, "deliveryId")
		if id == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "delivery id is required"))
			return
		}

		if err := svc.Delete(ctx, requestUserID(r, cfg), id); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
