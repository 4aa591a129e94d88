package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pulgashop/envios-backend/api/responses"
	"github.com/pulgashop/envios-backend/api/validators"
	"github.com/pulgashop/envios-backend/internal/address"
	"github.com/pulgashop/envios-backend/internal/mapping"
	"github.com/pulgashop/envios-backend/pkg/config"
	pkgerrors "github.com/pulgashop/envios-backend/pkg/errors"
	"github.com/pulgashop/envios-backend/pkg/logger"
)

// AddressList returns the user's saved addresses.
func AddressList(svc address.Service, cfg *config.Config, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		rows, err := svc.List(ctx, requestUserID(r, cfg))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"addresses": rows})
	}
}

// AddressCreate stores a new address.
func AddressCreate(svc address.Service, cfg *config.Config, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var form mapping.AddressForm
		if err := validators.DecodeJSONBody(r, &form); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		created, err := svc.Create(ctx, requestUserID(r, cfg), form)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// AddressUpdate replaces an existing address.
func AddressUpdate(svc address.Service, cfg *config.Config, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := parseAddressID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var form mapping.AddressForm
		if err := validators.DecodeJSONBody(r, &form); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		updated, err := svc.Update(ctx, requestUserID(r, cfg), id, form)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

// AddressDelete removes an address.
func AddressDelete(svc address.Service, cfg *config.Config, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := parseAddressID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.Delete(ctx, requestUserID(r, cfg), id); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func parseAddressID(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "addressId")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid address id")
	}
	return id, nil
}
