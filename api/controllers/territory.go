package controllers

import (
	"net/http"

	"github.com/pulgashop/envios-backend/api/responses"
	"github.com/pulgashop/envios-backend/api/validators"
	"github.com/pulgashop/envios-backend/internal/territory"
	"github.com/pulgashop/envios-backend/pkg/logger"
)

// TerritoryTree returns the canonical region/province/commune hierarchy the
// address cascade renders.
func TerritoryTree(svc territory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		tree, err := svc.Tree(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"regions": tree})
	}
}

// TerritoryResolve replays a stored selection against the current tree for
// edit-form prefill. Names that no longer match degrade to text-only fields.
func TerritoryResolve(svc territory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		resolver, err := svc.NewResolver(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		resolver.Prefill(
			validators.OptionalQuery(r, "region"),
			validators.OptionalQuery(r, "province"),
			validators.OptionalQuery(r, "commune"),
		)
		responses.WriteSuccess(w, map[string]any{
			"selection": resolver.Selection(),
			"provinces": resolver.Provinces(),
			"communes":  resolver.Communes(),
		})
	}
}

// CarrierResolve replays a stored region/area pick against the carrier's
// 2-level coverage hierarchy, returning the selection with its county code
// plus the area options for the selected region.
func CarrierResolve(svc territory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		resolver, err := svc.NewCoverageResolver(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		resolver.SelectRegion(validators.OptionalQuery(r, "region"))
		if area := validators.OptionalQuery(r, "area"); area != "" {
			resolver.SelectArea(area)
		}
		responses.WriteSuccess(w, map[string]any{
			"selection": resolver.Selection(),
			"areas":     resolver.Areas(),
		})
	}
}

// CarrierRegions lists the carrier's own region catalogue.
func CarrierRegions(svc territory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		regions, err := svc.CarrierRegions(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"regions": regions})
	}
}

// CarrierCoverageAreas lists serviceable areas for one carrier region.
func CarrierCoverageAreas(svc territory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		regionCode, err := validators.RequireQuery(r, "regionCode")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		areas, err := svc.CoverageAreas(ctx, regionCode, validators.OptionalQuery(r, "type"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"coverageAreas": areas})
	}
}
