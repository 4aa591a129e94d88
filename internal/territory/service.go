package territory

import (
	"context"

	"github.com/pulgashop/envios-backend/pkg/chilexpress"
	"github.com/pulgashop/envios-backend/pkg/errors"
	"github.com/pulgashop/envios-backend/pkg/postal"
)

type postalAPI interface {
	RegionsWithCommunes(ctx context.Context) ([]postal.Region, error)
}

type carrierAPI interface {
	Regions(ctx context.Context) ([]chilexpress.Region, error)
	CoverageAreas(ctx context.Context, regionCode, queryType string) ([]chilexpress.CoverageArea, error)
}

// Service exposes the territorial hierarchies backing address forms and
// coverage selection.
type Service interface {
	Tree(ctx context.Context) ([]Node, error)
	CarrierRegions(ctx context.Context) ([]chilexpress.Region, error)
	CoverageAreas(ctx context.Context, regionCode, queryType string) ([]chilexpress.CoverageArea, error)
	NewResolver(ctx context.Context) (*Resolver, error)
	NewCoverageResolver(ctx context.Context) (*CoverageResolver, error)
}

type service struct {
	postal  postalAPI
	carrier carrierAPI
}

// NewService wires the postal and carrier clients behind the Service surface.
func NewService(postalClient postalAPI, carrierClient carrierAPI) Service {
	return &service{postal: postalClient, carrier: carrierClient}
}

// Tree returns the canonical 3-level region/province/commune tree.
func (s *service) Tree(ctx context.Context) ([]Node, error) {
	if s == nil || s.postal == nil {
		return nil, errors.New(errors.CodeDependency, "postal client unavailable")
	}
	regions, err := s.postal.RegionsWithCommunes(ctx)
	if err != nil {
		return nil, err
	}
	return FromPostal(regions), nil
}

func (s *service) CarrierRegions(ctx context.Context) ([]chilexpress.Region, error) {
	if s == nil || s.carrier == nil {
		return nil, errors.New(errors.CodeDependency, "carrier client unavailable")
	}
	return s.carrier.Regions(ctx)
}

func (s *service) CoverageAreas(ctx context.Context, regionCode, queryType string) ([]chilexpress.CoverageArea, error) {
	if s == nil || s.carrier == nil {
		return nil, errors.New(errors.CodeDependency, "carrier client unavailable")
	}
	return s.carrier.CoverageAreas(ctx, regionCode, queryType)
}

// NewResolver builds a cascade resolver over the current canonical tree.
func (s *service) NewResolver(ctx context.Context) (*Resolver, error) {
	tree, err := s.Tree(ctx)
	if err != nil {
		return nil, err
	}
	return NewResolver(tree), nil
}

// NewCoverageResolver builds the 2-level resolver over the carrier's own
// hierarchy, fetching the coverage areas of every carrier region. Region
// listing failures abort; a region whose areas cannot be fetched is kept
// with an empty area list so the rest of the catalogue stays usable.
func (s *service) NewCoverageResolver(ctx context.Context) (*CoverageResolver, error) {
	regions, err := s.CarrierRegions(ctx)
	if err != nil {
		return nil, err
	}
	areasByRegion := make(map[string][]chilexpress.CoverageArea, len(regions))
	for _, region := range regions {
		areas, err := s.carrier.CoverageAreas(ctx, region.RegionID, "")
		if err != nil {
			continue
		}
		areasByRegion[region.RegionID] = areas
	}
	return NewCoverageResolver(FromCarrier(regions, areasByRegion)), nil
}
