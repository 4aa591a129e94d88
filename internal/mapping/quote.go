package mapping

import (
	"github.com/pulgashop/envios-backend/internal/cart"
	"github.com/pulgashop/envios-backend/pkg/chilexpress"
)

// QuoteOverrides lets a caller replace the fixed product/content classifiers
// and delivery-time preference injected into every quote request.
type QuoteOverrides struct {
	ProductType  *int
	ContentType  *int
	DeliveryTime *int
}

// QuoteRequest renders a package profile and route into the carrier's rating
// shape. Dimensions and declared worth become textual numerics because the
// carrier contract is textual; the classifiers default to the standard
// merchandise values unless overridden.
func QuoteRequest(originCounty, destinationCounty string, profile cart.Profile, overrides QuoteOverrides) chilexpress.QuoteRequest {
	req := chilexpress.QuoteRequest{
		OriginCountyCode:      originCounty,
		DestinationCountyCode: destinationCounty,
		ProductType:           chilexpress.DefaultProductType,
		ContentType:           chilexpress.DefaultContentType,
		DeclaredWorth:         profile.DeclaredWorth.String(),
		DeliveryTime:          chilexpress.DefaultDeliveryTime,
	}
	req.Package.Weight = profile.WeightKg.String()
	req.Package.Length = profile.LengthCm.String()
	req.Package.Width = profile.WidthCm.String()
	req.Package.Height = profile.HeightCm.String()

	if overrides.ProductType != nil {
		req.ProductType = *overrides.ProductType
	}
	if overrides.ContentType != nil {
		req.ContentType = *overrides.ContentType
	}
	if overrides.DeliveryTime != nil {
		req.DeliveryTime = *overrides.DeliveryTime
	}

	return req
}
