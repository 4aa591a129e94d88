package mapping

import (
	"strings"

	"github.com/pulgashop/envios-backend/pkg/coreapi"
	"github.com/pulgashop/envios-backend/pkg/db/models"
	"github.com/pulgashop/envios-backend/pkg/types"
)

// AddressForm is the frontend's camelCase address shape. Identifier-ish
// fields arrive as the display names selected in the cascade.
type AddressForm struct {
	Street      string `json:"street"`
	Number      string `json:"number"`
	RegionID    string `json:"regionId"`
	ProvinceID  string `json:"provinceId"`
	CommuneID   string `json:"communeId"`
	CountyCode  string `json:"countyCode,omitempty"`
	PostalCode  string `json:"postalCode,omitempty"`
	References  string `json:"references,omitempty"`
	UserID      string `json:"userId"`
}

// AddressToCore renames the cascade fields onto the core API's localized
// shape and defaults every optional field, so the payload is always total.
func AddressToCore(form AddressForm) coreapi.AddressPayload {
	return coreapi.AddressPayload{
		Street:     strings.TrimSpace(form.Street),
		Number:     strings.TrimSpace(form.Number),
		Commune:    strings.TrimSpace(form.CommuneID),
		Province:   strings.TrimSpace(form.ProvinceID),
		Region:     strings.TrimSpace(form.RegionID),
		PostalCode: strings.TrimSpace(form.PostalCode),
		References: strings.TrimSpace(form.References),
		UserID:     strings.TrimSpace(form.UserID),
	}
}

// AddressToModel builds the persistence row for a form submission.
func AddressToModel(form AddressForm) models.Address {
	return models.Address{
		UserID:     strings.TrimSpace(form.UserID),
		Street:     strings.TrimSpace(form.Street),
		Number:     strings.TrimSpace(form.Number),
		Commune:    strings.TrimSpace(form.CommuneID),
		Province:   strings.TrimSpace(form.ProvinceID),
		Region:     strings.TrimSpace(form.RegionID),
		CountyCode: strings.TrimSpace(form.CountyCode),
		PostalCode: strings.TrimSpace(form.PostalCode),
		References: strings.TrimSpace(form.References),
	}
}

// AddressSnapshot captures the destination at confirm time for embedding in
// the delivery record.
func AddressSnapshot(addr models.Address) *types.AddressSnapshot {
	return &types.AddressSnapshot{
		Street:     addr.Street,
		Number:     addr.Number,
		Commune:    addr.Commune,
		Province:   addr.Province,
		Region:     addr.Region,
		CountyCode: addr.CountyCode,
		PostalCode: addr.PostalCode,
		References: addr.References,
	}
}
