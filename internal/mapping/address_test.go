package mapping

import "testing"

func TestAddressToCoreRenamesAndDefaults(t *testing.T) {
	t.Parallel()

	payload := AddressToCore(AddressForm{
		Street:     "  Av. Providencia ",
		Number:     "1234",
		RegionID:   "Metropolitana",
		ProvinceID: "Santiago",
		CommuneID:  "Providencia",
		UserID:     "1",
	})

	if payload.Commune != "Providencia" || payload.Province != "Santiago" || payload.Region != "Metropolitana" {
		t.Fatalf("cascade fields not renamed: %+v", payload)
	}
	if payload.Street != "Av. Providencia" {
		t.Fatalf("street not trimmed: %q", payload.Street)
	}
	if payload.PostalCode != "" || payload.References != "" {
		t.Fatalf("missing optionals must default to empty strings: %+v", payload)
	}
}

func TestAddressToModelKeepsCountyCode(t *testing.T) {
	t.Parallel()

	row := AddressToModel(AddressForm{
		Street:     "Av. Providencia",
		Number:     "1234",
		RegionID:   "Metropolitana",
		ProvinceID: "Santiago",
		CommuneID:  "Providencia",
		CountyCode: "13114",
		References: "depto 42",
		UserID:     "1",
	})

	if row.CountyCode != "13114" {
		t.Fatalf("county code lost: %+v", row)
	}
	if row.References != "depto 42" {
		t.Fatalf("references lost: %+v", row)
	}
}

func TestQuoteRequestTextualFields(t *testing.T) {
	t.Parallel()

	// Covered further in the cart package; here only the coercion matters.
	profile := mustProfile(t)
	req := QuoteRequest("STGO", "PROV", profile, QuoteOverrides{})

	if req.Package.Weight != "4" || req.Package.Length != "10" || req.Package.Width != "20" || req.Package.Height != "5" {
		t.Fatalf("package fields must be textual numerics: %+v", req.Package)
	}
	if req.DeclaredWorth != "3500" {
		t.Fatalf("declared worth must be textual: %q", req.DeclaredWorth)
	}
	if req.ProductType != 3 || req.ContentType != 1 || req.DeliveryTime != 0 {
		t.Fatalf("default classifiers not injected: %+v", req)
	}

	three := 1
	withOverride := QuoteRequest("STGO", "PROV", profile, QuoteOverrides{ProductType: &three})
	if withOverride.ProductType != 1 {
		t.Fatalf("override not applied: %+v", withOverride)
	}
}
