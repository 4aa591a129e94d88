package types

// DeliveryItem is the per-line snapshot embedded in a delivery record.
type DeliveryItem struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
}

// PackageSnapshot captures the package profile the quote was requested with.
// Numeric fields are kept textual because the carrier contract is textual.
type PackageSnapshot struct {
	WeightKg      string `json:"weight_kg"`
	LengthCm      string `json:"length_cm"`
	WidthCm       string `json:"width_cm"`
	HeightCm      string `json:"height_cm"`
	DeclaredWorth string `json:"declared_worth"`
}

// QuoteOptionSnapshot embeds the chosen carrier service so list views can
// render without re-quoting.
type QuoteOptionSnapshot struct {
	ServiceCode string `json:"service_code"`
	ServiceName string `json:"service_name"`
	Price       int64  `json:"price"`
	Currency    string `json:"currency"`
	ETA         string `json:"eta,omitempty"`
}

// AddressSnapshot embeds the destination address at confirm time.
type AddressSnapshot struct {
	Street     string `json:"street"`
	Number     string `json:"number"`
	Commune    string `json:"commune"`
	Province   string `json:"province"`
	Region     string `json:"region"`
	CountyCode string `json:"county_code,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	References string `json:"references,omitempty"`
}
