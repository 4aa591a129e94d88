package coreapi

// AddressPayload is the persistence shape the core API expects. Field naming
// is the core API's own (Spanish, snake_case, "comune" included).
type AddressPayload struct {
	Street     string `json:"street"`
	Number     string `json:"number"`
	Commune    string `json:"comune"`
	Province   string `json:"province"`
	Region     string `json:"region"`
	PostalCode string `json:"postalCode"`
	References string `json:"references"`
	UserID     string `json:"userId"`
}

// DeliveryPayload is the core API's delivery shape. Every numeric field must
// carry a value (0 when absent) and every text field a string ("" when
// absent); the mapper guarantees that before this type is ever serialized.
type DeliveryPayload struct {
	ID             string  `json:"id,omitempty"`
	TrackingNumber string  `json:"numero_seguimiento"`
	Status         string  `json:"estado"`
	UserID         string  `json:"usuario_id"`
	PaymentID      string  `json:"pago_id"`
	Items          []Item  `json:"articulo_carrito"`
	Package        Package `json:"paquete"`
	ShippingInfo   Info    `json:"informacion_envio"`
	CreatedAt      string  `json:"fecha_creacion,omitempty"`
}

// Item is one cart line inside a delivery payload.
type Item struct {
	ProductID string `json:"producto_id"`
	Name      string `json:"nombre"`
	Quantity  int64  `json:"cantidad"`
	UnitPrice int64  `json:"precio_unitario"`
}

// Package carries the quoted package profile.
type Package struct {
	WeightKg      float64 `json:"peso"`
	LengthCm      float64 `json:"largo"`
	WidthCm       float64 `json:"ancho"`
	HeightCm      float64 `json:"alto"`
	DeclaredWorth int64   `json:"valor_declarado"`
}

// Info carries the shipping service selection and route.
type Info struct {
	EstimatedCost         int64  `json:"costo_estimado"`
	ServiceCode           string `json:"tipo_servicio"`
	ServiceName           string `json:"nombre_servicio"`
	Currency              string `json:"moneda"`
	OriginCountyCode      string `json:"origen_codigo"`
	DestinationCountyCode string `json:"destino_codigo"`
	DestinationAddressID  string `json:"direccion_destino_id"`
}

// CreatedDelivery is the subset of the create response this service consumes.
// Backend-issued identifiers always win over locally generated ones.
type CreatedDelivery struct {
	ID             string `json:"id"`
	TrackingNumber string `json:"numero_seguimiento"`
	Status         string `json:"estado"`
	CreatedAt      string `json:"fecha_creacion"`
}
