package enums

// DeliveryStatus is the user-facing shipment state. The core API stores it as
// free text, so unrecognized values normalize to DeliveryStatusUnknown instead
// of failing.
type DeliveryStatus string

const (
	DeliveryStatusPreparing DeliveryStatus = "Preparando"
	DeliveryStatusShipped   DeliveryStatus = "Enviado"
	DeliveryStatusInTransit DeliveryStatus = "En tránsito"
	DeliveryStatusDelivered DeliveryStatus = "Entregado"
	DeliveryStatusCancelled DeliveryStatus = "Cancelado"
	DeliveryStatusReturned  DeliveryStatus = "Devuelto"
	DeliveryStatusUnknown   DeliveryStatus = "Desconocido"
)

var validDeliveryStatuses = []DeliveryStatus{
	DeliveryStatusPreparing,
	DeliveryStatusShipped,
	DeliveryStatusInTransit,
	DeliveryStatusDelivered,
	DeliveryStatusCancelled,
	DeliveryStatusReturned,
}

// String implements fmt.Stringer.
func (s DeliveryStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a recognized DeliveryStatus.
func (s DeliveryStatus) IsValid() bool {
	for _, candidate := range validDeliveryStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the shipment can no longer change state.
func (s DeliveryStatus) IsTerminal() bool {
	switch s {
	case DeliveryStatusDelivered, DeliveryStatusCancelled, DeliveryStatusReturned:
		return true
	}
	return false
}

// NormalizeDeliveryStatus maps raw status text onto a recognized value.
// "Enviado" and "En tránsito" are treated as the same in-flight state.
func NormalizeDeliveryStatus(value string) DeliveryStatus {
	for _, candidate := range validDeliveryStatuses {
		if string(candidate) == value {
			return candidate
		}
	}
	return DeliveryStatusUnknown
}
