package mapping

import (
	"testing"

	"github.com/pulgashop/envios-backend/internal/cart"
	"github.com/shopspring/decimal"
)

func mustProfile(t *testing.T) cart.Profile {
	t.Helper()
	return cart.Profile{
		WeightKg:      decimal.NewFromInt(4),
		LengthCm:      decimal.NewFromInt(10),
		WidthCm:       decimal.NewFromInt(20),
		HeightCm:      decimal.NewFromInt(5),
		DeclaredWorth: decimal.NewFromInt(3500),
	}
}
