package cart

import (
	"github.com/pulgashop/envios-backend/pkg/errors"
	"github.com/pulgashop/envios-backend/pkg/types"
	"github.com/shopspring/decimal"
)

// Item is one cart line with its optional per-item measurements. Nil
// measurements take the configured defaults.
type Item struct {
	ProductID string
	Name      string
	Quantity  int
	UnitPrice int64

	WeightKg *decimal.Decimal
	LengthCm *decimal.Decimal
	WidthCm  *decimal.Decimal
	HeightCm *decimal.Decimal
}

// Defaults are substituted for missing per-item dimensions.
type Defaults struct {
	WeightKg decimal.Decimal
	LengthCm decimal.Decimal
	WidthCm  decimal.Decimal
	HeightCm decimal.Decimal
}

// StandardDefaults returns the shop-wide fallback dimensions: 0.5kg and a
// 30x20x15cm box.
func StandardDefaults() Defaults {
	return Defaults{
		WeightKg: decimal.NewFromFloat(0.5),
		LengthCm: decimal.NewFromInt(30),
		WidthCm:  decimal.NewFromInt(20),
		HeightCm: decimal.NewFromInt(15),
	}
}

// Profile is the derived package shape a quote is requested with. Total
// weight sums weight×quantity; each dimension is the max across items rather
// than a true bounding-box union, a deliberate approximation.
type Profile struct {
	WeightKg      decimal.Decimal
	LengthCm      decimal.Decimal
	WidthCm       decimal.Decimal
	HeightCm      decimal.Decimal
	DeclaredWorth decimal.Decimal
}

// BuildProfile derives the package profile for a non-empty cart.
func BuildProfile(items []Item, defaults Defaults) (Profile, error) {
	if len(items) == 0 {
		return Profile{}, errors.New(errors.CodeValidation, "cart is empty")
	}

	profile := Profile{}
	for _, item := range items {
		if item.Quantity <= 0 {
			return Profile{}, errors.New(errors.CodeValidation, "item quantity must be positive").
				WithDetails(map[string]any{"product_id": item.ProductID})
		}

		qty := decimal.NewFromInt(int64(item.Quantity))

		weight := defaults.WeightKg
		if item.WeightKg != nil {
			weight = *item.WeightKg
		}
		profile.WeightKg = profile.WeightKg.Add(weight.Mul(qty))

		profile.LengthCm = decimal.Max(profile.LengthCm, orDefault(item.LengthCm, defaults.LengthCm))
		profile.WidthCm = decimal.Max(profile.WidthCm, orDefault(item.WidthCm, defaults.WidthCm))
		profile.HeightCm = decimal.Max(profile.HeightCm, orDefault(item.HeightCm, defaults.HeightCm))

		profile.DeclaredWorth = profile.DeclaredWorth.Add(decimal.NewFromInt(item.UnitPrice).Mul(qty))
	}

	return profile, nil
}

// Validate enforces the quoting entry guards: every measure and the declared
// worth must be strictly positive.
func (p Profile) Validate() error {
	checks := map[string]decimal.Decimal{
		"weight":         p.WeightKg,
		"length":         p.LengthCm,
		"width":          p.WidthCm,
		"height":         p.HeightCm,
		"declared_worth": p.DeclaredWorth,
	}
	for field, value := range checks {
		if !value.IsPositive() {
			return errors.New(errors.CodeValidation, "package measures must be positive").
				WithDetails(map[string]any{"field": field})
		}
	}
	return nil
}

// Snapshot renders the profile in the textual form the carrier contract and
// the delivery record use.
func (p Profile) Snapshot() types.PackageSnapshot {
	return types.PackageSnapshot{
		WeightKg:      p.WeightKg.String(),
		LengthCm:      p.LengthCm.String(),
		WidthCm:       p.WidthCm.String(),
		HeightCm:      p.HeightCm.String(),
		DeclaredWorth: p.DeclaredWorth.String(),
	}
}

func orDefault(value *decimal.Decimal, fallback decimal.Decimal) decimal.Decimal {
	if value != nil {
		return *value
	}
	return fallback
}
