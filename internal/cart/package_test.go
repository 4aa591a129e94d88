package cart

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(value float64) *decimal.Decimal {
	d := decimal.NewFromFloat(value)
	return &d
}

func TestBuildProfileTotals(t *testing.T) {
	t.Parallel()

	items := []Item{
		{ProductID: "p1", Quantity: 2, WeightKg: dec(1), LengthCm: dec(10), WidthCm: dec(5), HeightCm: dec(5)},
		{ProductID: "p2", Quantity: 1, WeightKg: dec(2), LengthCm: dec(8), WidthCm: dec(20), HeightCm: dec(3)},
	}

	profile, err := BuildProfile(items, StandardDefaults())
	if err != nil {
		t.Fatalf("BuildProfile() error: %v", err)
	}

	if got := profile.WeightKg.String(); got != "4" {
		t.Fatalf("expected total weight 4, got %s", got)
	}
	if got := profile.LengthCm.String(); got != "10" {
		t.Fatalf("expected length max 10, got %s", got)
	}
	if got := profile.WidthCm.String(); got != "20" {
		t.Fatalf("expected width max 20, got %s", got)
	}
	if got := profile.HeightCm.String(); got != "5" {
		t.Fatalf("expected height max 5, got %s", got)
	}
}

func TestBuildProfileDeclaredWorth(t *testing.T) {
	t.Parallel()

	items := []Item{
		{ProductID: "p1", Quantity: 2, UnitPrice: 1000},
		{ProductID: "p2", Quantity: 3, UnitPrice: 500},
	}

	profile, err := BuildProfile(items, StandardDefaults())
	if err != nil {
		t.Fatalf("BuildProfile() error: %v", err)
	}
	if got := profile.DeclaredWorth.String(); got != "3500" {
		t.Fatalf("expected declared worth 3500, got %s", got)
	}
}

func TestBuildProfileAppliesDefaults(t *testing.T) {
	t.Parallel()

	items := []Item{{ProductID: "p1", Quantity: 2, UnitPrice: 100}}

	profile, err := BuildProfile(items, StandardDefaults())
	if err != nil {
		t.Fatalf("BuildProfile() error: %v", err)
	}

	if got := profile.WeightKg.String(); got != "1" {
		t.Fatalf("expected defaulted weight 0.5*2=1, got %s", got)
	}
	snap := profile.Snapshot()
	if snap.LengthCm != "30" || snap.WidthCm != "20" || snap.HeightCm != "15" {
		t.Fatalf("expected default box 30/20/15, got %+v", snap)
	}
}

func TestBuildProfileRejectsEmptyCart(t *testing.T) {
	t.Parallel()

	if _, err := BuildProfile(nil, StandardDefaults()); err == nil {
		t.Fatal("expected validation error for empty cart")
	}
}

func TestBuildProfileRejectsNonPositiveQuantity(t *testing.T) {
	t.Parallel()

	if _, err := BuildProfile([]Item{{ProductID: "p1", Quantity: 0}}, StandardDefaults()); err == nil {
		t.Fatal("expected validation error for zero quantity")
	}
}

func TestProfileValidate(t *testing.T) {
	t.Parallel()

	good := Profile{
		WeightKg:      decimal.NewFromInt(1),
		LengthCm:      decimal.NewFromInt(10),
		WidthCm:       decimal.NewFromInt(10),
		HeightCm:      decimal.NewFromInt(10),
		DeclaredWorth: decimal.NewFromInt(1000),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("valid profile rejected: %v", err)
	}

	bad := good
	bad.DeclaredWorth = decimal.Zero
	if err := bad.Validate(); err == nil {
		t.Fatal("expected validation error for zero declared worth")
	}
}
