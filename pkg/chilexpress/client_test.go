package chilexpress

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestServer(t *testing.T, hits *map[string]int) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		(*hits)[r.URL.Path]++
		switch r.URL.Path {
		case "/georeference/api/v1.0/regions":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"regions": []map[string]string{
					{"regionId": "R13", "regionName": "Metropolitana", "ineRegionCode": "13"},
					{"regionId": "R5", "regionName": "Valparaíso"},
				},
			})
		case "/georeference/api/v1.0/coverage-areas":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"coverageAreas": []map[string]string{
					{"countyCode": "PROV", "countyName": "PROVIDENCIA", "coverageAreaId": "1", "coverageAreaName": "PROVIDENCIA"},
				},
			})
		case "/rating/api/v1.0/rates/courier":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"data": map[string]any{
					"courierServiceOptions": []map[string]any{
						{"serviceTypeCode": 3, "serviceDescription": "EXPRESS", "serviceValue": "5210", "conditionsDelivery": "2 dias habiles"},
					},
				},
			})
		default:
			http.Error(w, "not found", http.StatusNotFound)
		}
	}))
}

func TestRegionsCachedAfterFirstFetch(t *testing.T) {
	t.Parallel()

	hits := map[string]int{}
	srv := newTestServer(t, &hits)
	defer srv.Close()

	client := NewClient("", WithBaseURL(srv.URL), WithCache(NewMemoryCache(nil), time.Hour))

	for i := 0; i < 3; i++ {
		regions, err := client.Regions(context.Background())
		if err != nil {
			t.Fatalf("Regions() error: %v", err)
		}
		if len(regions) != 2 || regions[0].RegionName != "Metropolitana" {
			t.Fatalf("unexpected regions: %+v", regions)
		}
	}

	if hits["/georeference/api/v1.0/regions"] != 1 {
		t.Fatalf("expected a single upstream fetch, got %d", hits["/georeference/api/v1.0/regions"])
	}
}

func TestCoverageAreasCachedPerRegionAndType(t *testing.T) {
	t.Parallel()

	hits := map[string]int{}
	srv := newTestServer(t, &hits)
	defer srv.Close()

	client := NewClient("", WithBaseURL(srv.URL), WithCache(NewMemoryCache(nil), time.Hour))

	ctx := context.Background()
	if _, err := client.CoverageAreas(ctx, "R13", "0"); err != nil {
		t.Fatalf("CoverageAreas() error: %v", err)
	}
	if _, err := client.CoverageAreas(ctx, "R13", "0"); err != nil {
		t.Fatalf("CoverageAreas() repeat error: %v", err)
	}
	if _, err := client.CoverageAreas(ctx, "R13", "1"); err != nil {
		t.Fatalf("CoverageAreas() other type error: %v", err)
	}

	if hits["/georeference/api/v1.0/coverage-areas"] != 2 {
		t.Fatalf("expected 2 upstream fetches (one per region+type key), got %d", hits["/georeference/api/v1.0/coverage-areas"])
	}
}

func TestCoverageAreasRequiresRegionCode(t *testing.T) {
	t.Parallel()

	client := NewClient("")
	if _, err := client.CoverageAreas(context.Background(), "  ", "0"); err == nil {
		t.Fatal("expected validation error for blank region code")
	}
}

func TestQuoteDecodesServiceOptions(t *testing.T) {
	t.Parallel()

	hits := map[string]int{}
	srv := newTestServer(t, &hits)
	defer srv.Close()

	client := NewClient("", WithBaseURL(srv.URL))

	req := QuoteRequest{
		OriginCountyCode:      "STGO",
		DestinationCountyCode: "PROV",
		ProductType:           DefaultProductType,
		ContentType:           DefaultContentType,
		DeclaredWorth:         "3500",
		DeliveryTime:          DefaultDeliveryTime,
	}
	req.Package.Weight = "4"
	req.Package.Length = "10"
	req.Package.Width = "20"
	req.Package.Height = "5"

	options, err := client.Quote(context.Background(), req)
	if err != nil {
		t.Fatalf("Quote() error: %v", err)
	}
	if len(options) != 1 {
		t.Fatalf("expected one option, got %d", len(options))
	}
	opt := options[0]
	if opt.ServiceCode != "3" || opt.ServiceName != "EXPRESS" || opt.Price != 5210 || opt.Currency != "CLP" {
		t.Fatalf("unexpected option: %+v", opt)
	}
}

func TestQuoteWrapsUpstreamStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "no coverage", http.StatusBadRequest)
	}))
	defer srv.Close()

	client := NewClient("", WithBaseURL(srv.URL))

	req := QuoteRequest{OriginCountyCode: "STGO", DestinationCountyCode: "NOWHERE"}
	if _, err := client.Quote(context.Background(), req); err == nil {
		t.Fatal("expected error for non-2xx response")
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	t.Parallel()

	now := time.Now()
	cache := NewMemoryCache(func() time.Time { return now })

	ctx := context.Background()
	if err := cache.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if _, found, _ := cache.Get(ctx, "k"); !found {
		t.Fatal("expected fresh entry to be found")
	}

	now = now.Add(2 * time.Minute)
	if _, found, _ := cache.Get(ctx, "k"); found {
		t.Fatal("expected expired entry to be evicted")
	}
}
