package routes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/pulgashop/envios-backend/api/controllers"
	"github.com/pulgashop/envios-backend/internal/cart"
	"github.com/pulgashop/envios-backend/internal/deliveries"
	"github.com/pulgashop/envios-backend/internal/mapping"
	"github.com/pulgashop/envios-backend/internal/quotes"
	"github.com/pulgashop/envios-backend/internal/territory"
	"github.com/pulgashop/envios-backend/pkg/chilexpress"
	"github.com/pulgashop/envios-backend/pkg/config"
	"github.com/pulgashop/envios-backend/pkg/db/models"
	pkgerrors "github.com/pulgashop/envios-backend/pkg/errors"
	"github.com/pulgashop/envios-backend/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPinger struct{ err error }

func (s stubPinger) Ping(context.Context) error { return s.err }

type stubAddressService struct{}

func (stubAddressService) List(context.Context, string) ([]models.Address, error) {
	return []models.Address{}, nil
}

func (stubAddressService) Get(context.Context, string, uuid.UUID) (*models.Address, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "address not found")
}

func (stubAddressService) Create(context.Context, string, mapping.AddressForm) (*models.Address, error) {
	return &models.Address{ID: uuid.New()}, nil
}

func (stubAddressService) Update(context.Context, string, uuid.UUID, mapping.AddressForm) (*models.Address, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "address not found")
}

func (stubAddressService) Delete(context.Context, string, uuid.UUID) error {
	return nil
}

type stubTerritoryService struct{}

func (stubTerritoryService) Tree(context.Context) ([]territory.Node, error) {
	return []territory.Node{{Name: "Metropolitana de Santiago"}}, nil
}

func (stubTerritoryService) CarrierRegions(context.Context) ([]chilexpress.Region, error) {
	return []chilexpress.Region{{RegionID: "R13", RegionName: "Región Metropolitana"}}, nil
}

func (stubTerritoryService) CoverageAreas(context.Context, string, string) ([]chilexpress.CoverageArea, error) {
	return []chilexpress.CoverageArea{}, nil
}

func (stubTerritoryService) NewResolver(ctx context.Context) (*territory.Resolver, error) {
	tree, _ := stubTerritoryService{}.Tree(ctx)
	return territory.NewResolver(tree), nil
}

func (stubTerritoryService) NewCoverageResolver(context.Context) (*territory.CoverageResolver, error) {
	return territory.NewCoverageResolver([]territory.Node{
		{Name: "Región Metropolitana", Code: "R13", Children: []territory.Node{
			{Name: "PROVIDENCIA", Code: "PROV"},
		}},
	}), nil
}

type stubDeliveryService struct{}

func (stubDeliveryService) Confirm(context.Context, deliveries.ConfirmInput) (*models.Delivery, error) {
	return nil, pkgerrors.New(pkgerrors.CodeValidation, "not wired in this test")
}

func (stubDeliveryService) List(context.Context, string) ([]models.Delivery, error) {
	return []models.Delivery{}, nil
}

func (stubDeliveryService) Delete(context.Context, string, string) error {
	return nil
}

type stubQuoter struct{}

func (stubQuoter) Quote(context.Context, chilexpress.QuoteRequest) ([]chilexpress.QuoteOption, error) {
	return []chilexpress.QuoteOption{{ServiceCode: "3", ServiceName: "EXPRESS", Price: 5210, Currency: "CLP"}}, nil
}

type stubRecordStore struct{}

func (stubRecordStore) Create(context.Context, *models.QuoteRecord) error { return nil }

func testRouter(t *testing.T) http.Handler {
	t.Helper()

	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	cfg := &config.Config{}
	cfg.App.Env = "test"
	cfg.App.DefaultUserID = "1"

	manager := quotes.NewManager(func() *quotes.Workflow {
		return quotes.NewWorkflow(stubQuoter{}, "STGO", cart.StandardDefaults(), nil, logg)
	})
	recorder := quotes.NewRecorder(stubRecordStore{}, nil, logg)

	return NewRouter(Deps{
		Config:        cfg,
		Logger:        logg,
		Pingers:       map[string]controllers.Pinger{"database": stubPinger{}},
		Addresses:     stubAddressService{},
		Territory:     stubTerritoryService{},
		QuoteManager:  manager,
		QuoteRecorder: recorder,
		Deliveries:    stubDeliveryService{},
		Carrier:       nil,
		Registry:      nil,
	})
}

func TestHealthEndpoints(t *testing.T) {
	t.Parallel()

	router := testRouter(t)

	for _, path := range []string{"/health/live", "/health/ready"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.Equal(t, "test", rec.Header().Get("X-PulgaShop-Env"))
	}
}

func TestTerritoryRegions(t *testing.T) {
	t.Parallel()

	router := testRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/territory/regions", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data struct {
			Regions []territory.Node `json:"regions"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Len(t, body.Data.Regions, 1)
	assert.Equal(t, "Metropolitana de Santiago", body.Data.Regions[0].Name)
}

func TestTerritoryResolveReturnsOptionLists(t *testing.T) {
	t.Parallel()

	router := testRouter(t)

	rec := httptest.NewRecorder()
	target := "/api/v1/territory/resolve?region=Metropolitana+de+Santiago"
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data struct {
			Selection territory.Selection `json:"selection"`
			Provinces []territory.Node    `json:"provinces"`
			Communes  []territory.Node    `json:"communes"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "Metropolitana de Santiago", body.Data.Selection.Region)
	assert.Empty(t, body.Data.Communes)
}

func TestCarrierResolve(t *testing.T) {
	t.Parallel()

	router := testRouter(t)

	rec := httptest.NewRecorder()
	target := "/api/v1/carrier/resolve?region=Regi%C3%B3n+Metropolitana&area=PROVIDENCIA"
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body struct {
		Data struct {
			Selection territory.CoverageSelection `json:"selection"`
			Areas     []territory.Node            `json:"areas"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "PROV", body.Data.Selection.CountyCode)
	require.Len(t, body.Data.Areas, 1)
	assert.Equal(t, "PROVIDENCIA", body.Data.Areas[0].Name)
}

func TestQuoteRoundTrip(t *testing.T) {
	t.Parallel()

	router := testRouter(t)

	payload := `{"destinationCountyCode":"PROV","items":[{"productId":"p1","quantity":1,"unitPrice":1000}]}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/quotes/", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/quotes/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"state":"quoted"`)
}

func TestQuoteRequestRejectsEmptyCart(t *testing.T) {
	t.Parallel()

	router := testRouter(t)

	payload := `{"destinationCountyCode":"PROV","items":[]}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/quotes/", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCarrierCacheClearWithoutClient(t *testing.T) {
	t.Parallel()

	router := testRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/carrier/cache", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
