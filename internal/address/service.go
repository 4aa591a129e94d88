package address

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/pulgashop/envios-backend/internal/mapping"
	"github.com/pulgashop/envios-backend/pkg/coreapi"
	"github.com/pulgashop/envios-backend/pkg/db/models"
	pkgerrors "github.com/pulgashop/envios-backend/pkg/errors"
	"github.com/pulgashop/envios-backend/pkg/logger"
)

const maxReferencesLength = 128

// Store is the persistence surface the address service depends on.
type Store interface {
	ListByUser(ctx context.Context, userID string) ([]models.Address, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Address, error)
	Create(ctx context.Context, row *models.Address) (*models.Address, error)
	Update(ctx context.Context, row *models.Address) (*models.Address, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Forwarder mirrors address writes to the core API.
type Forwarder interface {
	CreateAddress(ctx context.Context, payload coreapi.AddressPayload) error
}

// Service manages a user's saved shipping addresses.
type Service interface {
	List(ctx context.Context, userID string) ([]models.Address, error)
	Get(ctx context.Context, userID string, id uuid.UUID) (*models.Address, error)
	Create(ctx context.Context, userID string, form mapping.AddressForm) (*models.Address, error)
	Update(ctx context.Context, userID string, id uuid.UUID, form mapping.AddressForm) (*models.Address, error)
	Delete(ctx context.Context, userID string, id uuid.UUID) error
}

type service struct {
	store     Store
	forwarder Forwarder
	logg      *logger.Logger
}

// NewService constructs the address service. The forwarder may be nil when
// no core API is configured.
func NewService(store Store, forwarder Forwarder, logg *logger.Logger) Service {
	if store == nil {
		panic("address: nil store")
	}
	if logg == nil {
		panic("address: nil logger")
	}
	return &service{store: store, forwarder: forwarder, logg: logg}
}

func (s *service) List(ctx context.Context, userID string) ([]models.Address, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	return s.store.ListByUser(ctx, userID)
}

func (s *service) Get(ctx context.Context, userID string, id uuid.UUID) (*models.Address, error) {
	existing, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "address not found")
	}
	return existing, nil
}

func (s *service) Create(ctx context.Context, userID string, form mapping.AddressForm) (*models.Address, error) {
	if err := validateForm(userID, form); err != nil {
		return nil, err
	}
	row := mapping.AddressToModel(form)
	row.UserID = userID
	created, err := s.store.Create(ctx, &row)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating address")
	}
	s.forward(ctx, userID, form)
	s.logg.Info(s.logg.WithUserID(ctx, userID), "address created")
	return created, nil
}

func (s *service) Update(ctx context.Context, userID string, id uuid.UUID, form mapping.AddressForm) (*models.Address, error) {
	if err := validateForm(userID, form); err != nil {
		return nil, err
	}
	existing, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "address not found")
	}
	row := mapping.AddressToModel(form)
	row.UserID = userID
	row.ID = existing.ID
	row.CreatedAt = existing.CreatedAt
	updated, err := s.store.Update(ctx, &row)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating address")
	}
	s.forward(ctx, userID, form)
	return updated, nil
}

// forward mirrors the submission to the core API. Failures are logged and
// swallowed; the local row is already committed.
func (s *service) forward(ctx context.Context, userID string, form mapping.AddressForm) {
	if s.forwarder == nil {
		return
	}
	payload := mapping.AddressToCore(form)
	payload.UserID = userID
	if err := s.forwarder.CreateAddress(ctx, payload); err != nil {
		s.logg.Warn(s.logg.WithUserID(ctx, userID), "forwarding address failed: "+err.Error())
	}
}

func (s *service) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	existing, err := s.store.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.UserID != userID {
		return pkgerrors.New(pkgerrors.CodeNotFound, "address not found")
	}
	return s.store.Delete(ctx, id)
}

// validateForm enforces the required-field rules before anything is
// persisted. A failing form produces no side effects.
func validateForm(userID string, form mapping.AddressForm) error {
	missing := make([]string, 0, 6)
	if strings.TrimSpace(userID) == "" {
		missing = append(missing, "userId")
	}
	if strings.TrimSpace(form.Street) == "" {
		missing = append(missing, "street")
	}
	if strings.TrimSpace(form.Number) == "" {
		missing = append(missing, "number")
	}
	if strings.TrimSpace(form.RegionID) == "" {
		missing = append(missing, "regionId")
	}
	if strings.TrimSpace(form.ProvinceID) == "" {
		missing = append(missing, "provinceId")
	}
	if strings.TrimSpace(form.CommuneID) == "" {
		missing = append(missing, "communeId")
	}
	if len(missing) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "missing required fields").
			WithDetails(strings.Join(missing, ", "))
	}
	if len(form.References) > maxReferencesLength {
		return pkgerrors.New(pkgerrors.CodeValidation, "references must be at most 128 characters")
	}
	return nil
}
