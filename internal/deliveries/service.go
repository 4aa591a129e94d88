package deliveries

import (
	"context"
	"strings"
	"time"

	"github.com/pulgashop/envios-backend/internal/cart"
	"github.com/pulgashop/envios-backend/internal/mapping"
	"github.com/pulgashop/envios-backend/pkg/chilexpress"
	"github.com/pulgashop/envios-backend/pkg/coreapi"
	"github.com/pulgashop/envios-backend/pkg/db/models"
	"github.com/pulgashop/envios-backend/pkg/enums"
	pkgerrors "github.com/pulgashop/envios-backend/pkg/errors"
	"github.com/pulgashop/envios-backend/pkg/logger"
	"github.com/pulgashop/envios-backend/pkg/metrics"
	"github.com/pulgashop/envios-backend/pkg/types"
	"go.uber.org/multierr"
)

// Store is the local persistence surface for delivery records.
type Store interface {
	Insert(ctx context.Context, row *models.Delivery) error
	ListByUser(ctx context.Context, userID string) ([]models.Delivery, error)
	FindByID(ctx context.Context, id string) (*models.Delivery, error)
	Delete(ctx context.Context, id string) error
}

// CoreAPI is the remote delivery surface. Every call is best effort: the
// local store is written regardless of the remote outcome.
type CoreAPI interface {
	CreateDelivery(ctx context.Context, payload coreapi.DeliveryPayload) (*coreapi.CreatedDelivery, error)
	ListDeliveries(ctx context.Context, userID string) ([]coreapi.DeliveryPayload, error)
}

// ConfirmInput is everything a checkout confirmation carries.
type ConfirmInput struct {
	UserID    string
	PaymentID string
	Items     []cart.Item
	Address   *models.Address
	Option    *chilexpress.QuoteOption
}

// Service confirms, lists and deletes deliveries. Confirmation writes the
// local store unconditionally and annotates each record with the remote
// sync outcome.
type Service interface {
	Confirm(ctx context.Context, input ConfirmInput) (*models.Delivery, error)
	List(ctx context.Context, userID string) ([]models.Delivery, error)
	Delete(ctx context.Context, userID, id string) error
}

type service struct {
	store    Store
	remote   CoreAPI
	tracking *TrackingGenerator
	origin   string
	defaults cart.Defaults
	shipm    *metrics.ShippingMetrics
	logg     *logger.Logger
}

// NewService constructs the delivery service. The remote client may be nil
// when no core API is configured; every record is then local_only.
func NewService(store Store, remote CoreAPI, tracking *TrackingGenerator, originCounty string, defaults cart.Defaults, shipm *metrics.ShippingMetrics, logg *logger.Logger) Service {
	if store == nil {
		panic("deliveries: nil store")
	}
	if tracking == nil {
		panic("deliveries: nil tracking generator")
	}
	if logg == nil {
		panic("deliveries: nil logger")
	}
	return &service{
		store:    store,
		remote:   remote,
		tracking: tracking,
		origin:   originCounty,
		defaults: defaults,
		shipm:    shipm,
		logg:     logg,
	}
}

// Confirm turns a paid checkout into a delivery record. The record is
// written remotely first when possible; remote identifiers win over the
// locally generated fallbacks. A failed remote write degrades to a
// local_only record instead of failing the confirmation.
func (s *service) Confirm(ctx context.Context, input ConfirmInput) (*models.Delivery, error) {
	if err := validateConfirm(input); err != nil {
		return nil, err
	}

	profile, err := cart.BuildProfile(input.Items, s.defaults)
	if err != nil {
		return nil, err
	}
	if err := profile.Validate(); err != nil {
		return nil, err
	}

	tracking := s.tracking.TrackingNumber()
	draft := s.buildDraft(input, profile, tracking)
	payload := mapping.DeliveryToCore(draft)

	row := s.buildRecord(input, profile, tracking)

	if s.remote != nil {
		created, remoteErr := s.remote.CreateDelivery(ctx, payload)
		if remoteErr == nil {
			row.ID = created.ID
			row.SyncStatus = enums.SyncStatusSynced
			if created.TrackingNumber != "" {
				row.TrackingNumber = created.TrackingNumber
			}
			if ts, parseErr := time.Parse(time.RFC3339, created.CreatedAt); parseErr == nil {
				row.CreatedAt = ts
			}
		} else {
			s.logg.Warn(s.logg.WithTrackingNumber(ctx, tracking), "core api rejected delivery, keeping local record: "+remoteErr.Error())
		}
	}

	if row.ID == "" {
		row.ID = s.tracking.LocalID()
		row.SyncStatus = enums.SyncStatusLocalOnly
	}

	if err := s.store.Insert(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "storing delivery record")
	}
	s.shipm.IncDeliverySync(row.SyncStatus.String())
	s.logg.Info(s.logg.WithTrackingNumber(ctx, row.TrackingNumber), "delivery confirmed")
	return row, nil
}

// List merges local records with the core API's view. The remote fetch is
// best effort: on failure the local records are returned alone. Duplicates
// are collapsed by id, then by tracking number, preferring the local row.
func (s *service) List(ctx context.Context, userID string) ([]models.Delivery, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	var errs error

	local, err := s.store.ListByUser(ctx, userID)
	localOK := err == nil
	if err != nil {
		errs = multierr.Append(errs, err)
		local = nil
	}

	var remote []coreapi.DeliveryPayload
	remoteOK := false
	if s.remote != nil {
		remote, err = s.remote.ListDeliveries(ctx, userID)
		remoteOK = err == nil
		if err != nil {
			errs = multierr.Append(errs, err)
			remote = nil
		}
	}

	// An empty source is still a successful source; only fail when neither
	// side could be read at all.
	if errs != nil {
		if !localOK && !remoteOK {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, errs, "listing deliveries")
		}
		s.logg.Warn(s.logg.WithUserID(ctx, userID), "partial delivery listing: "+errs.Error())
	}

	return mergeDeliveries(local, remote), nil
}

// Delete removes the local record only. The core API's copy, when one
// exists, is left untouched.
func (s *service) Delete(ctx context.Context, userID, id string) error {
	existing, err := s.store.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.UserID != userID {
		return pkgerrors.New(pkgerrors.CodeNotFound, "delivery not found")
	}
	return s.store.Delete(ctx, id)
}

func (s *service) buildDraft(input ConfirmInput, profile cart.Profile, tracking string) mapping.DeliveryDraft {
	items := make([]mapping.DraftItem, 0, len(input.Items))
	for _, item := range input.Items {
		qty := int64(item.Quantity)
		price := item.UnitPrice
		items = append(items, mapping.DraftItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  &qty,
			UnitPrice: &price,
		})
	}

	cost := input.Option.Price
	return mapping.DeliveryDraft{
		TrackingNumber: tracking,
		UserID:         input.UserID,
		PaymentID:      input.PaymentID,
		Items:          items,

		WeightKg:      &profile.WeightKg,
		LengthCm:      &profile.LengthCm,
		WidthCm:       &profile.WidthCm,
		HeightCm:      &profile.HeightCm,
		DeclaredWorth: &profile.DeclaredWorth,

		EstimatedCost:         &cost,
		ServiceCode:           input.Option.ServiceCode,
		ServiceName:           input.Option.ServiceName,
		Currency:              input.Option.Currency,
		OriginCountyCode:      s.origin,
		DestinationCountyCode: input.Address.CountyCode,
		DestinationAddressID:  input.Address.ID.String(),
	}
}

func (s *service) buildRecord(input ConfirmInput, profile cart.Profile, tracking string) *models.Delivery {
	items := make([]types.DeliveryItem, 0, len(input.Items))
	for _, item := range input.Items {
		items = append(items, types.DeliveryItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	snapshot := mapping.AddressSnapshot(*input.Address)
	return &models.Delivery{
		TrackingNumber: tracking,
		UserID:         input.UserID,
		Status:         enums.DeliveryStatusPreparing,
		ServiceCode:    input.Option.ServiceCode,
		ServiceName:    input.Option.ServiceName,
		EstimatedCost:  input.Option.Price,
		Currency:       input.Option.Currency,
		PaymentID:      input.PaymentID,

		OriginCountyCode:      s.origin,
		DestinationCountyCode: input.Address.CountyCode,

		Items:   items,
		Package: profile.Snapshot(),
		QuoteSnapshot: &types.QuoteOptionSnapshot{
			ServiceCode: input.Option.ServiceCode,
			ServiceName: input.Option.ServiceName,
			Price:       input.Option.Price,
			Currency:    input.Option.Currency,
			ETA:         input.Option.ETA,
		},
		AddressSnapshot: snapshot,
	}
}

// mergeDeliveries collapses the two views. Local rows carry the sync
// annotation, so they win over their remote counterparts.
func mergeDeliveries(local []models.Delivery, remote []coreapi.DeliveryPayload) []models.Delivery {
	merged := make([]models.Delivery, 0, len(local)+len(remote))
	seenIDs := make(map[string]struct{}, len(local))
	seenTracking := make(map[string]struct{}, len(local))

	for _, row := range local {
		merged = append(merged, row)
		if row.ID != "" {
			seenIDs[row.ID] = struct{}{}
		}
		if row.TrackingNumber != "" {
			seenTracking[row.TrackingNumber] = struct{}{}
		}
	}

	for _, payload := range remote {
		row := mapping.DeliveryFromCore(payload)
		if _, ok := seenIDs[row.ID]; ok && row.ID != "" {
			continue
		}
		if _, ok := seenTracking[row.TrackingNumber]; ok && row.TrackingNumber != "" {
			continue
		}
		merged = append(merged, row)
		if row.ID != "" {
			seenIDs[row.ID] = struct{}{}
		}
		if row.TrackingNumber != "" {
			seenTracking[row.TrackingNumber] = struct{}{}
		}
	}

	return merged
}

func validateConfirm(input ConfirmInput) error {
	if strings.TrimSpace(input.UserID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if input.Address == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "a destination address must be selected")
	}
	if input.Option == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "a shipping option must be selected")
	}
	if len(input.Items) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}
	return nil
}
