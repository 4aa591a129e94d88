package quotes

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"github.com/pulgashop/envios-backend/pkg/db/models"
	pkgerrors "github.com/pulgashop/envios-backend/pkg/errors"
	"github.com/pulgashop/envios-backend/pkg/logger"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// RecordStore persists quote echoes.
type RecordStore interface {
	Create(ctx context.Context, record *models.QuoteRecord) error
}

// Forwarder relays a quote echo to the core API.
type Forwarder interface {
	RecordQuote(ctx context.Context, payload json.RawMessage) error
}

// Recorder stores the raw quote payloads the frontend echoes back after a
// successful quote. The local write is authoritative; forwarding to the
// core API is best effort and never fails the operation.
type Recorder struct {
	store     RecordStore
	forwarder Forwarder
	logg      *logger.Logger
}

// NewRecorder constructs the quote recorder. The forwarder may be nil when
// no core API is configured.
func NewRecorder(store RecordStore, forwarder Forwarder, logg *logger.Logger) *Recorder {
	if store == nil {
		panic("quotes: nil record store")
	}
	if logg == nil {
		panic("quotes: nil logger")
	}
	return &Recorder{store: store, forwarder: forwarder, logg: logg}
}

// Record persists the payload verbatim and forwards it when possible.
func (r *Recorder) Record(ctx context.Context, userID string, payload json.RawMessage) (*models.QuoteRecord, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if len(payload) == 0 || !json.Valid(payload) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payload must be valid JSON")
	}

	record := &models.QuoteRecord{
		ID:      uuid.New(),
		UserID:  userID,
		Payload: datatypes.JSON(payload),
	}
	if err := r.store.Create(ctx, record); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "storing quote record")
	}

	if r.forwarder != nil {
		if err := r.forwarder.RecordQuote(ctx, payload); err != nil {
			r.logg.Warn(r.logg.WithUserID(ctx, userID), "forwarding quote record failed: "+err.Error())
		}
	}
	return record, nil
}

// RecordRepository is the gorm-backed RecordStore.
type RecordRepository struct {
	db *gorm.DB
}

// NewRecordRepository constructs the quote record repository.
func NewRecordRepository(db *gorm.DB) *RecordRepository {
	return &RecordRepository{db: db}
}

func (r *RecordRepository) Create(ctx context.Context, record *models.QuoteRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}
