package quotes

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/pulgashop/envios-backend/pkg/db/models"
	pkgerrors "github.com/pulgashop/envios-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRecordStore struct {
	records []models.QuoteRecord
	err     error
}

func (s *stubRecordStore) Create(_ context.Context, record *models.QuoteRecord) error {
	if s.err != nil {
		return s.err
	}
	s.records = append(s.records, *record)
	return nil
}

type stubForwarder struct {
	calls int
	err   error
}

func (s *stubForwarder) RecordQuote(_ context.Context, _ json.RawMessage) error {
	s.calls++
	return s.err
}

func TestRecordStoresVerbatim(t *testing.T) {
	t.Parallel()

	store := &stubRecordStore{}
	forwarder := &stubForwarder{}
	rec := NewRecorder(store, forwarder, testLogger())

	payload := json.RawMessage(`{"serviceCode":"3","price":5210}`)
	record, err := rec.Record(context.Background(), "user-1", payload)
	require.NoError(t, err)
	assert.JSONEq(t, string(payload), string(record.Payload))
	require.Len(t, store.records, 1)
	assert.Equal(t, 1, forwarder.calls)
}

func TestRecordForwardFailureIsBestEffort(t *testing.T) {
	t.Parallel()

	store := &stubRecordStore{}
	forwarder := &stubForwarder{err: errors.New("core api down")}
	rec := NewRecorder(store, forwarder, testLogger())

	_, err := rec.Record(context.Background(), "user-1", json.RawMessage(`{}`))
	require.NoError(t, err, "forwarding is best effort")
	assert.Len(t, store.records, 1)
}

func TestRecordRejectsInvalidJSON(t *testing.T) {
	t.Parallel()

	store := &stubRecordStore{}
	rec := NewRecorder(store, nil, testLogger())

	_, err := rec.Record(context.Background(), "user-1", json.RawMessage(`{broken`))
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
	assert.Empty(t, store.records)
}

func TestRecordStoreFailurePropagates(t *testing.T) {
	t.Parallel()

	store := &stubRecordStore{err: errors.New("disk full")}
	rec := NewRecorder(store, nil, testLogger())

	_, err := rec.Record(context.Background(), "user-1", json.RawMessage(`{}`))
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeInternal, pkgerrors.As(err).Code())
}
