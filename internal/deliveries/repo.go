package deliveries

import (
	"context"
	"errors"

	"github.com/pulgashop/envios-backend/pkg/db/models"
	pkgerrors "github.com/pulgashop/envios-backend/pkg/errors"
	"gorm.io/gorm"
)

// Repository exposes persistence operations for delivery records.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a delivery repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Insert stores a new delivery record.
func (r *Repository) Insert(ctx context.Context, row *models.Delivery) error {
	return r.db.WithContext(ctx).Create(row).Error
}

// ListByUser returns the user's local delivery records, newest first.
func (r *Repository) ListByUser(ctx context.Context, userID string) ([]models.Delivery, error) {
	var rows []models.Delivery
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// FindByID loads one delivery record.
func (r *Repository) FindByID(ctx context.Context, id string) (*models.Delivery, error) {
	var row models.Delivery
	err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "delivery not found")
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Delete removes one delivery record by id.
func (r *Repository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&models.Delivery{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "delivery not found")
	}
	return nil
}
