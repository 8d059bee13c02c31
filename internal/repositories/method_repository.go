package repositories

import (
	"context"
	"errors"
	"strings"

	"wasit/internal/models"

	"gorm.io/gorm"
)

// MethodRepository persists transfer methods.
type MethodRepository interface {
	// List returns methods ordered by sort order then name.
	List(ctx context.Context, onlyEnabled bool) ([]models.TransferMethod, error)

	// GetByRef looks a method up by id or, failing that, by code.
	GetByRef(ctx context.Context, ref string) (*models.TransferMethod, error)

	Create(ctx context.Context, m *models.TransferMethod) error
	Update(ctx context.Context, m *models.TransferMethod) error
	Delete(ctx context.Context, id string) error

	// IsReferenced reports whether any fee rule or order points at the method.
	IsReferenced(ctx context.Context, id string) (bool, error)
}

type methodRepository struct {
	db *gorm.DB
}

func NewMethodRepository(db *gorm.DB) MethodRepository {
	return &methodRepository{db: db}
}

func (r *methodRepository) List(ctx context.Context, onlyEnabled bool) ([]models.TransferMethod, error) {
	var methods []models.TransferMethod
	q := r.db.WithContext(ctx).Order("sort_order ASC").Order("name ASC")
	if onlyEnabled {
		q = q.Where("enabled = ?", true)
	}
	if err := q.Find(&methods).Error; err != nil {
		return nil, err
	}
	return methods, nil
}

func (r *methodRepository) GetByRef(ctx context.Context, ref string) (*models.TransferMethod, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, ErrNotFound
	}

	var m models.TransferMethod
	if isUUID(ref) {
		err := r.db.WithContext(ctx).Where("id = ?", ref).First(&m).Error
		if err == nil {
			return &m, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	if err := r.db.WithContext(ctx).Where("code = ?", models.NormalizeCode(ref)).First(&m).Error; err != nil {
		return nil, notFound(err)
	}
	return &m, nil
}

func (r *methodRepository) Create(ctx context.Context, m *models.TransferMethod) error {
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return duplicate(err)
	}
	return nil
}

func (r *methodRepository) Update(ctx context.Context, m *models.TransferMethod) error {
	m.Code = models.NormalizeCode(m.Code)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return duplicate(err)
	}
	return nil
}

func (r *methodRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&models.TransferMethod{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *methodRepository) IsReferenced(ctx context.Context, id string) (bool, error) {
	var rules int64
	if err := r.db.WithContext(ctx).Model(&models.TransferFeeRule{}).
		Where("from_method_id = ? OR to_method_id = ?", id, id).
		Count(&rules).Error; err != nil {
		return false, err
	}
	if rules > 0 {
		return true, nil
	}

	var orders int64
	if err := r.db.WithContext(ctx).Model(&models.TransferOrder{}).
		Where("from_method_id = ? OR to_method_id = ?", id, id).
		Count(&orders).Error; err != nil {
		return false, err
	}
	return orders > 0, nil
}
