package repositories

import (
	"context"

	"wasit/internal/models"

	"gorm.io/gorm"
)

// FeeRuleFilter narrows the admin listing. Empty fields match everything.
type FeeRuleFilter struct {
	FromMethodID string
	ToMethodID   string
}

// FeeRuleRepository persists fee rules.
type FeeRuleRepository interface {
	// ListForRoute returns enabled rules for the ordered pair in evaluation order:
	// priority, then creation time, then id.
	ListForRoute(ctx context.Context, fromMethodID, toMethodID string) ([]models.TransferFeeRule, error)

	List(ctx context.Context, filter FeeRuleFilter) ([]models.TransferFeeRule, error)
	GetByID(ctx context.Context, id string) (*models.TransferFeeRule, error)
	Create(ctx context.Context, rule *models.TransferFeeRule) error
	Update(ctx context.Context, rule *models.TransferFeeRule) error
	Delete(ctx context.Context, id string) error
}

type feeRuleRepository struct {
	db *gorm.DB
}

func NewFeeRuleRepository(db *gorm.DB) FeeRuleRepository {
	return &feeRuleRepository{db: db}
}

func (r *feeRuleRepository) ListForRoute(ctx context.Context, fromMethodID, toMethodID string) ([]models.TransferFeeRule, error) {
	var rules []models.TransferFeeRule
	err := r.db.WithContext(ctx).
		Where("from_method_id = ? AND to_method_id = ? AND enabled = ?", fromMethodID, toMethodID, true).
		Order("priority ASC").Order("created_at ASC").Order("id ASC").
		Find(&rules).Error
	if err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *feeRuleRepository) List(ctx context.Context, filter FeeRuleFilter) ([]models.TransferFeeRule, error) {
	q := r.db.WithContext(ctx).Preload("FromMethod").Preload("ToMethod")
	if filter.FromMethodID != "" {
		q = q.Where("from_method_id = ?", filter.FromMethodID)
	}
	if filter.ToMethodID != "" {
		q = q.Where("to_method_id = ?", filter.ToMethodID)
	}

	var rules []models.TransferFeeRule
	if err := q.Order("from_method_id").Order("to_method_id").Order("priority ASC").Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *feeRuleRepository) GetByID(ctx context.Context, id string) (*models.TransferFeeRule, error) {
	if !isUUID(id) {
		return nil, ErrNotFound
	}
	var rule models.TransferFeeRule
	if err := r.db.WithContext(ctx).Preload("FromMethod").Preload("ToMethod").
		Where("id = ?", id).First(&rule).Error; err != nil {
		return nil, notFound(err)
	}
	return &rule, nil
}

func (r *feeRuleRepository) Create(ctx context.Context, rule *models.TransferFeeRule) error {
	return r.db.WithContext(ctx).Omit("FromMethod", "ToMethod").Create(rule).Error
}

func (r *feeRuleRepository) Update(ctx context.Context, rule *models.TransferFeeRule) error {
	return r.db.WithContext(ctx).Omit("FromMethod", "ToMethod").Save(rule).Error
}

func (r *feeRuleRepository) Delete(ctx context.Context, id string) error {
	if !isUUID(id) {
		return ErrNotFound
	}
	result := r.db.WithContext(ctx).Delete(&models.TransferFeeRule{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
