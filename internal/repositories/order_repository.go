package repositories

import (
	"context"

	"wasit/internal/models"

	"gorm.io/gorm"
)

// OrderFilter narrows order listings. Empty fields match everything.
type OrderFilter struct {
	Phone       string
	Status      models.OrderStatus
	OrderNumber string
	Offset      int
	Limit       int
}

// OrderRepository persists transfer orders.
type OrderRepository interface {
	Create(ctx context.Context, order *models.TransferOrder) error
	GetByID(ctx context.Context, id string) (*models.TransferOrder, error)
	List(ctx context.Context, filter OrderFilter) ([]models.TransferOrder, int64, error)

	// UpdateStatus performs a compare-and-set on status so two admins cannot
	// apply conflicting transitions.
	UpdateStatus(ctx context.Context, id string, from, to models.OrderStatus, notes *string) error
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, order *models.TransferOrder) error {
	if err := r.db.WithContext(ctx).Omit("FromMethod", "ToMethod").Create(order).Error; err != nil {
		return duplicate(err)
	}
	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*models.TransferOrder, error) {
	var order models.TransferOrder
	q := r.db.WithContext(ctx).Preload("FromMethod").Preload("ToMethod")
	if isUUID(id) {
		q = q.Where("id = ?", id)
	} else {
		q = q.Where("order_number = ?", id)
	}
	if err := q.First(&order).Error; err != nil {
		return nil, notFound(err)
	}
	return &order, nil
}

func (r *orderRepository) List(ctx context.Context, filter OrderFilter) ([]models.TransferOrder, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.TransferOrder{})
	if filter.Phone != "" {
		q = q.Where("customer_phone = ? OR customer_whatsapp = ?", filter.Phone, filter.Phone)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.OrderNumber != "" {
		q = q.Where("order_number = ?", filter.OrderNumber)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []models.TransferOrder
	err := q.Preload("FromMethod").Preload("ToMethod").
		Order("created_at DESC").
		Offset(filter.Offset).Limit(filter.Limit).
		Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id string, from, to models.OrderStatus, notes *string) error {
	updates := map[string]interface{}{"status": to}
	if notes != nil {
		updates["admin_notes"] = *notes
	}

	result := r.db.WithContext(ctx).Model(&models.TransferOrder{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
