package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sunutees/storefront-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrOrderNotFound = errors.New("order not found")

// OrderStore is the one collaborator this core mutates. Mutations are
// append-only per checkout: an order is created fresh, never rewritten by
// a second pricing run.
type OrderStore interface {
	UpsertCustomer(ctx context.Context, customer models.Customer) (uint, error)
	CreateOrder(ctx context.Context, order *models.Order) error
	CreateOrderItem(ctx context.Context, item *models.OrderItem) error
	UpdateOrderPaymentSession(ctx context.Context, orderID uint, sessionID, checkoutURL, processorRaw string) error
	MarkPaymentOutcome(ctx context.Context, orderRef string, status models.PaymentStatus, processorRaw string) (models.Order, error)
}

type gormStore struct {
	db *gorm.DB
}

func New(db *gorm.DB) OrderStore {
	return &gormStore{db: db}
}

// UpsertCustomer creates or refreshes a customer keyed by email, so a
// re-submitted checkout never duplicates the row.
func (s *gormStore) UpsertCustomer(ctx context.Context, customer models.Customer) (uint, error) {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "phone", "whatsapp", "organization", "updated_at"}),
	}).Create(&customer).Error
	if err != nil {
		return 0, err
	}
	if customer.ID == 0 {
		// conflict path on some drivers does not backfill the ID
		var existing models.Customer
		if err := s.db.WithContext(ctx).Where("email = ?", customer.Email).First(&existing).Error; err != nil {
			return 0, err
		}
		return existing.ID, nil
	}
	return customer.ID, nil
}

func (s *gormStore) CreateOrder(ctx context.Context, order *models.Order) error {
	if order.OrderRef == "" {
		order.OrderRef = generateOrderRef()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	return s.db.WithContext(ctx).Create(order).Error
}

func (s *gormStore) CreateOrderItem(ctx context.Context, item *models.OrderItem) error {
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *gormStore) UpdateOrderPaymentSession(ctx context.Context, orderID uint, sessionID, checkoutURL, processorRaw string) error {
	return s.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", orderID).
		Updates(map[string]interface{}{
			"payment_session_id":    sessionID,
			"checkout_url":          checkoutURL,
			"payment_processor_raw": processorRaw,
		}).Error
}

// MarkPaymentOutcome records the webhook verdict and returns the updated order.
func (s *gormStore) MarkPaymentOutcome(ctx context.Context, orderRef string, status models.PaymentStatus, processorRaw string) (models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).Where("order_ref = ?", orderRef).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Order{}, ErrOrderNotFound
	}
	if err != nil {
		return models.Order{}, err
	}

	updates := map[string]interface{}{
		"payment_status":        status,
		"payment_processor_raw": processorRaw,
	}
	if status == models.PaymentStatusPaid {
		updates["status"] = models.OrderStatusConfirmed
	}
	if err := s.db.WithContext(ctx).Model(&order).Updates(updates).Error; err != nil {
		return models.Order{}, err
	}
	return order, nil
}

// generateOrderRef yields a sortable unique reference, e.g. 20250908130500-<uuid4>
func generateOrderRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}
