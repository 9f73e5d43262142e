package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/pdvapp/restaurant-pos/live"
	"github.com/pdvapp/restaurant-pos/models"
	"github.com/pdvapp/restaurant-pos/pkg/apperr"
)

// ErrPaymentPending is returned by MarkDelivered when the order has not
// been paid; the driver finalizes with FinishPayment instead.
var ErrPaymentPending = errors.New("payment still pending, finish payment to complete the delivery")

// DeliveryService is the driver-facing hand-off: ready orders are claimed
// with a compare-and-swap so two drivers can never collect the same one.
type DeliveryService struct {
	DB *gorm.DB
}

func NewDeliveryService(db *gorm.DB) *DeliveryService {
	return &DeliveryService{DB: db}
}

// ReadyOrders lists delivery orders whose kitchen work is done and that no
// driver has collected yet.
func (s *DeliveryService) ReadyOrders() ([]models.Order, error) {
	var orders []models.Order
	err := s.DB.
		Preload("Items.Options").
		Preload("Items.Addons").
		Where("type = ? AND status = ? AND collected_at IS NULL AND finished = ?",
			models.OrderTypeDelivery, models.OrderStatusCompleted, false).
		Order("created_at ASC").
		Find(&orders).Error
	if err != nil {
		return nil, &apperr.TransportError{Op: "list ready orders", Err: err}
	}
	return orders, nil
}

// Collect claims a ready order for the driver. The claim is a single
// guarded UPDATE conditioned on the order still being uncollected; a lost
// race surfaces as ConflictError, never as a silent overwrite.
func (s *DeliveryService) Collect(orderID, driverID uint) (*models.Order, error) {
	now := time.Now()
	res := s.DB.Model(&models.Order{}).
		Where("id = ? AND type = ? AND status = ? AND collected_at IS NULL",
			orderID, models.OrderTypeDelivery, models.OrderStatusCompleted).
		Updates(map[string]interface{}{
			"collected_by": driverID,
			"collected_at": now,
		})
	if res.Error != nil {
		return nil, &apperr.TransportError{Op: "collect order", Err: res.Error}
	}
	if res.RowsAffected == 0 {
		var order models.Order
		if err := s.DB.First(&order, orderID).Error; errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, &apperr.ConflictError{Resource: "order"}
	}

	order, err := s.getOrder(orderID)
	if err != nil {
		return nil, err
	}
	live.BroadcastDeliveryUpdate(*order)
	return order, nil
}

// Deliveries lists the orders a driver has collected and not yet dropped
// off.
func (s *DeliveryService) Deliveries(driverID uint) ([]models.Order, error) {
	var orders []models.Order
	err := s.DB.
		Preload("Items.Options").
		Preload("Items.Addons").
		Where("type = ? AND collected_by = ? AND delivered_at IS NULL",
			models.OrderTypeDelivery, driverID).
		Order("collected_at ASC").
		Find(&orders).Error
	if err != nil {
		return nil, &apperr.TransportError{Op: "list driver deliveries", Err: err}
	}
	return orders, nil
}

// MarkDelivered records the drop-off of an already-paid order. With
// payment still pending the driver must use FinishPayment, which settles
// and completes in one step.
func (s *DeliveryService) MarkDelivered(orderID uint) (*models.Order, error) {
	order, err := s.getOrder(orderID)
	if err != nil {
		return nil, err
	}
	if order.CollectedAt == nil {
		return nil, apperr.ErrInvalidTransition
	}
	if order.DeliveredAt != nil {
		return order, nil
	}
	if order.PaymentStatus != models.PaymentStatusPaid {
		return nil, ErrPaymentPending
	}

	now := time.Now()
	if err := s.DB.Model(order).Update("delivered_at", now).Error; err != nil {
		return nil, &apperr.TransportError{Op: "mark delivered", Err: err}
	}
	order.DeliveredAt = &now

	live.BroadcastDeliveryUpdate(*order)
	return order, nil
}

// FinishPayment settles a cash-on-delivery order and records the drop-off
// atomically.
func (s *DeliveryService) FinishPayment(orderID uint) (*models.Order, error) {
	var order *models.Order
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		order, err = s.getOrderTx(tx, orderID)
		if err != nil {
			return err
		}
		if order.CollectedAt == nil {
			return apperr.ErrInvalidTransition
		}
		if order.DeliveredAt != nil && order.PaymentStatus == models.PaymentStatusPaid {
			return nil
		}

		now := time.Now()
		if err := tx.Model(order).Updates(map[string]interface{}{
			"payment_status": models.PaymentStatusPaid,
			"delivered_at":   now,
		}).Error; err != nil {
			return &apperr.TransportError{Op: "finish delivery payment", Err: err}
		}
		order.PaymentStatus = models.PaymentStatusPaid
		order.DeliveredAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}

	live.BroadcastDeliveryUpdate(*order)
	return order, nil
}

func (s *DeliveryService) getOrder(orderID uint) (*models.Order, error) {
	return s.getOrderTx(s.DB, orderID)
}

func (s *DeliveryService) getOrderTx(tx *gorm.DB, orderID uint) (*models.Order, error) {
	var order models.Order
	err := tx.Preload("Items.Options").Preload("Items.Addons").First(&order, orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, &apperr.TransportError{Op: "load order", Err: err}
	}
	return &order, nil
}
