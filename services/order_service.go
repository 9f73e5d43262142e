package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/pdvapp/restaurant-pos/cart"
	"github.com/pdvapp/restaurant-pos/live"
	"github.com/pdvapp/restaurant-pos/models"
	"github.com/pdvapp/restaurant-pos/pkg/apperr"
)

// OrderService owns cart submission and the order lifecycle transitions.
type OrderService struct {
	DB      *gorm.DB
	Printer *PrinterService
}

func NewOrderService(db *gorm.DB, printer *PrinterService) *OrderService {
	return &OrderService{DB: db, Printer: printer}
}

type OrderOptionInput struct {
	OptionID      uint `json:"option_id" binding:"required"`
	OptionValueID uint `json:"option_value_id" binding:"required"`
}

type OrderAddonInput struct {
	ProductAddonID uint `json:"product_addon_id" binding:"required"`
	Quantity       int  `json:"quantity"`
}

type OrderItemInput struct {
	ProductID uint               `json:"product_id" binding:"required"`
	Quantity  int                `json:"quantity" binding:"required"`
	Note      string             `json:"note"`
	Options   []OrderOptionInput `json:"options"`
	Addons    []OrderAddonInput  `json:"addons"`
}

type CreateOrderInput struct {
	Table           string           `json:"table"`
	Notes           *string          `json:"notes"`
	Type            string           `json:"type"`
	DeliveryName    *string          `json:"delivery_name"`
	DeliveryAddress *string          `json:"delivery_address"`
	DeliveryPhone   *string          `json:"delivery_phone"`
	PaymentMethod   *string          `json:"payment_method"`
	DeliveryFee     *decimal.Decimal `json:"delivery_tax"`
	Items           []OrderItemInput `json:"items" binding:"required"`
}

// buildLines prices the submitted items against the catalog using the
// cart builder, so local validation happens before anything is persisted.
func (s *OrderService) buildLines(tx *gorm.DB, items []OrderItemInput) (*cart.Builder, error) {
	builder := cart.NewBuilder()
	for _, item := range items {
		var product models.Product
		err := tx.Preload("Options.Values").Preload("Addons.Ingredient").First(&product, item.ProductID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		if err != nil {
			return nil, &apperr.TransportError{Op: "load product", Err: err}
		}

		selections := cart.SelectionState{}
		for _, o := range item.Options {
			opt, ok := product.OptionByID(o.OptionID)
			if !ok {
				return nil, &apperr.ValidationError{Fields: []string{"options"}}
			}
			selections.Select(opt, o.OptionValueID)
		}

		addons := cart.AddonState{}
		for _, a := range item.Addons {
			addon, ok := product.AddonByID(a.ProductAddonID)
			if !ok {
				return nil, &apperr.ValidationError{Fields: []string{"addons"}}
			}
			addons.SetQuantity(addon, a.Quantity)
		}

		if _, err := builder.CommitLine(product, item.Quantity, item.Note, selections, addons); err != nil {
			return nil, err
		}
	}
	return builder, nil
}

// Submit creates a brand-new order. Dine-in submissions open a fresh table
// session; delivery submissions carry customer fields instead.
func (s *OrderService) Submit(in CreateOrderInput) (*models.Order, error) {
	if len(in.Items) == 0 {
		return nil, &apperr.ValidationError{Fields: []string{"items"}}
	}
	orderType := in.Type
	if orderType == "" {
		orderType = models.OrderTypeDineIn
	}
	if orderType == models.OrderTypeDineIn && in.Table == "" {
		return nil, &apperr.ValidationError{Fields: []string{"table"}}
	}

	var order *models.Order
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		builder, err := s.buildLines(tx, in.Items)
		if err != nil {
			return err
		}

		var sessionID *uint
		if orderType == models.OrderTypeDineIn {
			session := models.TableSession{
				TableLabel: in.Table,
				Status:     models.SessionStatusOpen,
				OpenedAt:   time.Now(),
			}
			if err := tx.Create(&session).Error; err != nil {
				return &apperr.TransportError{Op: "create table session", Err: err}
			}
			sessionID = &session.ID
		}

		order, err = s.createOrder(tx, builder, in, orderType, sessionID)
		return err
	})
	if err != nil {
		return nil, err
	}

	live.BroadcastOrderCreated(*order)
	if s.Printer != nil {
		s.Printer.PrintAsync(*order)
	}
	return order, nil
}

// SubmitToSession appends a new order to an existing open tab.
func (s *OrderService) SubmitToSession(sessionID uint, in CreateOrderInput) (*models.Order, error) {
	if len(in.Items) == 0 {
		return nil, &apperr.ValidationError{Fields: []string{"items"}}
	}

	var order *models.Order
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var session models.TableSession
		err := tx.First(&session, sessionID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrNotFound
		}
		if err != nil {
			return &apperr.TransportError{Op: "load table session", Err: err}
		}
		if !session.Open() {
			return &apperr.SessionClosedError{SessionID: session.ID}
		}

		builder, err := s.buildLines(tx, in.Items)
		if err != nil {
			return err
		}

		order, err = s.createOrder(tx, builder, in, models.OrderTypeDineIn, &session.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	live.BroadcastOrderCreated(*order)
	if s.Printer != nil {
		s.Printer.PrintAsync(*order)
	}
	return order, nil
}

// createOrder freezes the builder's lines into order item snapshots. The
// total is rounded to two decimals here and becomes the contract price.
func (s *OrderService) createOrder(tx *gorm.DB, builder *cart.Builder, in CreateOrderInput, orderType string, sessionID *uint) (*models.Order, error) {
	fee := decimal.Zero
	if orderType == models.OrderTypeDelivery && in.DeliveryFee != nil {
		fee = *in.DeliveryFee
	}

	order := models.Order{
		Type:            orderType,
		Status:          models.OrderStatusPending,
		PaymentStatus:   models.PaymentStatusPending,
		PaymentMethod:   in.PaymentMethod,
		TotalAmount:     builder.Total().Add(fee).Round(2),
		DeliveryFee:     fee,
		Notes:           in.Notes,
		TableSessionID:  sessionID,
		DeliveryName:    in.DeliveryName,
		DeliveryAddress: in.DeliveryAddress,
		DeliveryPhone:   in.DeliveryPhone,
	}
	if err := tx.Create(&order).Error; err != nil {
		return nil, &apperr.TransportError{Op: "create order", Err: err}
	}

	for _, line := range builder.Lines() {
		item := models.OrderItem{
			OrderID:     order.ID,
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			UnitPrice:   line.BasePrice.Round(2),
			Subtotal:    line.Total().Round(2),
			Note:        line.Note,
		}
		for _, o := range line.Options {
			item.Options = append(item.Options, models.OrderItemOption{
				OptionID:       o.OptionID,
				OptionValueID:  o.OptionValueID,
				OptionName:     o.OptionName,
				ValueName:      o.ValueName,
				PriceIncrement: o.PriceIncrement,
			})
		}
		for _, a := range line.Addons {
			item.Addons = append(item.Addons, models.OrderItemAddon{
				ProductAddonID: a.ProductAddonID,
				IngredientID:   a.IngredientID,
				IngredientName: a.IngredientName,
				Quantity:       a.Quantity,
				UnitPrice:      a.UnitPrice.Round(2),
				TotalPrice:     a.UnitPrice.Mul(decimal.NewFromInt(int64(a.Quantity))).Round(2),
			})
		}
		if err := tx.Create(&item).Error; err != nil {
			return nil, &apperr.TransportError{Op: "create order item", Err: err}
		}
		order.Items = append(order.Items, item)
	}

	return &order, nil
}

// SetStatus moves the preparation status. Any transition inside the
// enumerated set is allowed, including backward ones; operators use that
// to correct mistakes.
func (s *OrderService) SetStatus(orderID uint, status string) (*models.Order, error) {
	if !models.ValidOrderStatus(status) {
		return nil, apperr.ErrInvalidTransition
	}

	order, err := s.getOrder(orderID)
	if err != nil {
		return nil, err
	}

	if err := s.DB.Model(order).Update("status", status).Error; err != nil {
		return nil, &apperr.TransportError{Op: "update order status", Err: err}
	}
	order.Status = status

	live.BroadcastOrderUpdate(*order)
	return order, nil
}

// SetPaymentStatus moves the settlement state, independent of preparation.
func (s *OrderService) SetPaymentStatus(orderID uint, status string, method *string) (*models.Order, error) {
	if !models.ValidPaymentStatus(status) {
		return nil, apperr.ErrInvalidTransition
	}

	order, err := s.getOrder(orderID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{"payment_status": status}
	if method != nil {
		updates["payment_method"] = *method
	}
	if err := s.DB.Model(order).Updates(updates).Error; err != nil {
		return nil, &apperr.TransportError{Op: "update payment status", Err: err}
	}
	order.PaymentStatus = status
	if method != nil {
		order.PaymentMethod = method
	}

	live.BroadcastOrderUpdate(*order)
	return order, nil
}

// Finish archives the order out of the active views. Only completed or
// cancelled orders can be finished, and finishing is one-way.
func (s *OrderService) Finish(orderID uint) (*models.Order, error) {
	order, err := s.getOrder(orderID)
	if err != nil {
		return nil, err
	}
	if order.Finished {
		return order, nil
	}
	if !order.Terminal() {
		return nil, apperr.ErrInvalidTransition
	}

	if err := s.DB.Model(order).Update("finished", true).Error; err != nil {
		return nil, &apperr.TransportError{Op: "finish order", Err: err}
	}
	order.Finished = true

	live.BroadcastOrderUpdate(*order)
	return order, nil
}

// ActiveOrders lists unfinished orders with their frozen line items.
func (s *OrderService) ActiveOrders() ([]models.Order, error) {
	var orders []models.Order
	err := s.DB.
		Preload("Items.Options").
		Preload("Items.Addons").
		Preload("TableSession").
		Where("finished = ?", false).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, &apperr.TransportError{Op: "list orders", Err: err}
	}
	return orders, nil
}

func (s *OrderService) getOrder(orderID uint) (*models.Order, error) {
	var order models.Order
	err := s.DB.Preload("Items.Options").Preload("Items.Addons").First(&order, orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, &apperr.TransportError{Op: "load order", Err: err}
	}
	return &order, nil
}
