package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pdvapp/restaurant-pos/config"
	"github.com/pdvapp/restaurant-pos/services"
	"github.com/pdvapp/restaurant-pos/utils"
)

type OrderController struct {
	DB       *gorm.DB
	Orders   *services.OrderService
	Notifier *services.Notifier
	Cfg      *config.Config
}

func NewOrderController(db *gorm.DB, orders *services.OrderService, notifier *services.Notifier, cfg *config.Config) *OrderController {
	return &OrderController{DB: db, Orders: orders, Notifier: notifier, Cfg: cfg}
}

// GetAllOrders -> active (unfinished) orders. Each poll feeds the
// notifier, which alerts once per newly appeared order id.
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	orders, err := oc.Orders.ActiveOrders()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if oc.Notifier != nil {
		oc.Notifier.Observe(orders)
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// CreateOrder -> new dine-in tab (with its table session) or delivery order
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var in services.CreateOrderInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if in.PaymentMethod != nil && !oc.Cfg.PaymentMethodAllowed(*in.PaymentMethod) {
		utils.RespondError(c, http.StatusBadRequest, errors.New("unknown payment method"))
		return
	}

	order, err := oc.Orders.Submit(in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Order created", order)
}

func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("order_id"))

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.Orders.SetStatus(uint(id), req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order status updated", order)
}

func (oc *OrderController) UpdatePaymentStatus(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("order_id"))

	var req struct {
		PaymentStatus string  `json:"payment_status" binding:"required"`
		PaymentMethod *string `json:"payment_method"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.PaymentMethod != nil && !oc.Cfg.PaymentMethodAllowed(*req.PaymentMethod) {
		utils.RespondError(c, http.StatusBadRequest, errors.New("unknown payment method"))
		return
	}

	order, err := oc.Orders.SetPaymentStatus(uint(id), req.PaymentStatus, req.PaymentMethod)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Payment status updated", order)
}

func (oc *OrderController) FinishOrder(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("order_id"))

	order, err := oc.Orders.Finish(uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order finished", order)
}
