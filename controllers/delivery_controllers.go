package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pdvapp/restaurant-pos/services"
	"github.com/pdvapp/restaurant-pos/utils"
)

type DeliveryController struct {
	DB       *gorm.DB
	Delivery *services.DeliveryService
}

func NewDeliveryController(db *gorm.DB, delivery *services.DeliveryService) *DeliveryController {
	return &DeliveryController{DB: db, Delivery: delivery}
}

// GetReadyOrders -> completed delivery orders awaiting a driver
func (dc *DeliveryController) GetReadyOrders(c *gin.Context) {
	orders, err := dc.Delivery.ReadyOrders()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Ready for delivery", gin.H{"orders": orders})
}

// CollectOrder -> driver claims a ready order; the loser of a race gets 409
func (dc *DeliveryController) CollectOrder(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("order_id"))

	driverID, err := currentUserID(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	order, err := dc.Delivery.Collect(uint(id), driverID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order collected", order)
}

// GetDriverDeliveries -> orders this driver has collected but not delivered
func (dc *DeliveryController) GetDriverDeliveries(c *gin.Context) {
	driverID, err := currentUserID(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	orders, err := dc.Delivery.Deliveries(driverID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Driver deliveries", gin.H{"orders": orders})
}

// MarkDelivered -> drop-off of an already-paid order
func (dc *DeliveryController) MarkDelivered(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("order_id"))

	order, err := dc.Delivery.MarkDelivered(uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order delivered", order)
}

// FinishDeliveryPayment -> settle on delivery and record the drop-off
func (dc *DeliveryController) FinishDeliveryPayment(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("order_id"))

	order, err := dc.Delivery.FinishPayment(uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Delivery payment finished", order)
}

func currentUserID(c *gin.Context) (uint, error) {
	v, exists := c.Get("user_id")
	if !exists {
		return 0, errors.New("unauthorized")
	}
	id, ok := v.(uint)
	if !ok {
		return 0, errors.New("unauthorized")
	}
	return id, nil
}
