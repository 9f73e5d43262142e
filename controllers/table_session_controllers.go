package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pdvapp/restaurant-pos/services"
	"github.com/pdvapp/restaurant-pos/utils"
)

type TableSessionController struct {
	DB       *gorm.DB
	Sessions *services.SessionService
	Orders   *services.OrderService
}

func NewTableSessionController(db *gorm.DB, sessions *services.SessionService, orders *services.OrderService) *TableSessionController {
	return &TableSessionController{DB: db, Sessions: sessions, Orders: orders}
}

// GetOpenSessions -> open tabs for the "append to existing tab" picker
func (tc *TableSessionController) GetOpenSessions(c *gin.Context) {
	sessions, err := tc.Sessions.ListOpen()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Open table sessions", sessions)
}

// AddOrderToSession -> append a new order to an existing open tab
func (tc *TableSessionController) AddOrderToSession(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("session_id"))

	var in services.CreateOrderInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := tc.Orders.SubmitToSession(uint(id), in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Order added to session", order)
}

// CloseSession -> close the tab once every order is paid or cancelled
func (tc *TableSessionController) CloseSession(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("session_id"))

	session, err := tc.Sessions.Close(uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table session closed", session)
}
