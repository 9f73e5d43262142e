package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pdvapp/restaurant-pos/pkg/apperr"
	"github.com/pdvapp/restaurant-pos/services"
	"github.com/pdvapp/restaurant-pos/utils"
)

var (
	ErrNoPermission  = errors.New("you do not have permission")
	errNegativePrice = errors.New("price must not be negative")
)

// respondServiceError maps the typed service errors onto HTTP statuses so
// clients can branch on kind.
func respondServiceError(c *gin.Context, err error) {
	var (
		validation *apperr.ValidationError
		closed     *apperr.SessionClosedError
		unsettled  *apperr.UnsettledOrdersError
		conflict   *apperr.ConflictError
		transport  *apperr.TransportError
	)

	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status":  false,
			"message": validation.Error(),
			"data":    gin.H{"fields": validation.Fields},
		})
	case errors.As(err, &closed):
		utils.RespondError(c, http.StatusConflict, err)
	case errors.As(err, &unsettled):
		c.JSON(http.StatusConflict, gin.H{
			"status":  false,
			"message": unsettled.Error(),
			"data":    gin.H{"order_ids": unsettled.OrderIDs},
		})
	case errors.As(err, &conflict):
		utils.RespondError(c, http.StatusConflict, err)
	case errors.Is(err, apperr.ErrNotFound):
		utils.RespondError(c, http.StatusNotFound, err)
	case errors.Is(err, apperr.ErrInvalidTransition), errors.Is(err, services.ErrPaymentPending):
		utils.RespondError(c, http.StatusBadRequest, err)
	case errors.As(err, &transport):
		utils.RespondError(c, http.StatusBadGateway, err)
	default:
		utils.RespondError(c, http.StatusInternalServerError, err)
	}
}
