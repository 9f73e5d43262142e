package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/pdvapp/restaurant-pos/models"
	"github.com/pdvapp/restaurant-pos/utils"
)

type OptionController struct {
	DB *gorm.DB
}

func NewOptionController(db *gorm.DB) *OptionController {
	return &OptionController{DB: db}
}

func (oc *OptionController) GetAllOptions(c *gin.Context) {
	var options []models.Option
	if err := oc.DB.Preload("Values").Find(&options).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of options", gin.H{"options": options})
}

type optionValueReq struct {
	Name           string          `json:"name" binding:"required"`
	PriceIncrement decimal.Decimal `json:"price_increment"`
	DefaultOption  bool            `json:"default_option"`
}

type optionReq struct {
	Name       string           `json:"name" binding:"required"`
	Type       string           `json:"type" binding:"required"`
	Required   bool             `json:"required"`
	ProductIDs []uint           `json:"product_ids"`
	Values     []optionValueReq `json:"values"`
}

func (oc *OptionController) CreateOption(c *gin.Context) {
	var req optionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if !models.ValidOptionType(req.Type) {
		utils.RespondError(c, http.StatusBadRequest, errors.New("type must be single or multiple"))
		return
	}

	option := models.Option{
		Name:     req.Name,
		Type:     req.Type,
		Required: req.Required,
	}
	for _, v := range req.Values {
		option.Values = append(option.Values, models.OptionValue{
			Name:           v.Name,
			PriceIncrement: v.PriceIncrement,
			DefaultOption:  v.DefaultOption,
		})
	}

	err := oc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&option).Error; err != nil {
			return err
		}
		for _, pid := range req.ProductIDs {
			var product models.Product
			if err := tx.First(&product, pid).Error; err != nil {
				return err
			}
			if err := tx.Model(&product).Association("Options").Append(&option); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Option created", option)
}

func (oc *OptionController) UpdateOption(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("option_id"))

	var option models.Option
	if err := oc.DB.Preload("Values").First(&option, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		Name     *string `json:"name"`
		Type     *string `json:"type"`
		Required *bool   `json:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Type != nil && !models.ValidOptionType(*req.Type) {
		utils.RespondError(c, http.StatusBadRequest, errors.New("type must be single or multiple"))
		return
	}

	if req.Name != nil {
		option.Name = *req.Name
	}
	if req.Type != nil {
		option.Type = *req.Type
	}
	if req.Required != nil {
		option.Required = *req.Required
	}
	if err := oc.DB.Save(&option).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Option updated", option)
}

func (oc *OptionController) CreateOptionValue(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("option_id"))

	var option models.Option
	if err := oc.DB.First(&option, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req optionValueReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	value := models.OptionValue{
		OptionID:       option.ID,
		Name:           req.Name,
		PriceIncrement: req.PriceIncrement,
		DefaultOption:  req.DefaultOption,
	}
	if err := oc.DB.Create(&value).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Option value created", value)
}

func (oc *OptionController) UpdateOptionValue(c *gin.Context) {
	optionID, _ := strconv.Atoi(c.Param("option_id"))
	valueID, _ := strconv.Atoi(c.Param("value_id"))

	var value models.OptionValue
	err := oc.DB.Where("option_id = ?", optionID).First(&value, valueID).Error
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		Name           *string          `json:"name"`
		PriceIncrement *decimal.Decimal `json:"price_increment"`
		DefaultOption  *bool            `json:"default_option"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Name != nil {
		value.Name = *req.Name
	}
	if req.PriceIncrement != nil {
		value.PriceIncrement = *req.PriceIncrement
	}
	if req.DefaultOption != nil {
		value.DefaultOption = *req.DefaultOption
	}
	if err := oc.DB.Save(&value).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Option value updated", value)
}
