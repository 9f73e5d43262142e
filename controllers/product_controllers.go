package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/pdvapp/restaurant-pos/models"
	"github.com/pdvapp/restaurant-pos/utils"
)

type ProductController struct {
	DB *gorm.DB
}

func NewProductController(db *gorm.DB) *ProductController {
	return &ProductController{DB: db}
}

// GetAllProducts -> catalog with options and addons, ready for cart building
func (pc *ProductController) GetAllProducts(c *gin.Context) {
	var products []models.Product
	err := pc.DB.
		Preload("Category").
		Preload("Options.Values").
		Preload("Addons.Ingredient").
		Find(&products).Error
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of products", products)
}

type productReq struct {
	Name          string          `json:"name" binding:"required"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price" binding:"required"`
	CategoryID    uint            `json:"category_id" binding:"required"`
	StockQuantity int             `json:"stock_quantity"`
}

func (pc *ProductController) CreateProduct(c *gin.Context) {
	var req productReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Price.IsNegative() {
		utils.RespondError(c, http.StatusBadRequest, errNegativePrice)
		return
	}

	product := models.Product{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		CategoryID:    req.CategoryID,
		StockQuantity: req.StockQuantity,
	}
	if err := pc.DB.Create(&product).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Product created", product)
}

func (pc *ProductController) UpdateProduct(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("product_id"))

	var product models.Product
	if err := pc.DB.First(&product, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req productReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Price.IsNegative() {
		utils.RespondError(c, http.StatusBadRequest, errNegativePrice)
		return
	}

	product.Name = req.Name
	product.Description = req.Description
	product.Price = req.Price
	product.CategoryID = req.CategoryID
	product.StockQuantity = req.StockQuantity
	if err := pc.DB.Save(&product).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Product updated", product)
}

// GetProductOptions -> modifier groups attached to one product
func (pc *ProductController) GetProductOptions(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("product_id"))

	var product models.Product
	if err := pc.DB.Preload("Options.Values").First(&product, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Product options", product.Options)
}

// GetProductAddons -> ingredient-backed addons attached to one product
func (pc *ProductController) GetProductAddons(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("product_id"))

	var addons []models.ProductAddon
	err := pc.DB.
		Preload("Ingredient").
		Where("product_id = ?", id).
		Order("display_order ASC").
		Find(&addons).Error
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Product addons", addons)
}

// AttachAddon -> attach an ingredient to a product as an addon
func (pc *ProductController) AttachAddon(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("product_id"))

	var req struct {
		IngredientID uint            `json:"ingredient_id" binding:"required"`
		ExtraPrice   decimal.Decimal `json:"extra_price"`
		MaxQuantity  *int            `json:"max_quantity"`
		IsRequired   bool            `json:"is_required"`
		Order        int             `json:"order"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.ExtraPrice.IsNegative() {
		utils.RespondError(c, http.StatusBadRequest, errNegativePrice)
		return
	}

	var product models.Product
	if err := pc.DB.First(&product, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	var ingredient models.Ingredient
	if err := pc.DB.First(&ingredient, req.IngredientID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	addon := models.ProductAddon{
		ProductID:    product.ID,
		IngredientID: ingredient.ID,
		ExtraPrice:   req.ExtraPrice,
		MaxQuantity:  req.MaxQuantity,
		IsRequired:   req.IsRequired,
		Order:        req.Order,
	}
	if err := pc.DB.Create(&addon).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	addon.Ingredient = ingredient
	utils.RespondJSON(c, http.StatusCreated, "Addon attached", addon)
}
