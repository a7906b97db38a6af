package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vilamar/restaurante-app/models"
	"github.com/vilamar/restaurante-app/utils"
)

type InventoryController struct {
	DB *gorm.DB
}

func NewInventoryController(db *gorm.DB) *InventoryController {
	return &InventoryController{DB: db}
}

// GetAllIngredients -> estoque completo com resumo de itens em baixa.
func (ic *InventoryController) GetAllIngredients(c *gin.Context) {
	var ingredients []models.Ingredient
	if err := ic.DB.Order("name asc").Find(&ingredients).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var lowStock []models.Ingredient
	for _, ing := range ingredients {
		if ing.LowStock() {
			lowStock = append(lowStock, ing)
		}
	}

	utils.RespondJSON(c, http.StatusOK, "Inventory", gin.H{
		"ingredients":           ingredients,
		"low_stock_count":       len(lowStock),
		"low_stock_ingredients": lowStock,
	})
}

// CreateIngredient
func (ic *InventoryController) CreateIngredient(c *gin.Context) {
	var body struct {
		Name        string  `json:"name" binding:"required"`
		Unit        string  `json:"unit" binding:"required"`
		StockQty    float64 `json:"stock_qty"`
		MinStockQty float64 `json:"min_stock_qty"`
		Cost        float64 `json:"cost"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	ingredient := models.Ingredient{
		Name:        body.Name,
		Unit:        body.Unit,
		StockQty:    body.StockQty,
		MinStockQty: body.MinStockQty,
		Cost:        body.Cost,
	}

	if err := ic.DB.Create(&ingredient).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Ingredient created", ingredient)
}

// UpdateIngredient
func (ic *InventoryController) UpdateIngredient(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("ingredient_id"))

	var ingredient models.Ingredient
	if err := ic.DB.First(&ingredient, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("ingrediente não encontrado"))
		return
	}

	var body struct {
		Name        *string  `json:"name"`
		Unit        *string  `json:"unit"`
		StockQty    *float64 `json:"stock_qty"`
		MinStockQty *float64 `json:"min_stock_qty"`
		Cost        *float64 `json:"cost"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if body.Name != nil {
		ingredient.Name = *body.Name
	}
	if body.Unit != nil {
		ingredient.Unit = *body.Unit
	}
	if body.StockQty != nil {
		ingredient.StockQty = *body.StockQty
	}
	if body.MinStockQty != nil {
		ingredient.MinStockQty = *body.MinStockQty
	}
	if body.Cost != nil {
		ingredient.Cost = *body.Cost
	}

	if err := ic.DB.Save(&ingredient).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Ingredient updated", ingredient)
}

// UpdateStock -> soma ou subtrai do estoque; nunca deixa negativo.
func (ic *InventoryController) UpdateStock(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("ingredient_id"))

	var body struct {
		Quantity  float64 `json:"quantity" binding:"required"`
		Operation string  `json:"operation" binding:"required"` // "add" ou "subtract"
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var ingredient models.Ingredient
	if err := ic.DB.First(&ingredient, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("ingrediente não encontrado"))
		return
	}

	switch body.Operation {
	case "add":
		ingredient.StockQty += body.Quantity
	case "subtract":
		ingredient.StockQty -= body.Quantity
	default:
		utils.RespondError(c, http.StatusBadRequest, errors.New("operação inválida"))
		return
	}

	if ingredient.StockQty < 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("estoque não pode ser negativo"))
		return
	}

	if err := ic.DB.Save(&ingredient).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Stock updated", ingredient)
}

// GetLowStock -> ingredientes no mínimo ou abaixo, mais críticos primeiro.
func (ic *InventoryController) GetLowStock(c *gin.Context) {
	var ingredients []models.Ingredient
	err := ic.DB.Where("stock_qty <= min_stock_qty").
		Order("stock_qty asc").
		Find(&ingredients).Error
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Low stock ingredients", ingredients)
}
