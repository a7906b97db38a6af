package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/vilamar/restaurante-app/controllers"
	"github.com/vilamar/restaurante-app/models"
)

func setupInventoryRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	inventoryCtrl := controllers.NewInventoryController(db)
	router.GET("/inventory", inventoryCtrl.GetAllIngredients)
	router.POST("/inventory", inventoryCtrl.CreateIngredient)
	router.PUT("/inventory/:ingredient_id", inventoryCtrl.UpdateIngredient)
	router.PUT("/inventory/:ingredient_id/stock", inventoryCtrl.UpdateStock)
	router.GET("/inventory/low-stock", inventoryCtrl.GetLowStock)
	return router
}

func TestUpdateStockAddAndSubtract(t *testing.T) {
	db := setupTestDB(t)
	ingredient := models.Ingredient{Name: "Arroz", Unit: "kg", StockQty: 10, MinStockQty: 2}
	db.Create(&ingredient)
	router := setupInventoryRouter(db)

	url := fmt.Sprintf("/inventory/%d/stock", ingredient.ID)

	w := performRequest(router, "PUT", url, gin.H{"quantity": 5, "operation": "add"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = performRequest(router, "PUT", url, gin.H{"quantity": 3, "operation": "subtract"})
	assert.Equal(t, http.StatusOK, w.Code)

	var updated models.Ingredient
	db.First(&updated, ingredient.ID)
	assert.InDelta(t, 12, updated.StockQty, 0.001)
}

func TestUpdateStockRejectsNegativeResult(t *testing.T) {
	db := setupTestDB(t)
	ingredient := models.Ingredient{Name: "Feijão", Unit: "kg", StockQty: 2, MinStockQty: 1}
	db.Create(&ingredient)
	router := setupInventoryRouter(db)

	w := performRequest(router, "PUT", fmt.Sprintf("/inventory/%d/stock", ingredient.ID),
		gin.H{"quantity": 5, "operation": "subtract"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// O estoque não pode ter sido alterado.
	var unchanged models.Ingredient
	db.First(&unchanged, ingredient.ID)
	assert.InDelta(t, 2, unchanged.StockQty, 0.001)
}

func TestUpdateStockRejectsUnknownOperation(t *testing.T) {
	db := setupTestDB(t)
	ingredient := models.Ingredient{Name: "Sal", Unit: "kg", StockQty: 1, MinStockQty: 0.2}
	db.Create(&ingredient)
	router := setupInventoryRouter(db)

	w := performRequest(router, "PUT", fmt.Sprintf("/inventory/%d/stock", ingredient.ID),
		gin.H{"quantity": 1, "operation": "multiply"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetLowStockUsesMinimumThreshold(t *testing.T) {
	db := setupTestDB(t)
	db.Create(&models.Ingredient{Name: "Tomate", Unit: "kg", StockQty: 1, MinStockQty: 3})
	db.Create(&models.Ingredient{Name: "Cebola", Unit: "kg", StockQty: 3, MinStockQty: 3})
	db.Create(&models.Ingredient{Name: "Alho", Unit: "kg", StockQty: 10, MinStockQty: 1})
	router := setupInventoryRouter(db)

	w := performRequest(router, "GET", "/inventory/low-stock", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	resp := decodeResponse(t, w)
	data := resp["data"].([]interface{})
	// No limite também conta como baixo.
	assert.Len(t, data, 2)
}

func TestGetAllIngredientsReportsLowStockSummary(t *testing.T) {
	db := setupTestDB(t)
	db.Create(&models.Ingredient{Name: "Tomate", Unit: "kg", StockQty: 1, MinStockQty: 3})
	db.Create(&models.Ingredient{Name: "Alho", Unit: "kg", StockQty: 10, MinStockQty: 1})
	router := setupInventoryRouter(db)

	w := performRequest(router, "GET", "/inventory", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	resp := decodeResponse(t, w)
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["low_stock_count"])
	assert.Len(t, data["ingredients"].([]interface{}), 2)
}

func TestCreateIngredient(t *testing.T) {
	db := setupTestDB(t)
	router := setupInventoryRouter(db)

	w := performRequest(router, "POST", "/inventory", gin.H{
		"name":          "Azeite",
		"unit":          "l",
		"stock_qty":     4.5,
		"min_stock_qty": 1,
		"cost":          30.00,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var stored models.Ingredient
	db.Where("name = ?", "Azeite").First(&stored)
	assert.InDelta(t, 4.5, stored.StockQty, 0.001)
}
