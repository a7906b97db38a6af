package controllers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/vilamar/restaurante-app/models"
)

func TestCreateCategoryRejectsDuplicateActiveName(t *testing.T) {
	db := setupTestDB(t)
	router := setupMenuRouter(db)

	w := performRequest(router, "POST", "/menu/categories", gin.H{"name": "Sobremesas"})
	assert.Equal(t, http.StatusCreated, w.Code)

	// Case-insensitive entre as ativas.
	w = performRequest(router, "POST", "/menu/categories", gin.H{"name": "sobremesas"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCreateCategoryAllowsReusingInactiveName(t *testing.T) {
	db := setupTestDB(t)
	seedCategory(t, db, "Sobremesas", false)
	router := setupMenuRouter(db)

	w := performRequest(router, "POST", "/menu/categories", gin.H{"name": "Sobremesas"})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestGetCategoriesReturnsActiveInDisplayOrder(t *testing.T) {
	db := setupTestDB(t)
	db.Create(&models.Category{Name: "Bebidas", Order: 2, Active: true})
	db.Create(&models.Category{Name: "Entradas", Order: 1, Active: true})
	inactive := models.Category{Name: "Descontinuada", Order: 0, Active: false}
	db.Create(&inactive)
	// Create pula bool zero por causa de `default:true`; força a coluna.
	db.Model(&inactive).Update("active", false)
	router := setupMenuRouter(db)

	w := performRequest(router, "GET", "/menu/categories", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	resp := decodeResponse(t, w)
	data := resp["data"].([]interface{})
	assert.Len(t, data, 2)
	assert.Equal(t, "Entradas", data[0].(map[string]interface{})["name"])
	assert.Equal(t, "Bebidas", data[1].(map[string]interface{})["name"])
}

func TestCreateCategoryTrimsName(t *testing.T) {
	db := setupTestDB(t)
	router := setupMenuRouter(db)

	w := performRequest(router, "POST", "/menu/categories", gin.H{"name": "  Massas  "})
	assert.Equal(t, http.StatusCreated, w.Code)

	var stored models.Category
	db.First(&stored)
	assert.Equal(t, "Massas", stored.Name)
}
