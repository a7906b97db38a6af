package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vilamar/restaurante-app/models"
	"github.com/vilamar/restaurante-app/utils"
)

type CategoryController struct {
	DB *gorm.DB
}

func NewCategoryController(db *gorm.DB) *CategoryController {
	return &CategoryController{DB: db}
}

// GetAllCategories -> categorias ativas na ordem de exibição.
func (cc *CategoryController) GetAllCategories(c *gin.Context) {
	var categories []models.Category
	if err := cc.DB.Where("active = ?", true).Order("display_order asc").Find(&categories).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All categories", categories)
}

// CreateCategory -> rejeita nome duplicado entre categorias ativas.
func (cc *CategoryController) CreateCategory(c *gin.Context) {
	var body struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
		Order       *int   `json:"order"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	name := strings.TrimSpace(body.Name)
	if name == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("nome da categoria é obrigatório"))
		return
	}

	var existing models.Category
	if err := cc.DB.Where("LOWER(name) = LOWER(?) AND active = ?", name, true).First(&existing).Error; err == nil {
		utils.RespondError(c, http.StatusConflict, errors.New("categoria já existe"))
		return
	}

	category := models.Category{
		Name:        name,
		Description: strings.TrimSpace(body.Description),
		Active:      true,
	}
	if body.Order != nil {
		category.Order = *body.Order
	}

	if err := cc.DB.Create(&category).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Category created", category)
}

// UpdateCategory
func (cc *CategoryController) UpdateCategory(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("cat_id"))

	var category models.Category
	if err := cc.DB.First(&category, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var body struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		Order       *int    `json:"order"`
		Active      *bool   `json:"active"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if body.Name != nil && strings.TrimSpace(*body.Name) != "" {
		category.Name = strings.TrimSpace(*body.Name)
	}
	if body.Description != nil {
		category.Description = strings.TrimSpace(*body.Description)
	}
	if body.Order != nil {
		category.Order = *body.Order
	}
	if body.Active != nil {
		category.Active = *body.Active
	}

	if err := cc.DB.Save(&category).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Category updated", category)
}

// DeleteCategory
func (cc *CategoryController) DeleteCategory(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("cat_id"))

	if err := cc.DB.Delete(&models.Category{}, id).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Category deleted", gin.H{"category_id": id})
}
