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

type MenuController struct {
	DB *gorm.DB
}

func NewMenuController(db *gorm.DB) *MenuController {
	return &MenuController{DB: db}
}

// GetAllMenuItems -> lista pública só com itens disponíveis.
// includeAll=true devolve tudo, mas apenas para ADMIN autenticado;
// qualquer falha na verificação cai silenciosamente no filtro público.
func (mc *MenuController) GetAllMenuItems(c *gin.Context) {
	includeAll := false
	if raw := c.Query("includeAll"); raw == "true" || raw == "1" {
		includeAll = mc.callerIsAdmin(c)
	}

	query := mc.DB.Preload("Category").Preload("Ingredients.Ingredient").Order("name asc")
	if !includeAll {
		query = query.Where("available = ?", true)
	}

	var items []models.MenuItem
	if err := query.Find(&items).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of menu items", items)
}

func (mc *MenuController) callerIsAdmin(c *gin.Context) bool {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return false
	}
	claims, err := utils.ParseToken(strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil {
		return false
	}

	var user models.User
	if err := mc.DB.First(&user, claims.UserID).Error; err != nil {
		return false
	}
	return user.Active && user.Role == models.RoleAdmin
}

type menuItemRequest struct {
	Name             *string  `json:"name"`
	Description      *string  `json:"description"`
	Price            *float64 `json:"price"`
	CategoryID       *uint    `json:"category_id"`
	Available        *bool    `json:"available"`
	PreparationTime  *int     `json:"preparation_time"`
	Image            *string  `json:"image"`
	IsBase           *bool    `json:"is_base"`
	IsProteina       *bool    `json:"is_proteina"`
	IsAcompanhamento *bool    `json:"is_acompanhamento"`
	IsBebida         *bool    `json:"is_bebida"`
	Ingredients      []struct {
		IngredientID uint    `json:"ingredient_id"`
		Quantity     float64 `json:"quantity"`
	} `json:"ingredients"`
}

// CreateMenuItem
func (mc *MenuController) CreateMenuItem(c *gin.Context) {
	var req menuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Name == nil || strings.TrimSpace(*req.Name) == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("nome é obrigatório"))
		return
	}
	if req.Price == nil || *req.Price <= 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("preço inválido"))
		return
	}
	if req.CategoryID == nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("categoria é obrigatória"))
		return
	}

	var category models.Category
	if err := mc.DB.First(&category, *req.CategoryID).Error; err != nil || !category.Active {
		utils.RespondError(c, http.StatusBadRequest, errors.New("categoria inválida"))
		return
	}

	if req.PreparationTime != nil && *req.PreparationTime < 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("tempo de preparo inválido"))
		return
	}

	item := models.MenuItem{
		CategoryID:      *req.CategoryID,
		Name:            strings.TrimSpace(*req.Name),
		Price:           *req.Price,
		Available:       true,
		PreparationTime: req.PreparationTime,
	}
	if req.Description != nil {
		item.Description = strings.TrimSpace(*req.Description)
	}
	if req.Available != nil {
		item.Available = *req.Available
	}
	if req.Image != nil && strings.TrimSpace(*req.Image) != "" {
		trimmed := strings.TrimSpace(*req.Image)
		item.Image = &trimmed
	}
	if req.IsBase != nil {
		item.IsBase = *req.IsBase
	}
	if req.IsProteina != nil {
		item.IsProteina = *req.IsProteina
	}
	if req.IsAcompanhamento != nil {
		item.IsAcompanhamento = *req.IsAcompanhamento
	}
	if req.IsBebida != nil {
		item.IsBebida = *req.IsBebida
	}

	if err := mc.DB.Create(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	for _, ing := range req.Ingredients {
		if ing.IngredientID == 0 || ing.Quantity <= 0 {
			continue
		}
		mc.DB.Create(&models.MenuItemIngredient{
			MenuItemID:   item.ID,
			IngredientID: ing.IngredientID,
			Quantity:     ing.Quantity,
		})
	}

	mc.DB.Preload("Category").First(&item, item.ID)
	utils.RespondJSON(c, http.StatusCreated, "Menu item created", item)
}

// UpdateMenuItem
func (mc *MenuController) UpdateMenuItem(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("item_id"))

	var item models.MenuItem
	if err := mc.DB.First(&item, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("item não encontrado"))
		return
	}

	var req menuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			utils.RespondError(c, http.StatusBadRequest, errors.New("nome inválido"))
			return
		}
		item.Name = name
	}
	if req.Description != nil {
		item.Description = strings.TrimSpace(*req.Description)
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			utils.RespondError(c, http.StatusBadRequest, errors.New("preço inválido"))
			return
		}
		item.Price = *req.Price
	}
	if req.Available != nil {
		item.Available = *req.Available
	}
	if req.PreparationTime != nil {
		if *req.PreparationTime < 0 {
			utils.RespondError(c, http.StatusBadRequest, errors.New("tempo de preparo inválido"))
			return
		}
		item.PreparationTime = req.PreparationTime
	}
	if req.CategoryID != nil {
		var category models.Category
		if err := mc.DB.First(&category, *req.CategoryID).Error; err != nil || !category.Active {
			utils.RespondError(c, http.StatusBadRequest, errors.New("categoria inválida"))
			return
		}
		item.CategoryID = *req.CategoryID
	}
	if req.Image != nil {
		trimmed := strings.TrimSpace(*req.Image)
		if trimmed == "" {
			item.Image = nil
		} else {
			item.Image = &trimmed
		}
	}
	if req.IsBase != nil {
		item.IsBase = *req.IsBase
	}
	if req.IsProteina != nil {
		item.IsProteina = *req.IsProteina
	}
	if req.IsAcompanhamento != nil {
		item.IsAcompanhamento = *req.IsAcompanhamento
	}
	if req.IsBebida != nil {
		item.IsBebida = *req.IsBebida
	}

	if err := mc.DB.Save(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	mc.DB.Preload("Category").First(&item, item.ID)
	utils.RespondJSON(c, http.StatusOK, "Menu item updated", item)
}

// DeleteMenuItem
func (mc *MenuController) DeleteMenuItem(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("item_id"))

	var item models.MenuItem
	if err := mc.DB.First(&item, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("item não encontrado"))
		return
	}

	if err := mc.DB.Delete(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	c.Status(http.StatusNoContent)
}
