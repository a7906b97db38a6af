package controllers

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"
	"gorm.io/gorm"

	"github.com/vilamar/restaurante-app/models"
	"github.com/vilamar/restaurante-app/realtime"
	"github.com/vilamar/restaurante-app/utils"
)

type TableController struct {
	DB *gorm.DB
}

func NewTableController(db *gorm.DB) *TableController {
	return &TableController{DB: db}
}

// GetAllTables -> mesas em ordem numérica, com os pedidos abertos de cada uma.
func (tc *TableController) GetAllTables(c *gin.Context) {
	var tables []models.Table
	err := tc.DB.Order("number asc").
		Preload("Orders", "status IN ?", models.OpenOrderStatuses()).
		Preload("Orders.OrderItems").
		Preload("Orders.OrderItems.MenuItem").
		Find(&tables).Error
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

// CreateTable -> cria mesa e gera o QR code do cardápio.
func (tc *TableController) CreateTable(c *gin.Context) {
	var req struct {
		Number   int `json:"number" binding:"required"`
		Capacity int `json:"capacity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var existing models.Table
	if err := tc.DB.Where("number = ?", req.Number).First(&existing).Error; err == nil {
		utils.RespondError(c, http.StatusConflict, errors.New("mesa já existe com este número"))
		return
	}

	qrCode, err := generateTableQR(req.Number)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	table := models.Table{
		Number:   req.Number,
		Capacity: req.Capacity,
		Status:   models.TableLivre,
		QRCode:   qrCode,
	}

	if err := tc.DB.Create(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	realtime.BroadcastTableCreated(table)

	utils.InfoLogger.Printf("New table created: %d (capacity=%d)", table.Number, table.Capacity)
	utils.RespondJSON(c, http.StatusCreated, "Table created", table)
}

// UpdateTableStatus -> muda o status da mesa por ação direta da equipe.
func (tc *TableController) UpdateTableStatus(c *gin.Context) {
	tableID := c.Param("table_id")
	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if !models.ValidTableStatus(body.Status) {
		utils.RespondError(c, http.StatusBadRequest, errors.New("status de mesa inválido"))
		return
	}

	var table models.Table
	if err := tc.DB.First(&table, tableID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	table.Status = body.Status
	if err := tc.DB.Save(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	realtime.BroadcastTableStatusChanged(table)

	utils.InfoLogger.Printf("Table %d status changed to %s", table.Number, table.Status)
	utils.RespondJSON(c, http.StatusOK, "Table status updated", table)
}

// GetTableQR -> QR code público de uma mesa pelo número.
func (tc *TableController) GetTableQR(c *gin.Context) {
	number, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("número de mesa inválido"))
		return
	}

	var table models.Table
	if err := tc.DB.Where("number = ?", number).First(&table).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("mesa não encontrada"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Table QR code", gin.H{"qr_code": table.QRCode})
}

// generateTableQR encodes the menu URL for a table as a PNG data-URL.
func generateTableQR(number int) (string, error) {
	frontendURL := os.Getenv("FRONTEND_URL")
	if frontendURL == "" {
		frontendURL = "http://localhost:3000"
	}

	payload, err := json.Marshal(gin.H{
		"tableNumber": number,
		"menuUrl":     fmt.Sprintf("%s/menu?table=%d", frontendURL, number),
	})
	if err != nil {
		return "", err
	}

	png, err := qrcode.Encode(string(payload), qrcode.Medium, 256)
	if err != nil {
		return "", err
	}

	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
