package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vilamar/restaurante-app/models"
	"github.com/vilamar/restaurante-app/utils"
)

type ReservationController struct {
	DB *gorm.DB
}

func NewReservationController(db *gorm.DB) *ReservationController {
	return &ReservationController{DB: db}
}

// GetAllReservations -> filtráveis por data (dia inteiro) e status.
func (rc *ReservationController) GetAllReservations(c *gin.Context) {
	query := rc.DB.Preload("Table").Order("date asc")

	if dateStr := c.Query("date"); dateStr != "" {
		day, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("data inválida, use YYYY-MM-DD"))
			return
		}
		query = query.Where("date >= ? AND date < ?", day, day.AddDate(0, 0, 1))
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var reservations []models.Reservation
	if err := query.Find(&reservations).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of reservations", reservations)
}

// CreateReservation -> verificação de conflito por igualdade exata de
// mesa+data+hora; reservas encostadas não contam como conflito.
func (rc *ReservationController) CreateReservation(c *gin.Context) {
	userIDInterface, _ := c.Get("user_id")
	userID, ok := userIDInterface.(uint)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	var body struct {
		Date          string `json:"date" binding:"required"`
		Time          string `json:"time" binding:"required"`
		Guests        int    `json:"guests" binding:"required"`
		CustomerName  string `json:"customer_name" binding:"required"`
		CustomerPhone string `json:"customer_phone"`
		CustomerEmail string `json:"customer_email"`
		TableID       uint   `json:"table_id" binding:"required"`
		Notes         string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	date, err := time.Parse("2006-01-02", body.Date)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("data inválida, use YYYY-MM-DD"))
		return
	}

	var table models.Table
	if err := rc.DB.First(&table, body.TableID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("mesa não encontrada"))
		return
	}

	var existing models.Reservation
	err = rc.DB.Where("table_id = ? AND date = ? AND time = ? AND status = ?",
		body.TableID, date, body.Time, models.ReservationConfirmada).
		First(&existing).Error
	if err == nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("mesa já reservada para este horário"))
		return
	}

	reservation := models.Reservation{
		Date:          date,
		Time:          body.Time,
		Guests:        body.Guests,
		CustomerName:  body.CustomerName,
		CustomerPhone: body.CustomerPhone,
		CustomerEmail: body.CustomerEmail,
		Status:        models.ReservationConfirmada,
		TableID:       body.TableID,
		UserID:        userID,
		Notes:         body.Notes,
	}

	if err := rc.DB.Create(&reservation).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	rc.DB.Preload("Table").First(&reservation, reservation.ID)
	utils.RespondJSON(c, http.StatusCreated, "Reservation created", reservation)
}

// UpdateReservationStatus -> confirmar uma reserva marca a mesa como
// RESERVADA.
func (rc *ReservationController) UpdateReservationStatus(c *gin.Context) {
	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	switch body.Status {
	case models.ReservationConfirmada, models.ReservationCancelada, models.ReservationFinalizada:
	default:
		utils.RespondError(c, http.StatusBadRequest, errors.New("status de reserva inválido"))
		return
	}

	var reservation models.Reservation
	if err := rc.DB.Preload("Table").First(&reservation, c.Param("reservation_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	reservation.Status = body.Status
	if err := rc.DB.Save(&reservation).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if body.Status == models.ReservationConfirmada {
		rc.DB.Model(&models.Table{}).
			Where("id = ?", reservation.TableID).
			Update("status", models.TableReservada)
	}

	utils.RespondJSON(c, http.StatusOK, "Reservation status updated", reservation)
}

// CheckAvailability -> mesas com capacidade suficiente e sem reserva
// CONFIRMADA no horário exato, menores primeiro.
func (rc *ReservationController) CheckAvailability(c *gin.Context) {
	dateStr := c.Query("date")
	timeStr := c.Query("time")
	guests, err := strconv.Atoi(c.Query("guests"))
	if dateStr == "" || timeStr == "" || err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("informe date, time e guests"))
		return
	}

	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("data inválida, use YYYY-MM-DD"))
		return
	}

	var tables []models.Table
	err = rc.DB.Where("capacity >= ?", guests).
		Where("id NOT IN (?)", rc.DB.Model(&models.Reservation{}).
			Select("table_id").
			Where("date = ? AND time = ? AND status = ?", date, timeStr, models.ReservationConfirmada)).
		Order("capacity asc").
		Find(&tables).Error
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Available tables", tables)
}
