package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/vilamar/restaurante-app/models"
	"github.com/vilamar/restaurante-app/utils"
)

func setupMonitorDB(t *testing.T) *gorm.DB {
	t.Helper()
	utils.InitLogger()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Table{},
		&models.Reservation{},
		&models.Ingredient{},
		&models.Notification{},
	))
	return db
}

func TestReservationMonitorFinalizesExpired(t *testing.T) {
	db := setupMonitorDB(t)

	user := models.User{Name: "Recepção", Email: "r@example.com", Password: "x", Role: models.RoleRecepcionista, Active: true}
	require.NoError(t, db.Create(&user).Error)
	table := models.Table{Number: 1, Capacity: 4, Status: models.TableReservada}
	require.NoError(t, db.Create(&table).Error)

	yesterday := time.Now().AddDate(0, 0, -1)
	reservation := models.Reservation{
		Date:         time.Date(yesterday.Year(), yesterday.Month(), yesterday.Day(), 0, 0, 0, 0, time.Local),
		Time:         "19:00",
		Guests:       2,
		CustomerName: "João",
		Status:       models.ReservationConfirmada,
		TableID:      table.ID,
		UserID:       user.ID,
	}
	require.NoError(t, db.Create(&reservation).Error)

	monitor := NewReservationMonitor(db)
	monitor.finalizeExpired()

	var updated models.Reservation
	db.First(&updated, reservation.ID)
	assert.Equal(t, models.ReservationFinalizada, updated.Status)

	var freed models.Table
	db.First(&freed, table.ID)
	assert.Equal(t, models.TableLivre, freed.Status)
}

func TestReservationMonitorKeepsUpcoming(t *testing.T) {
	db := setupMonitorDB(t)

	user := models.User{Name: "Recepção", Email: "r@example.com", Password: "x", Role: models.RoleRecepcionista, Active: true}
	require.NoError(t, db.Create(&user).Error)
	table := models.Table{Number: 1, Capacity: 4, Status: models.TableReservada}
	require.NoError(t, db.Create(&table).Error)

	tomorrow := time.Now().AddDate(0, 0, 1)
	reservation := models.Reservation{
		Date:         time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 0, 0, 0, 0, time.Local),
		Time:         "19:00",
		Guests:       2,
		CustomerName: "João",
		Status:       models.ReservationConfirmada,
		TableID:      table.ID,
		UserID:       user.ID,
	}
	require.NoError(t, db.Create(&reservation).Error)

	monitor := NewReservationMonitor(db)
	monitor.finalizeExpired()

	var kept models.Reservation
	db.First(&kept, reservation.ID)
	assert.Equal(t, models.ReservationConfirmada, kept.Status)

	var still models.Table
	db.First(&still, table.ID)
	assert.Equal(t, models.TableReservada, still.Status)
}

func TestReservationMonitorDoesNotTouchOccupiedTable(t *testing.T) {
	db := setupMonitorDB(t)

	user := models.User{Name: "Recepção", Email: "r@example.com", Password: "x", Role: models.RoleRecepcionista, Active: true}
	require.NoError(t, db.Create(&user).Error)
	// A mesa foi ocupada por outro atendimento depois da reserva vencer.
	table := models.Table{Number: 1, Capacity: 4, Status: models.TableOcupada}
	require.NoError(t, db.Create(&table).Error)

	yesterday := time.Now().AddDate(0, 0, -1)
	reservation := models.Reservation{
		Date:         time.Date(yesterday.Year(), yesterday.Month(), yesterday.Day(), 0, 0, 0, 0, time.Local),
		Time:         "19:00",
		Guests:       2,
		CustomerName: "João",
		Status:       models.ReservationConfirmada,
		TableID:      table.ID,
		UserID:       user.ID,
	}
	require.NoError(t, db.Create(&reservation).Error)

	monitor := NewReservationMonitor(db)
	monitor.finalizeExpired()

	var untouched models.Table
	db.First(&untouched, table.ID)
	assert.Equal(t, models.TableOcupada, untouched.Status)
}

func TestStockMonitorNotifiesOncePerEpisode(t *testing.T) {
	db := setupMonitorDB(t)

	ingredient := models.Ingredient{Name: "Tomate", Unit: "kg", StockQty: 1, MinStockQty: 3}
	require.NoError(t, db.Create(&ingredient).Error)

	monitor := NewStockMonitor(db)
	monitor.checkStock()
	monitor.checkStock()

	var count int64
	db.Model(&models.Notification{}).Count(&count)
	assert.Equal(t, int64(1), count)

	var notification models.Notification
	db.First(&notification)
	assert.Equal(t, "Estoque baixo", notification.Title)
	assert.Contains(t, notification.Message, "Tomate")
}

func TestStockMonitorRearmsAfterRestock(t *testing.T) {
	db := setupMonitorDB(t)

	ingredient := models.Ingredient{Name: "Tomate", Unit: "kg", StockQty: 1, MinStockQty: 3}
	require.NoError(t, db.Create(&ingredient).Error)

	monitor := NewStockMonitor(db)
	monitor.checkStock()

	// Reposição tira o ingrediente do estado de alerta.
	db.Model(&ingredient).Update("stock_qty", 10)
	monitor.checkStock()

	// Nova queda gera um segundo alerta.
	db.Model(&ingredient).Update("stock_qty", 0.5)
	monitor.checkStock()

	var count int64
	db.Model(&models.Notification{}).Count(&count)
	assert.Equal(t, int64(2), count)
}
