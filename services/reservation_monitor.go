package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/vilamar/restaurante-app/models"
	"github.com/vilamar/restaurante-app/realtime"
	"github.com/vilamar/restaurante-app/utils"
)

// ReservationMonitor finalizes CONFIRMADA reservations whose slot has
// passed and frees the tables they were holding.
type ReservationMonitor struct {
	DB       *gorm.DB
	StopChan chan struct{}
	Interval time.Duration
	// Grace is how long after the reserved slot a reservation is kept
	// before being finalized.
	Grace time.Duration
}

func NewReservationMonitor(db *gorm.DB) *ReservationMonitor {
	return &ReservationMonitor{
		DB:       db,
		StopChan: make(chan struct{}),
		Interval: 1 * time.Minute,
		Grace:    2 * time.Hour,
	}
}

func (rm *ReservationMonitor) Start() {
	go func() {
		ticker := time.NewTicker(rm.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				rm.finalizeExpired()
			case <-rm.StopChan:
				return
			}
		}
	}()
}

func (rm *ReservationMonitor) Stop() {
	close(rm.StopChan)
}

func (rm *ReservationMonitor) finalizeExpired() {
	var reservations []models.Reservation
	if err := rm.DB.Preload("Table").
		Where("status = ?", models.ReservationConfirmada).
		Find(&reservations).Error; err != nil {
		utils.ErrorLogger.Printf("Erro ao buscar reservas confirmadas: %v", err)
		return
	}

	now := time.Now()
	for _, reservation := range reservations {
		slot, err := reservationSlot(reservation)
		if err != nil {
			utils.ErrorLogger.Printf("Reserva %d com horário inválido %q: %v",
				reservation.ID, reservation.Time, err)
			continue
		}
		if now.Before(slot.Add(rm.Grace)) {
			continue
		}

		err = rm.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&models.Reservation{}).
				Where("id = ?", reservation.ID).
				Update("status", models.ReservationFinalizada).Error; err != nil {
				return err
			}
			// Só libera a mesa se ela ainda estiver marcada como reservada.
			return tx.Model(&models.Table{}).
				Where("id = ? AND status = ?", reservation.TableID, models.TableReservada).
				Update("status", models.TableLivre).Error
		})
		if err != nil {
			utils.ErrorLogger.Printf("Erro ao finalizar reserva %d: %v", reservation.ID, err)
			continue
		}

		reservation.Status = models.ReservationFinalizada
		realtime.BroadcastReservationFinalized(reservation)
		utils.InfoLogger.Printf("Reserva %d finalizada (mesa %d liberada)",
			reservation.ID, reservation.Table.Number)
	}
}

// reservationSlot combines the reservation date with its "HH:MM" slot.
func reservationSlot(r models.Reservation) (time.Time, error) {
	t, err := time.Parse("15:04", r.Time)
	if err != nil {
		return time.Time{}, err
	}
	d := r.Date
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), 0, 0, time.Local), nil
}
