package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/vilamar/restaurante-app/models"
	"github.com/vilamar/restaurante-app/realtime"
	"github.com/vilamar/restaurante-app/utils"
)

// StockMonitor watches the inventory and raises a notification plus a
// realtime event whenever an ingredient falls to or below its minimum.
// Each ingredient is alerted once per low-stock episode.
type StockMonitor struct {
	DB       *gorm.DB
	StopChan chan struct{}
	Interval time.Duration

	alerted map[uint]bool
}

func NewStockMonitor(db *gorm.DB) *StockMonitor {
	return &StockMonitor{
		DB:       db,
		StopChan: make(chan struct{}),
		Interval: 5 * time.Minute,
		alerted:  make(map[uint]bool),
	}
}

func (sm *StockMonitor) Start() {
	go func() {
		ticker := time.NewTicker(sm.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				sm.checkStock()
			case <-sm.StopChan:
				return
			}
		}
	}()
}

func (sm *StockMonitor) Stop() {
	close(sm.StopChan)
}

func (sm *StockMonitor) checkStock() {
	var ingredients []models.Ingredient
	if err := sm.DB.Find(&ingredients).Error; err != nil {
		utils.ErrorLogger.Printf("Erro ao buscar ingredientes: %v", err)
		return
	}

	for _, ing := range ingredients {
		if !ing.LowStock() {
			delete(sm.alerted, ing.ID)
			continue
		}
		if sm.alerted[ing.ID] {
			continue
		}

		notification := models.Notification{
			Title: "Estoque baixo",
			Message: fmt.Sprintf("%s está com %.3f %s em estoque (mínimo %.3f)",
				ing.Name, ing.StockQty, ing.Unit, ing.MinStockQty),
		}
		if err := sm.DB.Create(&notification).Error; err != nil {
			utils.ErrorLogger.Printf("Erro ao criar notificação de estoque: %v", err)
			continue
		}

		realtime.BroadcastLowStock(ing)
		sm.alerted[ing.ID] = true
		utils.InfoLogger.Printf("Alerta de estoque baixo: %s", ing.Name)
	}
}
