package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vilamar/restaurante-app/models"
	"github.com/vilamar/restaurante-app/realtime"
	"github.com/vilamar/restaurante-app/utils"
)

type OrderController struct {
	DB *gorm.DB
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{DB: db}
}

// GetAllOrders -> lista pedidos, filtráveis por status e mesa.
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	query := oc.DB.Preload("Table").
		Preload("OrderItems").
		Preload("OrderItems.MenuItem").
		Preload("OrderItems.MenuItem.Category").
		Order("created_at desc")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if tableID := c.Query("tableId"); tableID != "" {
		query = query.Where("table_id = ?", tableID)
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// GetOrderByID -> detalhe de um pedido.
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	var order models.Order
	err := oc.DB.Preload("Table").
		Preload("OrderItems").
		Preload("OrderItems.MenuItem").
		First(&order, c.Param("order_id")).Error
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// CreateOrder -> cria o pedido com seus itens, recalculando o total pelo
// preço de catálogo, e marca a mesa como ocupada. Tudo dentro de uma
// única transação; a cozinha é notificada depois do commit.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	userIDInterface, _ := c.Get("user_id")
	userID, ok := userIDInterface.(uint)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	type itemReq struct {
		MenuItemID uint   `json:"menu_item_id"`
		Quantity   int    `json:"quantity"`
		Notes      string `json:"notes"`
	}
	var body struct {
		TableID uint      `json:"table_id" binding:"required"`
		Items   []itemReq `json:"items" binding:"required"`
		Notes   string    `json:"notes"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if len(body.Items) == 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("pedido precisa de ao menos um item"))
		return
	}

	var table models.Table
	if err := oc.DB.First(&table, body.TableID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("mesa não encontrada"))
		return
	}

	errSemItens := errors.New("nenhum item válido no pedido")

	var order models.Order
	err := oc.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Order{}).Count(&count).Error; err != nil {
			return err
		}

		order = models.Order{
			OrderNumber: fmt.Sprintf("PED%04d", count+1),
			Status:      models.OrderPendente,
			TableID:     table.ID,
			UserID:      userID,
			Notes:       body.Notes,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		var total float64
		var accepted int
		for _, item := range body.Items {
			if item.Quantity <= 0 {
				continue
			}
			// Preço sempre vem do catálogo, nunca do cliente.
			var menuItem models.MenuItem
			if err := tx.First(&menuItem, item.MenuItemID).Error; err != nil {
				continue
			}
			total += menuItem.Price * float64(item.Quantity)

			orderItem := models.OrderItem{
				OrderID:    order.ID,
				MenuItemID: menuItem.ID,
				Quantity:   item.Quantity,
				Price:      menuItem.Price,
				Status:     models.OrderPendente,
				Notes:      item.Notes,
			}
			if err := tx.Create(&orderItem).Error; err != nil {
				return err
			}
			accepted++
		}

		// Sem nenhum item aproveitável o pedido não existe e a mesa
		// continua como estava.
		if accepted == 0 {
			return errSemItens
		}

		order.TotalAmount = total
		if err := tx.Save(&order).Error; err != nil {
			return err
		}

		return tx.Model(&models.Table{}).
			Where("id = ?", table.ID).
			Update("status", models.TableOcupada).Error
	})
	if errors.Is(err, errSemItens) {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	oc.DB.Preload("Table").
		Preload("OrderItems").
		Preload("OrderItems.MenuItem").
		First(&order, order.ID)

	realtime.BroadcastNewOrder(order)
	table.Status = models.TableOcupada
	realtime.BroadcastTableStatusChanged(table)

	utils.InfoLogger.Printf("Order %s created for table %d (total=%.2f)",
		order.OrderNumber, table.Number, order.TotalAmount)
	utils.RespondJSON(c, http.StatusCreated, "Order created", order)
}

// UpdateOrderStatus -> transição de status do pedido inteiro.
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if !models.ValidOrderStatus(body.Status) {
		utils.RespondError(c, http.StatusBadRequest, errors.New("status de pedido inválido"))
		return
	}

	var order models.Order
	if err := oc.DB.Preload("Table").Preload("OrderItems").Preload("OrderItems.MenuItem").
		First(&order, c.Param("order_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	order.Status = body.Status
	if err := oc.DB.Save(&order).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	realtime.BroadcastOrderStatusChanged(order)
	if order.Status == models.OrderPronto {
		realtime.BroadcastOrderReady(order)
	}
	if order.Status == models.OrderServido || order.Status == models.OrderCancelado {
		oc.releaseTableIfIdle(order.TableID)
	}

	utils.RespondJSON(c, http.StatusOK, "Order status updated", order)
}

// UpdateItemStatus -> transição de status de um item. Quando o último
// item vira PRONTO o pedido inteiro é promovido a PRONTO e a recepção
// é avisada.
func (oc *OrderController) UpdateItemStatus(c *gin.Context) {
	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if !models.ValidOrderStatus(body.Status) {
		utils.RespondError(c, http.StatusBadRequest, errors.New("status de item inválido"))
		return
	}

	var item models.OrderItem
	if err := oc.DB.Where("id = ? AND order_id = ?", c.Param("item_id"), c.Param("order_id")).
		First(&item).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	item.Status = body.Status
	if err := oc.DB.Save(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	// Varredura O(n) dos itens do pedido; n é pequeno por pedido.
	var notReady int64
	oc.DB.Model(&models.OrderItem{}).
		Where("order_id = ? AND status != ?", item.OrderID, models.OrderPronto).
		Count(&notReady)

	if notReady == 0 {
		var order models.Order
		if err := oc.DB.Preload("Table").First(&order, item.OrderID).Error; err == nil {
			order.Status = models.OrderPronto
			oc.DB.Save(&order)

			realtime.BroadcastOrderStatusChanged(order)
			realtime.BroadcastOrderReady(order)
		}
	}

	utils.RespondJSON(c, http.StatusOK, "Item status updated", item)
}

// releaseTableIfIdle frees a table back to LIVRE when it has no other
// open orders.
func (oc *OrderController) releaseTableIfIdle(tableID uint) {
	var open int64
	oc.DB.Model(&models.Order{}).
		Where("table_id = ? AND status IN ?", tableID, models.OpenOrderStatuses()).
		Count(&open)
	if open > 0 {
		return
	}

	var table models.Table
	if err := oc.DB.First(&table, tableID).Error; err != nil {
		return
	}
	if table.Status != models.TableOcupada {
		return
	}

	table.Status = models.TableLivre
	if err := oc.DB.Save(&table).Error; err != nil {
		utils.ErrorLogger.Printf("Error releasing table %d: %v", table.Number, err)
		return
	}
	realtime.BroadcastTableStatusChanged(table)
}
