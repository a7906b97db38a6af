package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-pdf/fpdf"
	"gorm.io/gorm"

	"github.com/vilamar/restaurante-app/models"
	"github.com/vilamar/restaurante-app/utils"
)

type ReportController struct {
	DB *gorm.DB
}

func NewReportController(db *gorm.DB) *ReportController {
	return &ReportController{DB: db}
}

type topItem struct {
	MenuItemID uint    `json:"menu_item_id"`
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity"`
	Revenue    float64 `json:"revenue"`
}

type salesSummary struct {
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	TotalRevenue float64   `json:"total_revenue"`
	OrderCount   int       `json:"order_count"`
	AverageOrder float64   `json:"average_order_value"`
	TopItems     []topItem `json:"top_items"`
}

// reportPeriod resolve start/end a partir de start_date/end_date ou period.
func reportPeriod(c *gin.Context) (time.Time, time.Time) {
	now := time.Now()
	end := now

	if s, e := c.Query("start_date"), c.Query("end_date"); s != "" && e != "" {
		start, err1 := time.Parse("2006-01-02", s)
		endParsed, err2 := time.Parse("2006-01-02", e)
		if err1 == nil && err2 == nil {
			return start, endParsed.AddDate(0, 0, 1)
		}
	}

	switch c.Query("period") {
	case "today":
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()), end
	case "week":
		return now.AddDate(0, 0, -7), end
	case "year":
		return now.AddDate(-1, 0, 0), end
	default:
		return now.AddDate(0, -1, 0), end
	}
}

func (rc *ReportController) buildSalesSummary(start, end time.Time) (*salesSummary, error) {
	var orders []models.Order
	err := rc.DB.Preload("OrderItems.MenuItem").
		Where("created_at >= ? AND created_at < ?", start, end).
		Where("status IN ?", []string{models.OrderServido, models.OrderPronto}).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}

	summary := &salesSummary{StartDate: start, EndDate: end, OrderCount: len(orders)}
	byItem := make(map[uint]*topItem)
	for _, order := range orders {
		summary.TotalRevenue += order.TotalAmount
		for _, item := range order.OrderItems {
			entry, ok := byItem[item.MenuItemID]
			if !ok {
				entry = &topItem{MenuItemID: item.MenuItemID, Name: item.MenuItem.Name}
				byItem[item.MenuItemID] = entry
			}
			entry.Quantity += item.Quantity
			entry.Revenue += item.Price * float64(item.Quantity)
		}
	}
	if summary.OrderCount > 0 {
		summary.AverageOrder = summary.TotalRevenue / float64(summary.OrderCount)
	}

	for _, entry := range byItem {
		summary.TopItems = append(summary.TopItems, *entry)
	}
	sort.Slice(summary.TopItems, func(i, j int) bool {
		return summary.TopItems[i].Quantity > summary.TopItems[j].Quantity
	})
	if len(summary.TopItems) > 10 {
		summary.TopItems = summary.TopItems[:10]
	}
	return summary, nil
}

// GetSalesReport -> faturamento do período e itens mais vendidos.
func (rc *ReportController) GetSalesReport(c *gin.Context) {
	start, end := reportPeriod(c)
	summary, err := rc.buildSalesSummary(start, end)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Sales report", summary)
}

// ExportSalesReport -> mesmo relatório, renderizado em PDF.
func (rc *ReportController) ExportSalesReport(c *gin.Context) {
	start, end := reportPeriod(c)
	summary, err := rc.buildSalesSummary(start, end)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	// Fontes core sao cp1252; traduz nomes acentuados do cardapio.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 10, "Relatorio de Vendas", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	periodLine := fmt.Sprintf("Periodo: %s a %s",
		summary.StartDate.Format("02/01/2006"), summary.EndDate.Format("02/01/2006"))
	pdf.CellFormat(contentW, 6, periodLine, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW, 7, "Resumo", "B", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW*0.6, 6, "Receita total:", "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW*0.4, 6, utils.FormatCurrencyBRL(summary.TotalRevenue), "", 1, "R", false, 0, "")
	pdf.CellFormat(contentW*0.6, 6, "Pedidos:", "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW*0.4, 6, fmt.Sprintf("%d", summary.OrderCount), "", 1, "R", false, 0, "")
	pdf.CellFormat(contentW*0.6, 6, "Ticket medio:", "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW*0.4, 6, utils.FormatCurrencyBRL(summary.AverageOrder), "", 1, "R", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW, 7, "Itens mais vendidos", "B", 1, "L", false, 0, "")

	col1 := contentW * 0.55
	col2 := contentW * 0.15
	col3 := contentW * 0.30

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1, 6, "Item", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 6, "Qtd", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 6, "Receita", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, item := range summary.TopItems {
		name := item.Name
		if runes := []rune(name); len(runes) > 40 {
			name = string(runes[:39]) + "."
		}
		pdf.CellFormat(col1, 6, tr(name), "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, fmt.Sprintf("x%d", item.Quantity), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 6, utils.FormatCurrencyBRL(item.Revenue), "", 1, "R", false, 0, "")
	}

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(contentW, 5, "Gerado em "+time.Now().Format("02/01/2006 15:04"), "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	fileName := fmt.Sprintf("relatorio-vendas-%s.pdf", time.Now().Format("20060102"))
	c.Header("Content-Disposition", `attachment; filename="`+fileName+`"`)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

// GetPerformanceReport -> produtividade de um dia.
func (rc *ReportController) GetPerformanceReport(c *gin.Context) {
	day := time.Now()
	if d := c.Query("date"); d != "" {
		parsed, err := time.Parse("2006-01-02", d)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
		day = parsed
	}
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	var orders []models.Order
	err := rc.DB.Preload("User").
		Where("created_at >= ? AND created_at < ?", start, end).
		Find(&orders).Error
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	type userPerf struct {
		UserID     uint    `json:"user_id"`
		Name       string  `json:"name"`
		OrderCount int     `json:"order_count"`
		Revenue    float64 `json:"revenue"`
	}

	var completed int
	var prepMinutes float64
	byUser := make(map[uint]*userPerf)
	for _, order := range orders {
		if order.Status == models.OrderServido || order.Status == models.OrderPronto {
			completed++
			prepMinutes += order.UpdatedAt.Sub(order.CreatedAt).Minutes()
		}
		entry, ok := byUser[order.UserID]
		if !ok {
			entry = &userPerf{UserID: order.UserID, Name: order.User.Name}
			byUser[order.UserID] = entry
		}
		entry.OrderCount++
		entry.Revenue += order.TotalAmount
	}

	avgPrep := 0.0
	if completed > 0 {
		avgPrep = prepMinutes / float64(completed)
	}

	users := make([]userPerf, 0, len(byUser))
	for _, entry := range byUser {
		users = append(users, *entry)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].OrderCount > users[j].OrderCount })

	utils.RespondJSON(c, http.StatusOK, "Performance report", gin.H{
		"date":                     start.Format("2006-01-02"),
		"total_orders":             len(orders),
		"completed_orders":         completed,
		"average_preparation_time": round1(avgPrep),
		"by_user":                  users,
	})
}

// GetInventoryReport -> posição do estoque e itens abaixo do mínimo.
func (rc *ReportController) GetInventoryReport(c *gin.Context) {
	var ingredients []models.Ingredient
	if err := rc.DB.Order("name asc").Find(&ingredients).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var totalValue float64
	lowStock := make([]models.Ingredient, 0)
	for _, ing := range ingredients {
		totalValue += ing.StockQty * ing.Cost
		if ing.LowStock() {
			lowStock = append(lowStock, ing)
		}
	}

	utils.RespondJSON(c, http.StatusOK, "Inventory report", gin.H{
		"total_ingredients": len(ingredients),
		"low_stock_count":   len(lowStock),
		"low_stock_items":   lowStock,
		"inventory_value":   totalValue,
		"ingredients":       ingredients,
	})
}
