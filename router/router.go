package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vilamar/restaurante-app/controllers"
	"github.com/vilamar/restaurante-app/middlewares"
	"github.com/vilamar/restaurante-app/models"
)

var startedAt = time.Now()

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	apiLimiter := middlewares.NewRateLimiter(100, 60)
	r.Use(apiLimiter.RateLimit())

	authController := controllers.NewAuthController(db)
	userController := controllers.NewUserController(db)
	categoryController := controllers.NewCategoryController(db)
	menuController := controllers.NewMenuController(db)
	tableController := controllers.NewTableController(db)
	orderController := controllers.NewOrderController(db)
	reservationController := controllers.NewReservationController(db)
	inventoryController := controllers.NewInventoryController(db)
	feedbackController := controllers.NewFeedbackController(db)
	reportController := controllers.NewReportController(db)
	notificationController := controllers.NewNotificationController(db)

	api := r.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"uptime": time.Since(startedAt).String(),
		})
	})

	strictLimiter := middlewares.NewStrictRateLimiter()

	auth := api.Group("/auth")
	{
		auth.POST("/login", strictLimiter, authController.Login)
		auth.POST("/register", strictLimiter,
			middlewares.AuthMiddleware(),
			middlewares.RequireRoles(models.RoleAdmin),
			authController.Register)
		auth.GET("/me", middlewares.AuthMiddleware(), authController.Me)
	}

	users := api.Group("/users",
		middlewares.AuthMiddleware(),
		middlewares.RequireRoles(models.RoleAdmin))
	{
		users.GET("", userController.GetAllUsers)
		users.PUT("/:user_id", userController.UpdateUser)
		users.DELETE("/:user_id", userController.DeleteUser)
	}

	menu := api.Group("/menu")
	{
		menu.GET("", menuController.GetAllMenuItems)
		menu.GET("/categories", categoryController.GetAllCategories)

		staff := menu.Group("",
			middlewares.AuthMiddleware(),
			middlewares.RequireRoles(models.RoleAdmin, models.RoleRecepcionista))
		{
			staff.POST("/categories", categoryController.CreateCategory)
			staff.PUT("/categories/:cat_id", categoryController.UpdateCategory)
			staff.DELETE("/categories/:cat_id", categoryController.DeleteCategory)

			staff.POST("", menuController.CreateMenuItem)
			staff.PUT("/:item_id", menuController.UpdateMenuItem)
			staff.DELETE("/:item_id", menuController.DeleteMenuItem)
		}
	}

	tables := api.Group("/tables")
	{
		tables.GET("/qr/:number", tableController.GetTableQR)

		tables.GET("", middlewares.AuthMiddleware(), tableController.GetAllTables)
		tables.POST("",
			middlewares.AuthMiddleware(),
			middlewares.RequireRoles(models.RoleAdmin),
			tableController.CreateTable)
		tables.PUT("/:table_id/status",
			middlewares.AuthMiddleware(),
			middlewares.RequireRoles(models.RoleAdmin, models.RoleRecepcionista),
			tableController.UpdateTableStatus)
	}

	orders := api.Group("/orders", middlewares.AuthMiddleware())
	{
		orders.GET("", orderController.GetAllOrders)
		orders.GET("/:order_id", orderController.GetOrderByID)
		orders.POST("",
			middlewares.RequireRoles(models.RoleAdmin, models.RoleRecepcionista),
			orderController.CreateOrder)
		orders.PUT("/:order_id/status",
			middlewares.RequireRoles(models.RoleAdmin, models.RoleCozinheira),
			orderController.UpdateOrderStatus)
		orders.PUT("/:order_id/item/:item_id/status",
			middlewares.RequireRoles(models.RoleAdmin, models.RoleCozinheira),
			orderController.UpdateItemStatus)
	}

	reservations := api.Group("/reservations")
	{
		reservations.GET("/availability", reservationController.CheckAvailability)

		reservations.GET("", middlewares.AuthMiddleware(), reservationController.GetAllReservations)
		reservations.POST("",
			middlewares.AuthMiddleware(),
			middlewares.RequireRoles(models.RoleAdmin, models.RoleRecepcionista),
			reservationController.CreateReservation)
		reservations.PUT("/:reservation_id/status",
			middlewares.AuthMiddleware(),
			middlewares.RequireRoles(models.RoleAdmin, models.RoleRecepcionista),
			reservationController.UpdateReservationStatus)
	}

	inventory := api.Group("/inventory",
		middlewares.AuthMiddleware(),
		middlewares.RequireRoles(models.RoleAdmin, models.RoleCozinheira))
	{
		inventory.GET("", inventoryController.GetAllIngredients)
		inventory.GET("/low-stock", inventoryController.GetLowStock)
		inventory.PUT("/:ingredient_id/stock", inventoryController.UpdateStock)

		adminOnly := inventory.Group("", middlewares.RequireRoles(models.RoleAdmin))
		{
			adminOnly.POST("", inventoryController.CreateIngredient)
			adminOnly.PUT("/:ingredient_id", inventoryController.UpdateIngredient)
		}
	}

	feedback := api.Group("/feedback")
	{
		feedback.POST("", feedbackController.CreateFeedback)
		feedback.GET("", middlewares.AuthMiddleware(), feedbackController.GetAllFeedbacks)
		feedback.GET("/statistics", middlewares.AuthMiddleware(), feedbackController.GetStatistics)
	}

	reports := api.Group("/reports",
		middlewares.AuthMiddleware(),
		middlewares.RequireRoles(models.RoleAdmin))
	{
		reports.GET("/sales", reportController.GetSalesReport)
		reports.GET("/sales/export", reportController.ExportSalesReport)
		reports.GET("/performance", reportController.GetPerformanceReport)
		reports.GET("/inventory", reportController.GetInventoryReport)
	}

	notifications := api.Group("/notifications", middlewares.AuthMiddleware())
	{
		notifications.GET("", notificationController.GetAllNotifications)
		notifications.POST("", notificationController.CreateNotification)
		notifications.DELETE("/:id", notificationController.DeleteNotification)
	}

	r.GET("/ws", middlewares.WebSocketAuthMiddleware(), controllers.WebSocketHandler)

	return r
}
