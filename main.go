package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/vilamar/restaurante-app/config"
	"github.com/vilamar/restaurante-app/database"
	"github.com/vilamar/restaurante-app/models"
	"github.com/vilamar/restaurante-app/router"
	"github.com/vilamar/restaurante-app/services"
	"github.com/vilamar/restaurante-app/utils"
)

func main() {
	// Sem .env o processo segue com as variáveis do ambiente.
	_ = godotenv.Load()

	utils.InitLogger()

	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Falha ao conectar no banco de dados: %v", err)
	}
	utils.InitDB(db)

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := autoMigrate(db); err != nil {
		utils.ErrorLogger.Fatalf("Falha na migração: %v", err)
	}

	if os.Getenv("SEED_ON_START") == "true" {
		if err := database.Seed(db); err != nil {
			utils.ErrorLogger.Fatalf("Falha no seed inicial: %v", err)
		}
		utils.InfoLogger.Println("Seed inicial aplicado")
	}

	reservationMonitor := services.NewReservationMonitor(db)
	reservationMonitor.Start()
	defer reservationMonitor.Stop()

	stockMonitor := services.NewStockMonitor(db)
	stockMonitor.Start()
	defer stockMonitor.Stop()

	r := router.SetupRouter(db)
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		utils.ErrorLogger.Fatalf("Falha ao configurar proxies confiáveis: %v", err)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}

	utils.InfoLogger.Printf("Servidor ouvindo na porta %s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatalf("Falha ao subir o servidor: %v", err)
	}
}

func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.MenuItem{},
		&models.MenuItemIngredient{},
		&models.Table{},
		&models.Order{},
		&models.OrderItem{},
		&models.Reservation{},
		&models.Ingredient{},
		&models.Feedback{},
		&models.Notification{},
	)
}
