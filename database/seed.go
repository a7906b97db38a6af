package database

import (
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/vilamar/restaurante-app/models"
	"github.com/vilamar/restaurante-app/utils"
)

// Seed creates the default users and tables when they do not exist yet.
// It is idempotent and safe to run on every startup.
func Seed(db *gorm.DB) error {
	users := []struct {
		name     string
		email    string
		password string
		role     string
	}{
		{"Administrador", "admin@restaurante.com", "admin123", models.RoleAdmin},
		{"Maria Silva", "recepcao@restaurante.com", "recepcao123", models.RoleRecepcionista},
		{"Ana Costa", "cozinha@restaurante.com", "cozinha123", models.RoleCozinheira},
	}

	for _, u := range users {
		var existing models.User
		err := db.Where("email = ?", u.email).First(&existing).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user := models.User{
			Name:     u.name,
			Email:    u.email,
			Password: string(hashed),
			Role:     u.role,
			Active:   true,
		}
		if err := db.Create(&user).Error; err != nil {
			return err
		}
		utils.InfoLogger.Printf("Seeded user %s (role=%s)", user.Email, user.Role)
	}

	capacities := map[int]int{1: 4, 2: 2, 3: 6, 4: 4, 5: 8}
	for number := 1; number <= 5; number++ {
		var existing models.Table
		err := db.Where("number = ?", number).First(&existing).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}

		table := models.Table{
			Number:   number,
			Capacity: capacities[number],
			Status:   models.TableLivre,
		}
		if err := db.Create(&table).Error; err != nil {
			return err
		}
	}

	return nil
}
