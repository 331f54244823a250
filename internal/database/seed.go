package database

import (
	"log"

	"cardapio_digital/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seed creates the default tenant with a starter menu, and a default admin
// user. It is a no-op when a restaurant already exists.
func Seed(db *gorm.DB, slug string) error {
	var count int64
	if err := db.Model(&models.Restaurant{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	restaurant := models.Restaurant{
		Name:    "Muzzajazz Pirenópolis",
		Slug:    slug,
		Address: "Rua do Jazz, 123",
		Phone:   "(62) 99999-8888",
		Email:   "contato@muzzajazz.com",
		City:    "Pirenópolis",
		State:   "GO",
		ZipCode: "72800-000",
		OwnerID: "owner-default",
	}
	if err := db.Create(&restaurant).Error; err != nil {
		return err
	}

	category := models.Category{
		Name:         "Pizzas Artesanais",
		RestaurantID: restaurant.ID,
	}
	if err := db.Create(&category).Error; err != nil {
		return err
	}

	items := []models.MenuItem{
		{
			Name:         "Pizza Ella Fitzgerald",
			Description:  "Massa artesanal, mozzarella de búfala, manjericão fresco",
			Price:        50.00,
			Image:        "/EllaFitzgerald.png",
			CategoryID:   category.ID,
			RestaurantID: restaurant.ID,
			Active:       true,
		},
		{
			Name:         "Pizza Nina Simone",
			Description:  "Bacon defumado, gorgonzola DOP, mozzarella",
			Price:        53.00,
			Image:        "/NinaSimone.png",
			CategoryID:   category.ID,
			RestaurantID: restaurant.ID,
			Active:       true,
		},
	}
	if err := db.Create(&items).Error; err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("muzzajazz"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := models.User{
		Name:         "Admin",
		Email:        "admin@muzzajazz.com",
		PasswordHash: string(hash),
		Role:         string(models.RoleAdmin),
		IsActive:     true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Printf("Seeded default restaurant %q with %d menu items", restaurant.Name, len(items))
	return nil
}
