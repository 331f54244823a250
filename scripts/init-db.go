package main

import (
	"fmt"
	"log"

	"cardapio_digital/internal/config"
	"cardapio_digital/internal/database"
	"cardapio_digital/internal/models"
)

func main() {
	fmt.Println("Initializing database...")

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Force recreate all tables
	fmt.Println("Dropping existing tables...")
	err = db.Migrator().DropTable(
		&models.Restaurant{},
		&models.Category{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payment{},
		&models.ChatInteraction{},
		&models.User{},
		&models.AuditLog{},
		&models.Reservation{},
	)
	if err != nil {
		log.Printf("Warning: Error dropping tables: %v", err)
	}

	// Create tables with proper schema
	fmt.Println("Creating tables...")
	err = db.AutoMigrate(
		&models.Restaurant{},
		&models.Category{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payment{},
		&models.ChatInteraction{},
		&models.User{},
		&models.AuditLog{},
		&models.Reservation{},
	)
	if err != nil {
		log.Fatal("Failed to create tables:", err)
	}

	// Seed the configured restaurant, its menu and the admin user
	fmt.Println("Seeding initial data...")
	if err := database.Seed(db, cfg.RestaurantSlug); err != nil {
		log.Fatal("Failed to seed database:", err)
	}

	fmt.Println("Database initialized successfully!")
}
