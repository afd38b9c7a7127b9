// internal/database/connection.go
package database

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/lojinha/lojinha-backend/internal/config"
	"github.com/lojinha/lojinha-backend/internal/models"
)

var DB *gorm.DB

func Initialize(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var err error
	var gormConfig *gorm.Config

	// Configure GORM logger
	if cfg.LogLevel == "silent" {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		}
	} else {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Info),
		}
	}

	// Connect to database
	DB, err = gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying sql.DB
	sqlDB, err := DB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Second)

	// Test connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("Database connection established successfully")
	return DB, nil
}

func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Error getting underlying sql.DB: %v", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database connection: %v", err)
	} else {
		log.Println("Database connection closed successfully")
	}
}

func RunMigrations(db *gorm.DB) error {
	log.Println("Running database migrations...")

	// Enable UUID extension
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"").Error; err != nil {
		return fmt.Errorf("failed to create UUID extension: %w", err)
	}

	// Run auto-migrations
	err := db.AutoMigrate(
		&models.User{},
		&models.Storefront{},
		&models.Page{},
		&models.PageComponent{},
		&models.AuditLog{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := createIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

func createIndexes(db *gorm.DB) error {
	indexes := []string{
		// User indexes
		"CREATE INDEX IF NOT EXISTS idx_users_email ON users(email)",
		"CREATE INDEX IF NOT EXISTS idx_users_username ON users(username)",
		"CREATE INDEX IF NOT EXISTS idx_users_plan_status ON users(plan, status)",

		// Storefront indexes
		"CREATE INDEX IF NOT EXISTS idx_storefronts_username ON storefronts(username)",
		"CREATE INDEX IF NOT EXISTS idx_storefronts_active ON storefronts(is_active)",

		// Page indexes
		"CREATE INDEX IF NOT EXISTS idx_pages_user ON pages(user_id)",
		"CREATE INDEX IF NOT EXISTS idx_pages_slug ON pages(slug)",
		"CREATE INDEX IF NOT EXISTS idx_page_components_page_order ON page_components(page_id, order_index)",

		// Audit indexes
		"CREATE INDEX IF NOT EXISTS idx_audit_logs_user_action ON audit_logs(user_id, action)",
		"CREATE INDEX IF NOT EXISTS idx_audit_logs_resource ON audit_logs(resource_type, resource_id)",
		"CREATE INDEX IF NOT EXISTS idx_audit_logs_created ON audit_logs(created_at DESC)",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			log.Printf("Warning: Failed to create index: %s, Error: %v", index, err)
			// Continue with other indexes instead of failing completely
		}
	}

	return nil
}

// Seed initial data
func SeedInitialData(db *gorm.DB) error {
	log.Println("Seeding initial data...")

	var adminCount int64
	db.Model(&models.User{}).Where("user_type = ?", models.UserTypeAdmin).Count(&adminCount)

	if adminCount == 0 {
		admin := &models.User{
			Username: "admin",
			Email:    "admin@lojinha.app",
			UserType: models.UserTypeAdmin,
			Status:   models.UserStatusActive,
			Plan:     models.PlanTierPro,
			ProfileData: models.JSONB{
				"first_name": "System",
				"last_name":  "Administrator",
			},
		}

		if err := admin.SetPassword("admin123!@#"); err != nil {
			return fmt.Errorf("failed to set admin password: %w", err)
		}

		if err := db.Create(admin).Error; err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}

		log.Println("Default admin user created successfully")
	}

	// Demo storefront for local development
	var demoCount int64
	db.Model(&models.Storefront{}).Where("username = ?", "demo").Count(&demoCount)
	if demoCount == 0 {
		var admin models.User
		if err := db.Where("user_type = ?", models.UserTypeAdmin).First(&admin).Error; err == nil {
			demo := &models.Storefront{
				UserID:          admin.ID,
				Username:        "demo",
				ProfileName:     "Lojinha Demo",
				ProfileBio:      "Everything you sell, one link.",
				Theme:           "rosa",
				WhatsappNumber:  "5511999990000",
				WhatsappMessage: "Oi! Vim pela sua lojinha.",
				DiscountPercent: 10,
				CouponCode:      "BEMVINDO10",
				Products: models.ProductList{
					{
						ID:    "demo-1",
						Title: "Kit Boas-Vindas",
						Kits: []models.ProductKit{
							{ID: "demo-1-k1", Label: "1 unit", Price: 49.9, Link: "https://pay.example.com/demo-1"},
							{ID: "demo-1-k2", Label: "3 units", Price: 129.9, Link: "https://pay.example.com/demo-3", IsSpecial: true},
						},
					},
				},
				IsActive: true,
			}
			demo.Normalize()
			if err := db.Create(demo).Error; err != nil {
				log.Printf("Warning: Failed to create demo storefront: %v", err)
			}
		}
	}

	log.Println("Initial data seeding completed")
	return nil
}

// Transaction helper
func WithTransaction(db *gorm.DB, fn func(*gorm.DB) error) error {
	tx := db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}
