package database

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/kmutua/dukabook-api/internal/config"
	"github.com/kmutua/dukabook-api/internal/domain/entity"
	"github.com/kmutua/dukabook-api/internal/domain/enum"
	"github.com/kmutua/dukabook-api/pkg/utils"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Info

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// Tenancy
		&entity.Shop{},
		&entity.User{},

		// Ledger entities
		&entity.Customer{},
		&entity.Transaction{},

		// Inventory entities
		&entity.Product{},
		&entity.Item{},

		// Quotation entities
		&entity.Quotation{},
		&entity.QuotationLine{},

		// System entities
		&entity.IdempotencyKey{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData seeds a default shop and, when configured, a privileged
// admin account. Both are created only if missing, so repeated startups are
// harmless.
func SeedDefaultData(db *gorm.DB) error {
	log.Println("Seeding default data...")

	defaultShopName := viper.GetString("DEFAULT_SHOP_NAME")
	if defaultShopName == "" {
		defaultShopName = "Main Shop"
	}
	defaultShopSlug := utils.Slugify(defaultShopName)

	var shop entity.Shop
	if err := db.Where("slug = ?", defaultShopSlug).First(&shop).Error; err != nil {
		shop = entity.Shop{
			ID:   uuid.New(),
			Name: defaultShopName,
			Slug: defaultShopSlug,
		}
		if err := db.Create(&shop).Error; err != nil {
			log.Printf("Warning: failed to create default shop: %v", err)
		} else {
			log.Printf("Default shop created: %s", defaultShopName)
		}
	}

	// Create a privileged admin user if configured via environment variables
	adminEmail := viper.GetString("ADMIN_EMAIL")
	adminPassword := viper.GetString("ADMIN_PASSWORD")
	adminName := viper.GetString("ADMIN_NAME")

	if adminEmail != "" && adminPassword != "" {
		var existingAdmin entity.User
		if err := db.Where("email = ?", adminEmail).First(&existingAdmin).Error; err != nil {
			hashedPassword, err := utils.HashPassword(adminPassword)
			if err != nil {
				log.Printf("Warning: failed to hash admin password: %v", err)
				return nil
			}

			if adminName == "" {
				adminName = "Admin"
			}
			firstName := adminName
			lastName := ""
			for i, c := range adminName {
				if c == ' ' {
					firstName = adminName[:i]
					lastName = adminName[i+1:]
					break
				}
			}

			adminUser := entity.User{
				ID:        uuid.New(),
				FirstName: firstName,
				LastName:  lastName,
				Email:     adminEmail,
				Password:  hashedPassword,
				Role:      enum.RolePrivileged,
			}
			if err := db.Create(&adminUser).Error; err != nil {
				log.Printf("Warning: failed to create admin user: %v", err)
			} else {
				log.Printf("Admin user created: %s", adminEmail)
			}
		} else {
			log.Printf("Admin user already exists: %s", adminEmail)
		}
	}

	log.Println("Default data seeding completed")
	return nil
}
