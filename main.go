package main

import (
	"log"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/pdvapp/restaurant-pos/config"
	"github.com/pdvapp/restaurant-pos/models"
	"github.com/pdvapp/restaurant-pos/router"
	"github.com/pdvapp/restaurant-pos/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	utils.InitLogger()
	cfg := config.Load()

	db, err := openDB(cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("database connection failed: %v", err)
	}
	utils.InitDB(db)

	if err := migrate(db); err != nil {
		utils.ErrorLogger.Fatalf("migration failed: %v", err)
	}
	if err := seedAdmin(db, cfg); err != nil {
		utils.ErrorLogger.Fatalf("admin seed failed: %v", err)
	}

	r := router.SetupRouter(db, cfg)
	utils.InfoLogger.Printf("listening on %s", cfg.ListenAddr)
	if err := r.Run(cfg.ListenAddr); err != nil {
		utils.ErrorLogger.Fatalf("server stopped: %v", err)
	}
}

func openDB(cfg *config.Config) (*gorm.DB, error) {
	if cfg.DBDriver == "sqlite" {
		return gorm.Open(sqlite.Open(cfg.DBDSN), &gorm.Config{})
	}
	return gorm.Open(mysql.Open(cfg.DBDSN), &gorm.Config{})
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Ingredient{},
		&models.Product{},
		&models.Option{},
		&models.OptionValue{},
		&models.ProductAddon{},
		&models.TableSession{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderItemOption{},
		&models.OrderItemAddon{},
	)
}

// seedAdmin creates the initial admin account on an empty user table.
func seedAdmin(db *gorm.DB, cfg *config.Config) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := models.User{
		Name:     "Administrator",
		Email:    cfg.AdminEmail,
		Password: string(hash),
		Role:     config.RoleAdmin,
	}
	return db.Create(&admin).Error
}
