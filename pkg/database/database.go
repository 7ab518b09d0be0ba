package database

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"bookstore/pkg/config"
	"bookstore/pkg/models"
)

func allModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.UserType{},
		&models.CrmCard{},
		&models.CrmEmail{},
		&models.CrmPaymentCard{},
		&models.CrmAddress{},
		&models.Author{},
		&models.Category{},
		&models.Publisher{},
		&models.Book{},
		&models.OrderStatus{},
		&models.Order{},
		&models.OrderItem{},
	}
}

func Init(cfg *config.Config, log *zap.Logger) *gorm.DB {
	dsn := cfg.DSN()
	log.Info("connecting to database",
		zap.String("host", cfg.DBHost),
		zap.String("port", cfg.DBPort),
		zap.String("name", cfg.DBName))

	var db *gorm.DB
	var err error
	maxRetries := 10
	for i := 0; i < maxRetries; i++ {
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
		if err == nil {
			break
		}
		log.Warn("database connection attempt failed",
			zap.Int("attempt", i+1),
			zap.Int("max", maxRetries),
			zap.Error(err))
		if i < maxRetries-1 {
			time.Sleep(5 * time.Second)
		}
	}
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("failed to get database instance", zap.Error(err))
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		log.Fatal("database ping failed", zap.Error(err))
	}

	if err := Migrate(db); err != nil {
		log.Fatal("database migration failed", zap.Error(err))
	}

	if err := SeedUserTypes(db); err != nil {
		log.Fatal("failed to seed user types", zap.Error(err))
	}

	log.Info("database connection established")
	return db
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(allModels()...)
}

// SeedUserTypes makes sure the default roles exist. Signup depends on a
// UserType flagged is_user being present.
func SeedUserTypes(db *gorm.DB) error {
	defaults := []models.UserType{
		{Title: "user", IsUser: true},
		{Title: "admin", IsAdmin: true},
	}
	for _, ut := range defaults {
		var existing models.UserType
		err := db.Where("title = ?", ut.Title).First(&existing).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}
		if err := db.Create(&ut).Error; err != nil {
			return err
		}
	}
	return nil
}
