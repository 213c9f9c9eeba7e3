package config

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"alfredoptarigan/skillbridge-assessment/internal/models"
)

func InitDatabase(cfg *Config) (*gorm.DB, error) {
	dsn := cfg.GetDatabaseDSN()

	logLevel := logger.Silent
	if cfg.Server.Env == "development" {
		logLevel = logger.Info
	}

	// TranslateError so unique-index violations surface as
	// gorm.ErrDuplicatedKey; the report and assessment repositories depend
	// on that.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Println("✅ Database connected successfully")

	if err := db.AutoMigrate(
		&models.Skill{},
		&models.AssessmentSkill{},
		&models.StudentProfile{},
		&models.Job{},
		&models.Application{},
		&models.ApplicantChosenSkill{},
		&models.RoleProfile{},
		&models.Blueprint{},
		&models.Question{},
		&models.Task{},
		&models.Assessment{},
		&models.ResponseRecord{},
		&models.Report{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Println("✅ Database migration completed")

	return db, nil
}
