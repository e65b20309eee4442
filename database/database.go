package database

import (
	config "github.com/anjiri1684/english_academy/configs"
	"github.com/anjiri1684/english_academy/models"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.Database.URL), &gorm.Config{
		SkipDefaultTransaction: true,
		// TranslateError maps driver unique-violations to gorm.ErrDuplicatedKey,
		// which the enrollment reconciler relies on for idempotent creates.
		TranslateError: true,
	})
	if err != nil {
		logrus.Fatalf("🔥 Failed to connect to database: %v", err)
	}

	logrus.Info("✅ Database connected successfully")
}

func Migrate() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.Student{},
		&models.Teacher{},
		&models.Course{},
		&models.Enrollment{},
		&models.Activity{},
		&models.ActivitySubmission{},
		&models.Question{},
		&models.Exam{},
		&models.ExamAttempt{},
		&models.AttemptAnswer{},
		&models.LessonSession{},
		&models.AttendanceRecord{},
		&models.Review{},
		&models.Certificate{},
		&models.Conversation{},
		&models.Message{},
		&models.Material{},
		&models.Referral{},
	)
	if err != nil {
		logrus.Fatalf("🔥 Failed to migrate database: %v", err)
	}
	logrus.Info("✅ Database migration successful")
}

func SeedAdmin(cfg *config.Config) {
	if cfg.Auth.AdminEmail == "" || cfg.Auth.AdminPassword == "" {
		logrus.Warn("⚠️ Admin credentials not configured, skipping admin seed")
		return
	}

	var count int64
	if err := DB.Model(&models.User{}).Where("email = ?", cfg.Auth.AdminEmail).Count(&count).Error; err != nil {
		logrus.Fatalf("🔥 Failed to check for admin user: %v", err)
		return
	}

	if count > 0 {
		logrus.Info("Admin user already exists.")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(cfg.Auth.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		logrus.Fatalf("🔥 Failed to hash admin password: %v", err)
		return
	}

	adminUser := models.User{
		FullName: cfg.Auth.AdminFullName,
		Email:    cfg.Auth.AdminEmail,
		Password: string(hashedPassword),
		Role:     "admin",
	}

	if err := DB.Create(&adminUser).Error; err != nil {
		logrus.Fatalf("🔥 Failed to seed admin user: %v", err)
		return
	}

	logrus.Info("✅ Admin user seeded successfully")
}
