package main

import (
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"toolboard/internal/auth"
	"toolboard/internal/httpserver"
	"toolboard/internal/logger"
	"toolboard/internal/mailer"
	"toolboard/internal/models"
	"toolboard/internal/settings"
)

func main() {
	_ = godotenv.Load()
	lg := logger.New()
	defer lg.Sync()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		lg.Fatalw("DATABASE_URL is empty")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		lg.Fatalw("db connect failed", "error", err)
	}
	if err := db.AutoMigrate(
		&models.User{}, &models.Session{}, &models.Setting{}, &models.CronJobLog{},
		&models.Tool{}, &models.ToolIcon{}, &models.DashboardItem{},
		&models.UserDashboardKpi{}, &models.ImportantDocument{}, &models.Note{},
	); err != nil {
		lg.Fatalw("automigrate failed", "error", err)
	}
	seedDefaultSettings(db, lg)
	seedDefaultSuperadmin(db, lg)

	m := mailer.New(
		os.Getenv("RESEND_API_KEY"),
		os.Getenv("SUPPORT_EMAIL_FROM"),
		os.Getenv("SUPPORT_EMAIL_TO"),
		lg,
	)
	router := httpserver.NewRouter(db, m, lg)
	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}
	lg.Infow("listening", "port", port)
	if err := http.ListenAndServe(":"+port, router); err != nil {
		log.Fatal(err)
	}
}

// seedDefaultSettings inserts the public defaults so fresh deployments serve
// coherent values. Existing rows win.
func seedDefaultSettings(db *gorm.DB, lg *zap.SugaredLogger) {
	defaults := []models.Setting{
		{Key: settings.KeySiteMaintenance, Value: models.JSONB(`{"signUpsDisabled":false}`)},
		{Key: settings.KeyPlatformFee, Value: models.JSONB(`{"amount":5.00}`)},
	}
	for _, s := range defaults {
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&s).Error; err != nil {
			lg.Warnw("settings seed failed", "key", s.Key, "error", err)
		}
	}
}

func seedDefaultSuperadmin(db *gorm.DB, lg *zap.SugaredLogger) {
	email := os.Getenv("SEED_SUPERADMIN_EMAIL")
	if email == "" {
		return
	}
	var count int64
	db.Model(&models.User{}).Where("LOWER(email) = LOWER(?)", email).Count(&count)
	if count > 0 {
		return
	}
	password := os.Getenv("SEED_SUPERADMIN_PASSWORD")
	if password == "" {
		lg.Warnw("SEED_SUPERADMIN_PASSWORD is empty, skipping superadmin seed")
		return
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		lg.Errorw("superadmin seed hash failed", "error", err)
		return
	}
	u := models.User{Email: email, PasswordHash: hash, Role: models.RoleSuperadmin, IsActive: true}
	if err := db.Create(&u).Error; err != nil {
		lg.Errorw("superadmin seed failed", "error", err)
		return
	}
	lg.Infow("seeded default superadmin", "email", email)
}
