package main

import (
	"time"

	config "github.com/anjiri1684/english_academy/configs"
	"github.com/anjiri1684/english_academy/database"
	"github.com/anjiri1684/english_academy/jobs"
	"github.com/anjiri1684/english_academy/notifications"
	"github.com/anjiri1684/english_academy/payments"
	"github.com/anjiri1684/english_academy/routes"
	"github.com/anjiri1684/english_academy/services"
	"github.com/anjiri1684/english_academy/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		logrus.Fatalf("🔥 Invalid configuration: %v", err)
	}

	database.ConnectDB(cfg)
	database.Migrate()
	database.SeedAdmin(cfg)
	notifications.InitEmailService(cfg)
	services.InitCertificateService(cfg)

	webhookService := payments.NewWebhookService(
		payments.NewStripeVerifier(cfg.Stripe.WebhookSecret),
		payments.NewGormEnrollmentRepo(database.DB),
	)
	webhookService.OnEnrolled(services.CompleteReferralIfApplicable)
	checkoutService := payments.NewCheckoutService(cfg.Stripe.SecretKey, cfg.App.FrontendURL)

	c := cron.New()
	c.AddFunc("*/5 * * * *", jobs.MarkAbsenteesForPastSessions)
	c.AddFunc("*/5 * * * *", jobs.SendSessionReminders)
	go c.Start()
	logrus.Info("✅ Cron jobs scheduled successfully.")

	app := fiber.New(fiber.Config{
		Prefork:           false,
		AppName:           "English Academy",
		CaseSensitive:     true,
		StrictRouting:     true,
		EnablePrintRoutes: true,
		PassLocalsToViews: true,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}

			logrus.Errorf("[ERROR] %v | Path: %s | Method: %s", err, c.Path(), c.Method())
			return c.Status(code).JSON(fiber.Map{
				"status":  "error",
				"code":    code,
				"message": err.Error(),
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, Stripe-Signature, Sec-WebSocket-Key, Sec-WebSocket-Version",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length, Authorization",
		MaxAge:        86400,
	}))

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "success",
			"message": "Welcome to English Academy API",
		})
	})

	routes.PublicRoutes(app)
	routes.AuthRoutes(app, cfg)
	routes.ProfileRoutes(app, cfg)
	routes.TeacherRoutes(app, cfg)
	routes.CourseRoutes(app, cfg)
	routes.ExamRoutes(app, cfg)
	routes.PaymentRoutes(app, cfg, webhookService, checkoutService)
	routes.AdminRoutes(app, cfg)
	routes.MessagingRoutes(app, cfg)
	routes.UploadRoutes(app, cfg)

	go websocket.RunHub()

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})

	logrus.Infof("✅ Server is running on port %s", cfg.App.Port)
	if err := app.Listen(":" + cfg.App.Port); err != nil {
		logrus.Fatalf("🔥 Server failed to start: %v", err)
	}
}
