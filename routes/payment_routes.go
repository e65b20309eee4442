package routes

import (
	config "github.com/anjiri1684/english_academy/configs"
	"github.com/anjiri1684/english_academy/handlers"
	"github.com/anjiri1684/english_academy/middleware"
	"github.com/anjiri1684/english_academy/payments"
	"github.com/gofiber/fiber/v2"
)

func PaymentRoutes(app *fiber.App, cfg *config.Config, processor handlers.WebhookProcessor, checkout *payments.CheckoutService) {
	api := app.Group("/api/v1")

	// Stripe calls this endpoint directly; authentication is the signature header.
	api.Post("/payments/stripe/webhook", handlers.HandleStripeWebhook(processor))

	protected := api.Group("/payments", middleware.Protected(cfg.Auth.JWTSecret))
	protected.Post("/checkout-session", handlers.CreateCheckoutSession(checkout))
}
