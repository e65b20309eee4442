package routes

import (
	config "github.com/anjiri1684/english_academy/configs"
	"github.com/anjiri1684/english_academy/handlers"
	"github.com/anjiri1684/english_academy/middleware"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

func MessagingRoutes(app *fiber.App, cfg *config.Config) {
	api := app.Group("/api/v1")

	conversations := api.Group("/conversations", middleware.Protected(cfg.Auth.JWTSecret))
	conversations.Get("", handlers.GetMyConversations)
	conversations.Post("", handlers.CreateOrGetConversation)
	conversations.Get("/:conversationId/messages", handlers.GetConversationMessages)

	api.Use("/ws", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		return c.Next()
	})
	api.Get("/ws", websocket.New(handlers.ServeWs(cfg.Auth.JWTSecret)))
}
