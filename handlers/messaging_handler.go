package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/anjiri1684/english_academy/database"
	"github.com/anjiri1684/english_academy/models"
	"github.com/anjiri1684/english_academy/websocket"
	websocketcontrib "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/sirupsen/logrus"
)

func GetMyConversations(c *fiber.Ctx) error {
	userID := currentUserID(c)

	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "20"))
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * pageSize

	var user models.User
	if err := database.DB.
		Preload("Conversations.Participants").
		Where("id = ?", userID).
		Limit(pageSize).
		Offset(offset).
		First(&user).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	return c.JSON(user.Conversations)
}

func GetConversationMessages(c *fiber.Ctx) error {
	userID := currentUserID(c)
	conversationID := c.Params("conversationId")

	var count int64
	database.DB.
		Table("conversation_participants").
		Where("conversation_id = ? AND user_id = ?", conversationID, userID).
		Count(&count)
	if count == 0 {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You are not part of this conversation"})
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "50"))
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * pageSize

	var messages []models.Message
	if err := database.DB.
		Where("conversation_id = ?", conversationID).
		Order("created_at asc").
		Limit(pageSize).
		Offset(offset).
		Find(&messages).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch messages"})
	}

	now := time.Now()
	database.DB.Model(&models.Message{}).
		Where("conversation_id = ? AND sender_id <> ? AND read_at IS NULL", conversationID, userID).
		Update("read_at", &now)

	return c.JSON(messages)
}

func CreateOrGetConversation(c *fiber.Ctx) error {
	userID := currentUserID(c)

	type Request struct {
		RecipientID uint  `json:"recipient_id" validate:"required"`
		CourseID    *uint `json:"course_id"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if req.RecipientID == userID {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot start a conversation with yourself"})
	}

	var conversation models.Conversation
	err := database.DB.
		Joins("JOIN conversation_participants cp1 ON cp1.conversation_id = conversations.id AND cp1.user_id = ?", userID).
		Joins("JOIN conversation_participants cp2 ON cp2.conversation_id = conversations.id AND cp2.user_id = ?", req.RecipientID).
		First(&conversation).Error

	if err == nil {
		return c.JSON(conversation)
	}

	var sender, recipient models.User
	if err := database.DB.First(&sender, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}
	if err := database.DB.First(&recipient, "id = ?", req.RecipientID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Recipient not found"})
	}
	newConversation := models.Conversation{
		CourseID:     req.CourseID,
		Participants: []*models.User{&sender, &recipient},
	}
	if err := database.DB.Create(&newConversation).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create conversation"})
	}

	return c.Status(fiber.StatusCreated).JSON(newConversation)
}

// ServeWs upgrades an authenticated client and relays chat messages
// through the hub. The client must send an auth frame before anything else.
func ServeWs(jwtSecret string) func(*websocketcontrib.Conn) {
	return func(c *websocketcontrib.Conn) {
		type AuthMessage struct {
			Type  string `json:"type"`
			Token string `json:"token"`
		}
		var authMsg AuthMessage
		if err := c.ReadJSON(&authMsg); err != nil || authMsg.Type != "auth" {
			logrus.Warnf("WebSocket auth failed: invalid or missing auth message: %v", err)
			_ = c.WriteJSON(fiber.Map{"error": "Invalid or missing auth message"})
			c.Close()
			return
		}

		claims, err := parseToken(authMsg.Token, jwtSecret)
		if err != nil {
			logrus.Warnf("WebSocket auth failed: invalid token: %v", err)
			_ = c.WriteJSON(fiber.Map{"error": "Invalid token"})
			c.Close()
			return
		}

		rawID, ok := claims["user_id"].(float64)
		if !ok {
			logrus.Warnf("WebSocket auth failed: invalid user_id claim: %v", claims["user_id"])
			_ = c.WriteJSON(fiber.Map{"error": "Invalid user ID"})
			c.Close()
			return
		}
		userID := uint(rawID)

		client := &websocket.Client{UserID: userID, Conn: c}
		websocket.Register <- client
		defer func() {
			websocket.Unregister <- client
			c.Close()
		}()

		for {
			var msg websocket.MessagePayload
			if err := c.ReadJSON(&msg); err != nil {
				if websocketcontrib.IsCloseError(err, websocketcontrib.CloseGoingAway, websocketcontrib.CloseAbnormalClosure) {
					logrus.Debugf("WebSocket closed for client %d: %v", userID, err)
				} else {
					logrus.Warnf("WebSocket read error for client %d: %v", userID, err)
				}
				break
			}

			var count int64
			database.DB.
				Table("conversation_participants").
				Where("conversation_id = ? AND user_id = ?", msg.ConversationID, userID).
				Count(&count)
			if count == 0 {
				_ = c.WriteJSON(fiber.Map{"error": "You are not part of this conversation"})
				continue
			}

			dbMessage := models.Message{
				ConversationID: msg.ConversationID,
				SenderID:       userID,
				Content:        msg.Content,
			}
			if err := database.DB.Create(&dbMessage).Error; err != nil {
				logrus.Errorf("Failed to save message for client %d: %v", userID, err)
				_ = c.WriteJSON(fiber.Map{"error": "Failed to save message"})
				continue
			}
			websocket.Broadcast <- &dbMessage
		}
	}
}

func parseToken(tokenString, secret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}
