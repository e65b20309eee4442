package handlers

import (
	"github.com/anjiri1684/english_academy/database"
	"github.com/anjiri1684/english_academy/models"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

var validate = validator.New()

func currentUserID(c *fiber.Ctx) uint {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	return uint(claims["user_id"].(float64))
}

func currentRole(c *fiber.Ctx) string {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	return claims["role"].(string)
}

// currentStudent resolves the student record behind the authenticated user.
func currentStudent(c *fiber.Ctx) (*models.Student, error) {
	var student models.Student
	if err := database.DB.Where("user_id = ?", currentUserID(c)).First(&student).Error; err != nil {
		return nil, err
	}
	return &student, nil
}
